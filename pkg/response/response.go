// Package response writes the API's JSON wire format.
//
// The API uses a success-flag convention inherited from the frontend contract:
// semantic failures (wrong credentials, duplicate account) are HTTP 200 with
// {"success":false,...}; real HTTP status codes are reserved for auth,
// authorization, not-found, and server faults.
package response

import (
	"encoding/json"
	"net/http"
)

// M is a response body under construction.
type M map[string]any

func write(w http.ResponseWriter, status int, body M) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// OK sends a 200 with success:true merged into body. body may be nil.
func OK(w http.ResponseWriter, body M) {
	out := M{"success": true}
	for k, v := range body {
		out[k] = v
	}
	write(w, http.StatusOK, out)
}

// Fail sends a 200 with success:false and a message — the convention for
// semantic failures like wrong credentials or duplicate email.
func Fail(w http.ResponseWriter, message string) {
	write(w, http.StatusOK, M{"success": false, "message": message})
}

// Error sends success:false with a real HTTP status code.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, M{"success": false, "message": message})
}

// Redirect sends a 403 with a machine-readable redirect hint, used by the
// subscription gate to point shops at the setup or renewal flow.
func Redirect(w http.ResponseWriter, redirect, message string) {
	write(w, http.StatusForbidden, M{
		"success":  false,
		"redirect": redirect,
		"message":  message,
	})
}

// ValidationError sends a 400 with field-level errors.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	write(w, http.StatusBadRequest, M{
		"success": false,
		"message": "Validation failed",
		"errors":  errs,
	})
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, message)
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}

// ServerError sends a 500.
func ServerError(w http.ResponseWriter, message string) {
	Error(w, http.StatusInternalServerError, message)
}
