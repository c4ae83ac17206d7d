// Package controllers translates HTTP requests into service calls and
// service results into the API's wire format.
package controllers

import (
	"errors"
	"net/http"

	"github.com/drovo/backend/app/middlewares"
	"github.com/drovo/backend/app/repositories"
	"github.com/drovo/backend/app/services"
	"github.com/drovo/backend/pkg/bind"
	"github.com/drovo/backend/pkg/response"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

type registerInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,in=user,shop"`
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var in registerInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	token, err := c.auth.Register(r.Context(), in.Name, in.Email, in.Password, in.Role)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateEmail) {
			response.Fail(w, "User already exists")
			return
		}
		response.ServerError(w, "Something went wrong")
		return
	}
	response.OK(w, response.M{"token": token})
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,in=user,shop"`
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	token, err := c.auth.Login(r.Context(), in.Email, in.Password, in.Role)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.Fail(w, "Invalid email or password")
			return
		}
		response.ServerError(w, "Something went wrong")
		return
	}
	response.OK(w, response.M{"token": token})
}

type sendOTPInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func (c *AuthController) SendOTP(w http.ResponseWriter, r *http.Request) {
	var in sendOTPInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := c.auth.SendOTP(r.Context(), in.Email); err != nil {
		if errors.Is(err, services.ErrDuplicateEmail) {
			response.Fail(w, "Email already registered")
			return
		}
		response.ServerError(w, "Could not send OTP")
		return
	}
	response.OK(w, response.M{"message": "OTP sent"})
}

type verifyOTPInput struct {
	Email    string `json:"email" validate:"required,email"`
	OTP      string `json:"otp" validate:"required,digits=6"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

func (c *AuthController) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var in verifyOTPInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	token, err := c.auth.VerifyOTP(r.Context(), in.Email, in.OTP, in.Name, in.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWrongOTP):
			response.Error(w, http.StatusBadRequest, "Invalid OTP")
		case errors.Is(err, services.ErrDuplicateEmail):
			response.Error(w, http.StatusBadRequest, "Shop already exists")
		default:
			response.ServerError(w, "Something went wrong")
		}
		return
	}
	response.OK(w, response.M{"token": token})
}

func (c *AuthController) Profile(w http.ResponseWriter, r *http.Request) {
	accountID, _ := middlewares.AccountIDFromContext(r.Context())

	role, account, err := c.auth.Profile(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			response.NotFound(w, "Account not found")
			return
		}
		response.ServerError(w, "Something went wrong")
		return
	}
	response.OK(w, response.M{"role": role, "data": account})
}
