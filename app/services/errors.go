// Package services holds the business logic, one service per domain area.
// Services depend on repository interfaces and return typed errors; the
// controllers translate those into the wire convention.
package services

import "errors"

var (
	// ErrDuplicateEmail is returned when the email already has an account.
	ErrDuplicateEmail = errors.New("services: email already registered")
	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("services: invalid credentials")
	// ErrWrongOTP is returned when the submitted code does not match (or no
	// code is pending for the email).
	ErrWrongOTP = errors.New("services: otp does not match")
	// ErrInvalidPlan is returned for a subscription plan outside the fixed set.
	ErrInvalidPlan = errors.New("services: unknown subscription plan")
	// ErrInvalidSignature is returned when the gateway signature check fails.
	ErrInvalidSignature = errors.New("services: payment signature mismatch")
)
