// Package jobs defines the background jobs pushed onto the queue. Every job
// type is registered by name at boot so the workers can rebuild it from its
// JSON payload.
package jobs

import (
	"fmt"

	"github.com/drovo/backend/pkg/mail"
)

// OTPMailJob emails a signup verification code to a prospective shop owner.
type OTPMailJob struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (OTPMailJob) JobName() string { return "jobs.OTPMailJob" }

func (j OTPMailJob) Handle() error {
	body := fmt.Sprintf(
		"<p>Your Drovo verification code is <b>%s</b>.</p><p>It expires in 10 minutes.</p>",
		j.Code,
	)
	return mail.To(j.Email).
		Subject("Your Drovo verification code").
		Body(body).
		Send()
}
