package jobs

import (
	"fmt"

	"github.com/drovo/backend/pkg/mail"
)

// FeedbackMailJob relays a customer's order feedback to the shop.
type FeedbackMailJob struct {
	ShopEmail string `json:"shopEmail"`
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
	Rating    int    `json:"rating"`
	Message   string `json:"message"`
}

func (FeedbackMailJob) JobName() string { return "jobs.FeedbackMailJob" }

func (j FeedbackMailJob) Handle() error {
	body := fmt.Sprintf(
		"<p><b>%s</b> (%s) rated their order <b>%d/5</b>.</p><p>%s</p>",
		j.UserName, j.UserEmail, j.Rating, j.Message,
	)
	return mail.To(j.ShopEmail).
		From(j.UserEmail).
		Subject("Order Feedback").
		Body(body).
		Send()
}
