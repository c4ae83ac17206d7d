package jobs

import (
	"fmt"

	"github.com/drovo/backend/pkg/mail"
)

// OrderPlacedJob notifies a shop by email that a new order arrived. Dispatch
// is best-effort: the order is already stored by the time this runs, and a
// delivery failure never reaches the customer.
type OrderPlacedJob struct {
	ShopEmail string  `json:"shopEmail"`
	ShopName  string  `json:"shopName"`
	OrderID   string  `json:"orderId"`
	Amount    float64 `json:"amount"`
}

func (OrderPlacedJob) JobName() string { return "jobs.OrderPlacedJob" }

func (j OrderPlacedJob) Handle() error {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>You have a new order <b>#%s</b> for a total of ₹%.2f.</p><p>Open your dashboard to start preparing it.</p>",
		j.ShopName, j.OrderID, j.Amount,
	)
	return mail.To(j.ShopEmail).
		Subject("New Order Placed").
		Body(body).
		Send()
}
