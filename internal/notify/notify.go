// Package notify delivers post-commit order notifications. Failures are
// logged and never surfaced to the caller: the order is already committed.
package notify

import (
	"context"
	"fmt"
	"io"
	"log"

	"freshbasket/internal/domain"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Notifier is called by the order service after a successful commit.
type Notifier interface {
	OrderPlaced(ctx context.Context, order domain.Order, customerEmail string)
}

// LogNotifier only writes notifications to the log. It is the default when no
// SendGrid key is configured.
type LogNotifier struct {
	Logger *log.Logger
}

func (n *LogNotifier) OrderPlaced(_ context.Context, order domain.Order, customerEmail string) {
	if customerEmail == "" {
		n.Logger.Printf("notify: order %s placed, no customer contact", order.Reference)
		return
	}
	n.Logger.Printf("notify: order %s placed, would mail %s total=%.2f", order.Reference, customerEmail, order.GrandTotal)
}

// EmailNotifier sends order confirmations to the customer and a copy to the
// platform admin via SendGrid.
type EmailNotifier struct {
	client     *sendgrid.Client
	from       string
	adminEmail string
	logger     *log.Logger
}

func NewEmailNotifier(apiKey, from, adminEmail string, logger *log.Logger) *EmailNotifier {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &EmailNotifier{
		client:     sendgrid.NewSendClient(apiKey),
		from:       from,
		adminEmail: adminEmail,
		logger:     logger,
	}
}

func (n *EmailNotifier) OrderPlaced(_ context.Context, order domain.Order, customerEmail string) {
	subject := fmt.Sprintf("Order %s confirmed", order.Reference)
	body := fmt.Sprintf(
		"Your order %s has been placed.\nItems: %d\nTotal payable on delivery: %.2f\n",
		order.Reference, len(order.Lines), order.GrandTotal,
	)

	if customerEmail != "" {
		n.send(subject, body, customerEmail, order.Address.Name)
	} else {
		n.logger.Printf("notify: order %s has no customer contact, skipping customer mail", order.Reference)
	}
	if n.adminEmail != "" {
		n.send(fmt.Sprintf("New order %s", order.Reference), body, n.adminEmail, "Admin")
	}
}

func (n *EmailNotifier) send(subject, body, to, name string) {
	from := mail.NewEmail("FreshBasket", n.from)
	msg := mail.NewSingleEmail(from, subject, mail.NewEmail(name, to), body, body)
	resp, err := n.client.Send(msg)
	if err != nil {
		n.logger.Printf("notify: send to=%s error=%v", to, err)
		return
	}
	if resp.StatusCode >= 300 {
		n.logger.Printf("notify: send to=%s status=%d", to, resp.StatusCode)
	}
}
