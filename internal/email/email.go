package email

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/Domenick1991/skybook/config"
	"github.com/Domenick1991/skybook/internal/kafka"
	"github.com/mailersend/mailersend-go"
)

type client interface {
	Send(ctx context.Context, message *mailersend.Message) (*mailersend.Response, error)
}

// Sender mails order owners. Without an API key it only logs.
type Sender struct {
	client client
	from   mailersend.From
}

func NewSender(cfg config.MailConfig) *Sender {
	s := &Sender{from: mailersend.From{Name: cfg.FromName, Email: cfg.FromEmail}}
	if cfg.APIKey != "" {
		s.client = mailersend.NewMailersend(cfg.APIKey).Email
	}
	return s
}

func (s *Sender) Send(ctx context.Context, event kafka.OrderEvent) error {
	if event.Email == "" {
		log.Printf("order %d: no recipient, skipping %s mail", event.OrderID, event.Type)
		return nil
	}

	subject, text := composeOrderMail(event)
	if s.client == nil {
		log.Printf("send email to %s: %s", event.Email, subject)
		return nil
	}

	message := &mailersend.Message{}
	message.SetFrom(s.from)
	message.SetRecipients([]mailersend.Recipient{{Email: event.Email}})
	message.SetSubject(subject)
	message.SetText(text)

	res, err := s.client.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if res != nil && res.Response != nil {
		log.Printf("email sent for order %d, message id %s", event.OrderID, res.Header.Get("X-Message-Id"))
	}
	return nil
}

func composeOrderMail(event kafka.OrderEvent) (subject, text string) {
	var b strings.Builder
	switch event.Type {
	case kafka.EventOrderDeleted:
		subject = fmt.Sprintf("Order #%d cancelled", event.OrderID)
		fmt.Fprintf(&b, "Your order #%d was deleted and its seats were released.\n", event.OrderID)
	default:
		subject = fmt.Sprintf("Order #%d confirmed", event.OrderID)
		fmt.Fprintf(&b, "Thank you for your order #%d.\n", event.OrderID)
	}
	for _, t := range event.Tickets {
		fmt.Fprintf(&b, "Flight %d: row %d, seat %d\n", t.FlightID, t.Row, t.Seat)
	}
	return subject, b.String()
}
