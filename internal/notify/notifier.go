// Package notify delivers transactional mail for workflow events. Delivery
// is best effort: a failed send is logged, never bubbled into the workflow
// that triggered it (except where a handler explicitly opts in).
package notify

import (
	"context"

	"gopkg.in/gomail.v2"
)

type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

type Notifier interface {
	// Send delivers to the customer address in msg.To, BCCing the admin
	// list when configured.
	Send(ctx context.Context, msg Message) error
	// NotifyAdmins delivers to the configured admin addresses. msg.To is
	// ignored.
	NotifyAdmins(ctx context.Context, msg Message) error
}

type SMTPNotifier struct {
	dialer *gomail.Dialer
	from   string
	admins []string
}

func NewSMTP(host string, port int, user, password, from string, admins []string) *SMTPNotifier {
	return &SMTPNotifier{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
		admins: admins,
	}
}

func (n *SMTPNotifier) Send(ctx context.Context, msg Message) error {
	m := n.build(msg)
	m.SetHeader("To", msg.To)

	// Keep admins in the loop without exposing them to the customer, but
	// never BCC an address that is already the recipient.
	var bcc []string
	for _, a := range n.admins {
		if a != msg.To {
			bcc = append(bcc, a)
		}
	}
	if len(bcc) > 0 {
		m.SetHeader("Bcc", bcc...)
	}

	return n.send(ctx, m)
}

func (n *SMTPNotifier) NotifyAdmins(ctx context.Context, msg Message) error {
	if len(n.admins) == 0 {
		return nil
	}
	m := n.build(msg)
	m.SetHeader("To", n.admins...)
	return n.send(ctx, m)
}

func (n *SMTPNotifier) build(msg Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)
	if msg.HTML != "" {
		m.AddAlternative("text/html", msg.HTML)
	}
	return m
}

func (n *SMTPNotifier) send(ctx context.Context, m *gomail.Message) error {
	// gomail has no context support; honour cancellation before dialing.
	if err := ctx.Err(); err != nil {
		return err
	}
	return n.dialer.DialAndSend(m)
}
