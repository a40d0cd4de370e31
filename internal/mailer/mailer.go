package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer sends transactional mail. All sends are best-effort: callers log
// failures and continue.
type Mailer struct {
	host     string
	port     int
	from     string
	password string
}

func NewMailer(host string, port int, from, password string) *Mailer {
	return &Mailer{host: host, port: port, from: from, password: password}
}

// SendOrderConfirmation notifies the buyer that the order was placed.
func (m *Mailer) SendOrderConfirmation(toEmail, gigTitle, orderID string) error {
	if m.from == "" {
		return fmt.Errorf("mailer not configured")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", "Order confirmed: "+gigTitle)
	msg.SetBody("text/plain", fmt.Sprintf("Your order for '%s' has been placed.\n\nOrder ID: %s", gigTitle, orderID))

	d := gomail.NewDialer(m.host, m.port, m.from, m.password)
	return d.DialAndSend(msg)
}
