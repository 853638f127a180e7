package mailer

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

// PinSender delivers a freshly generated PIN to the given address.
type PinSender interface {
	SendPin(to string, pin int) error
}

type SMTPMailer struct {
	Host     string
	Port     int
	Sender   string
	Password string
}

func (m *SMTPMailer) SendPin(to string, pin int) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.Sender)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "PIN recovery")
	msg.SetBody("text/plain", fmt.Sprintf("Hello,\n\nYour new PIN is: %d\n\nUse it to sign in to your account.", pin))

	d := gomail.NewDialer(m.Host, m.Port, m.Sender, m.Password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("mailer: send failed: %w", err)
	}
	return nil
}
