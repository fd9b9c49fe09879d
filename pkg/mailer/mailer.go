package mailer

import (
	"log"

	"gopkg.in/gomail.v2"
)

// Mailer sends plain-text notification emails. With no SMTP host configured
// it logs the message instead, so dev setups keep working.
type Mailer struct {
	host string
	port int
	user string
	pass string
	from string
}

func New(host string, port int, user, pass, from string) *Mailer {
	if host == "" {
		log.Println("[mail] SMTP not configured; emails will be logged only")
	}
	return &Mailer{host: host, port: port, user: user, pass: pass, from: from}
}

func (m *Mailer) Send(to, subject, text string) error {
	if m.host == "" {
		log.Printf("[mail:DEV-FALLBACK]\nTO: %s\nSUBJECT: %s\n%s", to, subject, text)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", text)

	d := gomail.NewDialer(m.host, m.port, m.user, m.pass)
	return d.DialAndSend(msg)
}

// SendAsync fires the mail off in the background. Delivery is best-effort:
// a failure is logged, never propagated.
func (m *Mailer) SendAsync(to, subject, text string) {
	if to == "" {
		return
	}
	go func() {
		if err := m.Send(to, subject, text); err != nil {
			log.Printf("[mail] send failed: %v", err)
		}
	}()
}
