package mail

import (
	"github.com/rs/zerolog"
	gomail "gopkg.in/gomail.v2"
)

// Mailer delivers HTML mail. Implementations must be safe for use from
// detached goroutines.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

type SMTPMailer struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

func (m SMTPMailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(m.Host, m.Port, m.User, m.Pass)
	return d.DialAndSend(msg)
}

// LogMailer stands in when SMTP is unconfigured; mail is logged, not sent.
type LogMailer struct {
	Logger zerolog.Logger
}

func (m LogMailer) Send(to, subject, htmlBody string) error {
	m.Logger.Info().
		Str("to", to).
		Str("subject", subject).
		Int("body_bytes", len(htmlBody)).
		Msg("mail send skipped (no SMTP configured)")
	return nil
}
