package mailer

import (
	"fmt"
	"io"
	"net/http"

	"gopkg.in/gomail.v2"
)

// Attachment references a remote asset to attach by URL. The file is fetched
// at send time, never stored locally.
type Attachment struct {
	Filename string
	URL      string
}

// Message is a single outbound email.
type Message struct {
	From        string
	To          string
	Subject     string
	Text        string
	HTML        string
	Attachments []Attachment
}

// Mailer delivers messages through the configured relay.
type Mailer interface {
	Send(m *Message) error
}

// SMTPMailer sends mail over an authenticated SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
}

func NewSMTPMailer(host string, port int, user, password string, ssl bool) *SMTPMailer {
	d := gomail.NewDialer(host, port, user, password)
	d.SSL = ssl
	return &SMTPMailer{dialer: d}
}

func (s *SMTPMailer) Send(m *Message) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", m.To)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/plain", m.Text)
	if m.HTML != "" {
		msg.AddAlternative("text/html", m.HTML)
	}
	for _, att := range m.Attachments {
		url := att.URL
		msg.Attach(att.Filename, gomail.SetCopyFunc(func(w io.Writer) error {
			resp, err := http.Get(url)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("fetch attachment %s: %s", url, resp.Status)
			}
			_, err = io.Copy(w, resp.Body)
			return err
		}))
	}
	return s.dialer.DialAndSend(msg)
}
