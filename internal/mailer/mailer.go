// Package mailer renders and delivers the daily HTML digest email.
package mailer

import (
	"fmt"
	"log"
	"time"

	"github.com/skinsight/skinfeed/internal/feed"
	"gopkg.in/gomail.v2"
)

type Mailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string

	now  func() time.Time
	send func(*gomail.Message) error
}

func New(host string, port int, username, password, from, to string) *Mailer {
	m := &Mailer{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		From:     from,
		To:       to,
		now:      time.Now,
	}
	m.send = func(msg *gomail.Message) error {
		// gomail negotiates STARTTLS automatically on the standard
		// submission port.
		d := gomail.NewDialer(m.Host, m.Port, m.Username, m.Password)
		return d.DialAndSend(msg)
	}
	return m
}

// Send delivers the digest for the given feed. An empty feed skips the
// send rather than mailing an empty newsletter. Delivery errors are
// returned to the caller; they never crash the host process.
func (m *Mailer) Send(posts []feed.Post) error {
	if len(posts) == 0 {
		log.Println("mailer: no posts, skipping newsletter")
		return nil
	}

	now := m.now()
	html, err := BuildHTML(posts, now)
	if err != nil {
		return fmt.Errorf("render digest: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", m.To)
	msg.SetHeader("Subject", fmt.Sprintf("Your Daily AI Skincare Digest - %s", now.Format("Jan 2, 2006")))
	msg.SetBody("text/html", html)

	if err := m.send(msg); err != nil {
		return fmt.Errorf("send newsletter to %s: %w", m.To, err)
	}
	log.Printf("mailer: newsletter sent to %s (%d posts)", m.To, len(posts))
	return nil
}
