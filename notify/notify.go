// Package notify sends the post-submission email. A failure here is logged
// and swallowed: intake success never depends on the relay.
package notify

import (
	"fmt"
	"strings"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"

	"github.com/soulware-systems/training-survey/log"
)

type Provider interface {
	Send(subject, body string, recipients []string) error
}

type Settings struct {
	Host string
	Port string
	User string
	Pass string
	TLS  bool
	From string
}

func New(s Settings) Provider {
	return &mailer{settings: s}
}

type mailer struct {
	settings Settings
}

func (m *mailer) Send(subject, body string, recipients []string) error {
	s := m.settings
	if s.Host == "" || len(recipients) == 0 {
		log.Debug("notify: smtp not configured, skipping")
		return nil
	}

	var auth sasl.Client
	if s.User != "" {
		auth = sasl.NewPlainClient("", s.User, s.Pass)
	}

	msg := strings.NewReader(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s\r\n",
		s.From, strings.Join(recipients, ", "), subject, body,
	))

	addr := s.Host + ":" + s.Port
	var err error
	if s.TLS {
		err = smtp.SendMailTLS(addr, auth, s.From, recipients, msg)
	} else {
		err = smtp.SendMail(addr, auth, s.From, recipients, msg)
	}
	if err != nil {
		log.Errorf("notify: send failed: %s", err)
		return err
	}
	log.Infof("notify: sent to %d recipient(s)", len(recipients))
	return nil
}
