package service

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"toutouchic-api/core/constants"
)

// Sender delivers a single email. Failures are returned, not swallowed, so
// callers decide whether delivery is best-effort or fatal.
type Sender interface {
	Send(to string, subject string, body string) error
}

// SMTPSender sends HTML email through a plain SMTP relay. The whole
// exchange runs against a connection deadline so a stalled relay cannot
// hang the calling request.
type SMTPSender struct {
	addr    string
	from    string
	timeout time.Duration
}

func NewSMTPSender(host string, port string, from string) *SMTPSender {
	host = strings.TrimSpace(host)
	port = strings.TrimSpace(port)
	from = strings.TrimSpace(from)
	if from == "" {
		from = "no-reply@toutouchic.fr"
	}
	return &SMTPSender{
		addr:    fmt.Sprintf("%s:%s", host, port),
		from:    from,
		timeout: constants.DefaultTimeout,
	}
}

func (s *SMTPSender) Send(to string, subject string, body string) error {
	conn, err := (&net.Dialer{Timeout: s.timeout}).Dial("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("dial smtp relay %s: %w", s.addr, err)
	}
	defer conn.Close()

	// One deadline covers banner, handshake and message transfer.
	if err := conn.SetDeadline(time.Now().Add(s.timeout)); err != nil {
		return err
	}

	host, _, err := net.SplitHostPort(s.addr)
	if err != nil {
		return fmt.Errorf("invalid smtp address %s: %w", s.addr, err)
	}

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
			return fmt.Errorf("smtp starttls: %w", err)
		}
	}

	if err := client.Mail(s.from); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	msg := buildMessage(s.from, to, subject, body)
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("smtp write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close message: %w", err)
	}
	return client.Quit()
}

func buildMessage(from, to, subject, body string) string {
	// Minimal RFC 5322 message with an HTML body.
	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=utf-8\r\n\r\n%s\r\n",
		from,
		to,
		subject,
		body,
	)
}
