// Package mailer delivers account mail over SMTP. Delivery is out-of-band:
// callers never wait on read receipts, only on the handoff to the relay.
package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"

	"github.com/d60-Lab/buzzboard/internal/config"
)

type Mailer interface {
	SendVerification(ctx context.Context, email, token string) error
	SendPasswordReset(ctx context.Context, email, token string) error
}

type SMTPMailer struct {
	cfg config.SMTP
}

func NewSMTPMailer(cfg config.SMTP) *SMTPMailer { return &SMTPMailer{cfg: cfg} }

func (m *SMTPMailer) SendVerification(ctx context.Context, email, token string) error {
	url := fmt.Sprintf("%s?token=%s", m.cfg.VerifyEmailURL, token)
	body := fmt.Sprintf(`<html><body>
<p>Hello,</p>
<p>Click on this <a href="%s">Verify Email</a> to verify your email.</p>
<p>For more information contact: <a href="mailto:%s">%s</a></p>
<p>Best regards,<br>The BuzzBoard Team</p>
</body></html>`, url, m.cfg.Account, m.cfg.Account)
	return m.send(ctx, email, "BuzzBoard Email Verification", body)
}

func (m *SMTPMailer) SendPasswordReset(ctx context.Context, email, token string) error {
	url := fmt.Sprintf("%s?token=%s", m.cfg.ResetPasswordURL, token)
	body := fmt.Sprintf(`<html><body>
<p>Hello,</p>
<p>Click on this <a href="%s">Reset Password</a> to reset your password.</p>
<p>For more information contact: <a href="mailto:%s">%s</a></p>
<p>Best regards,<br>The BuzzBoard Team</p>
</body></html>`, url, m.cfg.Account, m.cfg.Account)
	return m.send(ctx, email, "BuzzBoard Password Reset", body)
}

// send speaks SMTP over an implicit-TLS connection (port 465 style relays).
func (m *SMTPMailer) send(ctx context.Context, to, subject, htmlBody string) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	dialer := &tls.Dialer{Config: &tls.Config{ServerName: m.cfg.Host}}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial smtp: %w", err)
	}

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	if err := client.Auth(smtp.PlainAuth("", m.cfg.Account, m.cfg.Password, m.cfg.Host)); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := client.Mail(m.cfg.Account); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s\r\n",
		m.cfg.Account, to, subject, htmlBody,
	)
	if _, err := w.Write([]byte(msg)); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}
