// internal/common/mail/smtp.go
package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"

	"mundolaboral-api/internal/common/config"
	"mundolaboral-api/internal/common/logger"
)

// SMTPMailer sends messages through a plain or STARTTLS SMTP session.
type SMTPMailer struct {
	cfg    config.MailConfig
	logger logger.Logger
}

func NewSMTPMailer(cfg config.MailConfig, log logger.Logger) *SMTPMailer {
	return &SMTPMailer{
		cfg:    cfg,
		logger: log.WithFields(map[string]interface{}{"provider": "smtp"}),
	}
}

func (s *SMTPMailer) Send(ctx context.Context, msg *Message) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled before sending email: %w", err)
	}

	raw := BuildMIME(msg)
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTP.Host, s.cfg.SMTP.Port)

	var auth smtp.Auth
	if s.cfg.SMTP.Username != "" && s.cfg.SMTP.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTP.Username, s.cfg.SMTP.Password, s.cfg.SMTP.Host)
	}

	var err error
	if s.cfg.SMTP.UseTLS {
		err = s.sendWithTLS(addr, auth, msg.From, []string{msg.To}, raw)
	} else {
		err = smtp.SendMail(addr, auth, msg.From, []string{msg.To}, raw)
	}
	if err != nil {
		return err
	}

	s.logger.Info("email sent", map[string]interface{}{
		"to":        msg.To,
		"subject":   msg.Subject,
		"messageId": GenerateMessageID(msg, s.cfg.SMTP.Host),
	})
	return nil
}

func (s *SMTPMailer) sendWithTLS(addr string, auth smtp.Auth, from string, to []string, raw []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{
		ServerName:         s.cfg.SMTP.Host,
		InsecureSkipVerify: false,
	}

	if err = client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	if auth != nil {
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	if err = client.Mail(from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	for _, rcpt := range to {
		if err = client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("failed to set recipient %s: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}

	if _, err = w.Write(raw); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return client.Quit()
}

// TestConnection dials the configured server and quits, without sending.
func (s *SMTPMailer) TestConnection(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTP.Host, s.cfg.SMTP.Port)

	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Close()

	if s.cfg.SMTP.UseTLS {
		tlsConfig := &tls.Config{
			ServerName:         s.cfg.SMTP.Host,
			InsecureSkipVerify: false,
		}
		if err = client.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("failed to start TLS: %w", err)
		}
	}

	return client.Quit()
}
