// Copyright 2026 Asian Cafe
// Licensed under the EUPL-1.2

// Package email delivers verification codes over SMTP. Delivery is
// best-effort: callers log failures and carry on.
package email

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// Sender delivers a verification code to an email address.
type Sender interface {
	SendVerificationCode(ctx context.Context, to, code string) error
}

// Config carries the SMTP settings.
type Config struct { //nolint:govet // fieldalignment not critical
	Host     string
	Port     int
	From     string
	FromName string
	Username string
	Password string
	TLS      bool
}

// Service sends mail through an SMTP relay using go-mail.
type Service struct {
	cfg Config
}

var _ Sender = (*Service)(nil)

// NewService creates an SMTP-backed sender.
func NewService(cfg Config) (*Service, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("SMTP from address is required")
	}
	return &Service{cfg: cfg}, nil
}

// SendVerificationCode mails the registration confirmation code.
func (s *Service) SendVerificationCode(ctx context.Context, to, code string) error {
	subject := "Your registration confirmation code"
	body := fmt.Sprintf("Your confirmation code is: %s\n\nThe code expires in 15 minutes.", code)
	return s.send(ctx, to, subject, body)
}

// send sends an email via SMTP using go-mail.
func (s *Service) send(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()

	if s.cfg.FromName != "" {
		if err := msg.FromFormat(s.cfg.FromName, s.cfg.From); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	} else {
		if err := msg.From(s.cfg.From); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	}

	if err := msg.To(to); err != nil {
		return fmt.Errorf("setting to address: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
	}

	// Implicit TLS (SSL) for port 465, STARTTLS for others
	if s.cfg.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
		if s.cfg.Port == 465 {
			opts = append(opts, mail.WithSSL())
		}
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	if s.cfg.Username != "" && s.cfg.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}

	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("creating mail client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}

	return nil
}
