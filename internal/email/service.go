// Package email sends transactional emails over SMTP
package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"sync"

	"agrobase/internal/config"
)

// Notifier defines the interface for sending account security emails.
// Callers treat failures as fire-and-forget: a send error is logged by
// the caller and never propagated to the originating request.
type Notifier interface {
	SendVerificationEmail(to, name, token string) error
	SendPasswordResetEmail(to, name, token string) error
}

// Service implements the Notifier interface over SMTP
type Service struct {
	config config.EmailConfig
	client *smtp.Client
	mu     sync.Mutex
}

// NewService creates an SMTP-backed Notifier
func NewService(cfg config.EmailConfig) *Service {
	return &Service{
		config: cfg,
		client: nil,
	}
}

// dialSMTP establishes an SMTP connection, reusing a live one when possible
func (s *Service) dialSMTP() (*smtp.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		if err := s.client.Noop(); err == nil {
			return s.client, nil
		}
		// Connection is dead, close it
		s.client.Close()
		s.client = nil
	}

	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)
	client, err := smtp.Dial(addr)
	if err != nil {
		return nil, fmt.Errorf("failed to dial SMTP server: %w", err)
	}

	if err := client.Auth(smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to authenticate with SMTP server: %w", err)
	}

	s.client = client
	return client, nil
}

// sendMail sends an email using the pooled SMTP connection
func (s *Service) sendMail(to []string, msg []byte) error {
	client, err := s.dialSMTP()
	if err != nil {
		return err
	}

	if err := client.Mail(s.config.SMTPUsername); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			return fmt.Errorf("failed to add recipient %s: %w", addr, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to create message writer: %w", err)
	}

	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close message writer: %w", err)
	}

	return nil
}

// Close closes the SMTP connection
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		err := s.client.Quit()
		s.client = nil
		return err
	}
	return nil
}

func (s *Service) checkConfig() error {
	if s.config.SMTPHost == "" || s.config.SMTPPort == 0 || s.config.SMTPUsername == "" ||
		s.config.SMTPPassword == "" || s.config.FromAddress == "" || s.config.AppURL == "" {
		return fmt.Errorf("incomplete email configuration")
	}
	return nil
}

func (s *Service) compose(to, subject, tmplText string, data map[string]string) ([]byte, error) {
	tmpl, err := template.New("email").Parse(tmplText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse email template: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("failed to execute email template: %w", err)
	}

	msg := fmt.Sprintf("To: %s\r\n"+
		"From: %s\r\n"+
		"Subject: %s\r\n"+
		"MIME-Version: 1.0\r\n"+
		"Content-Type: text/html; charset=UTF-8\r\n"+
		"\r\n"+
		"%s", to, s.config.FromAddress, subject, body.String())

	return []byte(msg), nil
}

// SendVerificationEmail sends the email-verification link for the given token
func (s *Service) SendVerificationEmail(to, name, token string) error {
	if err := s.checkConfig(); err != nil {
		return err
	}

	verificationURL := fmt.Sprintf("%s/api/v1/auth/verify-email?token=%s", s.config.AppURL, token)
	msg, err := s.compose(to, "Verify Your Email Address", `
		<h2>Hello {{.Name}},</h2>
		<p>Please verify your email address by clicking the link below:</p>
		<p><a href="{{.URL}}">Verify Email Address</a></p>
		<p>If you did not create an account, no further action is required.</p>
	`, map[string]string{
		"Name": name,
		"URL":  verificationURL,
	})
	if err != nil {
		return err
	}

	if err := s.sendMail([]string{to}, msg); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}

// SendPasswordResetEmail sends the password-reset link for the given token
func (s *Service) SendPasswordResetEmail(to, name, token string) error {
	if err := s.checkConfig(); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.config.AppURL, token)
	msg, err := s.compose(to, "Reset Your Password", `
		<h2>Hello {{.Name}},</h2>
		<p>We received a request to reset your password. Click the link below to choose a new one:</p>
		<p><a href="{{.URL}}">Reset Password</a></p>
		<p>This link will expire in 1 hour.</p>
		<p>If you did not request a password reset, you can safely ignore this email.</p>
	`, map[string]string{
		"Name": name,
		"URL":  resetURL,
	})
	if err != nil {
		return err
	}

	if err := s.sendMail([]string{to}, msg); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	return nil
}
