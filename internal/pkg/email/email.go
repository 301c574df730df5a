package email

import (
	"fmt"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// EmailService defines the interface for outgoing mail.
type EmailService interface {
	SendPasswordResetEmail(toEmail, toName, resetLink string) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

// EmailServiceImpl implements EmailService
type EmailServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewEmailService creates a new EmailService
func NewEmailService(config SMTPConfig, logger zerolog.Logger) EmailService {
	return &EmailServiceImpl{
		config: config,
		logger: logger,
	}
}

// SendPasswordResetEmail sends the reset link to the account owner.
func (s *EmailServiceImpl) SendPasswordResetEmail(toEmail, toName, resetLink string) error {
	// Without SMTP credentials (local development) log the link instead.
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("resetLink", resetLink).
			Msg("SMTP credentials not configured - password reset email not sent")
		return nil
	}

	subject := "Password Reset Request"
	body := fmt.Sprintf(`<p>Hi %s,</p>
<p>Click below to reset your password (the link expires shortly):</p>
<a href="%s">Reset Password</a>`, toName, resetLink)

	return s.sendHTMLEmail(toEmail, subject, body)
}

func (s *EmailServiceImpl) sendHTMLEmail(to, subject, body string) error {
	from := s.config.FromEmail
	if s.config.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	}

	headers := []string{
		"From: " + from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
	}
	msg := strings.Join(headers, "\r\n") + "\r\n\r\n" + body

	addr := s.config.Host + ":" + strconv.Itoa(s.config.Port)
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info().Str("to", to).Str("subject", subject).Msg("Email sent")
	return nil
}
