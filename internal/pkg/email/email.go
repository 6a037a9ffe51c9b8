package email

import (
	"fmt"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// EmailService defines the interface for outbound portal mail.
type EmailService interface {
	SendCredentialEmail(toEmail, toName, userID, password string) error
	SendPasswordResetEmail(toEmail, toName, tempPassword string) error
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

// EmailServiceImpl implements EmailService over gomail.
type EmailServiceImpl struct {
	config SMTPConfig
	dialer *gomail.Dialer
	logger zerolog.Logger
}

// NewEmailService creates a new EmailService
func NewEmailService(config SMTPConfig, logger zerolog.Logger) EmailService {
	return &EmailServiceImpl{
		config: config,
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
		logger: logger,
	}
}

// SendCredentialEmail sends the account credentials produced by provisioning.
func (s *EmailServiceImpl) SendCredentialEmail(toEmail, toName, userID, password string) error {
	subject := "Your PlaceNet Account Credentials"
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Welcome to PlaceNet!</h2>
				<p>Hello %s,</p>
				<p>An account has been created for you on the placement preparation portal.</p>
				<p>User ID: <strong>%s</strong><br>
				Email: <strong>%s</strong><br>
				Password: <strong>%s</strong></p>
				<p>Please log in and change your password after your first sign-in.</p>
			</div>
		</body>
		</html>`, toName, userID, toEmail, password)

	return s.send(toEmail, subject, body)
}

// SendPasswordResetEmail sends a temporary password after an admin reset.
func (s *EmailServiceImpl) SendPasswordResetEmail(toEmail, toName, tempPassword string) error {
	subject := "PlaceNet Password Reset"
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Password Reset</h2>
				<p>Hello %s,</p>
				<p>Your password has been reset by an administrator.</p>
				<p>Temporary password: <strong>%s</strong></p>
				<p>Please log in and change it as soon as possible.</p>
			</div>
		</body>
		</html>`, toName, tempPassword)

	return s.send(toEmail, subject, body)
}

func (s *EmailServiceImpl) send(toEmail, subject, body string) error {
	// Without SMTP credentials, log instead of sending. Keeps local
	// development working without a mail server.
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("subject", subject).
			Msg("SMTP credentials not configured - email not sent")
		return nil
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromEmail, s.config.FromName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	s.logger.Info().Str("toEmail", toEmail).Str("subject", subject).Msg("Email sent")
	return nil
}
