package services

import (
	"log"

	"github.com/nzzzzzw/COMP4537-AI-Project/config"
	"gopkg.in/gomail.v2"
)

// Mailer is the email-delivery collaborator of the password-reset flow. The
// reset handler only cares whether delivery succeeded, so tests can stand in
// with a fake.
type Mailer interface {
	SendResetPasswordEmail(to, resetURL string) error
}

// SMTPMailer sends mail through the SMTP relay named in the config.
type SMTPMailer struct {
	cfg *config.Config
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// SendResetPasswordEmail delivers the reset link. This is synchronous on
// purpose: the caller rolls back the stored reset token when delivery fails.
func (m *SMTPMailer) SendResetPasswordEmail(to, resetURL string) error {
	body := `<h1>Password Reset Request</h1>
		<p>You requested a password reset. Click the link below to reset your password:</p>
		<a href="` + resetURL + `">Reset Password</a>
		<p>This link will expire in 10 minutes.</p>
		<p>If you didn't request this, please ignore this email.</p>
		<p>Best regards,<br>Mental Health App Team</p>`

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.MailFrom, "Mental Health App")
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Password Reset Request")
	msg.SetBody("text/html", body)

	d := gomail.NewDialer(m.cfg.SMTPHost, m.cfg.SMTPPort, m.cfg.SMTPUser, m.cfg.SMTPPass)

	if err := d.DialAndSend(msg); err != nil {
		log.Printf("Could not send password reset email to %s: %v", to, err)
		return err
	}

	return nil
}
