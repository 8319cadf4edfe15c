package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	appconfig "supplier-management-api-server/config"
)

// Mailer sends transactional email over SMTP.
type Mailer struct {
	dialer       *gomail.Dialer
	sender       string
	resetBaseURL string
}

func New(cfg appconfig.SMTPConfig) *Mailer {
	return &Mailer{
		dialer:       gomail.NewDialer(cfg.Host, cfg.Port, cfg.Sender, cfg.Password),
		sender:       cfg.Sender,
		resetBaseURL: cfg.ResetBaseURL,
	}
}

func (m *Mailer) send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

// SendPasswordReset emails a single-use reset link.
func (m *Mailer) SendPasswordReset(to, token string) error {
	body := fmt.Sprintf(
		`<p>A password reset was requested for this account.</p>
<p><a href="%s?token=%s">Reset your password</a></p>
<p>If you did not request this, ignore this email.</p>`,
		m.resetBaseURL, token,
	)
	return m.send(to, "Password Reset Request", body)
}

// SendSupplierApproved notifies a supplier contact that every compliance
// document validated and the supplier is now discoverable.
func (m *Mailer) SendSupplierApproved(to, supplierName string) error {
	body := fmt.Sprintf(
		`<p>All compliance documents for <b>%s</b> have been validated.</p>
<p>The supplier is now approved for work and visible to clients.</p>`,
		supplierName,
	)
	return m.send(to, "Supplier Approved", body)
}
