package config

import "os"

// MailConfig holds SMTP sender credentials. They are read from the
// environment at startup but no complete code path sends mail yet; the
// password-recovery flow that would use them was never finished.
type MailConfig struct {
	SMTPHost    string
	SMTPPort    string
	SenderEmail string
	AppPassword string
}

// LoadMailConfig loads the (optional) mail credentials from environment variables.
func LoadMailConfig() *MailConfig {
	return &MailConfig{
		SMTPHost:    os.Getenv("SMTP_HOST"),
		SMTPPort:    os.Getenv("SMTP_PORT"),
		SenderEmail: os.Getenv("SENDER_EMAIL"),
		AppPassword: os.Getenv("EMAIL_APP_PASSWORD"),
	}
}

// Configured reports whether sender credentials are present.
func (m *MailConfig) Configured() bool {
	return m.SenderEmail != "" && m.AppPassword != ""
}
