// Package mailer implements the transport half of the Mailer Adapter: an
// SMTP-backed pipeline.MailSender. Digest rendering (HTML + plaintext body
// construction) lives in the pipeline package; this package only delivers
// an already-rendered message.
package mailer

import "os"

// Config holds SMTP server configuration for outbound mail delivery.
type Config struct {
	Host      string
	Port      string // "587" selects STARTTLS, "465" selects direct TLS
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

// ConfigFromEnv populates Config from SMTP_* environment variables,
// defaulting to a local unauthenticated relay for development.
func ConfigFromEnv() Config {
	return Config{
		Host:      getEnvOrDefault("SMTP_HOST", "localhost"),
		Port:      getEnvOrDefault("SMTP_PORT", "587"),
		Username:  getEnvOrDefault("SMTP_USERNAME", ""),
		Password:  getEnvOrDefault("SMTP_PASSWORD", ""),
		FromEmail: getEnvOrDefault("SMTP_FROM_EMAIL", "catchup-feed@localhost"),
		FromName:  getEnvOrDefault("SMTP_FROM_NAME", "Catchup Feed"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
