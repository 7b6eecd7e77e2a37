package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"catchup-feed/internal/resilience/circuitbreaker"
)

// SMTPMailer implements pipeline.MailSender over net/smtp, wrapped in a
// circuit breaker so a failing mail relay degrades to fast failures
// instead of hanging every subsequent digest send, and a token-bucket
// limiter so a burst of digests doesn't trip the relay's own throttling.
type SMTPMailer struct {
	cfg         Config
	breaker     *circuitbreaker.CircuitBreaker
	limiter     *rate.Limiter
	dialTimeout time.Duration
}

// New builds an SMTPMailer. dialTimeout bounds the initial TCP/TLS
// handshake; zero selects a 10s default. Sends are capped to 5 per
// second with a burst of 10, matching common SMTP relay connection-rate
// limits (e.g. Gmail's).
func New(cfg Config, dialTimeout time.Duration) *SMTPMailer {
	if dialTimeout <= 0 {
		dialTimeout = 10 * time.Second
	}
	return &SMTPMailer{
		cfg:         cfg,
		breaker:     circuitbreaker.New(circuitbreaker.SMTPConfig()),
		limiter:     rate.NewLimiter(rate.Limit(5), 10),
		dialTimeout: dialTimeout,
	}
}

// Send delivers a multipart/alternative message built from htmlBody and
// textBody to to. It waits for the rate limiter before dialing, then goes
// through the circuit breaker: a tripped breaker fails fast with
// gobreaker.ErrOpenState rather than attempting a doomed connection.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	if err := m.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("mailer: Send: rate limit: %w", err)
	}

	message := buildMIMEMessage(m.cfg, to, subject, htmlBody, textBody)

	_, err := m.breaker.Execute(func() (interface{}, error) {
		return nil, m.deliver(ctx, to, message)
	})
	if err != nil {
		return fmt.Errorf("mailer: Send: %w", err)
	}
	return nil
}

func (m *SMTPMailer) deliver(ctx context.Context, to string, message []byte) error {
	addr := net.JoinHostPort(m.cfg.Host, m.cfg.Port)
	auth := smtpAuth(m.cfg)

	if m.cfg.Port == "465" {
		return m.sendWithDirectTLS(ctx, addr, auth, to, message)
	}
	return m.sendWithSTARTTLS(ctx, addr, auth, to, message)
}

func smtpAuth(cfg Config) smtp.Auth {
	if cfg.Username == "" {
		return nil
	}
	return smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
}

func (m *SMTPMailer) sendWithSTARTTLS(ctx context.Context, addr string, auth smtp.Auth, to string, message []byte) error {
	dialer := net.Dialer{Timeout: m.dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("new client: %w", err)
	}
	defer func() { _ = client.Quit() }()

	if err := client.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
		return fmt.Errorf("starttls: %w", err)
	}
	return m.transmit(client, auth, to, message)
}

func (m *SMTPMailer) sendWithDirectTLS(ctx context.Context, addr string, auth smtp.Auth, to string, message []byte) error {
	dialer := tls.Dialer{NetDialer: &net.Dialer{Timeout: m.dialTimeout}, Config: &tls.Config{ServerName: m.cfg.Host}}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial tls: %w", err)
	}

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("new client: %w", err)
	}
	defer func() { _ = client.Quit() }()

	return m.transmit(client, auth, to, message)
}

func (m *SMTPMailer) transmit(client *smtp.Client, auth smtp.Auth, to string, message []byte) error {
	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("auth: %w", err)
		}
	}
	if err := client.Mail(m.cfg.FromEmail); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("rcpt to: %w", err)
	}
	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(message); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func buildMIMEMessage(cfg Config, to, subject, htmlBody, textBody string) []byte {
	boundary := "catchup-feed-" + strconv.FormatInt(time.Now().UnixNano(), 36)
	msg := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: multipart/alternative; boundary=\"%s\"\r\n"+
			"\r\n"+
			"--%s\r\n"+
			"Content-Type: text/plain; charset=UTF-8\r\n"+
			"\r\n"+
			"%s\r\n"+
			"\r\n"+
			"--%s\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s\r\n"+
			"\r\n"+
			"--%s--\r\n",
		cfg.FromName, cfg.FromEmail, to, subject, boundary,
		boundary, textBody, boundary, htmlBody, boundary,
	)
	return []byte(msg)
}
