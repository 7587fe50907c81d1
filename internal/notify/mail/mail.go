// Package mail delivers plain-text messages over SMTP with STARTTLS and
// PLAIN authentication.
package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net"
	"net/smtp"
	"net/textproto"
	"strconv"
	"strings"
	"time"
)

// SMTPClient is the part of *smtp.Client a send uses.
//
//go:generate mockgen -package=mail_test -destination=mock_smtp_client_test.go -source=mail.go SMTPClient
type SMTPClient interface {
	StartTLS(config *tls.Config) error
	Auth(a smtp.Auth) error
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// DialFunc opens an SMTP session to addr.
type DialFunc func(ctx context.Context, addr string) (SMTPClient, error)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// To may hold several comma-separated addresses.
	To      string
	Timeout time.Duration
}

type Mailer struct {
	cfg  Config
	dial DialFunc
	now  func() time.Time
}

type Option func(*Mailer)

// WithDialer replaces the network dialer, mainly for tests.
func WithDialer(d DialFunc) Option {
	return func(m *Mailer) {
		m.dial = d
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Mailer) {
		m.now = now
	}
}

func New(cfg Config, opts ...Option) *Mailer {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.Username == "" {
		cfg.Username = cfg.From
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	m := &Mailer{cfg: cfg, now: time.Now}
	m.dial = m.dialSMTP
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Mailer) addr() string {
	return net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))
}

func (m *Mailer) dialSMTP(ctx context.Context, addr string) (SMTPClient, error) {
	d := net.Dialer{Timeout: m.cfg.Timeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	_ = conn.SetDeadline(time.Now().Add(m.cfg.Timeout))
	c, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return c, nil
}

// Send delivers one message. The session is closed on every path.
func (m *Mailer) Send(ctx context.Context, subject, body string) error {
	to := splitAddrs(m.cfg.To)
	if m.cfg.Host == "" || m.cfg.From == "" || len(to) == 0 {
		return fmt.Errorf("mail not configured: host, sender and receiver are required")
	}
	msg, err := m.compose(subject, body, to)
	if err != nil {
		return err
	}

	addr := m.addr()
	c, err := m.dial(ctx, addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer c.Close()

	if err := c.StartTLS(&tls.Config{ServerName: m.cfg.Host, MinVersion: tls.VersionTLS12}); err != nil {
		return fmt.Errorf("starttls: %w", err)
	}
	if err := c.Auth(smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := c.Mail(m.cfg.From); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return fmt.Errorf("rcpt %s: %w", rcpt, err)
		}
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return fmt.Errorf("write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finish message: %w", err)
	}
	if err := c.Quit(); err != nil {
		return fmt.Errorf("quit: %w", err)
	}
	return nil
}

// compose builds a multipart/mixed message with a single text/plain part.
func (m *Mailer) compose(subject, body string, to []string) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	var head bytes.Buffer
	fmt.Fprintf(&head, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&head, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&head, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	fmt.Fprintf(&head, "Date: %s\r\n", m.now().Format(time.RFC1123Z))
	head.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&head, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", mw.Boundary())

	part, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {`text/plain; charset="utf-8"`},
		"Content-Transfer-Encoding": {"quoted-printable"},
	})
	if err != nil {
		return nil, fmt.Errorf("create body part: %w", err)
	}
	qp := quotedprintable.NewWriter(part)
	if _, err := io.WriteString(qp, body); err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}
	if err := qp.Close(); err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}
	return append(head.Bytes(), buf.Bytes()...), nil
}

func splitAddrs(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
