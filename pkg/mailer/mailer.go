package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
	"sync"
	"time"

	"github.com/prizeday/contest-backend/internal/config"
)

// Gateway represents an outbound email gateway interface
type Gateway interface {
	SendEmail(to, subject, htmlBody string) (string, error)
}

// SMTPGateway delivers mail through a plain SMTP relay
type SMTPGateway struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// MockGateway accepts every message without sending anything; used in local
// and test environments. Sent messages are retained for inspection. Senders
// may run on different goroutines, hence the lock.
type MockGateway struct {
	mu   sync.Mutex
	Sent []MockMessage
}

// MockMessage is one message captured by the MockGateway
type MockMessage struct {
	To      string
	Subject string
	Body    string
}

// NewSMTPGateway creates a new SMTPGateway
func NewSMTPGateway(cfg *config.Config) Gateway {
	return &SMTPGateway{
		host:     cfg.Mail.Host,
		port:     cfg.Mail.Port,
		username: cfg.Mail.Username,
		password: cfg.Mail.Password,
		from:     cfg.Mail.From,
	}
}

// NewMockGateway creates a new MockGateway
func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

// SendEmail sends an HTML email through the SMTP relay
func (g *SMTPGateway) SendEmail(to, subject, htmlBody string) (string, error) {
	addr := fmt.Sprintf("%s:%d", g.host, g.port)

	var msg strings.Builder
	msg.WriteString("From: " + g.from + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	var auth smtp.Auth
	if g.username != "" {
		auth = smtp.PlainAuth("", g.username, g.password, g.host)
	}
	if err := smtp.SendMail(addr, auth, g.from, []string{to}, []byte(msg.String())); err != nil {
		return "", fmt.Errorf("smtp send to %s failed: %w", to, err)
	}
	return fmt.Sprintf("SMTP-%d", time.Now().UnixNano()), nil
}

// SendEmail records the message and reports success
func (g *MockGateway) SendEmail(to, subject, htmlBody string) (string, error) {
	g.mu.Lock()
	g.Sent = append(g.Sent, MockMessage{To: to, Subject: subject, Body: htmlBody})
	g.mu.Unlock()
	return fmt.Sprintf("MOCK-MSG-%d", time.Now().UnixNano()), nil
}
