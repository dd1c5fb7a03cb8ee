// Package notify delivers alert summaries by email.
package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"time"

	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/config"
	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/logger"
)

const dialTimeout = 30 * time.Second

// Result is the outcome shown to the user. Failures are values, not errors.
type Result struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// Message 一封纯文本邮件
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

// Notifier sends mail through an SMTP relay with STARTTLS and PLAIN auth.
type Notifier struct {
	host     string
	port     int
	sender   string
	password string

	sendFn func(ctx context.Context, msg Message) error
}

// New creates a Notifier from the relay settings and sender credentials.
func New(cfg config.SMTPConfig) *Notifier {
	n := &Notifier{
		host:     cfg.Host,
		port:     cfg.Port,
		sender:   cfg.SenderEmail,
		password: cfg.SenderPassword,
	}
	n.sendFn = n.send
	return n
}

// Notify sends body to recipient. Missing credentials fail before any
// connection is attempted.
func (n *Notifier) Notify(ctx context.Context, recipient, subject, body string) Result {
	if n.sender == "" || n.password == "" {
		logger.Log.Warn("缺少发件人凭据，跳过邮件发送")
		return Result{Message: "Email credentials not found in environment variables. Cannot send alert."}
	}

	err := n.sendFn(ctx, Message{
		From:    n.sender,
		To:      recipient,
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		logger.Log.Errorf("邮件发送失败 [%s]: %v", recipient, err)
		return Result{Message: fmt.Sprintf("Failed to send email: %v", err)}
	}

	logger.Log.Infof("告警邮件已发送: %s", recipient)
	return Result{OK: true, Message: fmt.Sprintf("Alert email sent to %s!", recipient)}
}

func (n *Notifier) send(ctx context.Context, msg Message) error {
	addr := net.JoinHostPort(n.host, strconv.Itoa(n.port))
	dialer := &net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}

	c, err := smtp.NewClient(conn, n.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer c.Close()

	if err := c.StartTLS(&tls.Config{ServerName: n.host}); err != nil {
		return fmt.Errorf("starttls: %w", err)
	}
	if err := c.Auth(smtp.PlainAuth("", n.sender, n.password, n.host)); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := c.Mail(msg.From); err != nil {
		return err
	}
	if err := c.Rcpt(msg.To); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte(formatMessage(msg))); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}

func formatMessage(msg Message) string {
	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		msg.From, msg.To, msg.Subject, msg.Body,
	)
}
