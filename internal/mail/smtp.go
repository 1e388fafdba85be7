package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/pius706975/poolseek-be/config"
)

// SMTPSender delivers messages over SMTP.
type SMTPSender struct {
	cfg config.MailerConfig
}

func NewSMTPSender(cfg config.MailerConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// Send renders the message and delivers it to its recipient. The context is
// accepted for interface symmetry; net/smtp does not support cancellation
// mid-delivery.
func (s *SMTPSender) Send(_ context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return err
	}

	body, err := RenderHTML(msg)
	if err != nil {
		return fmt.Errorf("render email body: %w", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "From: %s\r\n", s.cfg.SenderName)
	fmt.Fprintf(&sb, "To: %s\r\n", msg.To)
	fmt.Fprintf(&sb, "Subject: %s\r\n", msg.Subject)
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, s.cfg.Username, []string{msg.To}, []byte(sb.String())); err != nil {
		return fmt.Errorf("send email to %s: %w", msg.To, err)
	}
	return nil
}

// DirectNotifier delivers account emails inline over SMTP. It backs the
// services when no mail queue is configured; dispatch still happens off the
// request path because the services send from detached goroutines.
type DirectNotifier struct {
	sender *SMTPSender
}

func NewDirectNotifier(sender *SMTPSender) *DirectNotifier {
	return &DirectNotifier{sender: sender}
}

// SendOTPEmail sends the verification email carrying code.
func (n *DirectNotifier) SendOTPEmail(ctx context.Context, recipient, code string) error {
	return n.sender.Send(ctx, OTPMessage(recipient, code))
}
