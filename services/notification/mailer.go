package notification

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"shotfolio/config"
	"shotfolio/utils"

	"go.uber.org/zap"
)

// SMTPMailer delivers mail through the configured SMTP relay. When SMTP is
// not configured (local development), messages are logged instead of sent.
type SMTPMailer struct {
	Host     string
	Port     string
	Username string
	Password string
	FromName string
}

// NewSMTPMailer builds a mailer from the application config.
func NewSMTPMailer() *SMTPMailer {
	return &SMTPMailer{
		Host:     config.AppConfig.SMTPHost,
		Port:     config.AppConfig.SMTPPort,
		Username: config.AppConfig.SMTPUsername,
		Password: config.AppConfig.SMTPPassword,
		FromName: config.AppConfig.SMTPFromName,
	}
}

func (m *SMTPMailer) configured() bool {
	return m.Host != "" && m.Port != "" && m.Username != "" && m.Password != ""
}

// Send delivers one message. No retry logic here: the calling flow records
// the failure and moves on.
func (m *SMTPMailer) Send(ctx context.Context, msg EmailMessage) error {
	logger := utils.GetLogger()

	if msg.To == "" {
		return fmt.Errorf("email message has no recipient")
	}

	if !m.configured() {
		logger.Info("[MOCK EMAIL] SMTP not configured, logging instead",
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject))
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	from := fmt.Sprintf("%s <%s>", m.FromName, m.Username)
	auth := smtp.PlainAuth("", m.Username, m.Password, m.Host)
	addr := fmt.Sprintf("%s:%s", m.Host, m.Port)

	boundary := "----=_SHOTFOLIO_EMAIL_BOUNDARY"

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", msg.To))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", sanitizeHeader(msg.Subject)))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=%q\r\n", boundary))
	sb.WriteString("\r\n")

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(msg.TextBody)
	sb.WriteString("\r\n")

	if msg.HTMLBody != "" {
		sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
		sb.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
		sb.WriteString(msg.HTMLBody)
		sb.WriteString("\r\n")
	}
	sb.WriteString(fmt.Sprintf("--%s--\r\n", boundary))

	if err := smtp.SendMail(addr, auth, m.Username, []string{msg.To}, []byte(sb.String())); err != nil {
		return fmt.Errorf("smtp send to %s failed: %w", msg.To, err)
	}

	logger.Info("Email sent", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}

func sanitizeHeader(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
