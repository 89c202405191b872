package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	portssvc "github.com/pinkeep/pinkeep_app/internal/core/ports/services"
)

// smtpEmailSender delivers password reset mail over plain SMTP. No template
// engine: the reset mail is a short fixed text with the link substituted in.
type smtpEmailSender struct {
	addr string // host:port
	from string
}

// NewSMTPEmailSender creates an EmailSender that talks to the given SMTP server.
func NewSMTPEmailSender(addr, from string) portssvc.EmailSender {
	return &smtpEmailSender{addr: addr, from: from}
}

func (s *smtpEmailSender) SendPasswordResetEmail(ctx context.Context, email, plaintextToken, resetURLBase string) error {
	link := buildResetLink(resetURLBase, plaintextToken)
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.from)
	fmt.Fprintf(&msg, "To: %s\r\n", email)
	msg.WriteString("Subject: Reset your PinKeep password\r\n")
	msg.WriteString("\r\n")
	msg.WriteString("Someone requested a password reset for your PinKeep account.\r\n\r\n")
	fmt.Fprintf(&msg, "Reset link (valid for a short time): %s\r\n\r\n", link)
	msg.WriteString("If this wasn't you, you can ignore this email.\r\n")

	if err := smtp.SendMail(s.addr, nil, s.from, []string{email}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	return nil
}

// logEmailSender stands in for SMTP in development: it logs the reset link
// instead of sending it. Never used when SMTP_ADDR is configured.
type logEmailSender struct {
	logger *slog.Logger
}

// NewLogEmailSender creates an EmailSender that logs instead of sending.
func NewLogEmailSender(logger *slog.Logger) portssvc.EmailSender {
	return &logEmailSender{logger: logger}
}

func (s *logEmailSender) SendPasswordResetEmail(ctx context.Context, email, plaintextToken, resetURLBase string) error {
	s.logger.Info("Password reset email (not sent, SMTP not configured)",
		slog.String("to", email),
		slog.String("reset_link", buildResetLink(resetURLBase, plaintextToken)),
	)
	return nil
}

func buildResetLink(resetURLBase, token string) string {
	sep := "?"
	if strings.Contains(resetURLBase, "?") {
		sep = "&"
	}
	return resetURLBase + sep + "token=" + token
}
