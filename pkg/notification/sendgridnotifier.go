package notification

import (
	"fmt"
	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type SendGridConfig struct {
	APIKey   string
	FromName string
	From     string
}

// IsConfigured returns true if SendGrid can be used
func (c SendGridConfig) IsConfigured() bool {
	return c.APIKey != "" && c.From != ""
}

// SendGridNotifier is the fallback email transport. It delivers plain text
// only; the HTML wrapping belongs to the primary SMTP transport.
type SendGridNotifier struct {
	client *sendgrid.Client
	config SendGridConfig
}

func NewSendGridNotifier(config SendGridConfig) *SendGridNotifier {
	return &SendGridNotifier{
		client: sendgrid.NewSendClient(config.APIKey),
		config: config,
	}
}

func (s *SendGridNotifier) Send(noticeType NoticeType, notification NotificationData, template NoticeTemplate) error {
	if notification.To == "" {
		return fmt.Errorf("email notification requires 'To' address")
	}

	textBody, err := renderText(template.Text, notification.Data)
	if err != nil {
		slog.Error("Failed to render text template", "err", err)
		return err
	}
	if textBody == "" {
		return fmt.Errorf("notice type %s has no text template for the fallback transport", noticeType)
	}

	from := mail.NewEmail(s.config.FromName, s.config.From)
	to := mail.NewEmail("", notification.To)
	message := mail.NewSingleEmail(from, template.Subject, to, textBody, "")

	resp, err := s.client.Send(message)
	if err != nil {
		slog.Error("Failed to send email via SendGrid", "to", notification.To, "err", err)
		return err
	}
	if resp.StatusCode >= 400 {
		slog.Error("SendGrid rejected email", "to", notification.To, "status", resp.StatusCode, "body", resp.Body)
		return fmt.Errorf("sendgrid rejected email: status %d", resp.StatusCode)
	}

	slog.Info("Email sent via SendGrid", "to", notification.To, "status", resp.StatusCode)
	return nil
}
