package notify

import (
	"context"
	"fmt"

	"github.com/mailgun/mailgun-go/v4"
)

type mailer interface {
	NewMessage(from, subject, text string, to ...string) *mailgun.Message
	Send(ctx context.Context, m *mailgun.Message) (string, string, error)
}

// MailgunSender renders a template and sends it through the Mailgun API.
type MailgunSender struct {
	mg      mailer
	catalog *Catalog
	from    string
}

func NewMailgunSender(domain, apiKey, from string, catalog *Catalog) *MailgunSender {
	return &MailgunSender{
		mg:      mailgun.NewMailgun(domain, apiKey),
		catalog: catalog,
		from:    from,
	}
}

func (s *MailgunSender) Notify(ctx context.Context, templateID, recipient string, fields map[string]string) error {
	subject, html, err := s.catalog.Render(templateID, fields)
	if err != nil {
		return err
	}

	m := s.mg.NewMessage(s.from, subject, "", recipient)
	m.SetHtml(html)
	if _, _, err := s.mg.Send(ctx, m); err != nil {
		return fmt.Errorf("mailgun send %s: %w", templateID, err)
	}
	return nil
}
