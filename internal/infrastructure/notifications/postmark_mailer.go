package notifications

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrz1836/postmark"

	"github.com/keaton678/research-hub/domain"
)

// PostmarkMailer delivers transactional mail through Postmark.
type PostmarkMailer struct {
	client    *postmark.Client
	fromEmail string
	fromName  string
}

// NewPostmarkMailer creates a Postmark-backed mailer. Both tokens must be
// configured; a blank token means the caller should fall back to the log
// mailer instead.
func NewPostmarkMailer(serverToken, accountToken, fromEmail, fromName string) (*PostmarkMailer, error) {
	if serverToken == "" {
		return nil, fmt.Errorf("postmark server token is required")
	}
	if fromEmail == "" {
		return nil, fmt.Errorf("sender email is required")
	}
	return &PostmarkMailer{
		client:    postmark.NewClient(serverToken, accountToken),
		fromEmail: fromEmail,
		fromName:  fromName,
	}, nil
}

// Send implements domain.Mailer.
func (m *PostmarkMailer) Send(ctx context.Context, msg domain.Email) error {
	from := m.fromEmail
	if m.fromName != "" {
		from = fmt.Sprintf("%s <%s>", m.fromName, m.fromEmail)
	}

	resp, err := m.client.SendEmail(ctx, postmark.Email{
		From:       from,
		To:         msg.To,
		Subject:    msg.Subject,
		Tag:        msg.Tag,
		HTMLBody:   msg.HTML,
		TextBody:   msg.Text,
		TrackOpens: true,
	})
	if err != nil {
		return errors.Join(domain.ErrMailDelivery, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(
			domain.ErrMailDelivery,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
		)
	}
	return nil
}
