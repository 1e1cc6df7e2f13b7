package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mrz1836/postmark"
)

const defaultStudioURL = "http://localhost:3000/admin"

var ErrRecipientRequired = errors.New("notify: recipient is required")

// EmailSender is the slice of the Postmark client the notifier needs.
type EmailSender interface {
	SendEmail(ctx context.Context, email postmark.Email) (postmark.EmailResponse, error)
}

// PostmarkConfig holds the Postmark credentials. BaseURL and HTTPClient
// override the client defaults; Sender replaces the client entirely.
type PostmarkConfig struct {
	ServerToken string
	From        string
	FormsFrom   string
	StudioURL   string
	BaseURL     string
	HTTPClient  *http.Client
	Sender      EmailSender
}

// PostmarkNotifier sends notifications through the Postmark email API.
type PostmarkNotifier struct {
	cfg    PostmarkConfig
	sender EmailSender
}

var (
	_ Notifier        = (*PostmarkNotifier)(nil)
	_ ContactNotifier = (*PostmarkNotifier)(nil)
)

func NewPostmarkNotifier(cfg PostmarkConfig) *PostmarkNotifier {
	if cfg.StudioURL == "" {
		cfg.StudioURL = defaultStudioURL
	}
	sender := cfg.Sender
	if sender == nil {
		client := postmark.NewClient(cfg.ServerToken, "")
		if cfg.BaseURL != "" {
			client.BaseURL = cfg.BaseURL
		}
		if cfg.HTTPClient != nil {
			client.HTTPClient = cfg.HTTPClient
		}
		sender = client
	}
	return &PostmarkNotifier{cfg: cfg, sender: sender}
}

// PostCreated sends the message. The sender falls back to the recipient when
// no From address is configured.
func (n *PostmarkNotifier) PostCreated(ctx context.Context, msg PostCreated) error {
	if msg.To == "" {
		return ErrRecipientRequired
	}
	return n.send(ctx, postmark.Email{
		From:     firstNonEmpty(n.cfg.From, msg.To),
		To:       msg.To,
		Subject:  Subject(msg),
		TextBody: TextBody(msg, n.cfg.StudioURL),
		Tag:      "blog-automation",
	})
}

// ContactSubmitted emails a contact form submission. FormsFrom takes
// precedence over From for the sender address.
func (n *PostmarkNotifier) ContactSubmitted(ctx context.Context, msg ContactSubmission) error {
	if msg.To == "" {
		return ErrRecipientRequired
	}
	return n.send(ctx, postmark.Email{
		From:     firstNonEmpty(n.cfg.FormsFrom, n.cfg.From, msg.To),
		To:       msg.To,
		Subject:  ContactSubject,
		TextBody: ContactTextBody(msg),
		Tag:      "contact-form",
	})
}

func (n *PostmarkNotifier) send(ctx context.Context, email postmark.Email) error {
	if _, err := n.sender.SendEmail(ctx, email); err != nil {
		return fmt.Errorf("notify: postmark send: %w", err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
