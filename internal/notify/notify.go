// Package notify delivers editor notifications about automated posts.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// PostCreated describes a post created by automation.
type PostCreated struct {
	To        string
	PostID    uuid.UUID
	Title     string
	Slug      string
	Published bool
	Words     int
}

// Notifier delivers a PostCreated message.
type Notifier interface {
	PostCreated(ctx context.Context, msg PostCreated) error
}

// NoopNotifier drops every message.
type NoopNotifier struct{}

func (NoopNotifier) PostCreated(context.Context, PostCreated) error { return nil }

// Subject renders the email subject for msg.
func Subject(msg PostCreated) string {
	state := "Created"
	if msg.Published {
		state = "Published"
	}
	return fmt.Sprintf("New Blog Post %s: %s", state, msg.Title)
}

// TextBody renders the plain text email body. studioURL is the base URL of
// the editing interface.
func TextBody(msg PostCreated, studioURL string) string {
	action, status := "created as a draft", "Draft"
	if msg.Published {
		action, status = "published", "Published"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "A new blog post has been %s.\n\n", action)
	fmt.Fprintf(&b, "Title: %s\n", msg.Title)
	fmt.Fprintf(&b, "Status: %s\n", status)
	if msg.Words > 0 {
		fmt.Fprintf(&b, "Length: %s words\n", humanize.Comma(int64(msg.Words)))
	}
	fmt.Fprintf(&b, "Review: %s/posts/%s\n", strings.TrimRight(studioURL, "/"), msg.PostID)
	if !msg.Published {
		b.WriteString("\nThe post is currently in draft status. Please review and publish it when ready.\n")
	}
	return b.String()
}
