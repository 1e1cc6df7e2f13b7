package notify

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// ContactSubject is the subject line of contact form emails.
const ContactSubject = "New Contact Form Submission"

// ContactField is one submitted form value. Label falls back to Key when
// the form did not send one.
type ContactField struct {
	Key   string
	Label string
	Value string
}

// ContactSubmission is a contact form ready to be emailed.
type ContactSubmission struct {
	To            string
	SubmittedFrom string
	SubmittedAt   time.Time
	Fields        []ContactField
}

// ContactNotifier delivers contact form submissions.
type ContactNotifier interface {
	ContactSubmitted(ctx context.Context, msg ContactSubmission) error
}

func (NoopNotifier) ContactSubmitted(context.Context, ContactSubmission) error { return nil }

// ContactTextBody renders the plain text email for a submission.
func ContactTextBody(msg ContactSubmission) string {
	var b strings.Builder
	b.WriteString(ContactSubject)
	b.WriteString("\n\n")
	for _, field := range msg.Fields {
		label := field.Label
		if label == "" {
			label = field.Key
		}
		fmt.Fprintf(&b, "%s: %s\n", label, field.Value)
	}
	from := msg.SubmittedFrom
	if from == "" {
		from = "Unknown"
	}
	fmt.Fprintf(&b, "\nSubmitted at %s\nFrom: %s", msg.SubmittedAt.Format("Jan 2, 2006 3:04 PM MST"), from)
	return b.String()
}
