package notify_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mrz1836/postmark"

	"github.com/goliatone/go-sitecms/internal/notify"
)

func TestSubjectAndBody(t *testing.T) {
	id := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	draft := notify.PostCreated{PostID: id, Title: "Hello", Words: 1234}

	if got := notify.Subject(draft); got != "New Blog Post Created: Hello" {
		t.Fatalf("unexpected subject %q", got)
	}
	body := notify.TextBody(draft, "https://studio.test/")
	for _, want := range []string{
		"has been created as a draft.",
		"Status: Draft",
		"Length: 1,234 words",
		"Review: https://studio.test/posts/11111111-1111-1111-1111-111111111111",
		"Please review and publish it when ready.",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected body to contain %q, got:\n%s", want, body)
		}
	}

	draft.Published = true
	if got := notify.Subject(draft); got != "New Blog Post Published: Hello" {
		t.Fatalf("unexpected subject %q", got)
	}
	if strings.Contains(notify.TextBody(draft, "https://studio.test"), "Please review") {
		t.Fatalf("published body should not ask for review")
	}
}

func TestContactTextBody(t *testing.T) {
	at := time.Date(2025, 3, 4, 15, 30, 0, 0, time.UTC)
	body := notify.ContactTextBody(notify.ContactSubmission{
		SubmittedAt: at,
		Fields: []notify.ContactField{
			{Key: "name", Label: "Full name", Value: "Ada"},
			{Key: "message", Value: "Hi there"},
		},
	})
	for _, want := range []string{
		notify.ContactSubject,
		"Full name: Ada\n",
		"message: Hi there\n",
		"Submitted at Mar 4, 2025 3:30 PM UTC",
		"From: Unknown",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected body to contain %q, got:\n%s", want, body)
		}
	}
}

func postmarkServer(t *testing.T, got *map[string]any, token *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/email" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		*token = r.Header.Get("X-Postmark-Server-Token")
		_ = json.NewDecoder(r.Body).Decode(got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"To":"x","SubmittedAt":"2025-03-04T15:30:00Z","MessageID":"m-1","ErrorCode":0,"Message":"OK"}`))
	}))
}

func TestPostmarkNotifierSendsEmail(t *testing.T) {
	var got map[string]any
	var token string
	server := postmarkServer(t, &got, &token)
	defer server.Close()

	n := notify.NewPostmarkNotifier(notify.PostmarkConfig{
		ServerToken: "pm-token",
		BaseURL:     server.URL,
		HTTPClient:  server.Client(),
	})
	err := n.PostCreated(context.Background(), notify.PostCreated{To: "editor@site.test", Title: "Hello", Published: true})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if token != "pm-token" {
		t.Fatalf("unexpected token %q", token)
	}
	if got["To"] != "editor@site.test" || got["From"] != "editor@site.test" {
		t.Fatalf("expected sender to fall back to recipient, got %v", got)
	}
	if got["Subject"] != "New Blog Post Published: Hello" || got["Tag"] != "blog-automation" {
		t.Fatalf("unexpected message %v", got)
	}
}

func TestPostmarkNotifierSendsContactEmail(t *testing.T) {
	var got map[string]any
	var token string
	server := postmarkServer(t, &got, &token)
	defer server.Close()

	n := notify.NewPostmarkNotifier(notify.PostmarkConfig{
		ServerToken: "pm-token",
		From:        "news@acme.test",
		FormsFrom:   "forms@acme.test",
		BaseURL:     server.URL,
		HTTPClient:  server.Client(),
	})
	err := n.ContactSubmitted(context.Background(), notify.ContactSubmission{
		To:     "owner@acme.test",
		Fields: []notify.ContactField{{Key: "name", Value: "Ada"}},
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if got["From"] != "forms@acme.test" || got["To"] != "owner@acme.test" {
		t.Fatalf("unexpected addresses %v", got)
	}
	if got["Subject"] != notify.ContactSubject || got["Tag"] != "contact-form" {
		t.Fatalf("unexpected message %v", got)
	}
	if body, _ := got["TextBody"].(string); !strings.Contains(body, "name: Ada") {
		t.Fatalf("unexpected body %q", body)
	}
}

type stubSender struct {
	emails []postmark.Email
	err    error
}

func (s *stubSender) SendEmail(_ context.Context, email postmark.Email) (postmark.EmailResponse, error) {
	s.emails = append(s.emails, email)
	return postmark.EmailResponse{}, s.err
}

func TestPostmarkNotifierContactSenderFallbacks(t *testing.T) {
	sender := &stubSender{}
	n := notify.NewPostmarkNotifier(notify.PostmarkConfig{From: "news@acme.test", Sender: sender})
	if err := n.ContactSubmitted(context.Background(), notify.ContactSubmission{To: "owner@acme.test"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if sender.emails[0].From != "news@acme.test" {
		t.Fatalf("expected From fallback, got %q", sender.emails[0].From)
	}

	n = notify.NewPostmarkNotifier(notify.PostmarkConfig{Sender: sender})
	if err := n.ContactSubmitted(context.Background(), notify.ContactSubmission{To: "owner@acme.test"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if sender.emails[1].From != "owner@acme.test" {
		t.Fatalf("expected recipient fallback, got %q", sender.emails[1].From)
	}

	if err := n.ContactSubmitted(context.Background(), notify.ContactSubmission{}); !errors.Is(err, notify.ErrRecipientRequired) {
		t.Fatalf("expected ErrRecipientRequired, got %v", err)
	}
}

func TestPostmarkNotifierErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"ErrorCode":10,"Message":"bad token"}`))
	}))
	defer server.Close()

	n := notify.NewPostmarkNotifier(notify.PostmarkConfig{BaseURL: server.URL, HTTPClient: server.Client()})
	if err := n.PostCreated(context.Background(), notify.PostCreated{}); !errors.Is(err, notify.ErrRecipientRequired) {
		t.Fatalf("expected ErrRecipientRequired, got %v", err)
	}
	err := n.PostCreated(context.Background(), notify.PostCreated{To: "a@b.test", Title: "x"})
	if err == nil || !strings.Contains(err.Error(), "notify: postmark send") {
		t.Fatalf("expected send error, got %v", err)
	}

	failing := &stubSender{err: errors.New("boom")}
	n = notify.NewPostmarkNotifier(notify.PostmarkConfig{Sender: failing})
	err = n.ContactSubmitted(context.Background(), notify.ContactSubmission{To: "a@b.test"})
	if !errors.Is(err, failing.err) {
		t.Fatalf("expected wrapped sender error, got %v", err)
	}
}
