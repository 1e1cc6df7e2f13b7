package contact_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-sitecms/internal/contact"
	"github.com/goliatone/go-sitecms/internal/notify"
	"github.com/goliatone/go-sitecms/internal/site"
)

type stubProfiles struct {
	profile *site.Profile
	err     error
	calls   int
}

func (s *stubProfiles) Profile(context.Context) (*site.Profile, error) {
	s.calls++
	return s.profile, s.err
}

type recordingMailer struct {
	sent []notify.ContactSubmission
	err  error
}

func (m *recordingMailer) ContactSubmitted(_ context.Context, msg notify.ContactSubmission) error {
	m.sent = append(m.sent, msg)
	return m.err
}

type appendCall struct {
	sheetID string
	tab     string
	row     []any
}

type recordingAppender struct {
	calls []appendCall
	err   error
}

func (a *recordingAppender) AppendRow(_ context.Context, sheetID, tab string, row []any) error {
	a.calls = append(a.calls, appendCall{sheetID: sheetID, tab: tab, row: row})
	return a.err
}

var fixedNow = time.Date(2025, 3, 4, 15, 30, 0, 0, time.UTC)

func TestParseSubmission(t *testing.T) {
	sub, err := contact.ParseSubmission([]byte(`{
		"name": "Ada",
		"email": "ada@example.test",
		"services": ["Design", "SEO"],
		"budget": 5000,
		"_notificationEmail": " owner@acme.test ",
		"_submittedFrom": "/contact",
		"_fieldLabels": {"name": "Full name", "budget": 12},
		"_googleSheetId": "sheet-1",
		"_googleSheetTabName": "Leads",
		"notes": null
	}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if sub.Recipient != "owner@acme.test" || sub.SubmittedFrom != "/contact" {
		t.Fatalf("unexpected control fields: %+v", sub)
	}
	if sub.SheetID != "sheet-1" || sub.SheetTab != "Leads" {
		t.Fatalf("unexpected sheet target: %+v", sub)
	}

	want := []contact.Field{
		{Key: "name", Label: "Full name", Value: "Ada"},
		{Key: "email", Value: "ada@example.test"},
		{Key: "services", Value: "Design,SEO"},
		{Key: "budget", Value: "5000"},
		{Key: "notes", Value: ""},
	}
	if len(sub.Fields) != len(want) {
		t.Fatalf("expected %d fields, got %+v", len(want), sub.Fields)
	}
	for i := range want {
		if sub.Fields[i] != want[i] {
			t.Fatalf("field %d: expected %+v, got %+v", i, want[i], sub.Fields[i])
		}
	}
	if sub.Fields[1].DisplayLabel() != "email" {
		t.Fatalf("expected key as label fallback, got %q", sub.Fields[1].DisplayLabel())
	}
}

func TestParseSubmissionDuplicateKeyKeepsLastValue(t *testing.T) {
	sub, err := contact.ParseSubmission([]byte(`{"name":"Ada","email":"a@b.test","name":"Grace"}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(sub.Fields) != 2 || sub.Fields[0].Value != "Grace" {
		t.Fatalf("unexpected fields: %+v", sub.Fields)
	}
}

func TestParseSubmissionRejectsEmptyPayloads(t *testing.T) {
	for _, body := range []string{"", "  ", "null", "{}"} {
		if _, err := contact.ParseSubmission([]byte(body)); !errors.Is(err, contact.ErrNoData) {
			t.Fatalf("body %q: expected ErrNoData, got %v", body, err)
		}
	}
	for _, body := range []string{"[]", `"hi"`, `{"name":`} {
		if _, err := contact.ParseSubmission([]byte(body)); !errors.Is(err, contact.ErrInvalidPayload) {
			t.Fatalf("body %q: expected ErrInvalidPayload, got %v", body, err)
		}
	}
}

func TestSubmitEmailsAndAppendsRow(t *testing.T) {
	profiles := &stubProfiles{profile: &site.Profile{ContactEmail: "hello@acme.test"}}
	mailer := &recordingMailer{}
	sheets := &recordingAppender{}
	svc := contact.NewService(profiles,
		contact.WithNotifier(mailer),
		contact.WithSheets(sheets, "default-sheet"),
		contact.WithClock(func() time.Time { return fixedNow }),
	)

	result, err := svc.Submit(context.Background(), &contact.Submission{
		Fields: []contact.Field{{Key: "name", Label: "Name", Value: "Ada"}, {Key: "msg", Value: "Hi"}},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !result.Emailed || result.EmailFailed || !result.Appended || result.SheetID != "default-sheet" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if profiles.calls != 1 || len(mailer.sent) != 1 {
		t.Fatalf("expected one profile lookup and one email, got %d/%d", profiles.calls, len(mailer.sent))
	}

	msg := mailer.sent[0]
	if msg.To != "hello@acme.test" || msg.SubmittedFrom != "Unknown" || !msg.SubmittedAt.Equal(fixedNow) {
		t.Fatalf("unexpected email: %+v", msg)
	}
	if msg.Fields[1].Label != "msg" {
		t.Fatalf("expected key as label fallback, got %+v", msg.Fields[1])
	}

	if len(sheets.calls) != 1 {
		t.Fatalf("expected one append, got %d", len(sheets.calls))
	}
	call := sheets.calls[0]
	if call.sheetID != "default-sheet" || call.tab != contact.DefaultSheetTab {
		t.Fatalf("unexpected sheet target: %+v", call)
	}
	if len(call.row) != 3 || call.row[0] != "2025-03-04T15:30:00Z" || call.row[1] != "Ada" || call.row[2] != "Hi" {
		t.Fatalf("unexpected row: %#v", call.row)
	}
}

func TestSubmitPrefersFormRecipientAndSheet(t *testing.T) {
	profiles := &stubProfiles{err: errors.New("should not be called")}
	mailer := &recordingMailer{}
	sheets := &recordingAppender{}
	svc := contact.NewService(profiles, contact.WithNotifier(mailer), contact.WithSheets(sheets, "default-sheet"))

	_, err := svc.Submit(context.Background(), &contact.Submission{
		Fields:        []contact.Field{{Key: "name", Value: "Ada"}},
		Recipient:     "sales@acme.test",
		SubmittedFrom: "/pricing",
		SheetID:       "form-sheet",
		SheetTab:      "Leads",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if profiles.calls != 0 {
		t.Fatalf("expected no profile lookup, got %d", profiles.calls)
	}
	if mailer.sent[0].To != "sales@acme.test" || mailer.sent[0].SubmittedFrom != "/pricing" {
		t.Fatalf("unexpected email: %+v", mailer.sent[0])
	}
	if sheets.calls[0].sheetID != "form-sheet" || sheets.calls[0].tab != "Leads" {
		t.Fatalf("unexpected sheet target: %+v", sheets.calls[0])
	}
}

func TestSubmitEmailFailureSkipsSheet(t *testing.T) {
	mailer := &recordingMailer{err: errors.New("postmark down")}
	sheets := &recordingAppender{}
	svc := contact.NewService(nil, contact.WithNotifier(mailer), contact.WithSheets(sheets, "sheet"))

	result, err := svc.Submit(context.Background(), &contact.Submission{
		Fields:    []contact.Field{{Key: "name", Value: "Ada"}},
		Recipient: "owner@acme.test",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !result.EmailFailed || result.Emailed {
		t.Fatalf("expected email failure, got %+v", result)
	}
	if len(sheets.calls) != 0 {
		t.Fatalf("expected sheet to be skipped, got %d calls", len(sheets.calls))
	}
}

func TestSubmitSwallowsSheetErrors(t *testing.T) {
	sheets := &recordingAppender{err: errors.New("quota")}
	svc := contact.NewService(nil, contact.WithNotifier(&recordingMailer{}), contact.WithSheets(sheets, "sheet"))

	result, err := svc.Submit(context.Background(), &contact.Submission{
		Fields:    []contact.Field{{Key: "name", Value: "Ada"}},
		Recipient: "owner@acme.test",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !result.Emailed || result.Appended || len(sheets.calls) != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestSubmitWithoutSheetIDSkipsAppend(t *testing.T) {
	sheets := &recordingAppender{}
	svc := contact.NewService(nil, contact.WithNotifier(&recordingMailer{}), contact.WithSheets(sheets, ""))

	result, err := svc.Submit(context.Background(), &contact.Submission{Recipient: "owner@acme.test"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Appended || len(sheets.calls) != 0 {
		t.Fatalf("expected no append, got %+v", result)
	}
}

func TestSubmitProfileErrorFails(t *testing.T) {
	svc := contact.NewService(&stubProfiles{err: errors.New("db down")}, contact.WithNotifier(&recordingMailer{}))
	if _, err := svc.Submit(context.Background(), &contact.Submission{}); err == nil {
		t.Fatalf("expected profile error")
	}
}

func TestSheetsAppenderAppendsUserEnteredRow(t *testing.T) {
	var gotPath, gotOption string
	var gotBody struct {
		Values [][]any `json:"values"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotOption = r.URL.Query().Get("valueInputOption")
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"spreadsheetId":"sheet-123"}`))
	}))
	defer server.Close()

	appender, err := contact.NewSheetsAppender(context.Background(), contact.SheetsConfig{
		Endpoint:   server.URL + "/",
		HTTPClient: server.Client(),
	})
	if err != nil {
		t.Fatalf("new appender: %v", err)
	}

	row := contact.Row(fixedNow, []contact.Field{{Key: "name", Value: "Ada"}})
	if err := appender.AppendRow(context.Background(), "sheet-123", "Leads", row); err != nil {
		t.Fatalf("append: %v", err)
	}
	if gotPath != "/v4/spreadsheets/sheet-123/values/Leads:append" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotOption != "USER_ENTERED" {
		t.Fatalf("unexpected valueInputOption %q", gotOption)
	}
	if len(gotBody.Values) != 1 || len(gotBody.Values[0]) != 2 || gotBody.Values[0][1] != "Ada" {
		t.Fatalf("unexpected values: %#v", gotBody.Values)
	}
}

func TestSheetsAppenderReportsErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"caller lacks permission"}}`))
	}))
	defer server.Close()

	appender, err := contact.NewSheetsAppender(context.Background(), contact.SheetsConfig{
		Endpoint:   server.URL + "/",
		HTTPClient: server.Client(),
	})
	if err != nil {
		t.Fatalf("new appender: %v", err)
	}
	err = appender.AppendRow(context.Background(), "sheet-123", "Sheet1", []any{"x"})
	if err == nil || !strings.Contains(err.Error(), "caller lacks permission") {
		t.Fatalf("expected permission error, got %v", err)
	}
}

func TestNewSheetsAppenderRequiresCredentials(t *testing.T) {
	_, err := contact.NewSheetsAppender(context.Background(), contact.SheetsConfig{ClientEmail: "svc@test"})
	if !errors.Is(err, contact.ErrSheetsCredentials) {
		t.Fatalf("expected ErrSheetsCredentials, got %v", err)
	}
}

func TestNormalizePrivateKey(t *testing.T) {
	got := contact.NormalizePrivateKey(`-----BEGIN KEY-----\nabc\n-----END KEY-----`)
	if got != "-----BEGIN KEY-----\nabc\n-----END KEY-----" {
		t.Fatalf("unexpected key %q", got)
	}
}
