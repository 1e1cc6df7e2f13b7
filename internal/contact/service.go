package contact

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/internal/notify"
	"github.com/goliatone/go-sitecms/internal/site"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

const (
	DefaultSheetTab      = "Sheet1"
	defaultSubmittedFrom = "Unknown"
)

// ProfileSource supplies the fallback recipient address.
type ProfileSource interface {
	Profile(ctx context.Context) (*site.Profile, error)
}

// RowAppender appends one row to a spreadsheet tab.
type RowAppender interface {
	AppendRow(ctx context.Context, sheetID, tab string, row []any) error
}

// Result reports what a submission reached.
type Result struct {
	Recipient   string
	Emailed     bool
	EmailFailed bool
	SheetID     string
	Appended    bool
}

// Option configures a Service.
type Option func(*Service)

func WithNotifier(notifier notify.ContactNotifier) Option {
	return func(s *Service) {
		s.notifier = notifier
	}
}

func WithSheets(appender RowAppender, defaultSheetID string) Option {
	return func(s *Service) {
		s.sheets = appender
		s.defaultSheetID = defaultSheetID
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// Service delivers contact form submissions.
type Service struct {
	profiles       ProfileSource
	notifier       notify.ContactNotifier
	sheets         RowAppender
	defaultSheetID string
	logger         interfaces.Logger
	now            func() time.Time
}

func NewService(profiles ProfileSource, opts ...Option) *Service {
	s := &Service{
		profiles: profiles,
		logger:   logging.NoOp(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit emails the submission and, once the email went out, forwards it
// to the configured sheet. A failed email is reported on the result and
// stops the sheet step. Sheet failures are logged only.
func (s *Service) Submit(ctx context.Context, sub *Submission) (*Result, error) {
	if sub == nil {
		return nil, ErrNoData
	}

	recipient, err := s.recipient(ctx, sub)
	if err != nil {
		return nil, err
	}

	submittedAt := s.now().UTC()
	result := &Result{Recipient: recipient}

	switch {
	case s.notifier == nil:
		s.logger.Warn("contact.email.skipped", "reason", "notifier not configured")
	case recipient == "":
		s.logger.Warn("contact.email.skipped", "reason", "no recipient")
	default:
		err := s.notifier.ContactSubmitted(ctx, notify.ContactSubmission{
			To:            recipient,
			SubmittedFrom: submittedFrom(sub),
			SubmittedAt:   submittedAt,
			Fields:        contactFields(sub.Fields),
		})
		if err != nil {
			s.logger.Error("contact.email.failed", "error", err, "recipient", recipient)
			result.EmailFailed = true
			return result, nil
		}
		result.Emailed = true
	}

	sheetID := sub.SheetID
	if sheetID == "" {
		sheetID = s.defaultSheetID
	}
	if sheetID == "" || s.sheets == nil {
		return result, nil
	}
	result.SheetID = sheetID

	tab := sub.SheetTab
	if tab == "" {
		tab = DefaultSheetTab
	}
	if err := s.sheets.AppendRow(ctx, sheetID, tab, Row(submittedAt, sub.Fields)); err != nil {
		s.logger.Warn("contact.sheet.failed", "error", err, "sheet_id", sheetID, "tab", tab)
		return result, nil
	}
	result.Appended = true
	return result, nil
}

func (s *Service) recipient(ctx context.Context, sub *Submission) (string, error) {
	if sub.Recipient != "" {
		return sub.Recipient, nil
	}
	if s.profiles == nil {
		return "", nil
	}
	profile, err := s.profiles.Profile(ctx)
	if err != nil {
		return "", fmt.Errorf("contact: load profile: %w", err)
	}
	if profile == nil {
		return "", errors.New("contact: profile not found")
	}
	return profile.ContactEmail, nil
}

// Row is the spreadsheet row for a submission: the timestamp followed by
// the field values in submission order.
func Row(at time.Time, fields []Field) []any {
	row := make([]any, 0, len(fields)+1)
	row = append(row, at.UTC().Format(time.RFC3339))
	for _, field := range fields {
		row = append(row, field.Value)
	}
	return row
}

func submittedFrom(sub *Submission) string {
	if sub.SubmittedFrom == "" {
		return defaultSubmittedFrom
	}
	return sub.SubmittedFrom
}

func contactFields(fields []Field) []notify.ContactField {
	out := make([]notify.ContactField, len(fields))
	for i, field := range fields {
		out[i] = notify.ContactField{Key: field.Key, Label: field.DisplayLabel(), Value: field.Value}
	}
	return out
}
