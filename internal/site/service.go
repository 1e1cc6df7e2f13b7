package site

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/goliatone/go-sitecms/internal/identity"
	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/internal/posts"
	"github.com/goliatone/go-sitecms/internal/sections"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

var (
	ErrOfferingTitleRequired = errors.New("site: offering title is required")
	ErrOfferingSlugInvalid   = errors.New("site: offering slug is invalid")
)

// Service reads and writes the site-wide settings documents.
type Service interface {
	Profile(ctx context.Context) (*Profile, error)
	SaveProfile(ctx context.Context, profile Profile) (*Profile, error)
	BrandBrief(ctx context.Context) (*BrandBrief, error)
	SaveBrandBrief(ctx context.Context, brief BrandBrief) (*BrandBrief, error)
	Appearance(ctx context.Context) (*Appearance, error)
	SaveAppearance(ctx context.Context, appearance Appearance) (*Appearance, error)
	Offerings(ctx context.Context) ([]*Offering, error)
	SaveOffering(ctx context.Context, req SaveOfferingRequest) (*Offering, error)
	DeleteOffering(ctx context.Context, slug string) error
}

// SaveOfferingRequest creates or replaces an offering identified by slug.
type SaveOfferingRequest struct {
	Title    string
	Slug     string
	Excerpt  string
	Position int
}

// ServiceOption configures the site service.
type ServiceOption func(*service)

func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	settings  SettingsRepository
	offerings OfferingRepository
	now       func() time.Time
	logger    interfaces.Logger
}

// NewService wires the settings and offering repositories.
func NewService(settings SettingsRepository, offerings OfferingRepository, opts ...ServiceOption) Service {
	s := &service{
		settings:  settings,
		offerings: offerings,
		now:       time.Now,
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Profile(ctx context.Context) (*Profile, error) {
	profile := &Profile{}
	if err := s.load(ctx, KeyProfile, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *service) SaveProfile(ctx context.Context, profile Profile) (*Profile, error) {
	profile.CompanyName = strings.TrimSpace(profile.CompanyName)
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if err := s.store(ctx, KeyProfile, profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *service) BrandBrief(ctx context.Context) (*BrandBrief, error) {
	brief := &BrandBrief{}
	if err := s.load(ctx, KeyBrandBrief, brief); err != nil {
		return nil, err
	}
	return brief, nil
}

func (s *service) SaveBrandBrief(ctx context.Context, brief BrandBrief) (*BrandBrief, error) {
	if err := s.store(ctx, KeyBrandBrief, brief); err != nil {
		return nil, err
	}
	return &brief, nil
}

func (s *service) Appearance(ctx context.Context) (*Appearance, error) {
	appearance := &Appearance{}
	if err := s.load(ctx, KeyAppearance, appearance); err != nil {
		return nil, err
	}
	return appearance, nil
}

func (s *service) SaveAppearance(ctx context.Context, appearance Appearance) (*Appearance, error) {
	if err := s.store(ctx, KeyAppearance, appearance); err != nil {
		return nil, err
	}
	return &appearance, nil
}

func (s *service) Offerings(ctx context.Context) ([]*Offering, error) {
	return s.offerings.List(ctx)
}

func (s *service) SaveOffering(ctx context.Context, req SaveOfferingRequest) (*Offering, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrOfferingTitleRequired
	}
	slug := posts.Slugify(title)
	if raw := strings.TrimSpace(req.Slug); raw != "" {
		normalized, err := posts.NormalizeSlug(raw)
		if err != nil || !posts.IsValidSlug(normalized) {
			return nil, ErrOfferingSlugInvalid
		}
		slug = normalized
	}
	record := &Offering{
		ID:        identity.ServiceUUID(slug),
		Title:     title,
		Slug:      slug,
		Excerpt:   strings.TrimSpace(req.Excerpt),
		Position:  req.Position,
		UpdatedAt: s.now(),
	}
	saved, err := s.offerings.Put(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("site.offering.saved", "slug", slug)
	return saved, nil
}

func (s *service) DeleteOffering(ctx context.Context, slug string) error {
	normalized, err := posts.NormalizeSlug(slug)
	if err != nil {
		return ErrOfferingSlugInvalid
	}
	return s.offerings.Delete(ctx, identity.ServiceUUID(normalized))
}

// load decodes the document stored under key into target. A missing
// document leaves target at its zero value.
func (s *service) load(ctx context.Context, key string, target any) error {
	record, err := s.settings.Get(ctx, key)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	payload, err := json.Marshal(record.Data)
	if err != nil {
		return fmt.Errorf("site: encode %s: %w", key, err)
	}
	if err := json.Unmarshal(payload, target); err != nil {
		return fmt.Errorf("site: decode %s: %w", key, err)
	}
	return nil
}

func (s *service) store(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("site: encode %s: %w", key, err)
	}
	data := map[string]any{}
	if err := json.Unmarshal(payload, &data); err != nil {
		return fmt.Errorf("site: decode %s: %w", key, err)
	}
	record := &SettingsRecord{
		ID:        identity.SettingsUUID(key),
		Key:       key,
		Data:      data,
		UpdatedAt: s.now(),
	}
	if _, err := s.settings.Put(ctx, record); err != nil {
		return err
	}
	s.logger.Debug("site.settings.saved", "key", key)
	return nil
}

// Validate checks the profile fields that drive automation.
func (p Profile) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ContactEmail, is.EmailFormat),
		validation.Field(&p.Automation),
	)
}

func (a AutomationSettings) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.WordCount, validation.In(WordCountShort, WordCountMedium, WordCountLong)),
		validation.Field(&a.NotificationEmail, is.EmailFormat),
	)
}

// WantsImages reports whether automated posts should get a generated image.
// Images are on unless explicitly disabled.
func (a AutomationSettings) WantsImages() bool {
	return a.GenerateImages == nil || *a.GenerateImages
}

// TargetWordCount returns the configured preset, medium when unset.
func (a AutomationSettings) TargetWordCount() string {
	if a.WordCount == "" {
		return WordCountMedium
	}
	return a.WordCount
}

// ImagesEnabled reports whether the brief allows AI image generation.
func (b BrandBrief) ImagesEnabled() bool {
	return b.AIImageGeneration == nil || *b.AIImageGeneration
}

// ResolveSection resolves section settings against the stored palette.
func (a Appearance) ResolveSection(settings sections.Settings) sections.Resolved {
	return sections.Resolve(settings, a.Palette)
}
