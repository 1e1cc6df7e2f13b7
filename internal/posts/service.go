package posts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
	"github.com/goliatone/go-sitecms/richtext"
)

var (
	ErrTitleRequired  = errors.New("posts: title is required")
	ErrSlugInvalid    = errors.New("posts: slug contains invalid characters")
	ErrSlugExists     = errors.New("posts: slug already exists")
	ErrStatusInvalid  = errors.New("posts: status is invalid")
	ErrPostIDRequired = errors.New("posts: post id required")
)

// Service manages blog posts.
type Service interface {
	Create(ctx context.Context, req CreatePostRequest) (*Post, error)
	Get(ctx context.Context, id uuid.UUID) (*Post, error)
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	List(ctx context.Context) ([]*Post, error)
	ListRecent(ctx context.Context, limit int) ([]*Post, error)
	Update(ctx context.Context, req UpdatePostRequest) (*Post, error)
	Publish(ctx context.Context, id uuid.UUID) (*Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UniqueSlug(ctx context.Context, title string) (string, error)
}

// NotFoundError represents missing records from repository lookups.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// IDGenerator produces identifiers for new posts.
type IDGenerator func() uuid.UUID

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSchemaValidation toggles JSON Schema checks on post bodies. The mark
// resolution check always runs.
func WithSchemaValidation(enabled bool) ServiceOption {
	return func(s *service) {
		s.schemaValidation = enabled
	}
}

type service struct {
	posts            PostRepository
	now              func() time.Time
	id               IDGenerator
	logger           interfaces.Logger
	schemaValidation bool
}

// NewService constructs a post service.
func NewService(posts PostRepository, opts ...ServiceOption) Service {
	s := &service{
		posts:            posts,
		now:              time.Now,
		id:               uuid.New,
		logger:           logging.NoOp(),
		schemaValidation: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, req CreatePostRequest) (*Post, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	status, err := chooseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	if err := s.validateBody(req.Body); err != nil {
		return nil, err
	}

	slug, err := s.resolveSlug(ctx, title, req.Slug)
	if err != nil {
		return nil, err
	}

	now := s.now()
	record := &Post{
		ID:              s.id(),
		Title:           title,
		Slug:            slug,
		Excerpt:         strings.TrimSpace(req.Excerpt),
		Body:            normalizeBody(req.Body),
		Status:          status,
		Source:          chooseSource(req.Source),
		PublishedAt:     req.PublishedAt,
		MetaTitle:       strings.TrimSpace(req.SEO.MetaTitle),
		MetaDescription: strings.TrimSpace(req.SEO.MetaDescription),
		NoIndex:         req.SEO.NoIndex,
		Checksum:        req.Checksum,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	applyImage(record, req.Image)
	if status == StatusPublished && record.PublishedAt == nil {
		record.PublishedAt = &now
	}

	created, err := s.posts.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Info("posts.create.completed", "post_id", created.ID, "slug", created.Slug, "status", created.Status, "source", created.Source)
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Post, error) {
	if id == uuid.Nil {
		return nil, ErrPostIDRequired
	}
	return s.posts.GetByID(ctx, id)
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	return s.posts.GetBySlug(ctx, strings.TrimSpace(slug))
}

func (s *service) List(ctx context.Context) ([]*Post, error) {
	return s.posts.List(ctx)
}

func (s *service) ListRecent(ctx context.Context, limit int) ([]*Post, error) {
	return s.posts.ListRecent(ctx, limit)
}

func (s *service) Update(ctx context.Context, req UpdatePostRequest) (*Post, error) {
	if req.ID == uuid.Nil {
		return nil, ErrPostIDRequired
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if err := s.validateBody(req.Body); err != nil {
		return nil, err
	}

	existing, err := s.posts.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	existing.Title = title
	existing.Excerpt = strings.TrimSpace(req.Excerpt)
	existing.Body = normalizeBody(req.Body)
	existing.MetaTitle = strings.TrimSpace(req.SEO.MetaTitle)
	existing.MetaDescription = strings.TrimSpace(req.SEO.MetaDescription)
	existing.NoIndex = req.SEO.NoIndex
	existing.Checksum = req.Checksum
	applyImage(existing, req.Image)
	existing.UpdatedAt = s.now()

	updated, err := s.posts.Update(ctx, existing)
	if err != nil {
		return nil, err
	}
	s.logger.Info("posts.update.completed", "post_id", updated.ID, "slug", updated.Slug)
	return updated, nil
}

// Publish marks a post as published. Publishing an already published post
// keeps its original timestamp.
func (s *service) Publish(ctx context.Context, id uuid.UUID) (*Post, error) {
	if id == uuid.Nil {
		return nil, ErrPostIDRequired
	}
	existing, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Published() {
		return existing, nil
	}
	now := s.now()
	existing.Status = StatusPublished
	if existing.PublishedAt == nil {
		existing.PublishedAt = &now
	}
	existing.UpdatedAt = now

	updated, err := s.posts.Update(ctx, existing)
	if err != nil {
		return nil, err
	}
	s.logger.Info("posts.publish.completed", "post_id", updated.ID, "slug", updated.Slug)
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrPostIDRequired
	}
	return s.posts.Delete(ctx, id)
}

// UniqueSlug derives a slug from title and appends -1, -2... until no
// stored post uses it.
func (s *service) UniqueSlug(ctx context.Context, title string) (string, error) {
	base := Slugify(title)
	candidate := base
	for counter := 1; ; counter++ {
		taken, err := s.slugTaken(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}

func (s *service) resolveSlug(ctx context.Context, title, requested string) (string, error) {
	requested = strings.TrimSpace(requested)
	if requested == "" {
		return s.UniqueSlug(ctx, title)
	}
	normalized, err := NormalizeSlug(requested)
	if err != nil || normalized == "" || !IsValidSlug(normalized) {
		return "", ErrSlugInvalid
	}
	taken, err := s.slugTaken(ctx, normalized)
	if err != nil {
		return "", err
	}
	if taken {
		return "", ErrSlugExists
	}
	return normalized, nil
}

func (s *service) slugTaken(ctx context.Context, slug string) (bool, error) {
	existing, err := s.posts.GetBySlug(ctx, slug)
	if err == nil && existing != nil {
		return true, nil
	}
	var notFound *NotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return false, err
	}
	return false, nil
}

func (s *service) validateBody(body richtext.Document) error {
	if err := richtext.Validate(body); err != nil {
		return err
	}
	if s.schemaValidation {
		return richtext.ValidateSchema(normalizeBody(body))
	}
	return nil
}

func chooseStatus(status string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "", StatusDraft:
		return StatusDraft, nil
	case StatusPublished:
		return StatusPublished, nil
	default:
		return "", ErrStatusInvalid
	}
}

func chooseSource(source string) string {
	switch strings.ToLower(strings.TrimSpace(source)) {
	case SourceAI:
		return SourceAI
	case SourceMarkdown:
		return SourceMarkdown
	default:
		return SourceManual
	}
}

func normalizeBody(body richtext.Document) richtext.Document {
	if body == nil {
		return richtext.Document{}
	}
	return body
}

func applyImage(record *Post, image *Image) {
	if image == nil {
		return
	}
	record.ImageURL = strings.TrimSpace(image.URL)
	record.ImageAlt = strings.TrimSpace(image.AltText)
	record.ImagePrompt = strings.TrimSpace(image.RevisedPrompt)
}
