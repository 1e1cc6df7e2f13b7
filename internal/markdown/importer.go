package markdown

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/internal/posts"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

var (
	ErrPostServiceRequired = errors.New("markdown importer: post service is required")
	ErrNilDraft            = errors.New("markdown importer: nil draft")
)

// ImporterConfig encapsulates dependencies required to persist drafts.
type ImporterConfig struct {
	Posts     posts.Service
	Converter interfaces.RichTextConverter
	Logger    interfaces.Logger
}

// ImportOptions tunes a draft import run.
type ImportOptions struct {
	// DryRun reports what would change without writing.
	DryRun bool
	// Publish forces every imported post to published regardless of
	// frontmatter.
	Publish bool
}

// ImportResult summarises an import run.
type ImportResult struct {
	Created []uuid.UUID
	Updated []uuid.UUID
	Skipped []uuid.UUID
	// WouldCreate counts new drafts a dry run left unwritten.
	WouldCreate int
	Errors      []error
}

// Importer converts Markdown drafts into posts. Drafts are matched to
// existing posts by slug and skipped when their checksum is unchanged.
type Importer struct {
	posts     posts.Service
	converter interfaces.RichTextConverter
	logger    interfaces.Logger
}

// NewImporter builds an Importer from the supplied configuration.
func NewImporter(cfg ImporterConfig) *Importer {
	converter := cfg.Converter
	if converter == nil {
		converter = defaultConverter
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Importer{
		posts:     cfg.Posts,
		converter: converter,
		logger:    logger,
	}
}

// ImportDrafts imports every draft, collecting per-draft failures. The first
// failure is returned alongside the full result.
func (i *Importer) ImportDrafts(ctx context.Context, drafts []*interfaces.Draft, opts ImportOptions) (*ImportResult, error) {
	if i.posts == nil {
		return nil, ErrPostServiceRequired
	}

	acc := newImportAccumulator()
	var totalBytes uint64
	for _, draft := range drafts {
		if err := ctx.Err(); err != nil {
			acc.addError(err)
			break
		}
		if draft != nil {
			totalBytes += uint64(len(draft.Body))
		}
		if err := i.importDraft(ctx, draft, opts, acc); err != nil {
			acc.addError(err)
		}
	}

	result := acc.result()
	i.logger.Info("markdown.import.completed",
		"drafts", len(drafts),
		"created", len(result.Created),
		"updated", len(result.Updated),
		"skipped", len(result.Skipped),
		"errors", len(result.Errors),
		"size", humanize.Bytes(totalBytes),
		"dry_run", opts.DryRun,
	)
	return result, firstError(result.Errors)
}

func (i *Importer) importDraft(ctx context.Context, draft *interfaces.Draft, opts ImportOptions, acc *importAccumulator) error {
	if draft == nil {
		return ErrNilDraft
	}

	title, body := draftTitle(draft)
	slug := strings.TrimSpace(draft.FrontMatter.Slug)
	if slug == "" {
		slug = posts.Slugify(title)
	}
	checksum := hex.EncodeToString(draft.Checksum)
	document := i.converter.Convert(body)
	seo := posts.SEO{
		MetaTitle:       draft.FrontMatter.MetaTitle,
		MetaDescription: draft.FrontMatter.Description,
		NoIndex:         draft.FrontMatter.NoIndex,
	}

	existing, err := i.posts.GetBySlug(ctx, slug)
	if err != nil {
		var notFound *posts.NotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("markdown importer: lookup %s: %w", slug, err)
		}
		existing = nil
	}

	if existing == nil {
		if opts.DryRun {
			acc.skip(uuid.Nil)
			return nil
		}
		req := posts.CreatePostRequest{
			Title:    title,
			Slug:     slug,
			Excerpt:  draft.FrontMatter.Excerpt,
			Body:     document,
			Status:   draftStatus(draft.FrontMatter, opts),
			Source:   posts.SourceMarkdown,
			SEO:      seo,
			Checksum: checksum,
		}
		if !draft.FrontMatter.Date.IsZero() {
			published := draft.FrontMatter.Date
			req.PublishedAt = &published
		}
		record, createErr := i.posts.Create(ctx, req)
		if createErr != nil {
			return fmt.Errorf("markdown importer: create %s: %w", draft.FilePath, createErr)
		}
		logging.WithDraftContext(i.logger, draft.FilePath, record.Slug, "create").Debug("markdown.import.draft", "blocks", len(document))
		acc.created(record.ID)
		return nil
	}

	if existing.Checksum == checksum {
		acc.skip(existing.ID)
		return nil
	}
	if opts.DryRun {
		acc.skip(existing.ID)
		return nil
	}

	updated, err := i.posts.Update(ctx, posts.UpdatePostRequest{
		ID:       existing.ID,
		Title:    title,
		Excerpt:  draft.FrontMatter.Excerpt,
		Body:     document,
		SEO:      seo,
		Checksum: checksum,
	})
	if err != nil {
		return fmt.Errorf("markdown importer: update %s: %w", draft.FilePath, err)
	}
	if draftStatus(draft.FrontMatter, opts) == posts.StatusPublished && !updated.Published() {
		if _, err := i.posts.Publish(ctx, updated.ID); err != nil {
			return fmt.Errorf("markdown importer: publish %s: %w", draft.FilePath, err)
		}
	}
	logging.WithDraftContext(i.logger, draft.FilePath, updated.Slug, "update").Debug("markdown.import.draft", "blocks", len(document))
	acc.updated(updated.ID)
	return nil
}

// draftTitle prefers the frontmatter title. Otherwise the first heading is
// lifted out of the body, falling back to the file name.
func draftTitle(draft *interfaces.Draft) (string, string) {
	body := string(draft.Body)
	if title := strings.TrimSpace(draft.FrontMatter.Title); title != "" {
		return title, body
	}
	if title, rest, ok := ExtractTitle(body); ok {
		return title, rest
	}
	return fallbackTitle(draft.FilePath), body
}

func fallbackTitle(filePath string) string {
	name := strings.TrimSuffix(path.Base(filePath), path.Ext(filePath))
	name = strings.TrimSpace(strings.NewReplacer("-", " ", "_", " ").Replace(name))
	if name == "" || name == "." {
		return "Untitled"
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func draftStatus(meta interfaces.FrontMatter, opts ImportOptions) string {
	if opts.Publish {
		return posts.StatusPublished
	}
	if meta.Draft {
		return posts.StatusDraft
	}
	if meta.Status == posts.StatusPublished {
		return posts.StatusPublished
	}
	return posts.StatusDraft
}

type importAccumulator struct {
	createdIDs []uuid.UUID
	updatedIDs []uuid.UUID
	skippedIDs []uuid.UUID
	skippedNew int
	errors     []error
}

func newImportAccumulator() *importAccumulator {
	return &importAccumulator{
		createdIDs: []uuid.UUID{},
		updatedIDs: []uuid.UUID{},
		skippedIDs: []uuid.UUID{},
		errors:     []error{},
	}
}

func (a *importAccumulator) created(id uuid.UUID) {
	if id != uuid.Nil {
		a.createdIDs = append(a.createdIDs, id)
	}
}

func (a *importAccumulator) updated(id uuid.UUID) {
	if id != uuid.Nil {
		a.updatedIDs = append(a.updatedIDs, id)
	}
}

// skip records a skipped draft. Dry runs over new drafts have no id yet.
func (a *importAccumulator) skip(id uuid.UUID) {
	if id == uuid.Nil {
		a.skippedNew++
		return
	}
	a.skippedIDs = append(a.skippedIDs, id)
}

func (a *importAccumulator) addError(err error) {
	if err != nil {
		a.errors = append(a.errors, err)
	}
}

func (a *importAccumulator) result() *ImportResult {
	return &ImportResult{
		Created:     a.createdIDs,
		Updated:     a.updatedIDs,
		Skipped:     a.skippedIDs,
		WouldCreate: a.skippedNew,
		Errors:      a.errors,
	}
}

func firstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
