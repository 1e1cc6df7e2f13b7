package aicmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-sitecms/internal/ai"
	"github.com/goliatone/go-sitecms/internal/commands"
	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/internal/posts"
	"github.com/goliatone/go-sitecms/internal/site"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

const generateOperation = "ai.generate_blog_post"

// ErrDraftStoreRequired is returned when SaveDraft is requested without a
// post store.
var ErrDraftStoreRequired = errors.New("ai command: post store required to save drafts")

var _ command.Commander[GenerateBlogPostCommand] = (*GenerateBlogPostHandler)(nil)

// BlogPostGenerator writes posts.
type BlogPostGenerator interface {
	GenerateBlogPost(ctx context.Context, req ai.BlogPostRequest) (*ai.BlogPost, error)
}

// SiteReader supplies the business context passed to the writer.
type SiteReader interface {
	Profile(ctx context.Context) (*site.Profile, error)
	BrandBrief(ctx context.Context) (*site.BrandBrief, error)
}

// DraftStore persists generated posts.
type DraftStore interface {
	UniqueSlug(ctx context.Context, title string) (string, error)
	Create(ctx context.Context, req posts.CreatePostRequest) (*posts.Post, error)
}

// GenerateBlogPostResult carries the generated post and, when saved, the
// stored draft.
type GenerateBlogPostResult struct {
	Post  *ai.BlogPost
	Draft *posts.Post
}

// GenerateBlogPostHandler runs blog post generation through the shared
// command handler.
type GenerateBlogPostHandler struct {
	generator BlogPostGenerator
	site      SiteReader
	drafts    DraftStore
	logger    interfaces.Logger
	gates     FeatureGates
	opts      []commands.HandlerOption[GenerateBlogPostCommand]
}

// NewGenerateBlogPostHandler wires the handler. siteSvc and drafts may be
// nil; the post is then written without business context and cannot be
// saved.
func NewGenerateBlogPostHandler(generator BlogPostGenerator, siteSvc SiteReader, drafts DraftStore, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[GenerateBlogPostCommand]) *GenerateBlogPostHandler {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &GenerateBlogPostHandler{
		generator: generator,
		site:      siteSvc,
		drafts:    drafts,
		logger:    logger,
		gates:     gates,
		opts:      opts,
	}
}

// Execute satisfies command.Commander[GenerateBlogPostCommand].
func (h *GenerateBlogPostHandler) Execute(ctx context.Context, msg GenerateBlogPostCommand) error {
	_, err := h.Run(ctx, msg)
	return err
}

// Run executes the command and returns what was generated.
func (h *GenerateBlogPostHandler) Run(ctx context.Context, msg GenerateBlogPostCommand) (*GenerateBlogPostResult, error) {
	var result *GenerateBlogPostResult
	exec := func(ctx context.Context, msg GenerateBlogPostCommand) error {
		if !h.gates.aiEnabled() {
			return commands.ErrFeatureDisabled
		}
		if msg.SaveDraft && h.drafts == nil {
			return ErrDraftStoreRequired
		}

		req := msg.request()
		if h.site != nil {
			profile, err := h.site.Profile(ctx)
			if err != nil {
				return fmt.Errorf("load profile: %w", err)
			}
			brief, err := h.site.BrandBrief(ctx)
			if err != nil {
				return fmt.Errorf("load brand brief: %w", err)
			}
			req.Profile = profile
			req.Brief = brief
		}

		generated, err := h.generator.GenerateBlogPost(ctx, req)
		if err != nil {
			return err
		}
		result = &GenerateBlogPostResult{Post: generated}

		if msg.SaveDraft {
			slug, err := h.drafts.UniqueSlug(ctx, generated.Title)
			if err != nil {
				return fmt.Errorf("slug: %w", err)
			}
			draft, err := h.drafts.Create(ctx, generated.DraftRequest(slug))
			if err != nil {
				return fmt.Errorf("save draft: %w", err)
			}
			result.Draft = draft
			logging.WithFields(h.logger, map[string]any{
				"post_id": draft.ID,
				"slug":    draft.Slug,
			}).Info("ai.command.generate_blog_post.saved")
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[GenerateBlogPostCommand]{
		commands.WithLogger[GenerateBlogPostCommand](h.logger),
		commands.WithOperation[GenerateBlogPostCommand](generateOperation),
		commands.WithMessageFields(func(msg GenerateBlogPostCommand) map[string]any {
			return map[string]any{
				"topic":      strings.TrimSpace(msg.Topic),
				"save_draft": msg.SaveDraft,
			}
		}),
	}
	handlerOpts = append(handlerOpts, h.opts...)

	if err := commands.NewHandler(exec, handlerOpts...).Execute(ctx, msg); err != nil {
		return nil, err
	}
	return result, nil
}
