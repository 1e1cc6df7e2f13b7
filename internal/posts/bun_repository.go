package posts

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	cache "github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const postNamespace = "post"

// BunPostRepository implements PostRepository with optional caching.
type BunPostRepository struct {
	repo         repository.Repository[*Post]
	cacheService cache.CacheService
	cachePrefix  string
}

var _ PostRepository = (*BunPostRepository)(nil)

// NewBunPostRepository creates a post repository without caching.
func NewBunPostRepository(db *bun.DB) *BunPostRepository {
	return NewBunPostRepositoryWithCache(db, nil, nil)
}

// NewBunPostRepositoryWithCache wraps the bun repository in a read-through
// cache when both cache collaborators are supplied.
func NewBunPostRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunPostRepository {
	base := NewPostRepository(db)
	r := &BunPostRepository{repo: base}
	if cacheService != nil && serializer != nil {
		r.repo = repositorycache.New(base, cacheService, serializer)
		r.cacheService = cacheService
		r.cachePrefix = postNamespace + cache.KeySeparator
	}
	return r
}

func (r *BunPostRepository) Create(ctx context.Context, record *Post) (*Post, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("post repository create: %w", err)
	}
	return created, r.invalidate(ctx)
}

func (r *BunPostRepository) GetByID(ctx context.Context, id uuid.UUID) (*Post, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return record, nil
}

func (r *BunPostRepository) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	record, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, slug)
	}
	return record, nil
}

func (r *BunPostRepository) List(ctx context.Context) ([]*Post, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("COALESCE(?TableAlias.published_at, ?TableAlias.created_at) DESC")
		}),
	)
	return records, err
}

func (r *BunPostRepository) ListRecent(ctx context.Context, limit int) ([]*Post, error) {
	if limit <= 0 {
		return nil, nil
	}
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("COALESCE(?TableAlias.published_at, ?TableAlias.created_at) DESC")
		}),
		repository.SelectPaginate(limit, 0),
	)
	return records, err
}

func (r *BunPostRepository) Update(ctx context.Context, record *Post) (*Post, error) {
	updated, err := r.repo.Update(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, record.ID.String())
	}
	return updated, r.invalidate(ctx)
}

func (r *BunPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, &Post{ID: id}); err != nil {
		return mapRepositoryError(err, id.String())
	}
	return r.invalidate(ctx)
}

// InvalidateCache drops every cached post lookup.
func (r *BunPostRepository) InvalidateCache(ctx context.Context) error {
	return r.invalidate(ctx)
}

func (r *BunPostRepository) invalidate(ctx context.Context) error {
	if r.cacheService == nil || r.cachePrefix == "" {
		return nil
	}
	return r.cacheService.DeleteByPrefix(ctx, r.cachePrefix)
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: "post", Key: key}
	}
	return fmt.Errorf("post repository error: %w", err)
}
