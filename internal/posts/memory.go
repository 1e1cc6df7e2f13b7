package posts

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-sitecms/richtext"
)

// MemoryPostRepository is an in-memory implementation for tests and
// database-less runs.
type MemoryPostRepository struct {
	mu        sync.RWMutex
	posts     map[uuid.UUID]*Post
	slugIndex map[string]uuid.UUID
}

var _ PostRepository = (*MemoryPostRepository)(nil)

func NewMemoryPostRepository() *MemoryPostRepository {
	return &MemoryPostRepository{
		posts:     make(map[uuid.UUID]*Post),
		slugIndex: make(map[string]uuid.UUID),
	}
}

func (m *MemoryPostRepository) Create(_ context.Context, record *Post) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.slugIndex[record.Slug]; exists {
		return nil, ErrSlugExists
	}
	copied := clonePost(record)
	m.posts[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID
	return clonePost(copied), nil
}

func (m *MemoryPostRepository) GetByID(_ context.Context, id uuid.UUID) (*Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.posts[id]
	if !ok {
		return nil, &NotFoundError{Resource: "post", Key: id.String()}
	}
	return clonePost(rec), nil
}

func (m *MemoryPostRepository) GetBySlug(_ context.Context, slug string) (*Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.slugIndex[slug]
	if !ok {
		return nil, &NotFoundError{Resource: "post", Key: slug}
	}
	return clonePost(m.posts[id]), nil
}

func (m *MemoryPostRepository) List(_ context.Context) ([]*Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sorted(), nil
}

func (m *MemoryPostRepository) ListRecent(_ context.Context, limit int) ([]*Post, error) {
	if limit <= 0 {
		return nil, nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := m.sorted()
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryPostRepository) Update(_ context.Context, record *Post) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.posts[record.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "post", Key: record.ID.String()}
	}
	if existing.Slug != record.Slug {
		delete(m.slugIndex, existing.Slug)
		m.slugIndex[record.Slug] = record.ID
	}
	copied := clonePost(record)
	m.posts[record.ID] = copied
	return clonePost(copied), nil
}

func (m *MemoryPostRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.posts[id]
	if !ok {
		return &NotFoundError{Resource: "post", Key: id.String()}
	}
	delete(m.slugIndex, existing.Slug)
	delete(m.posts, id)
	return nil
}

// sorted returns copies ordered newest first. Callers hold the read lock.
func (m *MemoryPostRepository) sorted() []*Post {
	out := make([]*Post, 0, len(m.posts))
	for _, rec := range m.posts {
		out = append(out, clonePost(rec))
	}
	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := out[i].SortTime(), out[j].SortTime()
		if ti.Equal(tj) {
			return out[i].Slug < out[j].Slug
		}
		return ti.After(tj)
	})
	return out
}

func clonePost(src *Post) *Post {
	if src == nil {
		return nil
	}
	copied := *src
	if src.Body != nil {
		copied.Body = make(richtext.Document, len(src.Body))
		copy(copied.Body, src.Body)
	}
	if src.PublishedAt != nil {
		ts := *src.PublishedAt
		copied.PublishedAt = &ts
	}
	return &copied
}
