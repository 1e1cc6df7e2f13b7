package site

import (
	"context"
	"fmt"
	"sort"
	"sync"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	cache "github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// SettingsRepository stores settings documents by key.
type SettingsRepository interface {
	Get(ctx context.Context, key string) (*SettingsRecord, error)
	Put(ctx context.Context, record *SettingsRecord) (*SettingsRecord, error)
}

// OfferingRepository stores offered services.
type OfferingRepository interface {
	List(ctx context.Context) ([]*Offering, error)
	Put(ctx context.Context, record *Offering) (*Offering, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NotFoundError represents missing settings or offerings.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// NewSettingsRecordRepository builds the bun repository for settings keyed by
// their key column.
func NewSettingsRecordRepository(db *bun.DB) repository.Repository[*SettingsRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*SettingsRecord]{
		NewRecord:          func() *SettingsRecord { return &SettingsRecord{} },
		GetID:              func(r *SettingsRecord) uuid.UUID { return r.ID },
		SetID:              func(r *SettingsRecord, id uuid.UUID) { r.ID = id },
		GetIdentifier:      func() string { return "key" },
		GetIdentifierValue: func(r *SettingsRecord) string { return r.Key },
	})
}

func NewOfferingRecordRepository(db *bun.DB) repository.Repository[*Offering] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Offering]{
		NewRecord:          func() *Offering { return &Offering{} },
		GetID:              func(r *Offering) uuid.UUID { return r.ID },
		SetID:              func(r *Offering, id uuid.UUID) { r.ID = id },
		GetIdentifier:      func() string { return "slug" },
		GetIdentifierValue: func(r *Offering) string { return r.Slug },
	})
}

const settingsNamespace = "site_settings"

// BunSettingsRepository persists settings with bun, optionally cached.
type BunSettingsRepository struct {
	repo         repository.Repository[*SettingsRecord]
	cacheService cache.CacheService
	cachePrefix  string
}

var _ SettingsRepository = (*BunSettingsRepository)(nil)

func NewBunSettingsRepository(db *bun.DB) *BunSettingsRepository {
	return NewBunSettingsRepositoryWithCache(db, nil, nil)
}

func NewBunSettingsRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunSettingsRepository {
	base := NewSettingsRecordRepository(db)
	r := &BunSettingsRepository{repo: base}
	if cacheService != nil && serializer != nil {
		r.repo = repositorycache.New(base, cacheService, serializer)
		r.cacheService = cacheService
		r.cachePrefix = settingsNamespace + cache.KeySeparator
	}
	return r
}

func (r *BunSettingsRepository) Get(ctx context.Context, key string) (*SettingsRecord, error) {
	record, err := r.repo.GetByIdentifier(ctx, key)
	if err != nil {
		return nil, mapRepositoryError(err, "settings", key)
	}
	return record, nil
}

// Put inserts the record or replaces the stored document with the same ID.
func (r *BunSettingsRepository) Put(ctx context.Context, record *SettingsRecord) (*SettingsRecord, error) {
	_, err := r.repo.GetByID(ctx, record.ID.String())
	var saved *SettingsRecord
	switch {
	case err == nil:
		saved, err = r.repo.Update(ctx, record)
	case goerrors.IsCategory(err, repository.CategoryDatabaseNotFound):
		saved, err = r.repo.Create(ctx, record)
	}
	if err != nil {
		return nil, mapRepositoryError(err, "settings", record.Key)
	}
	if r.cacheService != nil {
		if err := r.cacheService.DeleteByPrefix(ctx, r.cachePrefix); err != nil {
			return saved, err
		}
	}
	return saved, nil
}

// BunOfferingRepository persists offerings with bun.
type BunOfferingRepository struct {
	repo repository.Repository[*Offering]
}

var _ OfferingRepository = (*BunOfferingRepository)(nil)

func NewBunOfferingRepository(db *bun.DB) *BunOfferingRepository {
	return &BunOfferingRepository{repo: NewOfferingRecordRepository(db)}
}

func (r *BunOfferingRepository) List(ctx context.Context) ([]*Offering, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("position ASC", "title ASC")
		}),
	)
	return records, err
}

func (r *BunOfferingRepository) Put(ctx context.Context, record *Offering) (*Offering, error) {
	_, err := r.repo.GetByID(ctx, record.ID.String())
	var saved *Offering
	switch {
	case err == nil:
		saved, err = r.repo.Update(ctx, record)
	case goerrors.IsCategory(err, repository.CategoryDatabaseNotFound):
		saved, err = r.repo.Create(ctx, record)
	}
	if err != nil {
		return nil, mapRepositoryError(err, "offering", record.Slug)
	}
	return saved, nil
}

func (r *BunOfferingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, &Offering{ID: id}); err != nil {
		return mapRepositoryError(err, "offering", id.String())
	}
	return nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

// MemorySettingsRepository keeps settings in memory.
type MemorySettingsRepository struct {
	mu      sync.RWMutex
	records map[string]*SettingsRecord
}

var _ SettingsRepository = (*MemorySettingsRepository)(nil)

func NewMemorySettingsRepository() *MemorySettingsRepository {
	return &MemorySettingsRepository{records: map[string]*SettingsRecord{}}
}

func (m *MemorySettingsRepository) Get(_ context.Context, key string) (*SettingsRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.records[key]
	if !ok {
		return nil, &NotFoundError{Resource: "settings", Key: key}
	}
	copied := *record
	return &copied, nil
}

func (m *MemorySettingsRepository) Put(_ context.Context, record *SettingsRecord) (*SettingsRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *record
	m.records[record.Key] = &copied
	out := copied
	return &out, nil
}

// MemoryOfferingRepository keeps offerings in memory.
type MemoryOfferingRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*Offering
}

var _ OfferingRepository = (*MemoryOfferingRepository)(nil)

func NewMemoryOfferingRepository() *MemoryOfferingRepository {
	return &MemoryOfferingRepository{records: map[uuid.UUID]*Offering{}}
}

func (m *MemoryOfferingRepository) List(context.Context) ([]*Offering, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Offering, 0, len(m.records))
	for _, record := range m.records {
		copied := *record
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].Title < out[j].Title
	})
	return out, nil
}

func (m *MemoryOfferingRepository) Put(_ context.Context, record *Offering) (*Offering, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *record
	m.records[record.ID] = &copied
	out := copied
	return &out, nil
}

func (m *MemoryOfferingRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[id]; !ok {
		return &NotFoundError{Resource: "offering", Key: id.String()}
	}
	delete(m.records, id)
	return nil
}
