// Package notecache fronts the backend's note collections with a TTL
// cache so the TUI and repeat commands do not refetch unchanged lists.
// Mutations invalidate the affected keys; readers always get a consistent
// post-mutation view on their next call.
package notecache

import (
	"context"
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/mnemonic-notes/mnemo/internal/api"
)

const (
	DefaultTTL    = 5 * time.Minute
	purgeInterval = 10 * time.Minute

	listPrefix = "notes:"
	notePrefix = "note:"
	statsKey   = "stats"
)

// Backend is the slice of the API client the store wraps.
type Backend interface {
	CreateNote(ctx context.Context, payload api.NoteCreate) (*api.Note, error)
	GetNote(ctx context.Context, id string) (*api.Note, error)
	ListNotes(ctx context.Context, params api.ListParams) (*api.NoteListResponse, error)
	UpdateNote(ctx context.Context, id string, payload api.NoteUpdate) (*api.Note, error)
	DeleteNote(ctx context.Context, id string) (*api.NoteDeleteResponse, error)
	DeleteAllNotes(ctx context.Context) (*api.NoteDeleteAllResponse, error)
	NoteStats(ctx context.Context) (*api.NoteStatsResponse, error)
}

type Store struct {
	backend Backend
	cache   *gocache.Cache
	logger  *zap.Logger
}

func NewStore(backend Backend, logger *zap.Logger) *Store {
	return &Store{
		backend: backend,
		cache:   gocache.New(DefaultTTL, purgeInterval),
		logger:  logger,
	}
}

func listKey(p api.ListParams) string {
	return fmt.Sprintf("%s%d:%d:%s:%s:%s:%s",
		listPrefix, p.Page, p.PageSize, p.Search,
		strings.Join(p.Tags, ","), p.SortBy, p.SortOrder,
	)
}

func (s *Store) List(ctx context.Context, params api.ListParams) (*api.NoteListResponse, error) {
	key := listKey(params)
	if hit, ok := s.cache.Get(key); ok {
		return hit.(*api.NoteListResponse), nil
	}

	list, err := s.backend.ListNotes(ctx, params)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, list, gocache.DefaultExpiration)
	return list, nil
}

func (s *Store) Note(ctx context.Context, id string) (*api.Note, error) {
	key := notePrefix + id
	if hit, ok := s.cache.Get(key); ok {
		return hit.(*api.Note), nil
	}

	note, err := s.backend.GetNote(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, note, gocache.DefaultExpiration)
	return note, nil
}

func (s *Store) Stats(ctx context.Context) (*api.NoteStatsResponse, error) {
	if hit, ok := s.cache.Get(statsKey); ok {
		return hit.(*api.NoteStatsResponse), nil
	}

	stats, err := s.backend.NoteStats(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(statsKey, stats, gocache.DefaultExpiration)
	return stats, nil
}

func (s *Store) Create(ctx context.Context, payload api.NoteCreate) (*api.Note, error) {
	note, err := s.backend.CreateNote(ctx, payload)
	if err != nil {
		return nil, err
	}
	s.invalidateLists()
	s.cache.Delete(statsKey)
	return note, nil
}

func (s *Store) Update(ctx context.Context, id string, payload api.NoteUpdate) (*api.Note, error) {
	note, err := s.backend.UpdateNote(ctx, id, payload)
	if err != nil {
		return nil, err
	}
	s.invalidateLists()
	s.cache.Delete(notePrefix + id)
	return note, nil
}

func (s *Store) Delete(ctx context.Context, id string) (*api.NoteDeleteResponse, error) {
	out, err := s.backend.DeleteNote(ctx, id)
	if err != nil {
		return nil, err
	}
	s.invalidateLists()
	s.cache.Delete(notePrefix + id)
	s.cache.Delete(statsKey)
	return out, nil
}

func (s *Store) DeleteAll(ctx context.Context) (*api.NoteDeleteAllResponse, error) {
	out, err := s.backend.DeleteAllNotes(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Flush()
	return out, nil
}

// Invalidate drops everything, for an explicit user refresh.
func (s *Store) Invalidate() {
	s.cache.Flush()
}

func (s *Store) invalidateLists() {
	for key := range s.cache.Items() {
		if strings.HasPrefix(key, listPrefix) {
			s.cache.Delete(key)
		}
	}
}
