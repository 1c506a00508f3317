package storage_catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/krishkpatil/getflix/internal/metrics"
	"github.com/krishkpatil/getflix/internal/model"
)

//go:generate mockery --name=Upstream --output=./mocks/upstream --filename=upstream.go
type Upstream interface {
	Discover(ctx context.Context, q model.DiscoverQuery) (model.Page[model.Movie], error)
	Popular(ctx context.Context, page int) (model.Page[model.Movie], error)
	Search(ctx context.Context, query string, page int) (model.Page[model.Movie], error)
	Genres(ctx context.Context) ([]model.Genre, error)
	Details(ctx context.Context, id model.MovieID) (model.MovieDetails, error)
}

type Cache interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte, ttl time.Duration) error
}

const (
	DefaultPageTTL   = time.Hour
	DefaultGenresTTL = 24 * time.Hour
)

// Storage serves catalog reads through a cache when one is configured.
// Cache failures are logged and never fail a read.
type Storage struct {
	upstream  Upstream
	cache     Cache
	pageTTL   time.Duration
	genresTTL time.Duration
	logger    *slog.Logger
}

type Option func(*Storage)

func WithTTL(page, genres time.Duration) Option {
	return func(s *Storage) {
		if page > 0 {
			s.pageTTL = page
		}
		if genres > 0 {
			s.genresTTL = genres
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Storage) {
		s.logger = l
	}
}

// New accepts a nil cache, which turns Storage into a pass-through.
func New(upstream Upstream, cache Cache, opts ...Option) *Storage {
	s := &Storage{
		upstream:  upstream,
		cache:     cache,
		pageTTL:   DefaultPageTTL,
		genresTTL: DefaultGenresTTL,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Storage) Discover(ctx context.Context, q model.DiscoverQuery) (model.Page[model.Movie], error) {
	return cached(s, "discover", discoverKey(q), s.pageTTL, func() (model.Page[model.Movie], error) {
		return s.upstream.Discover(ctx, q)
	})
}

func (s *Storage) Popular(ctx context.Context, page int) (model.Page[model.Movie], error) {
	return cached(s, "popular", "popular:"+strconv.Itoa(page), s.pageTTL, func() (model.Page[model.Movie], error) {
		return s.upstream.Popular(ctx, page)
	})
}

func (s *Storage) Search(ctx context.Context, query string, page int) (model.Page[model.Movie], error) {
	key := fmt.Sprintf("search:%d:%s", page, strings.ToLower(strings.TrimSpace(query)))
	return cached(s, "search", key, s.pageTTL, func() (model.Page[model.Movie], error) {
		return s.upstream.Search(ctx, query, page)
	})
}

func (s *Storage) Genres(ctx context.Context) ([]model.Genre, error) {
	return cached(s, "genres", "genres", s.genresTTL, func() ([]model.Genre, error) {
		return s.upstream.Genres(ctx)
	})
}

func (s *Storage) Details(ctx context.Context, id model.MovieID) (model.MovieDetails, error) {
	return cached(s, "details", "movie:"+strconv.FormatInt(id, 10), s.pageTTL, func() (model.MovieDetails, error) {
		return s.upstream.Details(ctx, id)
	})
}

func cached[T any](s *Storage, kind, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	if s.cache == nil {
		return load()
	}

	if raw, ok, err := s.cache.Get(key); err != nil {
		s.logger.Warn("catalog cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	} else if ok {
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			metrics.CatalogCacheHits.WithLabelValues(kind).Inc()
			return v, nil
		}
		s.logger.Warn("catalog cache entry is corrupt", slog.String("key", key))
	}
	metrics.CatalogCacheMisses.WithLabelValues(kind).Inc()

	v, err := load()
	if err != nil {
		return v, err
	}

	raw, err := json.Marshal(v)
	if err != nil {
		s.logger.Warn("catalog cache encode failed", slog.String("key", key), slog.String("error", err.Error()))
		return v, nil
	}
	if err := s.cache.Set(key, raw, ttl); err != nil {
		s.logger.Warn("catalog cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	return v, nil
}

func discoverKey(q model.DiscoverQuery) string {
	var b strings.Builder
	b.WriteString("discover:")
	b.WriteString(strconv.Itoa(q.Page))
	b.WriteString(":g=")
	for i, id := range q.GenreIDs {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(id))
	}
	if q.YearRange != nil {
		fmt.Fprintf(&b, ":y=%d-%d", q.YearRange.From, q.YearRange.To)
	}
	fmt.Fprintf(&b, ":r=%g:l=%s:rg=%s", q.MinRating, q.Language, q.Region)
	return b.String()
}
