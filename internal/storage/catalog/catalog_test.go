package storage_catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/krishkpatil/getflix/internal/model"
	upstream_mocks "github.com/krishkpatil/getflix/internal/storage/catalog/mocks/upstream"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type CatalogStorageUnitSuite struct {
	suite.Suite
}

type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	ttls    map[string]time.Duration
	failGet bool
	failSet bool
}

func newMemCache() *memCache {
	return &memCache{entries: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *memCache) Get(key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet {
		return nil, false, errors.New("redis down")
	}
	v, ok := c.entries[key]
	return v, ok, nil
}

func (c *memCache) Set(key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failSet {
		return errors.New("redis down")
	}
	c.entries[key] = value
	c.ttls[key] = ttl
	return nil
}

type resources struct {
	storage  *Storage
	upstream *upstream_mocks.Upstream
	cache    *memCache
	ctx      context.Context
}

func initResources(t provider.T) *resources {
	upstream := upstream_mocks.NewUpstream(t)
	cache := newMemCache()

	return &resources{
		storage:  New(upstream, cache),
		upstream: upstream,
		cache:    cache,
		ctx:      context.Background(),
	}
}

func validPage() model.Page[model.Movie] {
	return model.Page[model.Movie]{Page: 1, Results: []model.Movie{{ID: 1, Title: "Alien"}}, TotalPages: 1, TotalResults: 1}
}

func (s *CatalogStorageUnitSuite) TestDiscoverServedFromCache(t provider.T) {
	t.Parallel()
	r := initResources(t)
	q := model.DiscoverQuery{GenreIDs: []int{27}, Page: 1, YearRange: &model.YearRange{From: 1970, To: 1980}}

	r.upstream.On("Discover", r.ctx, q).Return(validPage(), nil).Once()

	first, err := r.storage.Discover(r.ctx, q)
	assert.NoError(t, err)
	second, err := r.storage.Discover(r.ctx, q)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, DefaultPageTTL, r.cache.ttls[discoverKey(q)])
	r.upstream.AssertExpectations(t)
}

func (s *CatalogStorageUnitSuite) TestGenresUseLongTTL(t provider.T) {
	t.Parallel()
	r := initResources(t)
	genres := []model.Genre{{ID: 27, Name: "Horror"}}

	r.upstream.On("Genres", r.ctx).Return(genres, nil).Once()

	got, err := r.storage.Genres(r.ctx)
	assert.NoError(t, err)
	assert.Equal(t, genres, got)
	assert.Equal(t, DefaultGenresTTL, r.cache.ttls["genres"])
}

func (s *CatalogStorageUnitSuite) TestCacheFailureFallsThrough(t provider.T) {
	t.Parallel()
	r := initResources(t)
	r.cache.failGet = true
	r.cache.failSet = true

	r.upstream.On("Popular", r.ctx, 2).Return(validPage(), nil).Twice()

	for i := 0; i < 2; i++ {
		page, err := r.storage.Popular(r.ctx, 2)
		assert.NoError(t, err)
		assert.Equal(t, validPage(), page)
	}
	r.upstream.AssertExpectations(t)
}

func (s *CatalogStorageUnitSuite) TestUpstreamErrorIsNotCached(t provider.T) {
	t.Parallel()
	r := initResources(t)
	upErr := errors.New("status 503")

	r.upstream.On("Search", r.ctx, "alien", 1).Return(model.Page[model.Movie]{}, upErr).Once()
	r.upstream.On("Search", r.ctx, "alien", 1).Return(validPage(), nil).Once()

	_, err := r.storage.Search(r.ctx, "alien", 1)
	assert.ErrorIs(t, err, upErr)

	page, err := r.storage.Search(r.ctx, "alien", 1)
	assert.NoError(t, err)
	assert.Equal(t, validPage(), page)
}

func (s *CatalogStorageUnitSuite) TestNilCachePassesThrough(t provider.T) {
	t.Parallel()
	upstream := upstream_mocks.NewUpstream(t)
	storage := New(upstream, nil)
	ctx := context.Background()

	upstream.On("Details", ctx, model.MovieID(348)).Return(model.MovieDetails{Movie: model.Movie{ID: 348}}, nil).Twice()

	for i := 0; i < 2; i++ {
		d, err := storage.Details(ctx, 348)
		assert.NoError(t, err)
		assert.Equal(t, model.MovieID(348), d.ID)
	}
}

func (s *CatalogStorageUnitSuite) TestDiscoverKeyDistinguishesFilters(t provider.T) {
	t.Parallel()

	a := discoverKey(model.DiscoverQuery{Page: 1, GenreIDs: []int{1, 2}})
	b := discoverKey(model.DiscoverQuery{Page: 1, GenreIDs: []int{12}})
	c := discoverKey(model.DiscoverQuery{Page: 1, GenreIDs: []int{1, 2}, Language: "hi"})

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestCatalogStorageUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(CatalogStorageUnitSuite))
}
