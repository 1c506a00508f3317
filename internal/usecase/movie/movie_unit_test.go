package usecase_movie

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/krishkpatil/getflix/internal/model"
	catalog_mocks "github.com/krishkpatil/getflix/internal/usecase/movie/mocks/movie/catalog"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type UsecaseMovieUnitSuite struct {
	suite.Suite
}

type resources struct {
	usecase *Usecase
	catalog *catalog_mocks.Catalog
	ctx     context.Context
}

func initResources(t provider.T) *resources {
	catalog := catalog_mocks.NewCatalog(t)
	usecase := New(catalog, model.DefaultImageBaseURL, model.PosterW500)
	usecase.now = func() time.Time { return time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC) }

	return &resources{
		usecase: usecase,
		catalog: catalog,
		ctx:     context.Background(),
	}
}

type MovieBuilder struct {
	m model.Movie
}

func NewMovieBuilder() *MovieBuilder {
	return &MovieBuilder{
		m: model.Movie{
			ID:          27205,
			Title:       "Inception",
			VoteAverage: 8.37,
			ReleaseDate: "2010-07-15",
		},
	}
}

func (b *MovieBuilder) WithPoster(path string) *MovieBuilder {
	b.m.PosterPath = &path
	return b
}

func (b *MovieBuilder) WithRating(r float64) *MovieBuilder {
	b.m.VoteAverage = r
	return b
}

func (b *MovieBuilder) Build() model.Movie {
	return b.m
}

func pageOf(movies ...model.Movie) model.Page[model.Movie] {
	return model.Page[model.Movie]{Page: 1, Results: movies, TotalPages: 1, TotalResults: len(movies)}
}

func (s *UsecaseMovieUnitSuite) TestPopularDecoratesCards(t provider.T) {
	t.Parallel()
	r := initResources(t)

	r.catalog.On("Popular", r.ctx, 1).Return(pageOf(
		NewMovieBuilder().WithPoster("/inception.jpg").Build(),
		NewMovieBuilder().WithRating(5.2).Build(),
	), nil).Once()

	page, err := r.usecase.Popular(r.ctx, 1)

	assert.NoError(t, err)
	assert.Len(t, page.Results, 2)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/inception.jpg", page.Results[0].PosterURL)
	assert.Equal(t, "8.4", page.Results[0].Rating)
	assert.Equal(t, model.RatingGreen, page.Results[0].RatingColor)
	assert.Equal(t, "2010", page.Results[0].Year)
	assert.Equal(t, model.PosterPlaceholder, page.Results[1].PosterURL)
	assert.Equal(t, model.BackdropPlaceholder, page.Results[1].BackdropURL)
	assert.Equal(t, model.RatingOrange, page.Results[1].RatingColor)
}

func (s *UsecaseMovieUnitSuite) TestSearch(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		query      string
		setupMocks func(r *resources)
	}{
		{
			name:  "Should search by query",
			query: "inception",
			setupMocks: func(r *resources) {
				r.catalog.On("Search", r.ctx, "inception", 1).Return(pageOf(NewMovieBuilder().Build()), nil).Once()
			},
		},
		{
			name:  "Should fall back to popular for blank query",
			query: "   ",
			setupMocks: func(r *resources) {
				r.catalog.On("Popular", r.ctx, 1).Return(pageOf(NewMovieBuilder().Build()), nil).Once()
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			page, err := r.usecase.Search(r.ctx, tc.query, 1)

			assert.NoError(t, err)
			assert.Len(t, page.Results, 1)
			r.catalog.AssertExpectations(t)
		})
	}
}

func (s *UsecaseMovieUnitSuite) TestDiscover(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		filter        DiscoverFilter
		setupMocks    func(r *resources)
		expectError   bool
		expectedError error
	}{
		{
			name:   "Should map enums to query",
			filter: DiscoverFilter{GenreIDs: []int{18}, Timeframe: model.TimeframeFiveYears, Region: model.RegionBollywood, MinRating: 7, Page: 3},
			setupMocks: func(r *resources) {
				r.catalog.On("Discover", r.ctx, mock.MatchedBy(func(q model.DiscoverQuery) bool {
					return q.Page == 3 && q.Language == "hi" && q.MinRating == 7 &&
						q.YearRange != nil && q.YearRange.From == 2020 && q.YearRange.To == 2025
				})).Return(pageOf(), nil).Once()
			},
		},
		{
			name:   "Should leave empty enums unconstrained",
			filter: DiscoverFilter{},
			setupMocks: func(r *resources) {
				r.catalog.On("Discover", r.ctx, model.DiscoverQuery{}).Return(pageOf(), nil).Once()
			},
		},
		{
			name:          "Should reject unknown region",
			filter:        DiscoverFilter{Region: "nollywood"},
			setupMocks:    func(r *resources) {},
			expectError:   true,
			expectedError: ErrInvalidInput,
		},
		{
			name:          "Should reject rating out of range",
			filter:        DiscoverFilter{MinRating: 11},
			setupMocks:    func(r *resources) {},
			expectError:   true,
			expectedError: ErrInvalidInput,
		},
		{
			name:   "Should wrap catalog failure",
			filter: DiscoverFilter{},
			setupMocks: func(r *resources) {
				r.catalog.On("Discover", r.ctx, model.DiscoverQuery{}).Return(model.Page[model.Movie]{}, errors.New("status 500")).Once()
			},
			expectError:   true,
			expectedError: ErrUpstream,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			_, err := r.usecase.Discover(r.ctx, tc.filter)

			if tc.expectError {
				assert.ErrorIs(t, err, tc.expectedError)
			} else {
				assert.NoError(t, err)
			}
			r.catalog.AssertExpectations(t)
		})
	}
}

func (s *UsecaseMovieUnitSuite) TestDetails(t provider.T) {
	t.Parallel()

	t.Run("Should decorate details", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		d := model.MovieDetails{Movie: NewMovieBuilder().WithPoster("/p.jpg").Build(), Runtime: 148}
		r.catalog.On("Details", r.ctx, model.MovieID(27205)).Return(d, nil).Once()

		card, err := r.usecase.Details(r.ctx, 27205)

		assert.NoError(t, err)
		assert.Equal(t, 148, card.Runtime)
		assert.Equal(t, "https://image.tmdb.org/t/p/original/p.jpg", card.PosterURL)
	})

	t.Run("Should map not found", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		r.catalog.On("Details", r.ctx, model.MovieID(1)).
			Return(model.MovieDetails{}, errors.Join(errors.New("status 404"), ErrResourceNotFound)).Once()

		_, err := r.usecase.Details(r.ctx, 1)

		assert.ErrorIs(t, err, ErrResourceNotFound)
		assert.NotErrorIs(t, err, ErrUpstream)
	})

	t.Run("Should reject invalid id", func(t provider.T) {
		t.Parallel()
		r := initResources(t)

		_, err := r.usecase.Details(r.ctx, 0)

		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func (s *UsecaseMovieUnitSuite) TestGenres(t provider.T) {
	t.Parallel()
	r := initResources(t)
	r.catalog.On("Genres", r.ctx).Return([]model.Genre{{ID: 16, Name: "Animation"}}, nil).Once()

	genres, err := r.usecase.Genres(r.ctx)

	assert.NoError(t, err)
	assert.Equal(t, "Animation", genres[0].Name)
}

func TestUsecaseMovieUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseMovieUnitSuite))
}
