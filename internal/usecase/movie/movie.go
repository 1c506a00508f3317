package usecase_movie

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/krishkpatil/getflix/internal/model"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrResourceNotFound = errors.New("no such resource")
	ErrUpstream         = errors.New("catalog unavailable")
)

//go:generate mockery --name=Catalog --output=./mocks/movie/catalog --filename=catalog.go
type Catalog interface {
	Discover(ctx context.Context, q model.DiscoverQuery) (model.Page[model.Movie], error)
	Popular(ctx context.Context, page int) (model.Page[model.Movie], error)
	Search(ctx context.Context, query string, page int) (model.Page[model.Movie], error)
	Genres(ctx context.Context) ([]model.Genre, error)
	Details(ctx context.Context, id model.MovieID) (model.MovieDetails, error)
}

// Card is a movie ready to be rendered by a client.
type Card struct {
	model.Movie

	PosterURL   string            `json:"poster_url"`
	BackdropURL string            `json:"backdrop_url"`
	Rating      string            `json:"rating"`
	RatingColor model.RatingColor `json:"rating_color"`
	Year        string            `json:"year,omitempty"`
}

type DetailsCard struct {
	model.MovieDetails

	PosterURL   string            `json:"poster_url"`
	BackdropURL string            `json:"backdrop_url"`
	Rating      string            `json:"rating"`
	RatingColor model.RatingColor `json:"rating_color"`
	Year        string            `json:"year,omitempty"`
}

// DiscoverFilter mirrors the session filters. Empty enums mean no constraint.
type DiscoverFilter struct {
	GenreIDs  []int
	Timeframe model.Timeframe
	Region    model.Region
	MinRating float64
	Page      int
}

type Usecase struct {
	catalog    Catalog
	imageBase  string
	posterSize model.PosterSize
	now        func() time.Time
}

func New(
	catalog Catalog,
	imageBase string,
	posterSize model.PosterSize,
) *Usecase {
	return &Usecase{
		catalog:    catalog,
		imageBase:  imageBase,
		posterSize: posterSize,
		now:        time.Now,
	}
}

// WithPosterSize returns a view of the usecase rendering cards at another poster size.
func (u *Usecase) WithPosterSize(size model.PosterSize) *Usecase {
	c := *u
	c.posterSize = size
	return &c
}

func (u *Usecase) Popular(ctx context.Context, page int) (model.Page[Card], error) {
	res, err := u.catalog.Popular(ctx, page)
	if err != nil {
		return model.Page[Card]{}, catalogErr(err)
	}
	return u.cards(res), nil
}

// Search falls back to popular movies for a blank query.
func (u *Usecase) Search(ctx context.Context, query string, page int) (model.Page[Card], error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return u.Popular(ctx, page)
	}

	res, err := u.catalog.Search(ctx, query, page)
	if err != nil {
		return model.Page[Card]{}, catalogErr(err)
	}
	return u.cards(res), nil
}

func (u *Usecase) Discover(ctx context.Context, f DiscoverFilter) (model.Page[Card], error) {
	if f.MinRating < 0 || f.MinRating > 10 {
		return model.Page[Card]{}, fmt.Errorf("%w: rating must be within [0, 10]", ErrInvalidInput)
	}
	q := model.DiscoverQuery{
		GenreIDs:  f.GenreIDs,
		Page:      f.Page,
		MinRating: f.MinRating,
	}

	if f.Timeframe != "" {
		yr, err := f.Timeframe.YearRange(u.now())
		if err != nil {
			return model.Page[Card]{}, errors.Join(ErrInvalidInput, err)
		}
		q.YearRange = &yr
	}
	if f.Region != "" {
		lang, err := f.Region.LanguageCode()
		if err != nil {
			return model.Page[Card]{}, errors.Join(ErrInvalidInput, err)
		}
		q.Language = lang
	}

	res, err := u.catalog.Discover(ctx, q)
	if err != nil {
		return model.Page[Card]{}, catalogErr(err)
	}
	return u.cards(res), nil
}

func (u *Usecase) Genres(ctx context.Context) ([]model.Genre, error) {
	genres, err := u.catalog.Genres(ctx)
	if err != nil {
		return nil, catalogErr(err)
	}
	return genres, nil
}

func (u *Usecase) Details(ctx context.Context, id model.MovieID) (DetailsCard, error) {
	if id <= 0 {
		return DetailsCard{}, fmt.Errorf("%w: movie id must be positive", ErrInvalidInput)
	}

	d, err := u.catalog.Details(ctx, id)
	if err != nil {
		return DetailsCard{}, catalogErr(err)
	}

	return DetailsCard{
		MovieDetails: d,
		PosterURL:    model.PosterURL(u.imageBase, d.PosterPath, model.PosterOriginal),
		BackdropURL:  model.BackdropURL(u.imageBase, d.BackdropPath, model.BackdropOriginal),
		Rating:       model.FormatRating(d.VoteAverage),
		RatingColor:  model.RatingColorOf(d.VoteAverage),
		Year:         releaseYear(d.ReleaseDate),
	}, nil
}

// Card decorates a single movie. Session decks are rendered with it too.
func (u *Usecase) Card(m model.Movie) Card {
	return Card{
		Movie:       m,
		PosterURL:   model.PosterURL(u.imageBase, m.PosterPath, u.posterSize),
		BackdropURL: model.BackdropURL(u.imageBase, m.BackdropPath, ""),
		Rating:      model.FormatRating(m.VoteAverage),
		RatingColor: model.RatingColorOf(m.VoteAverage),
		Year:        releaseYear(m.ReleaseDate),
	}
}

func (u *Usecase) cards(p model.Page[model.Movie]) model.Page[Card] {
	res := model.Page[Card]{
		Page:         p.Page,
		TotalPages:   p.TotalPages,
		TotalResults: p.TotalResults,
		Results:      make([]Card, 0, len(p.Results)),
	}
	for _, m := range p.Results {
		res.Results = append(res.Results, u.Card(m))
	}
	return res
}

func releaseYear(date string) string {
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}

func catalogErr(err error) error {
	if errors.Is(err, ErrResourceNotFound) {
		return ErrResourceNotFound
	}
	return errors.Join(ErrUpstream, err)
}
