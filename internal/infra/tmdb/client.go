package infra_tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/krishkpatil/getflix/internal/metrics"
	"github.com/krishkpatil/getflix/internal/model"
	usecase_movie "github.com/krishkpatil/getflix/internal/usecase/movie"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

var (
	ErrUpstream = errors.New("catalog upstream error")
	ErrNotFound = usecase_movie.ErrResourceNotFound
)

// UpstreamError is returned for any non-2xx provider response.
type UpstreamError struct {
	Endpoint   string
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("catalog %s responded with status %d", e.Endpoint, e.StatusCode)
}

func (e *UpstreamError) Is(target error) bool {
	switch target {
	case ErrUpstream:
		return true
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

const (
	breakerName = "tmdb-api"

	// Vote floor applied whenever a minimum rating is requested.
	minVoteCount = 100

	maxBodyBytes = 8 << 20
)

type Config struct {
	BaseURL   string
	APIKey    string
	Timeout   time.Duration
	RateLimit float64
	Burst     int
}

type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker[[]byte]
	logger  *slog.Logger
}

type ClientOption func(*Client)

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.http = hc
	}
}

func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

func New(cfg Config, opts ...ClientOption) *Client {
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	c := &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		limiter: rate.NewLimiter(limit, burst),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)
	c.cb = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		// Missing resources and caller cancellations say nothing about provider health.
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrNotFound) ||
				errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("circuit breaker state change",
				slog.String("name", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return c
}

func (c *Client) Discover(ctx context.Context, q model.DiscoverQuery) (model.Page[model.Movie], error) {
	var page model.Page[model.Movie]
	err := c.get(ctx, "/discover/movie", "/discover/movie", discoverParams(q), &page)
	return page, err
}

func (c *Client) Popular(ctx context.Context, page int) (model.Page[model.Movie], error) {
	return c.Discover(ctx, model.DiscoverQuery{Page: page})
}

func (c *Client) Search(ctx context.Context, query string, page int) (model.Page[model.Movie], error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(normalizePage(page)))

	var res model.Page[model.Movie]
	err := c.get(ctx, "/search/movie", "/search/movie", params, &res)
	return res, err
}

func (c *Client) Genres(ctx context.Context) ([]model.Genre, error) {
	var res genresResponse
	if err := c.get(ctx, "/genre/movie/list", "/genre/movie/list", url.Values{}, &res); err != nil {
		return nil, err
	}
	return res.Genres, nil
}

func (c *Client) Details(ctx context.Context, id model.MovieID) (model.MovieDetails, error) {
	var res model.MovieDetails
	path := "/movie/" + strconv.FormatInt(id, 10)
	if err := c.get(ctx, "/movie/{id}", path, url.Values{}, &res); err != nil {
		return model.MovieDetails{}, err
	}
	if len(res.GenreIDs) == 0 {
		for _, g := range res.Genres {
			res.GenreIDs = append(res.GenreIDs, g.ID)
		}
	}
	return res, nil
}

// get runs one rate limited, breaker guarded request. endpoint is the metric label.
func (c *Client) get(ctx context.Context, endpoint, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	start := time.Now()
	body, err := c.cb.Execute(func() ([]byte, error) {
		return c.do(ctx, path, params)
	})
	metrics.CatalogRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CatalogRequests.WithLabelValues(endpoint, "rejected").Inc()
			return fmt.Errorf("%w: %w", ErrUpstream, err)
		}
		metrics.CatalogRequests.WithLabelValues(endpoint, "upstream_error").Inc()
		c.logger.Warn("catalog request failed",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()),
		)
		return err
	}
	metrics.CatalogRequests.WithLabelValues(endpoint, "ok").Inc()

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode %s: %w", ErrUpstream, endpoint, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, path string, params url.Values) ([]byte, error) {
	params.Set("api_key", c.apiKey)
	u := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &UpstreamError{Endpoint: path, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return body, nil
}

func discoverParams(q model.DiscoverQuery) url.Values {
	params := url.Values{}
	params.Set("sort_by", "popularity.desc")
	params.Set("page", strconv.Itoa(normalizePage(q.Page)))

	if len(q.GenreIDs) > 0 {
		ids := make([]string, 0, len(q.GenreIDs))
		for _, id := range q.GenreIDs {
			ids = append(ids, strconv.Itoa(id))
		}
		params.Set("with_genres", strings.Join(ids, ","))
	}
	if q.YearRange != nil {
		params.Set("primary_release_date.gte", fmt.Sprintf("%d-01-01", q.YearRange.From))
		params.Set("primary_release_date.lte", fmt.Sprintf("%d-12-31", q.YearRange.To))
	}
	if q.MinRating > 0 {
		params.Set("vote_average.gte", strconv.FormatFloat(q.MinRating, 'f', -1, 64))
		params.Set("vote_count.gte", strconv.Itoa(minVoteCount))
	}
	if q.Language != "" {
		params.Set("with_original_language", q.Language)
	}
	if q.Region != "" {
		params.Set("region", q.Region)
	}
	return params
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
