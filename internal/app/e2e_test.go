package app

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/krishkpatil/getflix/internal/config"
	http_session "github.com/krishkpatil/getflix/internal/delivery/http/session"
	infra_memory_session "github.com/krishkpatil/getflix/internal/infra/memory/session"
	"github.com/krishkpatil/getflix/internal/model"
	usecase_session "github.com/krishkpatil/getflix/internal/usecase/session"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const discoverBody = `{"page":1,"total_pages":1,"total_results":3,"results":[
	{"id":1,"title":"Heat","poster_path":"/heat.jpg","vote_average":8.3,"release_date":"1995-12-15","genre_ids":[28]},
	{"id":2,"title":"Ronin","poster_path":null,"vote_average":7.2,"release_date":"1998-09-25","genre_ids":[28]},
	{"id":3,"title":"Collateral","poster_path":"/c.jpg","vote_average":7.5,"release_date":"2004-08-06","genre_ids":[28]}
]}`

type E2EMatchFlowSuite struct {
	suite.Suite
}

type resources struct {
	api           *httptest.Server
	discoverCalls *atomic.Int32
	genreCalls    *atomic.Int32
}

func (s *E2EMatchFlowSuite) BeforeAll(t provider.T) {
	gin.SetMode(gin.TestMode)
}

func initResources(t provider.T) *resources {
	var discoverCalls, genreCalls atomic.Int32
	tmdb := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/discover/movie":
			discoverCalls.Add(1)
			if r.URL.Query().Get("with_genres") == "99" {
				_, _ = w.Write([]byte(`{"page":1,"total_pages":0,"total_results":0,"results":[]}`))
				return
			}
			_, _ = w.Write([]byte(discoverBody))
		case "/genre/movie/list":
			genreCalls.Add(1)
			_, _ = w.Write([]byte(`{"genres":[{"id":28,"name":"Action"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(tmdb.Close)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cfg := &config.Config{
		Redis: config.RedisCache{
			Host:      mr.Host(),
			Port:      mr.Port(),
			Enabled:   true,
			KeyPrefix: "catalog",
		},
		Catalog: config.Catalog{
			BaseURL:      tmdb.URL,
			ImageBaseURL: model.DefaultImageBaseURL,
			APIKey:       "test-key",
			Timeout:      2 * time.Second,
			RateLimit:    100,
			Burst:        10,
			PageTTL:      time.Hour,
			GenresTTL:    24 * time.Hour,
		},
		App: config.App{BaseURL: "https://getflix.app/"},
		Session: config.Session{
			MinRating:        6,
			MaxDiscoverPages: 1,
		},
	}

	srv := newServer(cfg, slog.New(slog.NewJSONHandler(io.Discard, nil)), infra_memory_session.New())
	ctx, cancel := context.WithCancel(context.Background())
	go srv.hub.Run(ctx)

	api := httptest.NewServer(srv.pool.Handler())
	t.Cleanup(func() {
		api.Close()
		cancel()
	})

	return &resources{
		api:           api,
		discoverCalls: &discoverCalls,
		genreCalls:    &genreCalls,
	}
}

func (r *resources) call(t provider.T, method, path string, body any, out any) int {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, r.api.URL+"/api/v1"+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (s *E2EMatchFlowSuite) TestTwoParticipantsMatch(t provider.T) {
	r := initResources(t)

	var created http_session.CreateResponseDTO
	status := r.call(t, http.MethodPost, "/sessions?user_id=alice", map[string]any{
		"genres":      []int{28},
		"timeframe":   "5",
		"region":      "hollywood",
		"movie_count": 2,
	}, &created)
	require.Equal(t, http.StatusCreated, status)
	require.Len(t, created.Session.Movies, 2)
	assert.Equal(t, "alice", created.ParticipantID)
	assert.Equal(t, "https://getflix.app/match/session/"+created.SessionID, created.ShareURL)
	assert.Equal(t, []int{28}, created.Session.Filters.Genres)
	assert.Equal(t, "en", created.Session.Filters.Language)

	id := created.SessionID

	var waiting http_session.ResultsResponseDTO
	status = r.call(t, http.MethodGet, "/sessions/"+id+"/results?user_id=alice", nil, &waiting)
	require.Equal(t, http.StatusAccepted, status)
	assert.Equal(t, usecase_session.ResultsWaitingForPartner, waiting.Status)
	assert.Equal(t, created.ShareURL, waiting.ShareURL)

	var joined http_session.JoinResponseDTO
	status = r.call(t, http.MethodPost, "/sessions/"+id+"/participants?user_id=bob", nil, &joined)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, usecase_session.StateSwiping, joined.State)
	assert.Equal(t, 0, joined.Cursor)

	swipes := []struct {
		user   string
		movie  int64
		action string
	}{
		{"alice", 1, "like"},
		{"alice", 2, "pass"},
		{"bob", 1, "superlike"},
		{"bob", 2, "like"},
	}
	var last http_session.SwipeResponseDTO
	for _, sw := range swipes {
		status = r.call(t, http.MethodPost, "/sessions/"+id+"/swipes?user_id="+sw.user,
			map[string]any{"movie_id": sw.movie, "action": sw.action}, &last)
		require.Equal(t, http.StatusOK, status, sw)
	}
	assert.True(t, last.Completed)
	assert.True(t, last.ResultsReady)

	var results http_session.ResultsResponseDTO
	status = r.call(t, http.MethodGet, "/sessions/"+id+"/results?user_id=bob", nil, &results)
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, results.Stats)
	assert.Equal(t, model.SessionStats{
		TotalMovies:     2,
		MatchCount:      1,
		MatchPercentage: 50,
		User1Likes:      1,
		User2Likes:      2,
		User1SuperLikes: 0,
		User2SuperLikes: 1,
	}, *results.Stats)
	require.Len(t, results.Matches, 1)
	assert.Equal(t, int64(1), results.Matches[0].Movie.ID)
	assert.Equal(t, model.MatchOneSuperlike, results.Matches[0].MatchType)

	var rejoined http_session.JoinResponseDTO
	status = r.call(t, http.MethodPost, "/sessions/"+id+"/participants?user_id=alice", nil, &rejoined)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, usecase_session.StateCompleted, rejoined.State)

	status = r.call(t, http.MethodPost, "/sessions/"+id+"/participants?user_id=carol", nil, nil)
	assert.Equal(t, http.StatusConflict, status)

	assert.Equal(t, int32(1), r.discoverCalls.Load())
}

func (s *E2EMatchFlowSuite) TestEmptyDeckIsNotPersisted(t provider.T) {
	r := initResources(t)

	status := r.call(t, http.MethodPost, "/sessions", map[string]any{
		"genres":    []int{99},
		"timeframe": "all",
		"region":    "all",
	}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status = r.call(t, http.MethodGet, "/sessions/unknown-id", nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func (s *E2EMatchFlowSuite) TestCatalogIsCached(t provider.T) {
	r := initResources(t)

	for i := 0; i < 3; i++ {
		var genres struct {
			Genres []model.Genre `json:"genres"`
		}
		require.Equal(t, http.StatusOK, r.call(t, http.MethodGet, "/genres", nil, &genres))
		assert.Equal(t, []model.Genre{{ID: 28, Name: "Action"}}, genres.Genres)
	}
	assert.Equal(t, int32(1), r.genreCalls.Load())

	resp, err := http.Get(r.api.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "catalog_cache_hits_total")
}

func TestE2EMatchFlowSuite(t *testing.T) {
	suite.RunSuite(t, new(E2EMatchFlowSuite))
}
