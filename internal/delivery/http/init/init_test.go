package http_init

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type HTTPInitSuite struct {
	suite.Suite
}

type pingController struct{}

func (pingController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/ping", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "pong")
	})
}

func (s *HTTPInitSuite) BeforeAll(t provider.T) {
	gin.SetMode(gin.TestMode)
}

func (s *HTTPInitSuite) TestRoutesAreMountedByKind(t provider.T) {
	var seen bool
	pool := NewControllerPool(func(ctx *gin.Context) {
		seen = true
		ctx.Next()
	})
	pool.Add(pingController{})
	pool.AddRoot(pingController{})
	pool.Register()

	tests := []struct {
		path   string
		status int
	}{
		{"/api/v1/ping", http.StatusOK},
		{"/ping", http.StatusOK},
		{"/api/v2/ping", http.StatusNotFound},
	}
	for _, tc := range tests {
		rec := httptest.NewRecorder()
		pool.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))
		assert.Equal(t, tc.status, rec.Code, tc.path)
	}
	assert.True(t, seen)
}

func (s *HTTPInitSuite) TestRunAllStopsOnCancel(t provider.T) {
	pool := NewControllerPool()
	pool.Register()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- pool.RunAll(ctx, "127.0.0.1", "0")
	}()

	cancel()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		require.Fail(t, "server did not stop")
	}
}

func TestHTTPInitSuite(t *testing.T) {
	suite.RunSuite(t, new(HTTPInitSuite))
}
