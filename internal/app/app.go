package app

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/krishkpatil/getflix/internal/config"
	http_init "github.com/krishkpatil/getflix/internal/delivery/http/init"
	http_metrics "github.com/krishkpatil/getflix/internal/delivery/http/metrics"
	http_request_middleware "github.com/krishkpatil/getflix/internal/delivery/http/middleware/request"
	http_movie "github.com/krishkpatil/getflix/internal/delivery/http/movie"
	http_session "github.com/krishkpatil/getflix/internal/delivery/http/session"
	http_swagger "github.com/krishkpatil/getflix/internal/delivery/http/swagger"
	ws_session "github.com/krishkpatil/getflix/internal/delivery/ws/session"
	infra_memory_session "github.com/krishkpatil/getflix/internal/infra/memory/session"
	infra_mongo_init "github.com/krishkpatil/getflix/internal/infra/mongo/init"
	infra_mongo_session "github.com/krishkpatil/getflix/internal/infra/mongo/session"
	infra_pg_init "github.com/krishkpatil/getflix/internal/infra/postgres/init"
	infra_postgres_session "github.com/krishkpatil/getflix/internal/infra/postgres/session"
	infra_catalog_cache "github.com/krishkpatil/getflix/internal/infra/redis/catalog_cache"
	infra_redis_init "github.com/krishkpatil/getflix/internal/infra/redis/init"
	infra_tmdb "github.com/krishkpatil/getflix/internal/infra/tmdb"
	"github.com/krishkpatil/getflix/internal/logger"
	"github.com/krishkpatil/getflix/internal/model"
	"github.com/krishkpatil/getflix/internal/service/sweeper"
	storage_catalog "github.com/krishkpatil/getflix/internal/storage/catalog"
	usecase_movie "github.com/krishkpatil/getflix/internal/usecase/movie"
	usecase_session "github.com/krishkpatil/getflix/internal/usecase/session"
)

type server struct {
	pool      *http_init.ControllerPool
	sessionUC *usecase_session.Usecase
	hub       *ws_session.Hub
}

// newServer builds the HTTP surface on top of store. The hub is returned stopped.
func newServer(cfg *config.Config, lg *slog.Logger, store usecase_session.SessionStore) *server {
	catalog := newCatalog(cfg, lg)
	hub := ws_session.NewHub(lg)

	movieUC := usecase_movie.New(catalog, cfg.Catalog.ImageBaseURL, model.PosterW500)
	sessionUC := newSessionUsecase(cfg, store, catalog, usecase_session.WithNotifier(hub))

	controllerPool := http_init.NewControllerPool(http_request_middleware.Logger(lg))
	controllerPool.Add(http_swagger.New())
	controllerPool.Add(http_movie.New(movieUC, http_movie.WithLogger(lg)))
	controllerPool.Add(http_session.New(sessionUC, movieUC, http_session.WithLogger(lg)))
	controllerPool.Add(ws_session.NewController(sessionUC, hub, ws_session.WithLogger(lg)))
	controllerPool.AddRoot(http_metrics.New())
	controllerPool.Register()

	return &server{
		pool:      controllerPool,
		sessionUC: sessionUC,
		hub:       hub,
	}
}

func Go(cfg *config.Config) {
	lg := logger.New(cfg.Log.Level)
	slog.SetDefault(lg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := newServer(cfg, lg, mustStore(cfg))
	go srv.hub.Run(ctx)

	if cfg.Session.Retention > 0 {
		sw := sweeper.New(srv.sessionUC, cfg.Session.SweepInterval, sweeper.WithLogger(lg))
		if err := sw.Start(ctx); err != nil {
			log.Fatalf("failed to start session sweeper: %v", err)
		}
		defer func() { _ = sw.Stop() }()
	}

	lg.Info("http server starting",
		slog.String("host", cfg.HTTP.Host),
		slog.String("port", cfg.HTTP.Port),
		slog.String("store", string(cfg.Store.Driver)))
	if err := srv.pool.RunAll(ctx, cfg.HTTP.Host, cfg.HTTP.Port); err != nil {
		log.Fatalf("failed to run HTTP server: %v", err)
	}
	lg.Info("http server stopped")
}

// Sweep runs a single retention pass and exits.
func Sweep(cfg *config.Config) {
	lg := logger.New(cfg.Log.Level)
	slog.SetDefault(lg)

	sessionUC := newSessionUsecase(cfg, mustStore(cfg), nil)
	deleted, err := sweeper.New(sessionUC, cfg.Session.SweepInterval, sweeper.WithLogger(lg)).
		RunOnce(context.Background())
	if err != nil {
		log.Fatalf("sweep failed: %v", err)
	}
	lg.Info("sweep finished", slog.Int64("deleted", deleted))
}

func newSessionUsecase(
	cfg *config.Config,
	store usecase_session.SessionStore,
	catalog usecase_session.Catalog,
	opts ...usecase_session.Option,
) *usecase_session.Usecase {
	opts = append([]usecase_session.Option{
		usecase_session.WithBaseURL(cfg.App.BaseURL),
		usecase_session.WithMinRating(cfg.Session.MinRating),
		usecase_session.WithMaxDiscoverPages(cfg.Session.MaxDiscoverPages),
		usecase_session.WithRetention(cfg.Session.Retention),
	}, opts...)
	return usecase_session.New(store, catalog, opts...)
}

func mustStore(cfg *config.Config) usecase_session.SessionStore {
	switch cfg.Store.Driver {
	case config.StoreMongo:
		return infra_mongo_session.New(infra_mongo_init.MustEstablishConn(cfg.Mongo))
	case config.StorePostgres:
		return infra_postgres_session.New(infra_pg_init.MustEstablishConn(cfg.Postgres))
	case config.StoreMemory:
		return infra_memory_session.New()
	}
	log.Fatalf("unknown store driver %q", cfg.Store.Driver)
	return nil
}

func newCatalog(cfg *config.Config, lg *slog.Logger) *storage_catalog.Storage {
	client := infra_tmdb.New(infra_tmdb.Config{
		BaseURL:   cfg.Catalog.BaseURL,
		APIKey:    cfg.Catalog.APIKey,
		Timeout:   cfg.Catalog.Timeout,
		RateLimit: cfg.Catalog.RateLimit,
		Burst:     cfg.Catalog.Burst,
	}, infra_tmdb.WithLogger(lg))

	var cache storage_catalog.Cache
	if cfg.Redis.Enabled {
		redisConn, err := infra_redis_init.Connect(cfg.Redis)
		if err != nil {
			lg.Warn("catalog cache disabled", "error", err)
		} else {
			cache = infra_catalog_cache.New(redisConn, cfg.Redis.KeyPrefix)
		}
	}

	return storage_catalog.New(client, cache,
		storage_catalog.WithTTL(cfg.Catalog.PageTTL, cfg.Catalog.GenresTTL),
		storage_catalog.WithLogger(lg),
	)
}
