package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	httpapi "kitchen-rush/internal/api/http"
	"kitchen-rush/internal/api/ws"
	"kitchen-rush/internal/cache/cachelru"
	"kitchen-rush/internal/catalog"
	"kitchen-rush/internal/config"
	"kitchen-rush/internal/database"
	resultdb "kitchen-rush/internal/database/result/database"
	"kitchen-rush/internal/logging"
	"kitchen-rush/internal/room"
	"kitchen-rush/internal/shutdown"
	"kitchen-rush/internal/store"
)

// @title Kitchen Rush API
// @version 1.0
// @description Co-op kitchen session server: WebSocket game traffic plus read-only REST views
// @BasePath /
func main() {
	ctx, done := shutdown.New()
	defer done()

	cfg, err := config.Load()
	if err != nil {
		logging.DefaultLogger().Fatalf("main.config: %v", err)
	}

	logger := logging.NewLogger(cfg.Debug)
	ctx = logging.WithLogger(ctx, logger)

	if err := realMain(ctx, cfg); err != nil {
		logger.Fatalf("main.realMain: %v", err)
	}
	logger.Info("successful shutdown")
}

func realMain(ctx context.Context, cfg config.Config) error {
	logger := logging.FromContext(ctx)

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	logger.Infof("catalog loaded: %d recipes, %d abilities, %d levels",
		len(cat.Recipes()), len(cat.Abilities()), len(cat.Levels()))

	db, err := database.NewFromEnv(ctx, &cfg.DB)
	if err != nil {
		return fmt.Errorf("new database from env: %w", err)
	}
	defer db.Close(ctx)

	resultCache, err := cachelru.NewLRU(cfg.CacheSize)
	if err != nil {
		return fmt.Errorf("can not create lru cache: %w", err)
	}
	results := resultdb.New(db, resultCache)

	mem := store.NewMemoryStore()
	rm := room.NewManager(mem, cfg, cat, nil, room.WithResults(results))
	hub := ws.NewHub(rm, cfg)
	rm.SetHub(hub)

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(ctx, rm, hub, results, cat, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return room.NewScheduler(rm, cfg.TickInterval).Run(gctx)
	})
	g.Go(func() error {
		logger.Infof("listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
		defer cancel()

		logger.Infof("shutting down http server")
		err := srv.Shutdown(shutdownCtx)
		if cerr := hub.Close(shutdownCtx); cerr != nil {
			logger.Warnf("closing websocket hub: %v", cerr)
		}
		if err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
