// Command server runs the professional-intake wizard API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"vetform/internal/notify"
	"vetform/internal/platform/config"
	"vetform/internal/platform/httpserver"
	"vetform/internal/platform/logger"
	"vetform/internal/platform/metrics"
	platformredis "vetform/internal/platform/redis"
	"vetform/internal/wizard/draft"
	"vetform/internal/wizard/files"
	"vetform/internal/wizard/handler"
	"vetform/internal/wizard/service"
	"vetform/internal/wizard/store"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		logger.New(0).Fatal("failed to load config", "error", err.Error())
	}
	log := logger.New(cfg.LogLevel)

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Fatal("failed to connect to redis", "error", err.Error())
	}

	var draftStore draft.Store
	if redisClient != nil {
		draftStore = draft.NewRedisStore(redisClient.Client)
		log.Info("draft store: redis")
	} else {
		draftStore = draft.NewInMemoryStore()
		log.Info("draft store: in-memory")
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	svc := service.New(
		store.New(),
		draft.NewCodec(draftStore, cfg.Draft.TTL, log.Logger),
		files.NewRegistry(),
		notify.NewLogNotifier(log.Logger),
		m,
		log.Logger,
	)

	router := chi.NewRouter()
	handler.New(svc, log.Logger, m, cfg.Upload.MaxRequestBytes).Register(router)
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if redisClient != nil {
			if err := redisClient.Health(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/metrics", promhttp.Handler())

	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal("server error", "error", err.Error())
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("failed to close redis client", "error", err.Error())
		}
	}
	log.Info("server stopped")
}
