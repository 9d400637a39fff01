// Command socialbridged runs the social bridge daemon: it accepts the
// native runtime's boundary session, drives social operations against
// the configured provider backends, and serves the admin API.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"golang.org/x/time/rate"

	"github.com/NovaPlay-Games/social_bridge/internal/boundary"
	"github.com/NovaPlay-Games/social_bridge/internal/bridge"
	"github.com/NovaPlay-Games/social_bridge/internal/bus"
	"github.com/NovaPlay-Games/social_bridge/internal/config"
	"github.com/NovaPlay-Games/social_bridge/internal/httpapi"
	"github.com/NovaPlay-Games/social_bridge/internal/orchestrator"
	"github.com/NovaPlay-Games/social_bridge/internal/profilestore"
	"github.com/NovaPlay-Games/social_bridge/internal/providers"
	"github.com/NovaPlay-Games/social_bridge/internal/reward"
	"github.com/NovaPlay-Games/social_bridge/internal/social"
	"github.com/NovaPlay-Games/social_bridge/internal/social/provider"
	"github.com/NovaPlay-Games/social_bridge/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config/socialbridge.yaml", "path to the daemon configuration")
	flag.Parse()

	cfg := config.LoadOrDefault(*configPath)
	log := logger.New(logger.Config{
		Component: "socialbridged",
		Level:     cfg.Logging.Level,
		JSON:      cfg.Logging.JSON,
	})

	if err := run(cfg, log); err != nil {
		log.Error("daemon exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	store, closeStore, err := buildStore(cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	eventBus := bus.New(256)

	rewards := buildRewards(cfg, log)

	orch := orchestrator.New(orchestrator.Config{
		Bus:       eventBus,
		Profiles:  store,
		Rewards:   rewards,
		Log:       log,
		LikeLimit: rate.Limit(cfg.Likes.PerSecond),
		LikeBurst: cfg.Likes.Burst,
	})

	br := bridge.New(bridge.Config{
		Bus:      eventBus,
		Rewards:  rewards,
		Profiles: store,
		Pages:    orch,
		Log:      log,
	})

	ws := boundary.NewWSServer(br, log)
	defer ws.Close()

	platform := social.TargetPlatform(cfg.Platform)
	var bound []social.ProviderID
	var registered []provider.Provider
	for _, id := range cfg.ProviderIDs() {
		p, err := providers.New(id, platform, ws, log)
		if err != nil {
			log.Warn("provider not available", "provider", id, "error", err)
			continue
		}
		registered = append(registered, p)
		bound = append(bound, id)
	}

	if err := orch.Initialize(registered...); err != nil {
		return err
	}
	log.Info("providers registered", "platform", cfg.Platform, "providers", bound)

	boundaryMux := http.NewServeMux()
	boundaryMux.Handle(cfg.Boundary.Path, ws)
	boundarySrv := &http.Server{
		Addr:    cfg.Boundary.ListenAddr,
		Handler: boundaryMux,
	}

	adminSrv := &http.Server{
		Addr:    cfg.Admin.ListenAddr,
		Handler: httpapi.NewHandler(orch, eventBus, log).Router(),
	}

	errCh := make(chan error, 2)
	go func() {
		log.Info("boundary listening", "addr", cfg.Boundary.ListenAddr, "path", cfg.Boundary.Path)
		if err := boundarySrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	go func() {
		log.Info("admin api listening", "addr", cfg.Admin.ListenAddr)
		if err := adminSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		log.Info("shutting down", "signal", sig.String())
	case err := <-errCh:
		log.Error("listener failed", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = adminSrv.Shutdown(ctx)
	_ = boundarySrv.Shutdown(ctx)
	return nil
}

func buildStore(cfg *config.Config, log *logger.Logger) (profilestore.Store, func(), error) {
	switch cfg.Store.Backend {
	case "", "memory":
		return profilestore.NewMemoryStore(), func() {}, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Store.Redis.Addr,
			Password: cfg.Store.Redis.Password,
			DB:       cfg.Store.Redis.DB,
		})
		return profilestore.NewRedisStore(client), func() { client.Close() }, nil
	case "postgres":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		store, err := profilestore.OpenPostgresStore(ctx, cfg.Store.Postgres.DSN)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	}
	return nil, nil, errors.New("unknown store backend " + cfg.Store.Backend)
}

func buildRewards(cfg *config.Config, log *logger.Logger) *reward.Service {
	resolver := reward.NewStaticResolver()
	for _, rc := range cfg.Rewards {
		resolver.Add(reward.Reward{ID: rc.ID, Name: rc.Name, Amount: rc.Amount})
	}
	granter := reward.GranterFunc(func(r reward.Reward) {
		log.Info("reward granted", "reward_id", r.ID, "name", r.Name, "amount", r.Amount)
	})
	return reward.NewService(resolver, granter, log)
}
