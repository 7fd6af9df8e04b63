// cmd/server/main.go
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/gamemate/gamemate/internal/auth"
	"github.com/gamemate/gamemate/internal/cache"
	"github.com/gamemate/gamemate/internal/config"
	"github.com/gamemate/gamemate/internal/database"
	"github.com/gamemate/gamemate/internal/handlers"
	"github.com/gamemate/gamemate/internal/middleware"
	"github.com/gamemate/gamemate/internal/openapi"
	"github.com/gamemate/gamemate/internal/rest"
)

func main() {
	logger := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	if cfg.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	ctx := context.Background()

	pool, err := database.Connect(ctx, cfg.Postgres)
	if err != nil {
		logger.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool); err != nil {
		logger.Fatalf("failed to ensure schema: %v", err)
	}

	gameCache, err := cache.Connect(ctx, cfg.RedisAddr)
	if err != nil {
		// the cache is advisory; run without it
		logger.WithError(err).Warn("redis unavailable, games cache disabled")
	}

	tokens := auth.NewTokenService(cfg.SecretKey, cfg.TokenTTL)
	userStore := database.NewUserStore(pool)
	gameStore := database.NewGameStore(pool)

	api := rest.New(logger, tokens, userStore)
	handlers.RegisterRoutes(api,
		&handlers.Users{Store: userStore, Tokens: tokens},
		&handlers.Games{Store: gameStore, Cache: gameCache},
		&handlers.Bids{Store: database.NewBidStore(pool), Games: gameStore},
		&handlers.Lobbies{Store: database.NewLobbyStore(pool), Games: gameStore},
	)

	mux := http.NewServeMux()
	api.Mount(mux)

	// aggregate API description, generated from the route table on demand
	mux.HandleFunc("GET /apispec_1.json", func(w http.ResponseWriter, r *http.Request) {
		doc := openapi.Generate(api.Routes(), "gamemate API", "1.0.0")
		data, err := json.Marshal(doc)
		if err != nil {
			logger.WithError(err).Error("failed to marshal api spec")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	})

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      middleware.Logging(logger)(mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Infof("Running on %s", cfg.Addr)
		errc <- server.ListenAndServe()
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	select {
	case err := <-errc:
		logger.Fatalf("server exited: %v", err)
	case sig := <-sigs:
		logger.Infof("terminating: %v", sig)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("shutdown: %v", err)
		}
	}
}
