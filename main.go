package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"food-ordering-api/config"
	"food-ordering-api/logger"
	"food-ordering-api/middleware"
	"food-ordering-api/repository"
	"food-ordering-api/repository/gormstore"
	"food-ordering-api/repository/mongostore"
	"food-ordering-api/routes"
	"food-ordering-api/seed"

	"github.com/gin-gonic/gin"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	seedOnly := flag.Bool("seed", false, "load demo data and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	gin.SetMode(cfg.GinMode)
	log := logger.New("food-ordering-api", cfg.LogLevel)

	if err := run(cfg, log, *seedOnly); err != nil {
		log.Error("exiting", logger.Err(err))
		os.Exit(1)
	}
}

// run owns every resource that needs closing.
func run(cfg *config.Config, log *slog.Logger, seedOnly bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.DBDriver, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("failed to close store", logger.Err(err))
		}
	}()
	log.Info("store ready", "driver", cfg.DBDriver)

	if seedOnly {
		sum, err := seed.Run(ctx, store, 0, log)
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		log.Info("seeding finished",
			"skipped", sum.Skipped,
			"restaurants", sum.Restaurants,
			"foods", sum.Foods,
			"orders", sum.Orders,
		)
		return nil
	}

	r, err := routes.NewRouter(routes.Deps{
		Store:        store,
		Tokens:       middleware.NewJWT(cfg.JWTSecret, cfg.JWTTTL),
		Logger:       log,
		StrictStatus: cfg.StrictStatus,
		ClientURL:    cfg.ClientURL,
	})
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	serveErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", srv.Addr, "strictStatus", cfg.StrictStatus)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

func openStore(ctx context.Context, cfg *config.Config) (*repository.Store, error) {
	switch cfg.DBDriver {
	case config.DriverMongo:
		client, db, err := mongostore.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		return mongostore.NewStore(client, db), nil
	default:
		db, err := gormstore.Open(cfg.DBSource, gormlogger.Warn)
		if err != nil {
			return nil, err
		}
		return gormstore.NewStore(db), nil
	}
}
