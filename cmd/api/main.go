package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/rateio/internal/app"
	"github.com/MrJamesThe3rd/rateio/internal/config"
	"github.com/MrJamesThe3rd/rateio/internal/database"
	rateioHttp "github.com/MrJamesThe3rd/rateio/internal/http"
	billHandler "github.com/MrJamesThe3rd/rateio/internal/http/bill"
	categoryHandler "github.com/MrJamesThe3rd/rateio/internal/http/category"
	exportHandler "github.com/MrJamesThe3rd/rateio/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/rateio/internal/http/importcsv"
	matchingHandler "github.com/MrJamesThe3rd/rateio/internal/http/matching"
	personHandler "github.com/MrJamesThe3rd/rateio/internal/http/person"
	reportHandler "github.com/MrJamesThe3rd/rateio/internal/http/report"
	"github.com/MrJamesThe3rd/rateio/internal/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logging.Setup(cfg.App.LogLevel)

	if err := database.Migrate(cfg.ConnectionString()); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	svc := app.New(db, cfg)

	router := rateioHttp.New(rateioHttp.Handlers{
		Bills:      billHandler.NewHandler(svc.Bills),
		People:     personHandler.NewHandler(svc.People),
		Categories: categoryHandler.NewHandler(svc.Categories),
		Reports:    reportHandler.NewHandler(svc.Reports),
		Import:     importHandler.NewHandler(svc.Import, svc.Bills, svc.Rules),
		Rules:      matchingHandler.NewHandler(svc.Rules),
		Export:     exportHandler.NewHandler(svc.Export),
	}, rateioHttp.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		JWTSecret:      cfg.Auth.JWTSecret,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr, "auth", cfg.Auth.JWTSecret != "")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		slog.Info("shutting down server")

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
