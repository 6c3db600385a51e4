package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"go-bikeshare/internal/api"
	"go-bikeshare/internal/api/handler"
	"go-bikeshare/internal/config"
	"go-bikeshare/internal/pipeline"
	"go-bikeshare/internal/store"
	"go-bikeshare/pkg/router"
	"go-bikeshare/pkg/utils"
)

// @title Bikeshare Explorer API
// @version 1.0
// @description Query US bikeshare trip data by city, month and weekday.
// @host localhost:8080
// @BasePath /api/v1
func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "config file (default is ./bikeshare.yml)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	// Init DB
	st, err := store.NewStore(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	h := handler.NewReportHandler(
		st,
		pipeline.NewLoader(cfg.Sources()),
		utils.NewOutputManager(cfg.ExportDir),
		cfg.Timeout(),
		cfg.PageSize,
	)

	// Create router and register API routes
	r := router.New()
	api.RegisterRoutes(r, h)
	server := r.Server(cfg.APIAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("🚀 bikeshare-api listening on %s (%d routes)", cfg.APIAddr, len(r.Routes()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Printf("🛑 Shutting down gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
