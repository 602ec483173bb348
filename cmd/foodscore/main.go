package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/macrolens/foodscore/config"
	httpDelivery "github.com/macrolens/foodscore/internal/delivery/http"
	"github.com/macrolens/foodscore/internal/domain"
	"github.com/macrolens/foodscore/internal/infrastructure/cache"
	"github.com/macrolens/foodscore/internal/infrastructure/dataset"
	"github.com/macrolens/foodscore/internal/infrastructure/synonyms"
	"github.com/macrolens/foodscore/internal/infrastructure/usda"
	"github.com/macrolens/foodscore/internal/infrastructure/watch"
	"github.com/macrolens/foodscore/internal/logging"
	"github.com/macrolens/foodscore/internal/usecase"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// Modes
const (
	modeScore = "score"
	modeWatch = "watch"
	modeServe = "serve"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "foodscore: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("foodscore", pflag.ContinueOnError)
	config.RegisterFlags(flags)
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: foodscore [score|watch|serve] [flags]\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return err
	}

	mode := modeScore
	switch flags.NArg() {
	case 0:
	case 1:
		mode = flags.Arg(0)
	default:
		return fmt.Errorf("expected at most one mode, got %v", flags.Args())
	}
	if mode != modeScore && mode != modeWatch && mode != modeServe {
		return fmt.Errorf("unknown mode %q", mode)
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Server.Environment)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting foodscore",
		zap.String("mode", mode),
		zap.String("environment", cfg.Server.Environment),
		zap.String("source", cfg.Source.Type))

	pipeline, err := buildPipeline(ctx, cfg, logger)
	if err != nil {
		return err
	}

	switch mode {
	case modeWatch:
		return runWatch(ctx, cfg, pipeline, logger)
	case modeServe:
		return runServe(ctx, cfg, pipeline, logger)
	default:
		_, err := pipeline.Run(ctx)
		return err
	}
}

func buildPipeline(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*usecase.Pipeline, error) {
	table, err := synonyms.Load(cfg.Synonyms.Path, logger.Named("synonyms"))
	if err != nil {
		return nil, err
	}

	var source domain.DatasetSource
	switch cfg.Source.Type {
	case config.SourceUSDA:
		client := usda.NewClient(usda.ClientConfig{
			APIKey:   cfg.USDA.APIKey,
			BaseURL:  cfg.USDA.BaseURL,
			Cache:    cache.NewMemoryCache(ctx),
			CacheTTL: cfg.Cache.TTL,
		}, logger.Named("usda"))
		source = usda.NewSource(client, cfg.USDA.FdcIDs, logger.Named("usda"))
	default:
		source = dataset.NewFileSource(cfg.Pipeline.InputPath, logger.Named("dataset"))
	}

	scorer := usecase.NewScoringService(table, usecase.ScoringServiceConfig{
		TraceMatch: cfg.Pipeline.TraceMatch,
	}, logger.Named("scoring"))

	return usecase.NewPipeline(
		source,
		dataset.NewFileWriter(cfg.Pipeline.OutputPath),
		scorer,
		usecase.PipelineConfig{SampleSize: cfg.Pipeline.SampleSize},
		logger.Named("pipeline"),
	), nil
}

// runWatch scores once, then again whenever the input file changes.
// Failed runs are logged and watching continues.
func runWatch(ctx context.Context, cfg *config.Config, pipeline *usecase.Pipeline, logger *zap.Logger) error {
	if cfg.Source.Type != config.SourceFile {
		return fmt.Errorf("watch mode requires the file source, got %q", cfg.Source.Type)
	}

	rerun := func(ctx context.Context) {
		if _, err := pipeline.Run(ctx); err != nil {
			logger.Warn("run failed, waiting for the next change", zap.Error(err))
		}
	}
	rerun(ctx)

	return watch.NewFile(cfg.Pipeline.InputPath, logger.Named("watch")).Run(ctx, rerun)
}

// runServe scores once and serves the results over HTTP until ctx is done
func runServe(ctx context.Context, cfg *config.Config, pipeline *usecase.Pipeline, logger *zap.Logger) error {
	if _, err := pipeline.Run(ctx); err != nil {
		logger.Warn("initial run failed, serving without scores", zap.Error(err))
	}

	httpLogger := logger.Named("http")
	router := httpDelivery.SetupRouter(cfg, httpDelivery.NewHandler(pipeline, httpLogger), httpLogger)

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
