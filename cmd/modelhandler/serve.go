package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ekisa-team/modelhandler/internal/backend"
	"github.com/ekisa-team/modelhandler/internal/config"
	"github.com/ekisa-team/modelhandler/internal/env"
	"github.com/ekisa-team/modelhandler/internal/handler"
	"github.com/ekisa-team/modelhandler/internal/logger"
	grpcserver "github.com/ekisa-team/modelhandler/internal/server/grpc"
	httpserver "github.com/ekisa-team/modelhandler/internal/server/http"
	"github.com/ekisa-team/modelhandler/internal/xfs"
)

const shutdownTimeout = 10 * time.Second

var (
	flagHTTPPort int
	flagGRPCPort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Bind the backend and serve the invocation API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&flagHTTPPort, "http-port", config.DefaultHTTPPort(), "HTTP port to listen on")
	serveCmd.Flags().IntVar(&flagGRPCPort, "grpc-port", config.DefaultGRPCPort(), "gRPC port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, loaded, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("http-port") {
		cfg.Server.HTTPPort = flagHTTPPort
	}
	if cmd.Flags().Changed("grpc-port") {
		cfg.Server.GRPCPort = flagGRPCPort
	}

	level := new(slog.LevelVar)
	level.Set(logger.ParseLevel(cfg.Log.Level))

	slog.SetDefault(
		logger.New(env.FromEnv(),
			logger.WithLevel(level),
			logger.WithLogToFile(cfg.Log.File != ""),
			logger.WithLogFile(cfg.Log.File),
		),
	)

	if loaded {
		watcher, err := config.NewWatcher(flagConfigPath, flagSchemaPath, func(c *config.Config, err error) {
			if err != nil {
				return
			}
			level.Set(logger.ParseLevel(c.Log.Level))
			slog.Info("Log level updated", "level", level.Level())
		})
		if err != nil {
			return fmt.Errorf("failed to create config watcher: %w", err)
		}
		defer watcher.Close()

		slog.Info("Config loaded successfully", "config", flagConfigPath)
	}

	grpcServer := grpcserver.NewServer()
	h := handler.New(backend.Default(),
		handler.WithSuffix(cfg.BackendSuffix),
		handler.WithLogger(slog.Default()),
		handler.WithReadyHook(func(string) { grpcServer.SetServing(true) }),
	)
	hctx := handler.Properties{Dir: cfg.ModelDir}
	httpServer := httpserver.NewServer(h, hctx, Version)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !xfs.IsDir(cfg.ModelDir) {
		slog.Warn("Model directory does not exist yet", "model_dir", cfg.ModelDir)
	}
	if err := h.Initialize(ctx, hctx); err != nil {
		slog.Warn("Backend not bound, retrying on first request", "model_dir", cfg.ModelDir, "error", err)
	}

	if err := httpServer.Listen(fmt.Sprintf(":%d", cfg.Server.HTTPPort)); err != nil {
		return err
	}
	if err := grpcServer.Listen(fmt.Sprintf(":%d", cfg.Server.GRPCPort)); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(httpServer.Serve)
	g.Go(grpcServer.Serve)
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		grpcServer.Stop()
		return httpServer.Stop(shutdownCtx)
	})

	return g.Wait()
}
