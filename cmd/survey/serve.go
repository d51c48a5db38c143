package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/aretw0/survey/internal/cli"
	httpAdapter "github.com/aretw0/survey/pkg/adapters/http"
	"github.com/aretw0/survey/pkg/observability"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Serves one survey session as a JSON API, with an OpenAPI description and a server-sent event stream.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.HTTP.Port, _ = cmd.Flags().GetInt("port")
		}

		sc := cli.NewSignalContext(cmd.Context())
		defer sc.Cancel()

		cat, err := cli.LoadCatalog(sc, cfg.Catalog)
		if err != nil {
			return err
		}
		storage, err := cli.OpenStorage(cfg.Store, logger)
		if err != nil {
			return err
		}
		defer storage.Close()

		var metrics *observability.Metrics
		opts := []httpAdapter.Option{httpAdapter.WithLogger(logger)}
		if cfg.Metrics.Enabled {
			metrics = observability.NewMetrics()
			opts = append(opts, httpAdapter.WithMetricsHandler(metrics.Handler()))
		}
		opts = append(opts, httpAdapter.WithEngineOptions(cli.EngineOptions(storage.Gateway(logger), logger, metrics)...))

		server, err := httpAdapter.NewServer(sc, cat, opts...)
		if err != nil {
			return fmt.Errorf("error initializing server: %w", err)
		}
		handler, err := server.Handler()
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              ":" + strconv.Itoa(cfg.HTTP.Port),
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("starting survey server", "addr", srv.Addr, "questions", cat.Len(), "metrics", cfg.Metrics.Enabled)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case <-sc.Done():
			logger.Info("start shutdown", "signal", sc.Signal())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			logger.Info("survey server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("store", "", "Submission store: memory, file, redis or textdb")
}
