package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/vzahanych/zipweather/internal/config"
	"github.com/vzahanych/zipweather/internal/forecast"
	"github.com/vzahanych/zipweather/internal/server"
	"github.com/vzahanych/zipweather/internal/server/handlers"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

func serverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Start the forecast HTTP server",
		Long:  `Start the HTTP server that serves cached OpenWeather forecasts by postal code.`,
		RunE:  runServer,
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()

	log.Info("Starting forecast server",
		zap.String("config_path", configPath),
		zap.Bool("telemetry_enabled", cfg.Telemetry.Enabled),
		zap.Int("server_port", cfg.Server.Port),
		zap.Duration("cache_ttl", cfg.Cache.TTLDuration()))

	metrics := handlers.NewMetrics()
	service := newForecastService(cfg)
	service.SetMetricsRecorder(metrics)

	sweeper := forecast.NewCacheSweeper(service.Cache(), cfg.Cache.SweepDuration(), log)
	sweeper.Start(cmd.Context())
	defer sweeper.Stop()

	srv := server.NewServer(cfg.Server, service, metrics, log, tele)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		if err != nil {
			log.Error("Server error", zap.Error(err))
		}
		return err
	case <-cmd.Context().Done():
		log.Info("Shutting down server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Error during server shutdown", zap.Error(err))
			return err
		}

		log.Info("Server shutdown complete")
		return nil
	}
}
