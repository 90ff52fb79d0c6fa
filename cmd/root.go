package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vzahanych/zipweather/internal/config"
	"github.com/vzahanych/zipweather/internal/forecast"
	"github.com/vzahanych/zipweather/internal/openweather"
	"github.com/vzahanych/zipweather/pkg/logger"
	"github.com/vzahanych/zipweather/pkg/telemetry"
	"go.uber.org/zap"
)

var (
	configPath string
	log        *zap.Logger
	tele       *telemetry.Telemetry
)

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zipweather",
		Short: "Forecasts by postal code",
		Long:  `Resolves a postal code through the OpenWeather geocoder and serves its current and daily forecast, cached for thirty minutes per zip.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeServices(cmd.Context())
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to configuration file (default: ./config.yaml)")

	cmd.AddCommand(serverCmd())
	cmd.AddCommand(forecastCmd())

	return cmd
}

func Execute() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			if log != nil {
				log.Info("Received shutdown signal", zap.String("signal", sig.String()))
			}
			cancel()
		case <-ctx.Done():
		}
	}()

	err := rootCmd().ExecuteContext(ctx)
	shutdownServices()
	return err
}

func initializeServices(ctx context.Context) error {
	// 1. Load config from file, .env and ZW_* variables
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Having config in atomic allows changing it during runtime
	config.SetConfig(cfg)

	// 3. Initialize logger
	log, err = logger.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if cfg.OpenWeather.APIKey == "" {
		log.Warn("OpenWeather API key is not set; upstream calls will be rejected")
	}

	tele, err = telemetry.New(ctx, cfg.Telemetry, cfg.Version)
	if err != nil {
		log.Warn("Failed to initialize telemetry", zap.Error(err))
	}

	return nil
}

func shutdownServices() {
	if log == nil {
		return
	}
	if err := tele.Shutdown(context.Background()); err != nil {
		log.Warn("Failed to shutdown telemetry", zap.Error(err))
	}
	_ = log.Sync()
}

// newForecastService wires the OpenWeather client into a cached forecast service.
func newForecastService(cfg *config.Config) *forecast.Service {
	client := openweather.NewClient(cfg.OpenWeather, log, tele)

	return forecast.NewService(
		openweather.NewGeocoder(client),
		openweather.NewWeatherFetcher(client),
		forecast.NewCache(cfg.Cache.TTLDuration()),
		log,
		tele,
	)
}
