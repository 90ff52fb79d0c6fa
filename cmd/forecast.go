package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vzahanych/zipweather/internal/config"
	"github.com/vzahanych/zipweather/internal/server/handlers"
	"go.uber.org/zap"
)

type forecastOptions struct {
	zip     string
	country string
	city    string
	state   string
}

func forecastCmd() *cobra.Command {
	opts := &forecastOptions{}

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Print the forecast for a postal code",
		Long:  `Geocode a postal code, fetch its forecast once and print it as JSON.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForecast(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.zip, "zip", "", "postal code to look up")
	cmd.Flags().StringVar(&opts.country, "country", "US", "two-letter country code")
	cmd.Flags().StringVar(&opts.city, "city", "", "city name")
	cmd.Flags().StringVar(&opts.state, "state", "", "state or region")
	_ = cmd.MarkFlagRequired("zip")

	return cmd
}

func runForecast(cmd *cobra.Command, opts *forecastOptions) error {
	service := newForecastService(config.GetConfig())

	result, err := service.Lookup(cmd.Context(), opts.city, opts.state, opts.country, opts.zip)
	if err != nil {
		return err
	}

	log.Debug("Forecast lookup complete", zap.Bool("cached", result.Cached))

	out, err := json.MarshalIndent(handlers.NewWeatherResponse(result), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode forecast: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
