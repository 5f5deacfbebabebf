// Package cli defines the cobra command that prices a booking from the terminal.
package cli

import (
	"context"
	"fmt"
	"time"

	"photobooth_backend/internal/maps"
	"photobooth_backend/internal/quotes/domain"
	"photobooth_backend/internal/quotes/service"
	"photobooth_backend/platform/config"
	"photobooth_backend/platform/logger"

	"github.com/spf13/cobra"
)

const lookupTimeout = 15 * time.Second

// geocoderFactory builds the geocoder used for the travel fee.
type geocoderFactory func(log *logger.Logger) (service.Geocoder, error)

type quoteFlags struct {
	service string
	start   string
	end     string
	address string
	pricing string
	format  string
}

// NewRootCmd creates the quote command using the configured geocoder.
func NewRootCmd() *cobra.Command {
	return newRootCmd(configuredGeocoder)
}

func newRootCmd(newGeocoder geocoderFactory) *cobra.Command {
	var flags quoteFlags

	root := &cobra.Command{
		Use:   "quote",
		Short: "Estimate a photo booth booking",
		Long: "Price a photo booth booking the same way the quote form does: base package, " +
			"extra hours up to the cap, and the travel fee for venues outside the home radius.",
		Example:       `  quote --service Rent --start 09:00 --end 19:00 --address "140 East Walton Place, Chicago, IL 60611"`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuote(cmd, flags, newGeocoder)
		},
	}

	root.Flags().StringVar(&flags.service, "service", string(domain.ServiceRent), "service type (Rent|Sale)")
	root.Flags().StringVar(&flags.start, "start", "", "start time, HH:MM")
	root.Flags().StringVar(&flags.end, "end", "", "end time, HH:MM")
	root.Flags().StringVar(&flags.address, "address", "", "venue address")
	root.Flags().StringVar(&flags.pricing, "pricing", "", "pricing YAML file (default: built-in rates)")
	root.Flags().StringVar(&flags.format, "format", "text", "output format (text|json)")

	return root
}

func runQuote(cmd *cobra.Command, flags quoteFlags, newGeocoder geocoderFactory) error {
	serviceType := domain.ServiceType(flags.service)
	if serviceType != domain.ServiceRent && serviceType != domain.ServiceSale {
		return fmt.Errorf("invalid service type %q: expected Rent or Sale", flags.service)
	}
	if flags.format != "text" && flags.format != "json" {
		return fmt.Errorf("invalid format %q: expected text or json", flags.format)
	}

	rates, err := service.LoadRates(flags.pricing)
	if err != nil {
		return err
	}

	log := logger.NewWithWriter("production", cmd.ErrOrStderr())
	geocoder, err := newGeocoder(log)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), lookupTimeout)
	defer cancel()

	in := domain.EstimateInput{
		ServiceType:  serviceType,
		StartTime:    flags.start,
		EndTime:      flags.end,
		VenueAddress: flags.address,
	}
	est := service.NewCalculator(rates, geocoder, nil, log).Estimate(ctx, in)

	out := cmd.OutOrStdout()
	if flags.format == "json" {
		return printJSON(out, est)
	}
	printEstimate(out, in, est)
	return nil
}

func configuredGeocoder(log *logger.Logger) (service.Geocoder, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return maps.NewService(cfg, log), nil
}
