package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/hurricane-landfall-service/internal/adapter/noaa"
	"github.com/couchcryptid/hurricane-landfall-service/internal/config"
	"github.com/couchcryptid/hurricane-landfall-service/internal/domain"
	"github.com/couchcryptid/hurricane-landfall-service/internal/observability"
	"github.com/couchcryptid/hurricane-landfall-service/internal/pipeline"
)

// options are the persistent flags shared by every subcommand.
type options struct {
	source   string
	minYear  int
	region   string
	timeout  time.Duration
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "landfall-report",
		Short:        "Report hurricanes that made landfall in a region",
		Long:         "Fetches the HURDAT2 best-track feed, keeps storms from --min-year onward with a landfall inside --region, and reports each storm's strongest landfall.",
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.source, "source", config.DefaultHurdatURL, "HURDAT2 feed URL or local file path")
	flags.IntVar(&opts.minYear, "min-year", domain.DefaultMinYear, "first season to include")
	flags.StringVar(&opts.region, "region", "", "minLat,maxLat,minLon,maxLon (default Florida)")
	flags.DurationVar(&opts.timeout, "timeout", 60*time.Second, "feed download timeout")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr")

	root.AddCommand(newRowsCmd(opts), newPDFCmd(opts))
	return root
}

// criteria turns the flags into a filter, validating the region.
func (o *options) criteria() (domain.FilterCriteria, error) {
	c := domain.FilterCriteria{MinYear: o.minYear, Region: domain.FloridaBox}
	if o.region != "" {
		region, err := config.ParseRegion(o.region)
		if err != nil {
			return domain.FilterCriteria{}, fmt.Errorf("invalid --region: %w", err)
		}
		c.Region = region
	}
	if err := config.ValidateMinYear(c.MinYear); err != nil {
		return domain.FilterCriteria{}, fmt.Errorf("invalid --min-year: %w", err)
	}
	return c, nil
}

// generate runs the report pipeline once for the command's flags.
func (o *options) generate(cmd *cobra.Command) (domain.Report, error) {
	c, err := o.criteria()
	if err != nil {
		return domain.Report{}, err
	}
	logger := observability.NewCLILogger(cmd.ErrOrStderr(), o.logLevel)
	source := noaa.NewSource(o.source, o.timeout, logger)
	svc := pipeline.NewReportService(source, c, logger, observability.NewUnregisteredMetrics())
	return svc.Generate(cmd.Context(), c)
}
