package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bstardust/photo-evidence/internal/config"
	"github.com/bstardust/photo-evidence/internal/exifmeta"
	"github.com/bstardust/photo-evidence/internal/geocode"
	"github.com/bstardust/photo-evidence/internal/logger"
	"github.com/bstardust/photo-evidence/internal/pipeline"
	"github.com/bstardust/photo-evidence/internal/progress"
	"github.com/bstardust/photo-evidence/internal/record"
	"github.com/bstardust/photo-evidence/internal/report"
	"github.com/bstardust/photo-evidence/internal/worker"
)

func newGenerateCommand(configFile, logLevel *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [flags] <photo-folder>",
		Short: "Generate an evidence report from a folder of photos",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configFile)
			if err != nil {
				return err
			}
			applyFlagOverrides(cmd, cfg)
			if *logLevel != "" {
				cfg.LogLevel = *logLevel
			}
			logger.SetLevel(cfg.LogLevel)

			folder := ""
			if len(args) > 0 {
				folder = strings.Trim(strings.TrimSpace(args[0]), `"`)
			}
			if folder == "" {
				folder, err = promptFolder(cmd.InOrStdin(), cmd.OutOrStdout())
				if err != nil {
					return err
				}
			}

			return runGenerate(cmd.Context(), cfg, folder)
		},
	}

	// Geocoding options
	cmd.Flags().String("lang", "", "Address language for reverse geocoding")
	cmd.Flags().Duration("geocode-timeout", 0, "Timeout per reverse-geocoding lookup")
	cmd.Flags().Duration("geocode-interval", 0, "Minimum interval between geocoding lookups")
	cmd.Flags().String("geocode-endpoint", "", "Nominatim endpoint URL (default: public OpenStreetMap)")
	cmd.Flags().String("google-api-key", "", "Use the Google Maps geocoding API with this key")

	// Report options
	cmd.Flags().String("prefix", "", "Output file name tag")
	cmd.Flags().String("title", "", "Report document title")
	cmd.Flags().Int("thumb-width", 0, "Thumbnail width in pixels")

	// Processing options
	cmd.Flags().Int("concurrency", 0, "Number of photos processed concurrently")

	return cmd
}

// applyFlagOverrides lets explicitly set flags win over the config file
// and environment.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if flags.Changed("lang") {
		cfg.Geocode.Language, _ = flags.GetString("lang")
	}
	if flags.Changed("geocode-timeout") {
		cfg.Geocode.Timeout, _ = flags.GetDuration("geocode-timeout")
	}
	if flags.Changed("geocode-interval") {
		cfg.Geocode.Interval, _ = flags.GetDuration("geocode-interval")
	}
	if flags.Changed("geocode-endpoint") {
		cfg.Geocode.Endpoint, _ = flags.GetString("geocode-endpoint")
	}
	if flags.Changed("google-api-key") {
		cfg.Geocode.GoogleAPIKey, _ = flags.GetString("google-api-key")
	}
	if flags.Changed("prefix") {
		cfg.Report.Prefix, _ = flags.GetString("prefix")
	}
	if flags.Changed("title") {
		cfg.Report.Title, _ = flags.GetString("title")
	}
	if flags.Changed("thumb-width") {
		cfg.Report.ThumbWidth, _ = flags.GetInt("thumb-width")
	}
	if flags.Changed("concurrency") {
		cfg.Scan.Concurrency, _ = flags.GetInt("concurrency")
	}
}

// promptFolder asks for the folder interactively, the fallback when the
// binary is launched without arguments (double-click usage).
func promptFolder(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "Path to the photo folder: ")

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", errors.New("no folder given")
	}

	folder := strings.Trim(strings.TrimSpace(scanner.Text()), `"`)
	if folder == "" {
		return "", errors.New("no folder given")
	}
	return folder, nil
}

func runGenerate(ctx context.Context, cfg *config.Config, folder string) error {
	resolver := newResolver(cfg.Geocode)
	builder := record.NewBuilder(exifmeta.FileReader{}, resolver)
	renderer := report.NewHTML(cfg.Report.Title, cfg.Report.ThumbWidth)
	pool := worker.NewPool(cfg.Scan.Concurrency)

	pipe := pipeline.New(builder, renderer, pool, progress.New())
	outPath := report.OutputPath(folder, cfg.Report.Prefix, "html", time.Now())

	return pipe.Run(ctx, folder, outPath)
}

// newResolver picks the geocoding backend: Google Maps when a key is
// configured, the public Nominatim instance otherwise. Both are paced by
// the configured interval.
func newResolver(cfg config.GeocodeConfig) geocode.Resolver {
	var base geocode.Resolver

	if cfg.GoogleAPIKey != "" {
		g, err := geocode.NewGoogle(cfg.GoogleAPIKey, cfg.Language, cfg.Timeout)
		if err != nil {
			logger.Warn("Google geocoder unavailable, falling back to Nominatim: %v", err)
		} else {
			base = g
		}
	}
	if base == nil {
		base = geocode.NewNominatim(cfg.Endpoint, cfg.Language, cfg.Timeout)
	}

	return geocode.NewThrottled(base, cfg.Interval)
}
