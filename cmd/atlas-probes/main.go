package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/DavidGamba/go-getoptions"

	"github.com/balakrishnanc/ripe-utils/internal/atlas"
	"github.com/balakrishnanc/ripe-utils/internal/config"
	"github.com/balakrishnanc/ripe-utils/internal/export"
	"github.com/balakrishnanc/ripe-utils/internal/logger"
	"github.com/balakrishnanc/ripe-utils/internal/metrics"
	"github.com/balakrishnanc/ripe-utils/internal/router"
)

const version = "1.0.0"

// atlas-probes lists all RIPE Atlas probes into a delimited text file.
// Usage: atlas-probes -o <output path>
func main() {
	// Parse command-line options
	var outPath string
	var showVersion bool
	opt := getoptions.New()
	opt.StringVar(&outPath, "output", "", opt.Alias("o"), opt.Description("Relative/absolute path of the output file."))
	opt.BoolVar(&showVersion, "version", false)
	if _, err := opt.Parse(os.Args[1:]); err != nil {
		fmt.Printf("Failed to parse arguments: %s\n", err)
		os.Exit(1)
	}

	if showVersion {
		fmt.Printf("atlas-probes %s\n", version)
		return
	}

	if len(outPath) == 0 {
		fmt.Print("ERROR: No output path provided, aborting.\n\n")
		fmt.Print(opt.Help())
		os.Exit(1)
	}

	// Load configuration
	appConfig := config.Load()

	// Initialize components
	appLogger := setupLogger(appConfig)
	if err := appConfig.Validate(); err != nil {
		appLogger.Fatal().Err(err).Msg("Configuration validation failed")
	}

	metricsCollector := metrics.New()

	// Optional ops endpoints for scraping progress while a listing runs
	if appConfig.MetricsAddr != "" {
		startOpsServer(appConfig.MetricsAddr, appLogger)
	}

	// Fatal logging happens here, after run's deferred cleanup closed the
	// output file; rows already written stay in place on an abort
	if err := run(appConfig, outPath, appLogger, metricsCollector); err != nil {
		appLogger.Fatal().Err(err).Msg("Probe listing failed")
	}
}

// run performs the full listing: header first, then one row per probe
// pulled lazily from the catalog scanner
func run(appConfig *config.Config, outPath string, log *logger.Logger, m *metrics.Metrics) (err error) {
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	// The file is closed on every exit path, error exits included
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	client := atlas.NewClient(appConfig.APIBaseURL, appConfig.PageSize, appConfig.SortKey, m, log)
	writer := export.NewWriter(out)

	if err := writer.WriteHeader(); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	scanner := client.Probes()
	for scanner.Scan() {
		if err := writer.WriteProbe(scanner.Probe()); err != nil {
			return fmt.Errorf("write probe row: %w", err)
		}
		m.RowsWritten.Inc()

		if writer.Rows()%appConfig.ProgressInterval == 0 {
			log.Info().Int("probes", writer.Rows()).Msg("Listing in progress")
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	log.Info().
		Int("probes", writer.Rows()).
		Str("output", outPath).
		Msg("Fetched details of all probes")
	return nil
}

// setupLogger initializes the structured logger
func setupLogger(appConfig *config.Config) *logger.Logger {
	appLogger := logger.New(logger.Config{
		Level:  appConfig.LogLevel,
		Pretty: appConfig.LogPretty,
	})

	appLogger.Info().Msg("Starting RIPE Atlas probe listing...")
	appLogger.Info().
		Str("api_url", appConfig.APIBaseURL).
		Int("page_size", appConfig.PageSize).
		Str("sort", appConfig.SortKey).
		Int("progress_interval", appConfig.ProgressInterval).
		Msg("Configuration loaded")

	return appLogger
}

// startOpsServer serves /health and /metrics in the background
// Listing progress does not depend on it; a failure here only logs
func startOpsServer(addr string, log *logger.Logger) {
	opsRouter := router.SetupRouter()

	log.Info().
		Str("addr", addr).
		Str("metrics", "http://"+addr+"/metrics").
		Str("health_check", "http://"+addr+"/health").
		Msg("Ops server listening")

	go func() {
		if err := http.ListenAndServe(addr, opsRouter); err != nil {
			log.Warn().Err(err).Msg("Ops server stopped")
		}
	}()
}
