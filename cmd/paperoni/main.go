// Package main provides the paperoni CLI entry point.
package main

import (
	"encoding/json"
	"os"

	"github.com/Simnol22/paperoni/internal/config"
	"github.com/Simnol22/paperoni/internal/scraper"
	"github.com/Simnol22/paperoni/internal/semscholar"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// verbose enables debug logging of requests and raw records
var verbose bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "paperoni",
	Short: "Collect bibliographic records from scholarly data sources",
	Long: `paperoni collects bibliographic records from scholarly data sources
and normalizes them into a canonical model (papers, authors, venues,
releases, topics, links).

Queries stream results lazily while respecting each source's request
quota. All commands output JSON by default; use --human for a
human-readable view.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Load .env file if present (for S2_API_KEY)
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log requests and raw records to stderr")
	rootCmd.Version = Version
}

// newLogger builds the CLI logger. Debug output is gated on --verbose.
func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

// newSemanticScholarClient builds the shared Semantic Scholar client
// from the global config.
func newSemanticScholarClient(cfg *config.GlobalConfig) *semscholar.Client {
	log := newLogger()

	opts := []semscholar.ClientOption{
		semscholar.WithLogger(log),
		semscholar.WithRecordObserver(func(raw json.RawMessage) {
			log.Debug().RawJSON("record", raw).Msg("raw record")
		}),
	}
	if key := cfg.APIKey(); key != "" {
		opts = append(opts, semscholar.WithAPIKey(key))
	}
	if window, requests := cfg.RateWindow(); requests > 0 {
		opts = append(opts, semscholar.WithRateWindow(window, requests))
	}
	return semscholar.NewClient(opts...)
}

// newRegistry assembles the data-source registry. Sources are
// registered here, explicitly, at startup.
func newRegistry(cfg *config.GlobalConfig) *scraper.Registry {
	reg := scraper.NewRegistry()
	// Register never fails here; names are unique by construction.
	_ = reg.Register(semscholar.NewSource(newSemanticScholarClient(cfg)))
	return reg
}

// loadConfig loads the global config or exits.
func loadConfig() *config.GlobalConfig {
	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}
