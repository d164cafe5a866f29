// Package main is the entry point for the swim-scraper CLI
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/myusername/swim-scraper/internal/config"
	"github.com/myusername/swim-scraper/internal/logging"
	"github.com/myusername/swim-scraper/pkg/scraper"
	"github.com/myusername/swim-scraper/pkg/swimcloud"
	"github.com/myusername/swim-scraper/pkg/teams"
)

// Version is set during build using ldflags
var (
	version = "dev"
)

// App holds the application dependencies
type App struct {
	cfg     *config.Config
	logger  *zap.Logger
	fetcher *scraper.Client
	teams   *teams.Service
	client  *swimcloud.Client
}

var (
	configPath string
	logLevel   string
	outputDir  string
	app        *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "swim-scraper",
		Short:         "Scrape swimcloud times, rosters and recruiting rankings into tables",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.logger != nil {
				_ = app.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (default: $"+config.EnvConfigPath+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Console log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "Output directory for CSV files")

	rootCmd.AddCommand(eventsCmd())
	rootCmd.AddCommand(teamsCmd())
	rootCmd.AddCommand(rosterCmd())
	rootCmd.AddCommand(recruitsCmd())
	rootCmd.AddCommand(timesCmd())
	rootCmd.AddCommand(performanceCmd())
	rootCmd.AddCommand(rankingsCmd())
	rootCmd.AddCommand(meetPDFCmd())
	rootCmd.AddCommand(dumpCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		color.Red("✗ %v", err)
		stop()
		os.Exit(1)
	}
}

// initApp loads the configuration then sets up the logger, HTTP client,
// teams table and swimcloud client
func initApp() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}

	logger, err := logging.InitLogger("swim-scraper", cfg.LogDir, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Debug("configuration loaded", zap.String("base_url", cfg.BaseURL), zap.String("teams_csv", cfg.TeamsCSV))

	fetcher := scraper.NewClient(scraper.Options{
		Timeout:          cfg.Timeout(),
		UserAgent:        cfg.UserAgent,
		CloudflareBypass: cfg.CloudflareBypass,
		RawDir:           cfg.RawDir,
		Logger:           logger,
	})

	svc := teams.NewService(teams.Load(cfg.TeamsCSV, logger), logger)
	logger.Debug("teams table loaded", zap.Int("teams", svc.Current().Len()))

	app = &App{
		cfg:     cfg,
		logger:  logger,
		fetcher: fetcher,
		teams:   svc,
		client: swimcloud.NewClient(fetcher, svc, swimcloud.Options{
			BaseURL:          cfg.BaseURL,
			UserAgent:        cfg.UserAgent,
			BrowserUserAgent: cfg.BrowserUserAgent,
			Referer:          cfg.Referer,
			PageDelay:        cfg.PageDelay(),
			Logger:           logger,
		}),
	}
	return nil
}

// outputPath joins name onto the configured output directory, creating it
func outputPath(name string) (string, error) {
	if filepath.IsAbs(name) || filepath.Dir(name) != "." {
		return name, nil
	}
	if err := os.MkdirAll(app.cfg.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	return filepath.Join(app.cfg.OutputDir, name), nil
}

// saveCSV writes rows with save when name is not empty and reports the result
func saveCSV(name string, rows int, save func(path string) error) error {
	if name == "" {
		return nil
	}
	path, err := outputPath(name)
	if err != nil {
		return err
	}
	if err := save(path); err != nil {
		return err
	}
	color.Green("✓ Wrote %d rows to %s", rows, path)
	return nil
}
