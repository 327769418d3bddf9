package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pfrederiksen/cpbl-games/internal/config"
	"github.com/pfrederiksen/cpbl-games/internal/logger"
	"github.com/pfrederiksen/cpbl-games/internal/metrics"
	"github.com/pfrederiksen/cpbl-games/internal/scan"
	"github.com/pfrederiksen/cpbl-games/internal/scraper"
	"github.com/pfrederiksen/cpbl-games/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// flagKeys maps shared flags onto config keys
var flagKeys = map[string]string{
	"base-url":     config.KeyBaseURL,
	"user-agent":   config.KeyUserAgent,
	"timeout":      config.KeyTimeout,
	"max-rps":      config.KeyMaxRPS,
	"retries":      config.KeyRetries,
	"log-level":    config.KeyLogLevel,
	"log-format":   config.KeyLogFormat,
	"log-file":     config.KeyLogFile,
	"cache":        config.KeyCacheBackend,
	"cache-dir":    config.KeyCacheDir,
	"redis-url":    config.KeyRedisURL,
	"metrics-file": config.KeyMetricsFile,
}

// app holds what a command needs once flags and config are resolved
type app struct {
	v          *viper.Viper
	configFile string
	format     string

	cfg     *config.Config
	log     *logger.Logger
	metrics *metrics.Recorder
	scraper *scraper.Scraper
	fetcher storage.Fetcher
	closers []io.Closer

	// sleep is swapped out in tests
	sleep scan.Sleeper
}

func newApp() *app {
	return &app{v: config.New()}
}

// addFlags registers the flags every command shares
func (a *app) addFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&a.configFile, "config", "", "Config file (yaml, json or toml)")
	f.StringVar(&a.format, "format", string(FormatJSON), "Output format: json or text")

	f.String("base-url", "", "Site root (default https://www.cpbl.com.tw)")
	f.String("user-agent", "", "User-Agent header sent with every request")
	f.Duration("timeout", 0, "Per-request timeout (default 20s)")
	f.Float64("max-rps", 0, "Maximum requests per second, 0 for no limit")
	f.Int("retries", 0, "Retries for network-level failures")
	f.String("log-level", "", "Log level: debug, info, warn or error (default info)")
	f.String("log-format", "", "Log format: text or json (default text)")
	f.String("log-file", "", "Write logs to a rotating file instead of stderr")
	f.String("cache", "", "Record cache backend: none, file or redis (default none)")
	f.String("cache-dir", "", "Directory for the file cache (default ~/.local/share/cpbl-games)")
	f.String("redis-url", "", "Redis URL for the redis cache, e.g. redis://localhost:6379/0")
	f.String("metrics-file", "", "Write Prometheus metrics to this file on exit")
}

// markRequired marks flags as required. It only fails for a flag that was
// never defined, which is a programming error.
func markRequired(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("marking --%s required: %v", name, err))
		}
	}
}

// setup resolves configuration and builds the shared components
func (a *app) setup(cmd *cobra.Command) error {
	for name, key := range flagKeys {
		if err := a.v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return fmt.Errorf("binding flag %s: %w", name, err)
		}
	}

	if err := config.ReadFiles(a.v, a.configFile); err != nil {
		return err
	}
	cfg, err := config.Resolve(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if _, err := ParseOutputFormat(a.format); err != nil {
		return err
	}

	if err := a.setupLogger(cmd.ErrOrStderr()); err != nil {
		return err
	}

	if cfg.MetricsFile != "" {
		a.metrics = metrics.NewRecorder()
	}

	a.scraper = scraper.New(
		scraper.WithBaseURL(cfg.BaseURL),
		scraper.WithUserAgent(cfg.UserAgent),
		scraper.WithTimeout(cfg.Timeout),
		scraper.WithRateLimit(cfg.MaxRPS),
		scraper.WithRetries(cfg.Retries),
		scraper.WithMetrics(a.metrics),
		scraper.WithLogger(a.log),
	)

	store, err := storage.Open(cfg.CacheBackend, cfg.CacheDir, cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("opening cache: %w", err)
	}
	if store != nil {
		a.closers = append(a.closers, store)
	}
	a.fetcher = storage.NewCachingFetcher(a.scraper, store, a.log, a.metrics)

	return nil
}

func (a *app) setupLogger(stderr io.Writer) error {
	level, err := logger.ParseLevel(a.cfg.LogLevel)
	if err != nil {
		return err
	}
	format, err := logger.ParseFormat(a.cfg.LogFormat)
	if err != nil {
		return err
	}

	out := stderr
	if a.cfg.LogFile != "" {
		w := logger.NewRotatingWriter(logger.FileConfig{Path: a.cfg.LogFile})
		a.closers = append(a.closers, w)
		out = w
	}

	a.log = logger.New(level, out).WithFormat(format)
	logger.SetDefault(a.log)
	return nil
}

// scanConfig returns the scanner settings for a delay
func (a *app) scanConfig(delay float64) scan.Config {
	return scan.Config{
		BaseURL: a.cfg.BaseURL,
		Delay:   secondsToDuration(delay),
		Sleep:   a.sleep,
		Logger:  a.log,
		Metrics: a.metrics,
	}
}

// close flushes metrics and releases the cache and log file
func (a *app) close() error {
	var errs []error
	if a.cfg != nil {
		if err := a.metrics.WriteTextfile(a.cfg.MetricsFile); err != nil {
			errs = append(errs, fmt.Errorf("writing metrics: %w", err))
		}
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// run wraps a command body with setup and teardown. Teardown also runs when
// setup fails part way, so a log file opened before the failure is closed.
func (a *app) run(body func(cmd *cobra.Command) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			if cerr := a.close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		if err := a.setup(cmd); err != nil {
			return err
		}
		return body(cmd)
	}
}

// execute runs cmd until it finishes or the process is interrupted
func execute(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}

// ExecuteGame runs the single-game command
func ExecuteGame() { execute(NewGameCmd()) }

// ExecuteMonth runs the schedule-link month command
func ExecuteMonth() { execute(NewMonthCmd()) }

// ExecuteRange runs the range-scan month command
func ExecuteRange() { execute(NewRangeCmd()) }
