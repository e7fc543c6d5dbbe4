package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"yashubustudio/answerfinder/finder"
	"yashubustudio/answerfinder/internal/logging"
)

type globalOptions struct {
	configPath string
	corpus     string
	threshold  int
	locale     string
	jsonLogs   bool
	logLevel   string
}

var opts globalOptions

var rootCmd = &cobra.Command{
	Use:   "answerfinder",
	Short: "Fuzzy question matcher over a fixed question/answer corpus",
	Long: `answerfinder matches free-form text against a corpus of
(question, variant) pairs and prints the variants whose question resembles
the text most, best first.

The corpus is a JSON array of {"question": ..., "variant": ...} objects. Its
location comes from --corpus, the config file, or ANSWERFINDER_CORPUS.

Examples:
  answerfinder ask "What is the capital of France?"
  answerfinder ask --best "who wrote hamlet"
  answerfinder batch --input questions.csv --column question
  answerfinder mcp`,
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to a TOML config file")
	flags.StringVar(&opts.corpus, "corpus", "", "Corpus location: file path or URL (overrides config)")
	flags.IntVar(&opts.threshold, "threshold", finder.DefaultThreshold, "Exclusive minimum similarity score (0-100)")
	flags.StringVar(&opts.locale, "locale", "", "BCP-47 locale for ordering tied variants (default und)")
	flags.BoolVar(&opts.jsonLogs, "json-logs", false, "Emit JSON logs")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(askCmd, batchCmd, configCmd, mcpCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "answerfinder: %v\n", err)
		os.Exit(1)
	}
}

// session bundles what every command needs.
type session struct {
	cfg     finder.Config
	logger  *zap.Logger
	service *finder.Service
}

// loadConfig merges the config file, environment and explicitly set flags.
func loadConfig(cmd *cobra.Command) (finder.Config, error) {
	cfg, err := finder.LoadConfig(opts.configPath)
	if err != nil {
		return cfg, errors.Wrap(err, "load config")
	}
	flags := cmd.Flags()
	if flags.Changed("corpus") {
		cfg.Corpus = opts.corpus
	}
	if flags.Changed("threshold") {
		cfg.Threshold = opts.threshold
	}
	if flags.Changed("locale") {
		cfg.Locale = opts.locale
	}
	if flags.Changed("json-logs") {
		cfg.Log.JSON = opts.jsonLogs
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// setup starts the corpus load and builds the service. When wait is true it
// blocks until the corpus resolves or the load timeout passes; on timeout the
// service keeps answering against an empty corpus.
func setup(cmd *cobra.Command, wait bool) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(logging.Options{JSON: cfg.Log.JSON, Level: cfg.Log.Level})
	if err != nil {
		return nil, err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	corpus := finder.LoadAsync(ctx, finder.ResourceLoader{Source: cfg.Corpus, Logger: logger}, logger)
	service, err := finder.NewService(corpus, cfg, logger)
	if err != nil {
		return nil, errors.Wrap(err, "init service")
	}
	if wait {
		waitCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.LoadTimeoutSeconds)*time.Second)
		defer cancel()
		if err := corpus.Wait(waitCtx); err != nil {
			logger.Warn("corpus not ready; answering against an empty corpus", zap.Error(err))
		}
	}
	return &session{cfg: cfg, logger: logger, service: service}, nil
}

func (s *session) close() {
	_ = s.logger.Sync()
}
