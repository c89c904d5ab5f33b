package main

import (
	"fmt"
	"io"

	"github.com/phrazzld/lexsuggest/internal/config"
	"github.com/phrazzld/lexsuggest/internal/platform/logger"
	"github.com/spf13/cobra"
)

// rootOptions holds the global flags.
type rootOptions struct {
	configFile string
	logLevel   string
}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "lexsuggest",
		Short: "Search suggestions for Indian legal cases",
		Long: `lexsuggest turns a search query into up to five legal case suggestions
using the Gemini API.

The API key is read from GEMINI_API_KEY or LEXSUGGEST_LLM_GEMINI_API_KEY on
every request. Other settings come from config.yaml or LEXSUGGEST_* variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "path to a config file (default ./config.yaml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")

	root.AddCommand(
		newServeCmd(opts),
		newQueryCmd(opts),
		newWatchCmd(opts),
	)
	return root
}

// loadConfig loads configuration honouring the global flags.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	var loadOpts []config.LoadOption
	if o.configFile != "" {
		loadOpts = append(loadOpts, config.WithConfigFile(o.configFile))
	}

	cfg, err := config.Load(loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if o.logLevel != "" {
		if _, ok := logger.ParseLevel(o.logLevel); !ok {
			return nil, fmt.Errorf("invalid log level %q", o.logLevel)
		}
		cfg.Server.LogLevel = o.logLevel
	}
	return cfg, nil
}

// bootstrap loads configuration, sets up logging to logOut and builds the
// application.
func (o *rootOptions) bootstrap(logOut io.Writer) (*application, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}

	log, err := logger.SetupWithWriter(cfg.Server, logOut)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Debug("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"model", cfg.LLM.ModelName,
		"debounce_interval", cfg.Search.DebounceInterval,
		"request_timeout", cfg.Search.RequestTimeout,
		"api_key_present", cfg.APIKey() != "")

	return newApplication(cfg, log)
}

