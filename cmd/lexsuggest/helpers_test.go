package main

import (
	"testing"
	"time"

	"github.com/phrazzld/lexsuggest/internal/config"
	"github.com/phrazzld/lexsuggest/internal/generation"
	"github.com/phrazzld/lexsuggest/internal/platform/logger"
	"github.com/stretchr/testify/require"
)

// testConfig returns a valid configuration that never needs the network.
func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:            8080,
			LogLevel:        "debug",
			ShutdownTimeout: 2 * time.Second,
		},
		LLM: config.LLMConfig{
			ModelName: config.DefaultModelName,
		},
		Search: config.SearchConfig{
			DebounceInterval: time.Second,
			RequestTimeout:   2 * time.Second,
		},
	}
}

// newTestApp builds an application around gen and captures its logs.
func newTestApp(t *testing.T, gen generation.TextGenerator) (*application, *logger.TestLogBuffer) {
	t.Helper()

	logs, log := logger.SetupTestLogger(t, nil)
	app, err := newApplication(testConfig(), log, withGenerator(gen))
	require.NoError(t, err)
	return app, logs
}
