package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	LLM    LLMConfig    `mapstructure:"llm"    validate:"required"`
	Search SearchConfig `mapstructure:"search" validate:"required"`

	// v is kept so the API key can be read through at call time
	v *viper.Viper
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port"             validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level"        validate:"required,oneof=debug info warn error"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0s"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	// GeminiAPIKey is the value seen at load time. It is optional here because
	// the credential is read again on every request; see Config.APIKey.
	GeminiAPIKey string `mapstructure:"gemini_api_key"`

	// ModelName is the Gemini model identifier
	ModelName string `mapstructure:"model_name" validate:"required"`

	// PromptTemplatePath optionally replaces the built-in suggestion prompt
	PromptTemplatePath string `mapstructure:"prompt_template_path" validate:"omitempty,file"`
}

// SearchConfig contains settings for the suggestion pipeline.
type SearchConfig struct {
	// DebounceInterval is the quiet period before a query is searched
	DebounceInterval time.Duration `mapstructure:"debounce_interval" validate:"gt=0s"`

	// RequestTimeout bounds each call to the language model
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"gt=0s,lte=2m"`
}

// APIKey returns the current Gemini API credential. When the configuration
// was produced by Load, the value is read through viper on each call, which
// consults the environment again; otherwise the loaded value is returned.
func (c *Config) APIKey() string {
	if c.v != nil {
		return c.v.GetString("llm.gemini_api_key")
	}
	return c.LLM.GeminiAPIKey
}
