package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Providers    ProvidersConfig    `mapstructure:"providers"`
	Orchestrator OrchestratorConfig `mapstructure:"orchestrator"`
	Events       EventsConfig       `mapstructure:"events"`
}

type ServerConfig struct {
	Port         int    `mapstructure:"port"`
	Environment  string `mapstructure:"environment"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
}

// ProvidersConfig holds per-provider credentials and endpoints. An empty
// credential excludes the provider from the capability registry.
type ProvidersConfig struct {
	OpenAI         GenerationConfig  `mapstructure:"openai"`
	Anthropic      GenerationConfig  `mapstructure:"anthropic"`
	Gemini         GenerationConfig  `mapstructure:"gemini"`
	DeepSeek       GenerationConfig  `mapstructure:"deepseek"`
	DeepL          TranslationConfig `mapstructure:"deepl"`
	LibreTranslate TranslationConfig `mapstructure:"libretranslate"`
	TextAnalytics  ExtractionConfig  `mapstructure:"textanalytics"`
}

// GenerationConfig configures a text-generation provider.
type GenerationConfig struct {
	APIEndpoint string  `mapstructure:"api_endpoint"`
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
	Timeout     int     `mapstructure:"timeout"`
}

// TranslationConfig configures a translation provider. Self-hosted
// LibreTranslate instances may run without a key, so availability for that
// provider is keyed on the endpoint instead.
type TranslationConfig struct {
	APIEndpoint string `mapstructure:"api_endpoint"`
	APIKey      string `mapstructure:"api_key"`
	Timeout     int    `mapstructure:"timeout"`
}

// ExtractionConfig configures an entity-extraction provider.
type ExtractionConfig struct {
	APIEndpoint string `mapstructure:"api_endpoint"`
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	Timeout     int    `mapstructure:"timeout"`
}

type OrchestratorConfig struct {
	TaskTimeout         int                 `mapstructure:"task_timeout"`
	EnrichmentMinLength int                 `mapstructure:"enrichment_min_length"`
	MaxEntities         int                 `mapstructure:"max_entities"`
	ValidateOnStart     bool                `mapstructure:"validate_on_start"`
	Preferences         map[string][]string `mapstructure:"preferences"`
}

type EventsConfig struct {
	BufferSize      int `mapstructure:"buffer_size"`
	ShutdownTimeout int `mapstructure:"shutdown_timeout"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	// Set defaults
	setDefaults()

	// Enable environment variable support
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.environment", "development")
	viper.SetDefault("server.read_timeout", 30)
	viper.SetDefault("server.write_timeout", 30)

	viper.SetDefault("providers.openai.api_endpoint", "https://api.openai.com/v1/chat/completions")
	viper.SetDefault("providers.openai.api_key", "")
	viper.SetDefault("providers.openai.model", "gpt-4o-mini")
	viper.SetDefault("providers.openai.max_tokens", 1024)
	viper.SetDefault("providers.openai.temperature", 0.3)
	viper.SetDefault("providers.openai.timeout", 30)

	viper.SetDefault("providers.anthropic.api_endpoint", "https://api.anthropic.com/v1/messages")
	viper.SetDefault("providers.anthropic.api_key", "")
	viper.SetDefault("providers.anthropic.model", "claude-3-5-haiku-latest")
	viper.SetDefault("providers.anthropic.max_tokens", 1024)
	viper.SetDefault("providers.anthropic.temperature", 0.3)
	viper.SetDefault("providers.anthropic.timeout", 30)

	viper.SetDefault("providers.gemini.api_endpoint", "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent")
	viper.SetDefault("providers.gemini.api_key", "")
	viper.SetDefault("providers.gemini.model", "gemini-1.5-flash")
	viper.SetDefault("providers.gemini.max_tokens", 1024)
	viper.SetDefault("providers.gemini.temperature", 0.3)
	viper.SetDefault("providers.gemini.timeout", 30)

	viper.SetDefault("providers.deepseek.api_endpoint", "https://api.deepseek.com/chat/completions")
	viper.SetDefault("providers.deepseek.api_key", "")
	viper.SetDefault("providers.deepseek.model", "deepseek-chat")
	viper.SetDefault("providers.deepseek.max_tokens", 1024)
	viper.SetDefault("providers.deepseek.temperature", 0.3)
	viper.SetDefault("providers.deepseek.timeout", 30)

	viper.SetDefault("providers.deepl.api_endpoint", "https://api-free.deepl.com/v2/translate")
	viper.SetDefault("providers.deepl.api_key", "")
	viper.SetDefault("providers.deepl.timeout", 20)

	viper.SetDefault("providers.libretranslate.api_endpoint", "")
	viper.SetDefault("providers.libretranslate.api_key", "")
	viper.SetDefault("providers.libretranslate.timeout", 20)

	viper.SetDefault("providers.textanalytics.api_endpoint", "")
	viper.SetDefault("providers.textanalytics.api_key", "")
	viper.SetDefault("providers.textanalytics.model", "latest")
	viper.SetDefault("providers.textanalytics.timeout", 15)

	viper.SetDefault("orchestrator.task_timeout", 90)
	viper.SetDefault("orchestrator.enrichment_min_length", 280)
	viper.SetDefault("orchestrator.max_entities", 10)
	viper.SetDefault("orchestrator.validate_on_start", false)

	viper.SetDefault("events.buffer_size", 1000)
	viper.SetDefault("events.shutdown_timeout", 30)
}
