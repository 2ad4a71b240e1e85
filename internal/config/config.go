package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"loom/internal/chunk"
	"loom/internal/llmgen"
	"loom/internal/render"
)

// Config holds all application configuration
type Config struct {
	App      App      `mapstructure:"app"`
	AI       AI       `mapstructure:"ai"`
	Pipeline Pipeline `mapstructure:"pipeline"`
	Output   Output   `mapstructure:"output"`
	Logging  Logging  `mapstructure:"logging"`
}

// App holds general application configuration
type App struct {
	Debug      bool   `mapstructure:"debug"`
	ConfigFile string `mapstructure:"config_file"`
}

// AI holds AI/LLM configuration
type AI struct {
	Provider string       `mapstructure:"provider"`
	Gemini   GeminiConfig `mapstructure:"gemini"`
	OpenAI   OpenAIConfig `mapstructure:"openai"`
}

// GeminiConfig holds Google Gemini configuration
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// OpenAIConfig holds OpenAI configuration
type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// Pipeline holds narrative pipeline tuning
type Pipeline struct {
	Topic            string  `mapstructure:"topic"`
	SplitThreshold   int     `mapstructure:"split_threshold"`
	MaxExamples      int     `mapstructure:"max_examples"`
	Temperature      float32 `mapstructure:"temperature"`
	FinalTemperature float32 `mapstructure:"final_temperature"`
	ContinueOnError  bool    `mapstructure:"continue_on_error"`
}

// Output holds output configuration
type Output struct {
	Directory string `mapstructure:"directory"`
	Filename  string `mapstructure:"filename"`
}

// Logging holds logging configuration
type Logging struct {
	Level string `mapstructure:"level"`
}

var globalConfig *Config

// Load loads the configuration from various sources
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}

	// Configure viper
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".loom")
		viper.SetConfigType("yaml")
	}

	// Set defaults
	setDefaults()

	// Bind environment variables
	bindEnvironmentVariables()

	// Enable automatic environment variable reading
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Unmarshal into struct
	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Expand paths
	if config.Output.Directory != "" {
		config.Output.Directory = expandPath(config.Output.Directory)
	}

	// Validate configuration
	if err := validateConfig(config); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// Reset clears the cached configuration. Intended for tests.
func Reset() {
	globalConfig = nil
	viper.Reset()
}

// setDefaults sets default configuration values
func setDefaults() {
	// App defaults
	viper.SetDefault("app.debug", false)

	// AI defaults
	viper.SetDefault("ai.provider", "openai")
	viper.SetDefault("ai.gemini.model", llmgen.DefaultGeminiModel)
	viper.SetDefault("ai.openai.model", llmgen.DefaultOpenAIModel)

	// Pipeline defaults
	viper.SetDefault("pipeline.topic", "")
	viper.SetDefault("pipeline.split_threshold", chunk.DefaultThreshold)
	viper.SetDefault("pipeline.max_examples", render.DefaultMaxExamples)
	viper.SetDefault("pipeline.temperature", 0.3)
	viper.SetDefault("pipeline.final_temperature", 0.4)
	viper.SetDefault("pipeline.continue_on_error", true)

	// Output defaults
	viper.SetDefault("output.directory", "reports")
	viper.SetDefault("output.filename", "narratives.md")

	// Logging defaults
	viper.SetDefault("logging.level", "info")
}

// bindEnvironmentVariables sets up flexible environment variable binding
func bindEnvironmentVariables() {
	// Gemini API key - support multiple formats
	bindEnvKeys("ai.gemini.api_key", []string{
		"GEMINI_API_KEY",
		"GOOGLE_GEMINI_API_KEY",
		"GOOGLE_AI_API_KEY",
	})

	// OpenAI API key
	bindEnvKeys("ai.openai.api_key", []string{
		"OPENAI_API_KEY",
	})

	// General settings
	bindEnvKeys("app.debug", []string{
		"DEBUG",
		"LOOM_DEBUG",
	})

	bindEnvKeys("ai.provider", []string{
		"LOOM_AI_PROVIDER",
	})

	bindEnvKeys("pipeline.topic", []string{
		"LOOM_TOPIC",
	})
}

// bindEnvKeys binds the first found environment variable to a viper key
func bindEnvKeys(viperKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			viper.Set(viperKey, value)
			return
		}
	}
}

// validateConfig checks configuration consistency
func validateConfig(config *Config) error {
	switch config.AI.Provider {
	case "gemini", "openai":
	default:
		return fmt.Errorf("unknown ai.provider %q (expected \"gemini\" or \"openai\")", config.AI.Provider)
	}
	if config.Pipeline.SplitThreshold < 0 {
		return fmt.Errorf("pipeline.split_threshold must not be negative, got %d", config.Pipeline.SplitThreshold)
	}
	if config.Pipeline.MaxExamples < 0 {
		return fmt.Errorf("pipeline.max_examples must not be negative, got %d", config.Pipeline.MaxExamples)
	}
	for key, t := range map[string]float32{
		"pipeline.temperature":       config.Pipeline.Temperature,
		"pipeline.final_temperature": config.Pipeline.FinalTemperature,
	} {
		if t < 0 || t > 2 {
			return fmt.Errorf("%s must be between 0 and 2, got %g", key, t)
		}
	}
	return nil
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		path = filepath.Join(home, path[2:])
	}
	return os.ExpandEnv(path)
}
