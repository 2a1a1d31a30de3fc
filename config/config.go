package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr         string `mapstructure:"REDIS_ADDR"`
	RedisPassword     string `mapstructure:"REDIS_PASSWORD"`
	RedisSnapshotDB   int    `mapstructure:"REDIS_SNAPSHOT_DB"`
	RedisUsageQueueDB int    `mapstructure:"REDIS_USAGE_QUEUE_DB"`

	// Assistant configuration.
	AIEnabled            bool    `mapstructure:"AI_ENABLED"`
	GeminiAPIKey         string  `mapstructure:"GEMINI_API_KEY"`
	AIModel              string  `mapstructure:"AI_MODEL"`
	AIMaxTokens          int     `mapstructure:"AI_MAX_TOKENS"`
	AIRequestTimeoutSecs int     `mapstructure:"AI_REQUEST_TIMEOUT_SECONDS"`
	AIPromptCostPer1K    float64 `mapstructure:"AI_PROMPT_COST_PER_1K"`
	AICompletionCost1K   float64 `mapstructure:"AI_COMPLETION_COST_PER_1K"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SNAPSHOT_DB", 0)
	viper.SetDefault("REDIS_USAGE_QUEUE_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("AI_ENABLED", true)
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("AI_MODEL", "models/gemini-1.5-pro")
	viper.SetDefault("AI_MAX_TOKENS", 4096)
	viper.SetDefault("AI_REQUEST_TIMEOUT_SECONDS", 45)
	viper.SetDefault("AI_PROMPT_COST_PER_1K", 0.00125)
	viper.SetDefault("AI_COMPLETION_COST_PER_1K", 0.005)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
