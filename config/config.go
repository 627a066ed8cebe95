package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB     int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAIContextDB int    `mapstructure:"REDIS_AI_CONTEXT_DB"`
	RedisSyncQueueDB int    `mapstructure:"REDIS_SYNC_QUEUE_DB"`

	// Gemini / Google Cloud credentials.
	GeminiAPIKey             string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel              string `mapstructure:"GEMINI_MODEL"`
	GoogleServiceAccountFile string `mapstructure:"GOOGLE_SERVICE_ACCOUNT_FILE"`
	GoogleCalendarID         string `mapstructure:"GOOGLE_CALENDAR_ID"`

	// Scheduling window policy (hours local to SchedTimezone).
	SchedTimezone        string `mapstructure:"SCHED_TIMEZONE"`
	SchedWindowStartHour int    `mapstructure:"SCHED_WINDOW_START_HOUR"`
	SchedWindowEndHour   int    `mapstructure:"SCHED_WINDOW_END_HOUR"`
	SchedStepMinutes     int    `mapstructure:"SCHED_STEP_MINUTES"`
	SchedMaxCandidates   int    `mapstructure:"SCHED_MAX_CANDIDATES"`

	// Calendar sync worker.
	SyncLookaheadDays int `mapstructure:"SYNC_LOOKAHEAD_DAYS"`
	SyncIntervalMin   int `mapstructure:"SYNC_INTERVAL_MIN"`
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
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_AI_CONTEXT_DB", 1)
	viper.SetDefault("REDIS_SYNC_QUEUE_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "models/gemini-1.5-pro")
	viper.SetDefault("GOOGLE_SERVICE_ACCOUNT_FILE", "")
	viper.SetDefault("GOOGLE_CALENDAR_ID", "primary")
	viper.SetDefault("SCHED_TIMEZONE", "America/Los_Angeles")
	viper.SetDefault("SCHED_WINDOW_START_HOUR", 5)
	viper.SetDefault("SCHED_WINDOW_END_HOUR", 24)
	viper.SetDefault("SCHED_STEP_MINUTES", 30)
	viper.SetDefault("SCHED_MAX_CANDIDATES", 500)
	viper.SetDefault("SYNC_LOOKAHEAD_DAYS", 7)
	viper.SetDefault("SYNC_INTERVAL_MIN", 15)

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

// SchedLocation resolves the configured scheduling time zone. The zone must
// exist in the IANA database; a bad value is a startup fault.
func SchedLocation() *time.Location {
	loc, err := time.LoadLocation(AppConfig.SchedTimezone)
	if err != nil {
		log.Fatalf("Failed to load scheduling timezone %q: %v", AppConfig.SchedTimezone, err)
	}
	return loc
}

func SyncInterval() time.Duration {
	return time.Duration(AppConfig.SyncIntervalMin) * time.Minute
}
