package config

import (
	"server/internal/logger"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort  string
	Environment string

	DatabaseDbPath       string
	DatabaseCacheAddress string
	DatabaseCachePort    int
	DatabaseCacheAuth    string

	StorageBucket        string
	StorageRegion        string
	StorageEndpoint      string
	StoragePublicBaseURL string
	StorageKeyPrefix     string

	SessionTTLMinutes int

	// EvaluatorAccessCode gates evaluator signup. There is no default:
	// when unset, signup is disabled entirely.
	EvaluatorAccessCode string

	MaxResumeBytes    int64
	MaxImageBytes     int64
	MaxPortfolioCount int
}

func InitConfig() (Config, error) {
	log := logger.New("config").Function("InitConfig")

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DATABASE_DB_PATH", "data/atelier.db")
	viper.SetDefault("DATABASE_CACHE_ADDRESS", "localhost")
	viper.SetDefault("DATABASE_CACHE_PORT", 6379)
	viper.SetDefault("STORAGE_REGION", "us-east-1")
	viper.SetDefault("STORAGE_KEY_PREFIX", "atelier-hiring")
	viper.SetDefault("SESSION_TTL_MINUTES", 720)
	viper.SetDefault("MAX_RESUME_BYTES", 10<<20)
	viper.SetDefault("MAX_IMAGE_BYTES", 8<<20)
	viper.SetDefault("MAX_PORTFOLIO_COUNT", 12)

	viper.AutomaticEnv()

	config := Config{
		ServerPort:  viper.GetString("SERVER_PORT"),
		Environment: viper.GetString("ENVIRONMENT"),

		DatabaseDbPath:       viper.GetString("DATABASE_DB_PATH"),
		DatabaseCacheAddress: viper.GetString("DATABASE_CACHE_ADDRESS"),
		DatabaseCachePort:    viper.GetInt("DATABASE_CACHE_PORT"),
		DatabaseCacheAuth:    viper.GetString("DATABASE_CACHE_AUTH"),

		StorageBucket:        viper.GetString("STORAGE_BUCKET"),
		StorageRegion:        viper.GetString("STORAGE_REGION"),
		StorageEndpoint:      viper.GetString("STORAGE_ENDPOINT"),
		StoragePublicBaseURL: viper.GetString("STORAGE_PUBLIC_BASE_URL"),
		StorageKeyPrefix:     viper.GetString("STORAGE_KEY_PREFIX"),

		SessionTTLMinutes: viper.GetInt("SESSION_TTL_MINUTES"),

		EvaluatorAccessCode: viper.GetString("EVALUATOR_ACCESS_CODE"),

		MaxResumeBytes:    viper.GetInt64("MAX_RESUME_BYTES"),
		MaxImageBytes:     viper.GetInt64("MAX_IMAGE_BYTES"),
		MaxPortfolioCount: viper.GetInt("MAX_PORTFOLIO_COUNT"),
	}

	if config.StorageBucket == "" {
		return Config{}, log.ErrMsg("STORAGE_BUCKET is required")
	}

	if config.EvaluatorAccessCode == "" {
		log.Warn("EVALUATOR_ACCESS_CODE is not set, evaluator signup is disabled")
	}

	return config, nil
}
