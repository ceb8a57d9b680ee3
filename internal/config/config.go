package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort string `mapstructure:"SERVER_PORT"`

	DBHost     string `mapstructure:"DB_HOST"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBPort     string `mapstructure:"DB_PORT"`

	S3Endpoint        string `mapstructure:"S3_ENDPOINT"`
	S3AccessKeyID     string `mapstructure:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `mapstructure:"S3_SECRET_ACCESS_KEY"`
	S3BucketName      string `mapstructure:"S3_BUCKET_NAME"`
	S3Region          string `mapstructure:"S3_REGION"`
	S3UseSSL          bool   `mapstructure:"S3_USE_SSL"`

	LocalStorageDir string `mapstructure:"LOCAL_STORAGE_DIR"`

	RedisAddr       string `mapstructure:"REDIS_ADDR"`
	CacheTTLSeconds int    `mapstructure:"CACHE_TTL_SECONDS"`

	StorageTimeoutSeconds int  `mapstructure:"STORAGE_TIMEOUT_SECONDS"`
	ProbeTimeoutSeconds   int  `mapstructure:"PROBE_TIMEOUT_SECONDS"`
	ProbeEnabled          bool `mapstructure:"PROBE_ENABLED"`

	RateLimitPerSecond float64 `mapstructure:"RATE_LIMIT_PER_SECOND"`
}

func LoadConfig() (config Config, err error) {
	viper.AddConfigPath(".")
	viper.SetConfigName("app") // Name of our config file (without extension)
	viper.SetConfigType("env") // Look for .env extension

	viper.AutomaticEnv() // Read environment variables that match

	setDefaults()

	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Config file not found, using environment variables or defaults.")
			err = nil
		} else {
			return
		}
	}

	err = viper.Unmarshal(&config)
	return
}

// Viper only unmarshals keys it has seen, so every key gets a default,
// even when that default is the zero value.
func setDefaults() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("DB_HOST", "")
	viper.SetDefault("DB_USER", "")
	viper.SetDefault("DB_PASSWORD", "")
	viper.SetDefault("DB_NAME", "")
	viper.SetDefault("DB_PORT", "")
	viper.SetDefault("S3_ENDPOINT", "")
	viper.SetDefault("S3_ACCESS_KEY_ID", "")
	viper.SetDefault("S3_SECRET_ACCESS_KEY", "")
	viper.SetDefault("S3_BUCKET_NAME", "")
	viper.SetDefault("S3_REGION", "")
	viper.SetDefault("S3_USE_SSL", false)
	viper.SetDefault("LOCAL_STORAGE_DIR", "./uploads")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("CACHE_TTL_SECONDS", 600)
	viper.SetDefault("STORAGE_TIMEOUT_SECONDS", 30)
	viper.SetDefault("PROBE_TIMEOUT_SECONDS", 5)
	viper.SetDefault("PROBE_ENABLED", true)
	viper.SetDefault("RATE_LIMIT_PER_SECOND", 20)
}

func (c Config) StorageTimeout() time.Duration {
	return time.Duration(c.StorageTimeoutSeconds) * time.Second
}

func (c Config) ProbeTimeout() time.Duration {
	return time.Duration(c.ProbeTimeoutSeconds) * time.Second
}

func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
