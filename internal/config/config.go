package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type APIConfig struct {
	BaseURL string
}

// SessionConfig selects where the access token survives restarts.
// Backend is one of "file", "redis" or "postgres".
type SessionConfig struct {
	Backend string
	Path    string
	Key     string
}

type PostgresConfig struct {
	DSN             string
	MaxOpen         int
	MaxIdle         int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// StorageConfig is only used when Uploader is "objectstore"; the default
// "api" uploader posts images to the backend's asset endpoint.
type StorageConfig struct {
	Uploader      string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	Region        string
	PublicBaseURL string
}

type UploadConfig struct {
	ProductMaxBytes  int64
	CategoryMaxBytes int64
	MaxProductImages int
}

type DashboardConfig struct {
	Refresh       string
	FlashDuration time.Duration
}

type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type AppConfig struct {
	Environment      string
	HTTP             HTTPConfig
	API              APIConfig
	Session          SessionConfig
	Postgres         PostgresConfig
	Redis            RedisConfig
	Storage          StorageConfig
	Upload           UploadConfig
	Dashboard        DashboardConfig
	Log              LogConfig
	AllowCORSOrigins []string
}

func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("roopadmin")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.roopadmin")

	v.SetEnvPrefix("ROOPADMIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("api.baseurl is required")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("http.host", "127.0.0.1")
	v.SetDefault("http.port", 8090)
	v.SetDefault("http.readtimeout", "10s")
	v.SetDefault("http.writetimeout", "30s")
	v.SetDefault("http.idletimeout", "60s")

	v.SetDefault("api.baseurl", "")

	v.SetDefault("session.backend", "file")
	v.SetDefault("session.path", "$HOME/.roopadmin")
	v.SetDefault("session.key", "accessToken")

	v.SetDefault("postgres.maxopen", 4)
	v.SetDefault("postgres.maxidle", 1)
	v.SetDefault("postgres.connmaxlifetime", "30m")

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("storage.uploader", "api")
	v.SetDefault("storage.bucket", "roop-product-images")
	v.SetDefault("storage.usessl", false)
	v.SetDefault("storage.region", "us-east-1")

	v.SetDefault("upload.productmaxbytes", 10<<20)
	v.SetDefault("upload.categorymaxbytes", 5<<20)
	v.SetDefault("upload.maxproductimages", 5)

	v.SetDefault("dashboard.refresh", "")
	v.SetDefault("dashboard.flashduration", "3s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.maxsizemb", 64)
	v.SetDefault("log.maxbackups", 7)
	v.SetDefault("log.maxagedays", 7)
}
