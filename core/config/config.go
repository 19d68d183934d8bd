package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"beacon-attendance/core/constants"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Timezone  TimezoneConfig  `mapstructure:"timezone"`
	Notifier  NotifierConfig  `mapstructure:"notifier"`
	OneSignal OneSignalConfig `mapstructure:"onesignal"`
	Storage   StorageConfig   `mapstructure:"storage"`
}

type ServerConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"dbname"`
	SSLMode         string `mapstructure:"sslmode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // in minutes
	AutoMigrate     bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWTConfig struct {
	Secret          string `mapstructure:"secret"`
	Issuer          string `mapstructure:"issuer"`
	AccessTTLMinute int    `mapstructure:"access_ttl_minutes"`
}

type TimezoneConfig struct {
	Display string `mapstructure:"display"`
}

type NotifierConfig struct {
	Enabled         bool `mapstructure:"enabled"`
	IntervalSeconds int  `mapstructure:"interval_seconds"`
	LeadTimeMinutes int  `mapstructure:"lead_time_minutes"`
	WorkerEnabled   bool `mapstructure:"worker_enabled"`
}

type OneSignalConfig struct {
	AppID      string `mapstructure:"app_id"`
	RestAPIKey string `mapstructure:"rest_api_key"`
	APIURL     string `mapstructure:"api_url"`
}

type StorageConfig struct {
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// Enabled reports whether report archiving to object storage is configured.
func (s StorageConfig) Enabled() bool {
	return s.Bucket != ""
}

var (
	instance *Config
	mu       sync.RWMutex
)

// Init loads .env, config.yaml and the environment, then stores the result
// as the process-wide configuration.
func Init() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := Load(viper.New())
	if err != nil {
		return nil, err
	}

	mu.Lock()
	instance = cfg
	mu.Unlock()
	return cfg, nil
}

// Load reads configuration through the given viper instance. Environment
// variables use the upper-cased key path with dots replaced by underscores,
// e.g. NOTIFIER_LEAD_TIME_MINUTES.
func Load(v *viper.Viper) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 7070)
	v.SetDefault("server.env", "development")
	v.SetDefault("server.log_level", "info")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "beacon_attendance")
	v.SetDefault("database.sslmode", constants.DatabaseSSLMode)
	v.SetDefault("database.max_open_conns", constants.DatabaseMaxOpenConns)
	v.SetDefault("database.max_idle_conns", constants.DatabaseMaxIdleConns)
	v.SetDefault("database.conn_max_lifetime", constants.DatabaseConnMaxLifetime)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "beacon-attendance")
	v.SetDefault("jwt.access_ttl_minutes", 60)

	v.SetDefault("timezone.display", constants.DefaultDisplayTimezone)

	v.SetDefault("notifier.enabled", true)
	v.SetDefault("notifier.interval_seconds", constants.DefaultNotifierIntervalSecond)
	v.SetDefault("notifier.lead_time_minutes", constants.DefaultNotifierLeadMinutes)
	v.SetDefault("notifier.worker_enabled", true)

	v.SetDefault("onesignal.app_id", "")
	v.SetDefault("onesignal.rest_api_key", "")
	v.SetDefault("onesignal.api_url", "https://onesignal.com/api/v1/notifications")

	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.access_key", "")
	v.SetDefault("storage.secret_key", "")
	v.SetDefault("storage.prefix", "reports")
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.JWT.Secret == "" {
		return errors.New("jwt secret is required (JWT_SECRET)")
	}
	if c.Notifier.IntervalSeconds <= 0 {
		return fmt.Errorf("invalid notifier interval %d", c.Notifier.IntervalSeconds)
	}
	if c.Notifier.LeadTimeMinutes <= 1 {
		return fmt.Errorf("notifier lead time must be greater than one minute, got %d", c.Notifier.LeadTimeMinutes)
	}
	return nil
}

func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	if instance == nil {
		panic("config not initialized")
	}
	return instance
}

func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return instance, instance != nil
}
