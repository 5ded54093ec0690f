package config

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

const (
	StoreDriverSQLite = "sqlite"
	StoreDriverRedis  = "redis"

	NotifyDriverLog      = "log"
	NotifyDriverTelegram = "telegram"
	NotifyDriverNone     = "none"
)

type Config struct {
	Host            string
	Port            string
	ServerURL       string
	DBPath          string
	Location        *time.Location
	LogLevel        slog.Level
	StoreDriver     string
	DefaultLanguage string
	Redis           *RedisConfig
	Notify          NotifyConfig
}

type NotifyConfig struct {
	Driver           string
	TelegramBotToken string
	TelegramChatID   string
}

func Load() (*Config, error) {
	location, err := LoadLocation(os.Getenv("TZ"))
	if err != nil {
		return nil, err
	}

	redisConfig, err := LoadRedisConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Host:            getEnv("HOST", "127.0.0.1"),
		Port:            getEnv("PORT", "8080"),
		ServerURL:       strings.TrimRight(strings.TrimSpace(os.Getenv("BABYFEED_SERVER")), "/"),
		DBPath:          getEnv("DB_PATH", "data/babyfeed.db"),
		Location:        location,
		LogLevel:        parseLogLevel(os.Getenv("LOG_LEVEL")),
		StoreDriver:     strings.ToLower(getEnv("STORE_DRIVER", StoreDriverSQLite)),
		DefaultLanguage: strings.ToLower(getEnv("DEFAULT_LANGUAGE", "en")),
		Redis:           redisConfig,
		Notify: NotifyConfig{
			Driver:           strings.ToLower(getEnv("NOTIFY_DRIVER", NotifyDriverLog)),
			TelegramBotToken: strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
			TelegramChatID:   strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")),
		},
	}, nil
}

// LoadLocation resolves an IANA zone name. An empty name keeps time.Local.
func LoadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return time.Local, nil
	}
	location, err := time.LoadLocation(name)
	if err != nil {
		return nil, ErrInvalidTimezone
	}
	return location, nil
}

func (cfg *Config) Validate() error {
	if strings.TrimSpace(cfg.DBPath) == "" && cfg.StoreDriver == StoreDriverSQLite {
		return ErrDBPathMissing
	}

	switch cfg.StoreDriver {
	case StoreDriverSQLite:
	case StoreDriverRedis:
		if err := cfg.Redis.Validate(); err != nil {
			return err
		}
	default:
		return ErrUnknownStoreDriver
	}

	return cfg.Notify.Validate()
}

func (c NotifyConfig) Validate() error {
	switch c.Driver {
	case NotifyDriverLog, NotifyDriverNone:
		return nil
	case NotifyDriverTelegram:
		if c.TelegramBotToken == "" || c.TelegramChatID == "" {
			return ErrTelegramCredentialsMissing
		}
		return nil
	default:
		return ErrUnknownNotifyDriver
	}
}

func (cfg *Config) Addr() string {
	return cfg.Host + ":" + cfg.Port
}

// BaseURL is where CLI commands reach a running server: BABYFEED_SERVER when
// set, otherwise the local listen address.
func (cfg *Config) BaseURL() string {
	if cfg.ServerURL != "" {
		return cfg.ServerURL
	}
	return "http://" + cfg.Addr()
}

func getEnv(key string, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
