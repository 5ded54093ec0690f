package config

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"HOST", "PORT", "BABYFEED_SERVER", "DB_PATH", "TZ", "LOG_LEVEL", "STORE_DRIVER", "DEFAULT_LANGUAGE", "REDIS_ADDR", "REDIS_DB", "NOTIFY_DRIVER", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.Addr() != "127.0.0.1:8080" || cfg.BaseURL() != "http://127.0.0.1:8080" || cfg.DBPath != "data/babyfeed.db" {
		t.Fatalf("Load() = %#v, want default address and db path", cfg)
	}
	if cfg.StoreDriver != StoreDriverSQLite || cfg.Notify.Driver != NotifyDriverLog || cfg.DefaultLanguage != "en" {
		t.Fatalf("Load() drivers = %q/%q lang %q", cfg.StoreDriver, cfg.Notify.Driver, cfg.DefaultLanguage)
	}
	if cfg.LogLevel != slog.LevelInfo || cfg.Location != time.Local {
		t.Fatalf("Load() level %v location %v", cfg.LogLevel, cfg.Location)
	}
	if cfg.Redis.Addr != "localhost:6379" || cfg.Redis.DB != 0 {
		t.Fatalf("Load() redis = %#v", cfg.Redis)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("BABYFEED_SERVER", "http://feeder.lan:9090/")
	t.Setenv("TZ", "UTC")
	t.Setenv("LOG_LEVEL", "WARNING")
	t.Setenv("STORE_DRIVER", "Redis")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("NOTIFY_DRIVER", "telegram")
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("TELEGRAM_CHAT_ID", " 42 ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.Port != "9090" || cfg.BaseURL() != "http://feeder.lan:9090" || cfg.Location.String() != "UTC" || cfg.LogLevel != slog.LevelWarn {
		t.Fatalf("Load() = %#v", cfg)
	}
	if cfg.StoreDriver != StoreDriverRedis || cfg.Redis.Addr != "cache:6379" || cfg.Redis.DB != 3 {
		t.Fatalf("Load() redis settings = %q %#v", cfg.StoreDriver, cfg.Redis)
	}
	if cfg.Notify.TelegramChatID != "42" {
		t.Fatalf("Load() chat id = %q, want trimmed", cfg.Notify.TelegramChatID)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("TZ", "Mars/Olympus")
	if _, err := Load(); !errors.Is(err, ErrInvalidTimezone) {
		t.Fatalf("Load() error = %v, want ErrInvalidTimezone", err)
	}

	t.Setenv("TZ", "")
	t.Setenv("REDIS_DB", "one")
	if _, err := Load(); !errors.Is(err, ErrInvalidRedisDB) {
		t.Fatalf("Load() error = %v, want ErrInvalidRedisDB", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{name: "unknown store", cfg: Config{DBPath: "x.db", StoreDriver: "mongo", Notify: NotifyConfig{Driver: NotifyDriverLog}}, wantErr: ErrUnknownStoreDriver},
		{name: "missing db path", cfg: Config{StoreDriver: StoreDriverSQLite, Notify: NotifyConfig{Driver: NotifyDriverLog}}, wantErr: ErrDBPathMissing},
		{name: "redis without addr", cfg: Config{StoreDriver: StoreDriverRedis, Redis: &RedisConfig{}, Notify: NotifyConfig{Driver: NotifyDriverNone}}, wantErr: ErrRedisAddrMissing},
		{name: "telegram without token", cfg: Config{DBPath: "x.db", StoreDriver: StoreDriverSQLite, Notify: NotifyConfig{Driver: NotifyDriverTelegram, TelegramChatID: "1"}}, wantErr: ErrTelegramCredentialsMissing},
		{name: "unknown notifier", cfg: Config{DBPath: "x.db", StoreDriver: StoreDriverSQLite, Notify: NotifyConfig{Driver: "sms"}}, wantErr: ErrUnknownNotifyDriver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for raw, want := range tests {
		if got := parseLogLevel(raw); got != want {
			t.Fatalf("parseLogLevel(%q) = %v, want %v", raw, got, want)
		}
	}
}
