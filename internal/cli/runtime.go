package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/terraincognita07/babyfeed/internal/config"
	"github.com/terraincognita07/babyfeed/internal/db"
	"github.com/terraincognita07/babyfeed/internal/i18n"
	"github.com/terraincognita07/babyfeed/internal/notify"
	"github.com/terraincognita07/babyfeed/internal/redisstore"
	"github.com/terraincognita07/babyfeed/internal/services"
)

// console holds what every command needs to print localized output.
type console struct {
	cfg      *config.Config
	i18n     *i18n.Manager
	language string
}

// runtime adds storage and services. Only the serve runtime owns the
// notification triggers; every other runtime is detached and leaves triggers
// and stored trigger ids to the server.
type runtime struct {
	*console
	scheduler *notify.Scheduler
	container *services.Container
	closers   []func()
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(dbPath) != "" {
		cfg.DBPath = dbPath
	}
	if strings.TrimSpace(timezone) != "" {
		location, err := config.LoadLocation(timezone)
		if err != nil {
			return nil, err
		}
		cfg.Location = location
	}
	if strings.TrimSpace(language) != "" {
		cfg.DefaultLanguage = strings.ToLower(strings.TrimSpace(language))
	}
	if strings.TrimSpace(serverURL) != "" {
		cfg.ServerURL = strings.TrimRight(strings.TrimSpace(serverURL), "/")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogger(level slog.Level) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

func openConsole() (*console, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	i18nManager, err := i18n.NewEmbeddedManager(cfg.DefaultLanguage)
	if err != nil {
		return nil, fmt.Errorf("i18n init failed: %w", err)
	}
	return &console{
		cfg:      cfg,
		i18n:     i18nManager,
		language: i18nManager.NormalizeLanguage(cfg.DefaultLanguage),
	}, nil
}

func openRuntime(ctx context.Context, ownsTriggers bool) (*runtime, error) {
	out, err := openConsole()
	if err != nil {
		return nil, err
	}

	rt := &runtime{console: out}
	stores, err := rt.openStores(ctx)
	if err != nil {
		return nil, err
	}

	options := services.ContainerOptions{
		Texts:    out.i18n,
		Language: out.language,
		Location: out.cfg.Location,
	}
	if ownsTriggers {
		rt.scheduler = notify.NewScheduler(newSender(out.cfg.Notify), out.cfg.Location)
		options.Notifier = rt.scheduler
	}
	rt.container = services.NewContainer(stores, options)
	return rt, nil
}

func (rt *runtime) openStores(ctx context.Context) (services.Stores, error) {
	switch rt.cfg.StoreDriver {
	case config.StoreDriverRedis:
		client := redisstore.NewClient(rt.cfg.Redis)
		if err := redisstore.Ping(ctx, client); err != nil {
			_ = client.Close()
			return services.Stores{}, err
		}
		rt.closers = append(rt.closers, func() { _ = client.Close() })
		return redisstore.NewRepositories(client).Stores(), nil
	default:
		database, err := db.OpenSQLite(rt.cfg.DBPath)
		if err != nil {
			return services.Stores{}, fmt.Errorf("database init failed: %w", err)
		}
		rt.closers = append(rt.closers, func() {
			if sqlDB, err := database.DB(); err == nil {
				_ = sqlDB.Close()
			}
		})
		return db.NewRepositories(database).Stores(), nil
	}
}

func newSender(cfg config.NotifyConfig) notify.Sender {
	switch cfg.Driver {
	case config.NotifyDriverTelegram:
		return notify.NewTelegramSender(cfg.TelegramBotToken, cfg.TelegramChatID)
	case config.NotifyDriverNone:
		return nil
	default:
		return notify.NewLogSender(slog.Default())
	}
}

func (rt *runtime) Close() {
	for index := len(rt.closers) - 1; index >= 0; index-- {
		rt.closers[index]()
	}
}

func (out *console) text(key string, args ...any) string {
	if len(args) == 0 {
		return out.i18n.Translate(out.language, key)
	}
	return out.i18n.Translatef(out.language, key, args...)
}
