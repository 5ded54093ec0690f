package cli

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/babyfeed/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the notification loop",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		setupLogger(cfg.LogLevel)

		sigCtx, stopSignals := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stopSignals()

		rt, err := openRuntime(sigCtx, true)
		if err != nil {
			return err
		}
		defer rt.Close()

		if err := rt.container.Reminders.RescheduleAll(sigCtx); err != nil {
			slog.WarnContext(sigCtx, "initial reschedule failed", slog.String("error", err.Error()))
		}

		app := api.NewApp(api.NewHandler(rt.container, rt.i18n, rt.cfg.Location))

		lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
		defer cancelLifecycle()
		rt.scheduler.Start(lifecycleCtx)

		go func() {
			<-sigCtx.Done()
			cancelLifecycle()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := app.ShutdownWithContext(shutdownCtx); err != nil {
				slog.Error("server shutdown failed", slog.String("error", err.Error()))
			}
		}()

		slog.Info("babyfeed listening",
			slog.String("addr", rt.cfg.Addr()),
			slog.String("store", rt.cfg.StoreDriver),
			slog.String("notify", rt.cfg.Notify.Driver),
			slog.String("tz", rt.cfg.Location.String()),
		)
		return app.Listen(rt.cfg.Addr())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
