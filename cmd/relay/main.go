package main

import (
	"context"
	"log/slog"
	"os"

	"eventcrm/cmd/bootstrap"
	"eventcrm/internal/handler"
	"eventcrm/internal/handler/api"
	"eventcrm/internal/infra/mailer"
	"eventcrm/internal/pkg/config"
	"eventcrm/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

func init() {
	gin.SetMode(gin.ReleaseMode)

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}
}

func newMailer(cfg config.RelayOnlyConfig) mailer.Mailer {
	return mailer.NewGoMail(cfg.Relay.ConnectTimeout, cfg.Relay.SocketTimeout)
}

func startServer(lc fx.Lifecycle, engine *gin.Engine, cfg config.RelayOnlyConfig, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			listenAddr := ":" + cfg.Relay.Port
			logger.Info("starting relay worker", "address", listenAddr, "mode", gin.Mode())
			go func() {
				if err := engine.Run(listenAddr); err != nil {
					logger.Error("relay worker failed to start", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			logger.Info("stopping relay worker")
			return nil
		},
	})
}

func main() {
	app := fx.New(
		bootstrap.LoggerModule,
		fx.Provide(
			config.LoadRelayConfig,
			newMailer,
			commands.NewRelayCommands,
			api.NewRelayHandler,
			func() *gin.Engine {
				return gin.New()
			},
		),
		fx.Invoke(
			handler.NewRelayRouter,
			startServer,
		),
	)

	if err := app.Start(context.Background()); err != nil {
		slog.Error("relay worker failed to start", "error", err)
		os.Exit(1)
	}

	<-app.Done()

	if err := app.Stop(context.Background()); err != nil {
		slog.Error("relay worker failed to stop cleanly", "error", err)
	}

	slog.Info("relay worker stopped")
}
