package main

import (
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/northpine-labs/linkvault-back/internal/auth"
	"github.com/northpine-labs/linkvault-back/internal/config"
	"github.com/northpine-labs/linkvault-back/internal/db"
	"github.com/northpine-labs/linkvault-back/internal/service"
	"github.com/northpine-labs/linkvault-back/internal/transport"
)

func main() {
	_ = godotenv.Load()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			NewLogger,
			db.NewGormClient,
			auth.NewService,
			service.NewUserService,
			service.NewBookmarkService,
			service.NewTagService,
			service.NewCollectionService,
			service.NewHealthService,
			transport.NewHTTPServer,
		),
		fx.Invoke(func(*transport.HTTPServer) {}),
	)

	app.Run()
}

func NewLogger() (*zap.SugaredLogger, error) {
	l, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}
