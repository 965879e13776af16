// Copyright 2025 watchtowerhq.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package main

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"github.com/watchtowerhq/watchtower/cmd/watchtower/api"
	"github.com/watchtowerhq/watchtower/controllers"
	"github.com/watchtowerhq/watchtower/database/repositories"
	"github.com/watchtowerhq/watchtower/integrations"
	"github.com/watchtowerhq/watchtower/rules/ticketaction"
	"github.com/watchtowerhq/watchtower/shared"
	"go.uber.org/fx"

	_ "github.com/lib/pq"
)

var release string // Will be filled at build time

func main() {
	shared.LoadConfig() // nolint: errcheck
	shared.InitLogger()

	if os.Getenv("ERROR_TRACKING_DSN") != "" {
		initSentry()

		// Catch panics
		defer func() {
			if err := recover(); err != nil {
				sentry.CurrentHub().Recover(err)
				// Wait for events to be send to server
				sentry.Flush(time.Second * 5)
			}
		}()
	}

	db, err := shared.DatabaseFactory()
	if err != nil {
		slog.Error(err.Error())
		panic(errors.New("failed to setup database connection"))
	}

	fx.New(
		fx.Supply(db),
		repositories.Module,
		controllers.ControllerModule,
		integrations.Module,
		ticketaction.Module,
		fx.Provide(api.NewServer),

		fx.Invoke(func(executor *ticketaction.Executor) {}),
		fx.Invoke(func(server *echo.Echo) {}),
	).Run()
}

func initSentry() {
	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "dev"
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         os.Getenv("ERROR_TRACKING_DSN"),
		Environment: environment,
		Release:     release,

		Debug: environment == "dev",

		AttachStacktrace: true,

		SendDefaultPII: false,
	})
	if err != nil {
		slog.Error("failed to init error tracking", "err", err)
	}
}
