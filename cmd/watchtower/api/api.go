// Copyright 2025 watchtowerhq.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package api

import (
	"context"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/watchtowerhq/watchtower/controllers"
	"go.uber.org/fx"
)

// NewServer builds the echo server and registers the rule action routes. The
// server is started and stopped through the fx lifecycle.
func NewServer(lc fx.Lifecycle, ruleActionController *controllers.RuleActionController) *echo.Echo {
	server := echo.New()
	server.HideBanner = true
	server.Use(middleware.Recover())

	ruleActionController.Register(server.Group("/api/v1"))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := server.Start(":" + port); err != nil {
					slog.Info("http server stopped", "err", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return server.Shutdown(ctx)
		},
	})

	return server
}
