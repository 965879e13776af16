// Copyright 2025 watchtowerhq.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package tests

import (
	"context"
	"log"
	"log/slog"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/watchtowerhq/watchtower/database"
	"github.com/watchtowerhq/watchtower/shared"
)

// InitDatabaseContainer starts a throwaway postgres container and returns a
// connection to it. The schema is created by the repository constructors.
func InitDatabaseContainer() (shared.DB, func()) {
	ctx := context.Background()

	dbName := "watchtower"
	dbUser := "user"
	dbPassword := "password"

	postgresC, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		postgres.BasicWaitStrategies(),
	)

	terminate := func() {
		if err := testcontainers.TerminateContainer(postgresC); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}
	if err != nil {
		slog.Info("failed to start postgres container", "error", err)
		panic(err)
	}

	host, _ := postgresC.Host(ctx)
	port, _ := postgresC.MappedPort(ctx, "5432")

	db, err := database.NewConnection(host, dbUser, dbPassword, dbName, port.Port())
	if err != nil {
		terminate()
		panic(err)
	}

	return db, terminate
}
