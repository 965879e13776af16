// Copyright 2025 watchtowerhq.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package ticketaction

import (
	"os"

	"github.com/watchtowerhq/watchtower/shared"
	"go.uber.org/fx"
)

// NewExecutorFromEnv builds the executor with the frontend base url taken
// from the environment. The url is only used to render the rule link in the
// ticket footer.
func NewExecutorFromEnv(ruleRepository shared.RuleRepository, integrationRepository shared.IntegrationRepository, externalIssueRepository shared.ExternalIssueRepository, groupLinkRepository shared.GroupLinkRepository, installationFactories map[string]shared.InstallationFactory) *Executor {
	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}
	return NewExecutor(ruleRepository, integrationRepository, externalIssueRepository, groupLinkRepository, installationFactories, frontendURL)
}

// Module provides the ticket future executor
var Module = fx.Options(
	fx.Provide(NewExecutorFromEnv),
)
