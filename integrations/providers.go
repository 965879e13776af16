// Copyright 2025 watchtowerhq.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package integrations

import (
	"github.com/watchtowerhq/watchtower/integrations/jiratracker"
	"github.com/watchtowerhq/watchtower/shared"
	"go.uber.org/fx"
)

// NewTicketProviders returns all supported ticket providers keyed by their
// provider id.
func NewTicketProviders() map[string]shared.TicketProvider {
	return map[string]shared.TicketProvider{
		jiratracker.ProviderID: jiratracker.NewProvider(),
	}
}

// NewInstallationFactories returns the matching installation factory per
// provider id.
func NewInstallationFactories() map[string]shared.InstallationFactory {
	return map[string]shared.InstallationFactory{
		jiratracker.ProviderID: jiratracker.NewInstallationFactory(),
	}
}

// Module provides the ticket provider registry
var Module = fx.Options(
	fx.Provide(NewTicketProviders),
	fx.Provide(NewInstallationFactories),
)
