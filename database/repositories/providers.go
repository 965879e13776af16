// Copyright 2025 watchtowerhq.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package repositories

import (
	"github.com/watchtowerhq/watchtower/shared"
	"go.uber.org/fx"
)

// Module provides all repository constructors as their interfaces
var Module = fx.Options(
	fx.Provide(fx.Annotate(NewIntegrationRepository, fx.As(new(shared.IntegrationRepository)))),
	fx.Provide(fx.Annotate(NewExternalIssueRepository, fx.As(new(shared.ExternalIssueRepository)))),
	fx.Provide(fx.Annotate(NewGroupLinkRepository, fx.As(new(shared.GroupLinkRepository)))),
	fx.Provide(fx.Annotate(NewRuleRepository, fx.As(new(shared.RuleRepository)))),
)
