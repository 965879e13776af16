// Copyright 2025 watchtowerhq.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package controllers

import (
	"go.uber.org/fx"
)

// ControllerModule provides all HTTP controller constructors
var ControllerModule = fx.Options(
	fx.Provide(NewRuleActionController),
)
