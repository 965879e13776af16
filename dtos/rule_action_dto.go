// Copyright 2025 watchtowerhq.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package dtos

import "github.com/watchtowerhq/watchtower/database"

// TicketActionValidateRequest carries a proposed action configuration to
// check before the rule is saved.
type TicketActionValidateRequest struct {
	ActionData database.JSONB `json:"actionData" validate:"required"`
}
