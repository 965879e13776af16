// Copyright 2025 watchtowerhq.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package dtos

import (
	"github.com/google/uuid"
	"github.com/watchtowerhq/watchtower/database/models"
)

// Event is one occurrence the alerting engine matched a rule against. It is
// transient - the engine hands it to rule actions together with the problem
// group it was aggregated into (project and organization preloaded).
type Event struct {
	ID    uuid.UUID    `json:"id"`
	Title string       `json:"title"`
	Group models.Group `json:"group"`
}

// IntegrationChoice is one selectable integration in the synthesized
// "integration" form field.
type IntegrationChoice struct {
	ID    uuid.UUID `json:"id"`
	Label string    `json:"label"`
}
