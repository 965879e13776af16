// Copyright 2025 watchtowerhq.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package models

import (
	"github.com/google/uuid"
	"github.com/watchtowerhq/watchtower/database"
)

// Rule is a user configured condition/effect pair of the alerting engine.
// ActionData holds the persisted configuration of the rule's ticket action,
// a generic field name to value mapping.
type Rule struct {
	Model
	Label string `json:"label" gorm:"type:text;not null"`

	Project   Project   `json:"project" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE;"`
	ProjectID uuid.UUID `json:"projectId" gorm:"column:project_id"`

	ActionData database.JSONB `json:"actionData" gorm:"type:jsonb"`
}

func (Rule) TableName() string {
	return "rules"
}
