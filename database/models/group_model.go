// Copyright 2025 watchtowerhq.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package models

import "github.com/google/uuid"

// Group is a problem group, the aggregation of similar events the alerting
// engine reports on.
type Group struct {
	Model
	Title string `json:"title" gorm:"type:text;not null"`

	Project   Project   `json:"project" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE;"`
	ProjectID uuid.UUID `json:"projectId" gorm:"column:project_id"`
}

func (Group) TableName() string {
	// "groups" collides with the reserved SQL keyword
	return "problem_groups"
}
