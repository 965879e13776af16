// Copyright 2025 watchtowerhq.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package models

import "github.com/google/uuid"

// ExternalIssue records one ticket created in an external tracker. Written
// exactly once per successful creation, never mutated afterwards.
type ExternalIssue struct {
	Model

	OrganizationID uuid.UUID `json:"organizationId" gorm:"column:organization_id;not null;index;uniqueIndex:idx_external_issues_tracker_key"`

	Integration   Integration `json:"integration" gorm:"foreignKey:IntegrationID;constraint:OnDelete:CASCADE;"`
	IntegrationID uuid.UUID   `json:"integrationId" gorm:"column:integration_id;not null;index;uniqueIndex:idx_external_issues_tracker_key"`

	Key         string `json:"key" gorm:"type:text;not null;uniqueIndex:idx_external_issues_tracker_key"`
	Title       string `json:"title" gorm:"type:text"`
	Description string `json:"description" gorm:"type:text"`
}

func (ExternalIssue) TableName() string {
	return "external_issues"
}
