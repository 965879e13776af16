// Copyright 2025 watchtowerhq.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package models

import (
	"github.com/watchtowerhq/watchtower/database"
)

type IntegrationStatus string

const (
	IntegrationStatusVisible         IntegrationStatus = "visible"
	IntegrationStatusDisabled        IntegrationStatus = "disabled"
	IntegrationStatusPendingDeletion IntegrationStatus = "pending_deletion"
)

// Integration is a configured connection to one external issue tracker,
// shared by one or more organizations. Provider-specific settings (tracker
// domain, credentials reference) live in Metadata.
type Integration struct {
	Model

	Provider string            `json:"provider" gorm:"type:varchar(64);not null;index"`
	Name     string            `json:"name" gorm:"type:varchar(255);not null"`
	Metadata database.JSONB    `json:"metadata" gorm:"type:jsonb"`
	Status   IntegrationStatus `json:"status" gorm:"type:varchar(32);not null;default:'visible'"`

	Orgs []Org `json:"orgs" gorm:"many2many:integration_orgs;"`
}

func (Integration) TableName() string {
	return "integrations"
}
