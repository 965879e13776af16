// Copyright 2025 watchtowerhq.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package models

import (
	"github.com/google/uuid"
	"github.com/watchtowerhq/watchtower/database"
)

type LinkedType string

const LinkedTypeIssue LinkedType = "issue"

type LinkRelationship string

const LinkRelationshipReferences LinkRelationship = "references"

// GroupLink joins a problem group to a record of another type, for this
// workflow always an ExternalIssue. Data carries provenance, e.g. the
// provider that created the link.
type GroupLink struct {
	Model

	GroupID   uuid.UUID `json:"groupId" gorm:"column:group_id;not null;index:idx_group_links_group_project;uniqueIndex:idx_group_links_target"`
	ProjectID uuid.UUID `json:"projectId" gorm:"column:project_id;not null;index:idx_group_links_group_project"`

	LinkedType   LinkedType       `json:"linkedType" gorm:"type:varchar(32);not null;uniqueIndex:idx_group_links_target"`
	LinkedID     uuid.UUID        `json:"linkedId" gorm:"column:linked_id;not null;uniqueIndex:idx_group_links_target"`
	Relationship LinkRelationship `json:"relationship" gorm:"type:varchar(32);not null"`

	Data database.JSONB `json:"data" gorm:"type:jsonb"`
}

func (GroupLink) TableName() string {
	return "group_links"
}
