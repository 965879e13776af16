// Copyright 2025 watchtowerhq.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package repositories

import (
	"github.com/google/uuid"
	"github.com/watchtowerhq/watchtower/database/models"
	"github.com/watchtowerhq/watchtower/shared"
)

type groupLinkRepository struct {
	db shared.DB
	*GormRepository[uuid.UUID, models.GroupLink]
}

func NewGroupLinkRepository(db shared.DB) *groupLinkRepository {
	if err := db.AutoMigrate(&models.GroupLink{}); err != nil {
		panic(err)
	}
	return &groupLinkRepository{
		db:             db,
		GormRepository: newGormRepository[uuid.UUID, models.GroupLink](db),
	}
}

// HasIssueLink reports whether the group already has an issue link to an
// external issue of the given integration. This is the duplicate ticket
// check - read-then-act, no transactional guarantee across the subsequent
// creation.
func (r *groupLinkRepository) HasIssueLink(groupID uuid.UUID, projectID uuid.UUID, integrationID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.GroupLink{}).
		Joins("JOIN external_issues ON external_issues.id = group_links.linked_id").
		Where("group_links.group_id = ? AND group_links.project_id = ? AND group_links.linked_type = ? AND external_issues.integration_id = ?",
			groupID, projectID, models.LinkedTypeIssue, integrationID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
