// Copyright 2025 watchtowerhq.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package repositories

import (
	"github.com/google/uuid"
	"github.com/watchtowerhq/watchtower/database/models"
	"github.com/watchtowerhq/watchtower/shared"
)

type externalIssueRepository struct {
	db shared.DB
	*GormRepository[uuid.UUID, models.ExternalIssue]
}

func NewExternalIssueRepository(db shared.DB) *externalIssueRepository {
	if err := db.AutoMigrate(&models.ExternalIssue{}); err != nil {
		panic(err)
	}
	return &externalIssueRepository{
		db:             db,
		GormRepository: newGormRepository[uuid.UUID, models.ExternalIssue](db),
	}
}

func (r *externalIssueRepository) FindByIntegrationID(integrationID uuid.UUID) ([]models.ExternalIssue, error) {
	var issues []models.ExternalIssue
	if err := r.db.Find(&issues, "integration_id = ?", integrationID).Error; err != nil {
		return nil, err
	}
	return issues, nil
}
