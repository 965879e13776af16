// Copyright 2025 watchtowerhq.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package repositories

import (
	"github.com/google/uuid"
	"github.com/watchtowerhq/watchtower/database/models"
	"github.com/watchtowerhq/watchtower/shared"
)

type ruleRepository struct {
	db shared.DB
	*GormRepository[uuid.UUID, models.Rule]
}

func NewRuleRepository(db shared.DB) *ruleRepository {
	if err := db.AutoMigrate(&models.Rule{}); err != nil {
		panic(err)
	}
	return &ruleRepository{
		db:             db,
		GormRepository: newGormRepository[uuid.UUID, models.Rule](db),
	}
}

// ReadWithProject loads a rule including its project and owning organization,
// which the ticket action needs for scoping and deep links.
func (r *ruleRepository) ReadWithProject(id uuid.UUID) (models.Rule, error) {
	var rule models.Rule
	if err := r.db.Preload("Project.Organization").First(&rule, "id = ?", id).Error; err != nil {
		return models.Rule{}, err
	}
	return rule, nil
}
