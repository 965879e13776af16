// Copyright 2025 watchtowerhq.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package repositories

import (
	"errors"

	"github.com/google/uuid"
	"github.com/watchtowerhq/watchtower/database/models"
	"github.com/watchtowerhq/watchtower/shared"
	"gorm.io/gorm"
)

type integrationRepository struct {
	db shared.DB
	*GormRepository[uuid.UUID, models.Integration]
}

func NewIntegrationRepository(db shared.DB) *integrationRepository {
	if err := db.AutoMigrate(&models.Integration{}); err != nil {
		panic(err)
	}
	return &integrationRepository{
		db:             db,
		GormRepository: newGormRepository[uuid.UUID, models.Integration](db),
	}
}

// FindVisibleByProviderAndOrg returns all visible integrations of the given
// provider the organization is a member of. Ordered by name so callers get a
// stable choice list.
func (r *integrationRepository) FindVisibleByProviderAndOrg(provider string, orgID uuid.UUID) ([]models.Integration, error) {
	var integrations []models.Integration
	err := r.db.
		Joins("JOIN integration_orgs ON integration_orgs.integration_id = integrations.id").
		Where("integration_orgs.org_id = ? AND integrations.provider = ? AND integrations.status = ?",
			orgID, provider, models.IntegrationStatusVisible).
		Order("integrations.name ASC, integrations.id ASC").
		Find(&integrations).Error
	if err != nil {
		return nil, err
	}
	return integrations, nil
}

// FindOneVisible resolves a single integration scoped to provider and
// organization. Returns shared.ErrIntegrationNotFound if no visible
// integration matches.
func (r *integrationRepository) FindOneVisible(id uuid.UUID, provider string, orgID uuid.UUID) (models.Integration, error) {
	var integration models.Integration
	err := r.db.
		Joins("JOIN integration_orgs ON integration_orgs.integration_id = integrations.id").
		Where("integrations.id = ? AND integration_orgs.org_id = ? AND integrations.provider = ? AND integrations.status = ?",
			id, orgID, provider, models.IntegrationStatusVisible).
		First(&integration).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Integration{}, shared.ErrIntegrationNotFound
		}
		return models.Integration{}, err
	}
	return integration, nil
}
