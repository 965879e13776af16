// Copyright 2025 watchtowerhq.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package models

import (
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type Project struct {
	Model
	Name string `json:"name" gorm:"type:text;not null"`
	Slug string `json:"slug" gorm:"type:text;not null;index"`

	Organization   Org       `json:"organization" gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE;"`
	OrganizationID uuid.UUID `json:"organizationId" gorm:"column:organization_id"`
}

func (Project) TableName() string {
	return "projects"
}

func (project *Project) BeforeSave(tx *gorm.DB) error {
	if project.Slug == "" {
		project.Slug = slug.Make(project.Name)
	}
	return nil
}
