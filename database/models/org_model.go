// Copyright 2025 watchtowerhq.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package models

import (
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type Org struct {
	Model
	Name        string    `json:"name" gorm:"type:text;not null"`
	Slug        string    `json:"slug" gorm:"type:text;unique;not null;index"`
	Description string    `json:"description" gorm:"type:text"`
	Projects    []Project `json:"projects" gorm:"foreignKey:OrganizationID;"`

	Integrations []Integration `json:"integrations" gorm:"many2many:integration_orgs;"`
}

func (Org) TableName() string {
	return "organizations"
}

func (org *Org) BeforeSave(tx *gorm.DB) error {
	if org.Slug == "" {
		org.Slug = slug.Make(org.Name)
	}
	return nil
}
