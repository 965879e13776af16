// Copyright 2025 watchtowerhq.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/watchtowerhq/watchtower/database"
	"github.com/watchtowerhq/watchtower/database/models"
	"github.com/watchtowerhq/watchtower/database/repositories"
	"github.com/watchtowerhq/watchtower/dtos"
	"github.com/watchtowerhq/watchtower/integrations/jiratracker"
	"github.com/watchtowerhq/watchtower/rules/ticketaction"
	"github.com/watchtowerhq/watchtower/shared"
)

func TestTicketWorkflowIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, terminate := InitDatabaseContainer()
	defer terminate()

	integrationRepository := repositories.NewIntegrationRepository(db)
	externalIssueRepository := repositories.NewExternalIssueRepository(db)
	groupLinkRepository := repositories.NewGroupLinkRepository(db)
	ruleRepository := repositories.NewRuleRepository(db)
	assert.Nil(t, db.AutoMigrate(&models.Group{}))

	var createIssueCalls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/rest/api/3/issue" {
			createIssueCalls++
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]any{"id": "10001", "key": "PROJ-1"}) // nolint:errcheck
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	org := models.Org{Name: "Test Org", Slug: "test-org"}
	assert.Nil(t, db.Create(&org).Error)

	project := models.Project{Name: "Test Project", Slug: "test-project", OrganizationID: org.ID}
	assert.Nil(t, db.Create(&project).Error)

	integration := models.Integration{
		Provider: jiratracker.ProviderID,
		Name:     "acme.atlassian.net",
		Status:   models.IntegrationStatusVisible,
		Metadata: database.JSONB{
			"domain_name":  "acme.atlassian.net",
			"base_url":     server.URL,
			"user_email":   "bot@acme.example",
			"access_token": "token",
		},
		Orgs: []models.Org{org},
	}
	assert.Nil(t, db.Create(&integration).Error)

	rule := models.Rule{
		Label:     "High error rate",
		ProjectID: project.ID,
		ActionData: database.JSONB{
			ticketaction.IntegrationKey: integration.ID.String(),
			"priority":                  "high",
		},
	}
	assert.Nil(t, db.Create(&rule).Error)

	group := models.Group{Title: "TypeError: x is undefined", ProjectID: project.ID}
	assert.Nil(t, db.Create(&group).Error)

	event := dtos.Event{ID: uuid.New(), Title: "TypeError: x is undefined", Group: group}

	action, err := ticketaction.NewTicketAction(rule, project, jiratracker.NewProvider(), integrationRepository)
	assert.Nil(t, err)
	assert.True(t, action.IsEnabled())
	assert.Nil(t, action.Clean())

	future := action.After(event, shared.RuleState{IsNewGroup: true})

	executor := ticketaction.NewExecutor(
		ruleRepository,
		integrationRepository,
		externalIssueRepository,
		groupLinkRepository,
		map[string]shared.InstallationFactory{jiratracker.ProviderID: jiratracker.NewInstallationFactory()},
		"http://localhost:3000",
	)

	t.Run("should create the external issue and link it to the group", func(t *testing.T) {
		assert.Nil(t, executor.CreateIssues(event, []shared.TicketFuture{future}))

		issues, err := externalIssueRepository.FindByIntegrationID(integration.ID)
		assert.Nil(t, err)
		assert.Len(t, issues, 1)
		assert.Equal(t, "PROJ-1", issues[0].Key)
		assert.Equal(t, org.ID, issues[0].OrganizationID)

		hasLink, err := groupLinkRepository.HasIssueLink(group.ID, project.ID, integration.ID)
		assert.Nil(t, err)
		assert.True(t, hasLink)
	})

	t.Run("should not create a second issue for the same group", func(t *testing.T) {
		assert.Nil(t, executor.CreateIssues(event, []shared.TicketFuture{future}))

		issues, err := externalIssueRepository.FindByIntegrationID(integration.ID)
		assert.Nil(t, err)
		assert.Len(t, issues, 1)
		assert.Equal(t, 1, createIssueCalls)
	})
}
