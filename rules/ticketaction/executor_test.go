// Copyright 2025 watchtowerhq.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package ticketaction

import (
	goerrors "errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/watchtowerhq/watchtower/database"
	"github.com/watchtowerhq/watchtower/database/models"
	"github.com/watchtowerhq/watchtower/dtos"
	"github.com/watchtowerhq/watchtower/integrations/jiratracker"
	"github.com/watchtowerhq/watchtower/mocks"
	"github.com/watchtowerhq/watchtower/shared"
)

type executorFixture struct {
	rule        models.Rule
	integration models.Integration
	event       dtos.Event
	future      shared.TicketFuture

	ruleRepository          *mocks.RuleRepository
	integrationRepository   *mocks.IntegrationRepository
	externalIssueRepository *mocks.ExternalIssueRepository
	groupLinkRepository     *mocks.GroupLinkRepository
	installationFactory     *mocks.InstallationFactory

	executor *Executor
}

func newExecutorFixture(t *testing.T) *executorFixture {
	org := models.Org{
		Model: models.Model{ID: uuid.New()},
		Name:  "Test Org",
		Slug:  "test-org",
	}
	project := models.Project{
		Model:          models.Model{ID: uuid.New()},
		Name:           "Test Project",
		Slug:           "test-project",
		Organization:   org,
		OrganizationID: org.ID,
	}
	rule := models.Rule{
		Model:     models.Model{ID: uuid.New()},
		Label:     "High error rate",
		Project:   project,
		ProjectID: project.ID,
	}
	integration := testIntegration("acme", "acme.atlassian.net")
	group := models.Group{
		Model:     models.Model{ID: uuid.New()},
		Title:     "TypeError: x is undefined",
		ProjectID: project.ID,
	}
	event := dtos.Event{ID: uuid.New(), Title: "TypeError: x is undefined", Group: group}

	provider := jiratracker.NewProvider()
	future := shared.TicketFuture{
		Key:  "jira:" + integration.ID.String(),
		Rule: rule,
		Args: shared.TicketArgs{
			Data: map[string]any{
				IntegrationKey:       integration.ID.String(),
				"priority":           "high",
				DynamicFormFieldsKey: []any{map[string]any{"name": "priority"}},
			},
			IntegrationID:  integration.ID,
			Provider:       jiratracker.ProviderID,
			GenerateFooter: provider.GenerateFooter,
			IssueKeyPath:   provider.IssueKeyPath(),
		},
	}

	fixture := &executorFixture{
		rule:                    rule,
		integration:             integration,
		event:                   event,
		future:                  future,
		ruleRepository:          mocks.NewRuleRepository(t),
		integrationRepository:   mocks.NewIntegrationRepository(t),
		externalIssueRepository: mocks.NewExternalIssueRepository(t),
		groupLinkRepository:     mocks.NewGroupLinkRepository(t),
		installationFactory:     mocks.NewInstallationFactory(t),
	}
	fixture.executor = NewExecutor(
		fixture.ruleRepository,
		fixture.integrationRepository,
		fixture.externalIssueRepository,
		fixture.groupLinkRepository,
		map[string]shared.InstallationFactory{jiratracker.ProviderID: fixture.installationFactory},
		"http://localhost:3000/",
	)
	return fixture
}

func TestExecutorCreateIssues(t *testing.T) {
	t.Run("should create the issue and link it to the group", func(t *testing.T) {
		fixture := newExecutorFixture(t)
		installation := mocks.NewInstallation(t)

		fixture.ruleRepository.On("ReadWithProject", fixture.rule.ID).Return(fixture.rule, nil)
		fixture.integrationRepository.On("FindOneVisible", fixture.integration.ID, jiratracker.ProviderID, fixture.rule.Project.OrganizationID).Return(fixture.integration, nil)
		fixture.installationFactory.On("GetInstallation", fixture.integration, fixture.rule.Project.OrganizationID).Return(installation, nil)
		fixture.groupLinkRepository.On("HasIssueLink", fixture.event.Group.ID, fixture.event.Group.ProjectID, fixture.integration.ID).Return(false, nil)
		installation.On("GetGroupDescription", fixture.event.Group, fixture.event).Return("problem group description\n\n")

		var payload map[string]any
		installation.On("CreateIssue", mock.Anything).Run(func(args mock.Arguments) {
			payload = args.Get(0).(map[string]any)
		}).Return(map[string]any{"id": "10001", "key": "PROJ-7"}, nil)

		var externalIssue *models.ExternalIssue
		var groupLink *models.GroupLink
		fixture.externalIssueRepository.On("Transaction", mock.Anything).Return(func(f func(shared.DB) error) error {
			return f(nil)
		})
		fixture.externalIssueRepository.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			externalIssue = args.Get(1).(*models.ExternalIssue)
			externalIssue.ID = uuid.New()
		}).Return(nil)
		fixture.groupLinkRepository.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			groupLink = args.Get(1).(*models.GroupLink)
		}).Return(nil)

		err := fixture.executor.CreateIssues(fixture.event, []shared.TicketFuture{fixture.future})
		assert.Nil(t, err)

		assert.Equal(t, fixture.event.Title, payload["title"])
		assert.Equal(t, "high", payload["priority"])
		assert.NotContains(t, payload, DynamicFormFieldsKey)

		description := payload["description"].(string)
		assert.True(t, strings.HasPrefix(description, "problem group description\n\n"))
		assert.Contains(t, description, "This ticket was automatically created by Watchtower via [High error rate|")
		assert.Contains(t, description, "http://localhost:3000/organizations/test-org/alerts/rules/test-project/"+fixture.rule.ID.String()+"/")

		assert.Equal(t, "PROJ-7", externalIssue.Key)
		assert.Equal(t, fixture.rule.Project.OrganizationID, externalIssue.OrganizationID)
		assert.Equal(t, fixture.integration.ID, externalIssue.IntegrationID)

		assert.Equal(t, fixture.event.Group.ID, groupLink.GroupID)
		assert.Equal(t, fixture.event.Group.ProjectID, groupLink.ProjectID)
		assert.Equal(t, models.LinkedTypeIssue, groupLink.LinkedType)
		assert.Equal(t, externalIssue.ID, groupLink.LinkedID)
		assert.Equal(t, models.LinkRelationshipReferences, groupLink.Relationship)
		assert.Equal(t, database.JSONB{"provider": "jira"}, groupLink.Data)
	})

	t.Run("should skip when the group already links an issue of the integration", func(t *testing.T) {
		fixture := newExecutorFixture(t)
		installation := mocks.NewInstallation(t)

		fixture.ruleRepository.On("ReadWithProject", fixture.rule.ID).Return(fixture.rule, nil)
		fixture.integrationRepository.On("FindOneVisible", fixture.integration.ID, jiratracker.ProviderID, fixture.rule.Project.OrganizationID).Return(fixture.integration, nil)
		fixture.installationFactory.On("GetInstallation", fixture.integration, fixture.rule.Project.OrganizationID).Return(installation, nil)
		fixture.groupLinkRepository.On("HasIssueLink", fixture.event.Group.ID, fixture.event.Group.ProjectID, fixture.integration.ID).Return(true, nil)

		err := fixture.executor.CreateIssues(fixture.event, []shared.TicketFuture{fixture.future})
		assert.Nil(t, err)

		installation.AssertNotCalled(t, "CreateIssue")
	})

	t.Run("should treat a duplicate tracker key as an already persisted link", func(t *testing.T) {
		fixture := newExecutorFixture(t)
		installation := mocks.NewInstallation(t)

		fixture.ruleRepository.On("ReadWithProject", fixture.rule.ID).Return(fixture.rule, nil)
		fixture.integrationRepository.On("FindOneVisible", fixture.integration.ID, jiratracker.ProviderID, fixture.rule.Project.OrganizationID).Return(fixture.integration, nil)
		fixture.installationFactory.On("GetInstallation", fixture.integration, fixture.rule.Project.OrganizationID).Return(installation, nil)
		fixture.groupLinkRepository.On("HasIssueLink", fixture.event.Group.ID, fixture.event.Group.ProjectID, fixture.integration.ID).Return(false, nil)
		installation.On("GetGroupDescription", fixture.event.Group, fixture.event).Return("description")
		installation.On("CreateIssue", mock.Anything).Return(map[string]any{"key": "PROJ-7"}, nil)

		fixture.externalIssueRepository.On("Transaction", mock.Anything).Return(goerrors.New(`ERROR: duplicate key value violates unique constraint "idx_external_issues_tracker_key" (SQLSTATE 23505)`))

		err := fixture.executor.CreateIssues(fixture.event, []shared.TicketFuture{fixture.future})
		assert.Nil(t, err)
	})

	t.Run("should skip silently when the integration is gone", func(t *testing.T) {
		fixture := newExecutorFixture(t)

		fixture.ruleRepository.On("ReadWithProject", fixture.rule.ID).Return(fixture.rule, nil)
		fixture.integrationRepository.On("FindOneVisible", fixture.integration.ID, jiratracker.ProviderID, fixture.rule.Project.OrganizationID).Return(models.Integration{}, shared.ErrIntegrationNotFound)

		err := fixture.executor.CreateIssues(fixture.event, []shared.TicketFuture{fixture.future})
		assert.Nil(t, err)

		fixture.installationFactory.AssertNotCalled(t, "GetInstallation")
	})

	t.Run("should collapse futures sharing a dedup key", func(t *testing.T) {
		fixture := newExecutorFixture(t)

		fixture.ruleRepository.On("ReadWithProject", fixture.rule.ID).Return(fixture.rule, nil)
		fixture.integrationRepository.On("FindOneVisible", fixture.integration.ID, jiratracker.ProviderID, fixture.rule.Project.OrganizationID).Return(models.Integration{}, shared.ErrIntegrationNotFound)

		err := fixture.executor.CreateIssues(fixture.event, []shared.TicketFuture{fixture.future, fixture.future, fixture.future})
		assert.Nil(t, err)

		fixture.ruleRepository.AssertNumberOfCalls(t, "ReadWithProject", 1)
	})

	t.Run("should wrap a provider failure in an integration error", func(t *testing.T) {
		fixture := newExecutorFixture(t)
		installation := mocks.NewInstallation(t)

		fixture.ruleRepository.On("ReadWithProject", fixture.rule.ID).Return(fixture.rule, nil)
		fixture.integrationRepository.On("FindOneVisible", fixture.integration.ID, jiratracker.ProviderID, fixture.rule.Project.OrganizationID).Return(fixture.integration, nil)
		fixture.installationFactory.On("GetInstallation", fixture.integration, fixture.rule.Project.OrganizationID).Return(installation, nil)
		fixture.groupLinkRepository.On("HasIssueLink", fixture.event.Group.ID, fixture.event.Group.ProjectID, fixture.integration.ID).Return(false, nil)
		installation.On("GetGroupDescription", fixture.event.Group, fixture.event).Return("description")
		installation.On("CreateIssue", mock.Anything).Return(nil, goerrors.New("503 service unavailable"))

		err := fixture.executor.CreateIssues(fixture.event, []shared.TicketFuture{fixture.future})

		var integrationErr *shared.IntegrationError
		assert.True(t, goerrors.As(err, &integrationErr))
		assert.Equal(t, "jira", integrationErr.Provider)
	})

	t.Run("should fail when the issue key is missing from the response", func(t *testing.T) {
		fixture := newExecutorFixture(t)
		installation := mocks.NewInstallation(t)

		fixture.ruleRepository.On("ReadWithProject", fixture.rule.ID).Return(fixture.rule, nil)
		fixture.integrationRepository.On("FindOneVisible", fixture.integration.ID, jiratracker.ProviderID, fixture.rule.Project.OrganizationID).Return(fixture.integration, nil)
		fixture.installationFactory.On("GetInstallation", fixture.integration, fixture.rule.Project.OrganizationID).Return(installation, nil)
		fixture.groupLinkRepository.On("HasIssueLink", fixture.event.Group.ID, fixture.event.Group.ProjectID, fixture.integration.ID).Return(false, nil)
		installation.On("GetGroupDescription", fixture.event.Group, fixture.event).Return("description")
		installation.On("CreateIssue", mock.Anything).Return(map[string]any{"id": "10001"}, nil)

		err := fixture.executor.CreateIssues(fixture.event, []shared.TicketFuture{fixture.future})

		var keyPathErr *shared.KeyPathError
		assert.True(t, goerrors.As(err, &keyPathErr))
		assert.Equal(t, "key", keyPathErr.Path)
	})
}

func TestWalkKeyPath(t *testing.T) {
	t.Run("should follow a dotted path", func(t *testing.T) {
		key, err := walkKeyPath(map[string]any{
			"issue": map[string]any{"key": "PROJ-1"},
		}, "issue.key")
		assert.Nil(t, err)
		assert.Equal(t, "PROJ-1", key)
	})

	t.Run("should fail on a non-string leaf", func(t *testing.T) {
		_, err := walkKeyPath(map[string]any{"key": 42}, "key")
		assert.Error(t, err)
	})

	t.Run("should fail on a missing intermediate element", func(t *testing.T) {
		_, err := walkKeyPath(map[string]any{"issue": "flat"}, "issue.key")

		var keyPathErr *shared.KeyPathError
		assert.True(t, goerrors.As(err, &keyPathErr))
		assert.Equal(t, "key", keyPathErr.Missing)
	})
}
