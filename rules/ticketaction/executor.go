// Copyright 2025 watchtowerhq.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package ticketaction

import (
	goerrors "errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
	"github.com/watchtowerhq/watchtower/database"
	"github.com/watchtowerhq/watchtower/database/models"
	"github.com/watchtowerhq/watchtower/dtos"
	"github.com/watchtowerhq/watchtower/shared"
)

// Executor consumes the ticket futures collected for one event and turns
// each into an external issue plus a group link. Execution is idempotent per
// group and integration, a group that already links an issue of the same
// integration is skipped.
type Executor struct {
	ruleRepository          shared.RuleRepository
	integrationRepository   shared.IntegrationRepository
	externalIssueRepository shared.ExternalIssueRepository
	groupLinkRepository     shared.GroupLinkRepository
	installationFactories   map[string]shared.InstallationFactory

	frontendURL string
}

func NewExecutor(ruleRepository shared.RuleRepository, integrationRepository shared.IntegrationRepository, externalIssueRepository shared.ExternalIssueRepository, groupLinkRepository shared.GroupLinkRepository, installationFactories map[string]shared.InstallationFactory, frontendURL string) *Executor {
	return &Executor{
		ruleRepository:          ruleRepository,
		integrationRepository:   integrationRepository,
		externalIssueRepository: externalIssueRepository,
		groupLinkRepository:     groupLinkRepository,
		installationFactories:   installationFactories,
		frontendURL:             frontendURL,
	}
}

// CreateIssues executes all futures of one event batch. Futures sharing a
// dedup key collapse into a single issue. The first failing future aborts
// the batch.
func (e *Executor) CreateIssues(event dtos.Event, futures []shared.TicketFuture) error {
	for _, future := range shared.DedupeTicketFutures(futures) {
		if err := e.createIssue(event, future); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) createIssue(event dtos.Event, future shared.TicketFuture) error {
	rule, err := e.ruleRepository.ReadWithProject(future.Rule.GetID())
	if err != nil {
		return errors.Wrap(err, "failed to load rule for ticket creation")
	}
	org := rule.Project.Organization

	integration, err := e.integrationRepository.FindOneVisible(future.Args.IntegrationID, future.Args.Provider, org.ID)
	if goerrors.Is(err, shared.ErrIntegrationNotFound) {
		// the integration was removed after the rule was saved, the future
		// is dropped without failing the batch
		slog.Info("skipping ticket creation, integration is gone",
			"provider", future.Args.Provider,
			"integrationID", future.Args.IntegrationID,
			"ruleID", rule.ID)
		return nil
	} else if err != nil {
		return errors.Wrap(err, "failed to load integration for ticket creation")
	}

	factory, ok := e.installationFactories[future.Args.Provider]
	if !ok {
		return errors.Errorf("no installation factory registered for provider %s", future.Args.Provider)
	}

	installation, err := factory.GetInstallation(integration, org.ID)
	if err != nil {
		return errors.Wrap(err, "failed to build installation for ticket creation")
	}

	hasLink, err := e.groupLinkRepository.HasIssueLink(event.Group.ID, event.Group.ProjectID, integration.ID)
	if err != nil {
		return errors.Wrap(err, "failed to check for existing issue link")
	}
	if hasLink {
		slog.Info(fmt.Sprintf("%s.rule_trigger.link_already_exists", future.Args.Provider),
			"groupID", event.Group.ID,
			"integrationID", integration.ID,
			"ruleID", rule.ID)
		return nil
	}

	payload := make(map[string]any, len(future.Args.Data))
	for key, value := range future.Args.Data {
		payload[key] = value
	}
	payload["title"] = event.Title
	payload["description"] = e.buildDescription(event, rule, installation, future.Args.GenerateFooter)
	delete(payload, DynamicFormFieldsKey)

	response, err := installation.CreateIssue(payload)
	if err != nil {
		return &shared.IntegrationError{Provider: future.Args.Provider, Err: err}
	}

	issueKey, err := walkKeyPath(response, future.Args.IssueKeyPath)
	if err != nil {
		return err
	}

	return e.createLink(event, rule, integration, installation, future.Args.Provider, issueKey)
}

// buildDescription renders the issue body, the group description of the
// installation followed by a footer that links back to the triggering rule.
func (e *Executor) buildDescription(event dtos.Event, rule models.Rule, installation shared.Installation, generateFooter func(string, string) string) string {
	ruleURL := fmt.Sprintf("%s/organizations/%s/alerts/rules/%s/%s/",
		strings.TrimSuffix(e.frontendURL, "/"),
		rule.Project.Organization.Slug,
		rule.Project.Slug,
		rule.ID)
	return installation.GetGroupDescription(event.Group, event) + generateFooter(rule.Label, ruleURL)
}

// createLink persists the external issue and the group link pointing at it.
// Both rows are written in one transaction, a crash between them cannot
// leave an issue without its link.
func (e *Executor) createLink(event dtos.Event, rule models.Rule, integration models.Integration, installation shared.Installation, provider string, issueKey string) error {
	err := e.externalIssueRepository.Transaction(func(tx shared.DB) error {
		externalIssue := models.ExternalIssue{
			OrganizationID: rule.Project.OrganizationID,
			IntegrationID:  integration.ID,
			Key:            issueKey,
			Title:          event.Title,
			Description:    installation.GetGroupDescription(event.Group, event),
		}
		if err := e.externalIssueRepository.Create(tx, &externalIssue); err != nil {
			return err
		}

		groupLink := models.GroupLink{
			GroupID:      event.Group.ID,
			ProjectID:    event.Group.ProjectID,
			LinkedType:   models.LinkedTypeIssue,
			LinkedID:     externalIssue.ID,
			Relationship: models.LinkRelationshipReferences,
			Data:         database.JSONB{"provider": provider},
		}
		return e.groupLinkRepository.Create(tx, &groupLink)
	})
	if err != nil && database.IsDuplicateKeyError(err) {
		// a replayed future hands back an issue key that is already
		// persisted, the tracker key index rejects the second insert
		slog.Info("issue link already persisted",
			"groupID", event.Group.ID,
			"integrationID", integration.ID)
		return nil
	}
	return errors.Wrap(err, "failed to persist external issue link")
}

// walkKeyPath follows a dotted path through the create-issue response and
// returns the string it ends at.
func walkKeyPath(response map[string]any, path string) (string, error) {
	current := any(response)
	for _, element := range strings.Split(path, ".") {
		node, ok := current.(map[string]any)
		if !ok {
			return "", &shared.KeyPathError{Path: path, Missing: element}
		}
		current, ok = node[element]
		if !ok {
			return "", &shared.KeyPathError{Path: path, Missing: element}
		}
	}

	key, ok := current.(string)
	if !ok {
		return "", &shared.KeyPathError{Path: path, Missing: path}
	}
	return key, nil
}
