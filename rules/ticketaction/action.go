// Copyright 2025 watchtowerhq.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package ticketaction

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/watchtowerhq/watchtower/database/models"
	"github.com/watchtowerhq/watchtower/dtos"
	"github.com/watchtowerhq/watchtower/shared"
	"github.com/watchtowerhq/watchtower/utils"
)

const removedIntegrationLabel = "[removed]"

// TicketAction is the rule action that creates a ticket in an external
// tracker. It never talks to the tracker itself - After only yields a
// future, the executor does the actual work later.
type TicketAction struct {
	data    map[string]any
	rule    models.Rule
	project models.Project

	provider              shared.TicketProvider
	integrationRepository shared.IntegrationRepository

	hasIntegrations bool
	formFields      FormFields
}

var _ shared.EventAction = &TicketAction{}

// NewTicketAction binds the persisted action data of a rule to a provider.
// The integration choices are resolved eagerly so that the form fields and
// the label are available without further queries. When no integration is
// selected yet the first available choice becomes the default.
func NewTicketAction(rule models.Rule, project models.Project, provider shared.TicketProvider, integrationRepository shared.IntegrationRepository) (*TicketAction, error) {
	data := map[string]any{}
	for key, value := range rule.ActionData {
		data[key] = value
	}

	integrations, err := integrationRepository.FindVisibleByProviderAndOrg(provider.ProviderID(), project.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s integrations: %w", provider.ProviderID(), err)
	}

	choices := utils.Map(integrations, func(integration models.Integration) dtos.IntegrationChoice {
		return dtos.IntegrationChoice{
			ID:    integration.ID,
			Label: provider.TranslateIntegration(integration),
		}
	})

	selected, _ := data[IntegrationKey].(string)
	if selected == "" && len(choices) > 0 {
		selected = choices[0].ID.String()
		data[IntegrationKey] = selected
	}

	return &TicketAction{
		data:                  data,
		rule:                  rule,
		project:               project,
		provider:              provider,
		integrationRepository: integrationRepository,
		hasIntegrations:       len(choices) > 0,
		formFields:            buildFormFields(choices, selected, data),
	}, nil
}

// IsEnabled reports whether the organization has any visible integration of
// the provider. A stale selection in the action data does not enable the
// action. Disabled actions are skipped by the engine without an error.
func (a *TicketAction) IsEnabled() bool {
	return a.hasIntegrations
}

func (a *TicketAction) GetFormFields() FormFields {
	return a.formFields
}

// Clean validates the configured integration against the integrations that
// are currently visible to the organization. It is called when the rule is
// saved, never during execution.
func (a *TicketAction) Clean() error {
	integrationID, err := a.selectedIntegrationID()
	if err != nil {
		return shared.NewValidationError(IntegrationKey, "integration is required")
	}

	_, err = a.integrationRepository.FindOneVisible(integrationID, a.provider.ProviderID(), a.project.OrganizationID)
	if errors.Is(err, shared.ErrIntegrationNotFound) {
		return shared.NewValidationError(IntegrationKey, "integration is required")
	}
	return err
}

// FixDataForIssue wraps scalar values of multi-value fields in a list. The
// operation is idempotent, values that are already sequences pass through.
func (a *TicketAction) FixDataForIssue() map[string]any {
	for _, field := range a.provider.MultiValueFields() {
		value, ok := a.data[field]
		if !ok || value == nil {
			continue
		}
		switch value.(type) {
		case []any, []string, []map[string]any:
			// already a sequence
		default:
			a.data[field] = []any{value}
		}
	}
	return a.data
}

// After yields the deferred ticket creation for one matching event. The
// future carries a snapshot of the action data, later edits to the rule do
// not leak into queued work.
func (a *TicketAction) After(event dtos.Event, state shared.RuleState) shared.TicketFuture {
	rawIntegrationID, _ := a.data[IntegrationKey].(string)
	// an unparsable id yields the zero uuid, which the executor treats the
	// same as a removed integration
	integrationID, _ := uuid.Parse(rawIntegrationID)

	data := a.FixDataForIssue()
	snapshot := make(map[string]any, len(data))
	for key, value := range data {
		snapshot[key] = value
	}

	return shared.TicketFuture{
		Key:  a.provider.ProviderID() + ":" + rawIntegrationID,
		Rule: a.rule,
		Args: shared.TicketArgs{
			Data:           snapshot,
			IntegrationID:  integrationID,
			Provider:       a.provider.ProviderID(),
			GenerateFooter: a.provider.GenerateFooter,
			IssueKeyPath:   a.provider.IssueKeyPath(),
		},
	}
}

// RenderLabel produces the human readable summary shown in the rule editor,
// e.g. "Create a Jira issue in acme".
func (a *TicketAction) RenderLabel() string {
	label := removedIntegrationLabel

	integrationID, err := a.selectedIntegrationID()
	if err == nil {
		integration, err := a.integrationRepository.FindOneVisible(integrationID, a.provider.ProviderID(), a.project.OrganizationID)
		if err == nil {
			label = a.provider.TranslateIntegration(integration)
		}
	}

	return fmt.Sprintf("Create %s in %s", a.provider.TicketType(), label)
}

func (a *TicketAction) selectedIntegrationID() (uuid.UUID, error) {
	raw, _ := a.data[IntegrationKey].(string)
	return uuid.Parse(raw)
}
