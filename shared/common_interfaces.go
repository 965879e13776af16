// Copyright 2025 watchtowerhq.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package shared

import (
	"github.com/google/uuid"
	"github.com/watchtowerhq/watchtower/database/models"
	"github.com/watchtowerhq/watchtower/dtos"
	"github.com/watchtowerhq/watchtower/utils"
)

type IntegrationRepository interface {
	utils.Repository[uuid.UUID, models.Integration, DB]
	FindVisibleByProviderAndOrg(provider string, orgID uuid.UUID) ([]models.Integration, error)
	FindOneVisible(id uuid.UUID, provider string, orgID uuid.UUID) (models.Integration, error)
}

type ExternalIssueRepository interface {
	utils.Repository[uuid.UUID, models.ExternalIssue, DB]
	FindByIntegrationID(integrationID uuid.UUID) ([]models.ExternalIssue, error)
}

type GroupLinkRepository interface {
	utils.Repository[uuid.UUID, models.GroupLink, DB]
	HasIssueLink(groupID uuid.UUID, projectID uuid.UUID, integrationID uuid.UUID) (bool, error)
}

type RuleRepository interface {
	utils.Repository[uuid.UUID, models.Rule, DB]
	ReadWithProject(id uuid.UUID) (models.Rule, error)
}

// Installation is the runtime client bound to one integration. The concrete
// per-provider implementation knows how to call the external API.
type Installation interface {
	GetGroupDescription(group models.Group, event dtos.Event) string
	CreateIssue(payload map[string]any) (map[string]any, error)
	GetCreateIssueConfigNoParams() ([]map[string]any, error)
}

type InstallationFactory interface {
	GetInstallation(integration models.Integration, orgID uuid.UUID) (Installation, error)
}

// TicketProvider captures what differs between supported trackers. One
// implementation per tracker, selected by provider id at action construction.
type TicketProvider interface {
	ProviderID() string
	// TicketType is the human phrase used in labels, e.g. "a Jira issue".
	TicketType() string
	// TranslateIntegration renders the display label for an integration
	// choice, e.g. the tracker domain with a fixed suffix stripped.
	TranslateIntegration(integration models.Integration) string
	GenerateFooter(ruleLabel string, ruleURL string) string
	// IssueKeyPath is the dotted path into the create-issue response where
	// the new external issue key is found.
	IssueKeyPath() string
	// MultiValueFields names fields whose values must always be sequences,
	// even when form submission delivered a bare scalar.
	MultiValueFields() []string
}

// RuleState carries the group state flags the engine computed for the event.
type RuleState struct {
	IsNewGroup bool
}

// EventAction is one configured effect of a rule. After a rule matches, the
// engine collects the futures of all matching actions and hands them to the
// executor in a single batch per event.
type EventAction interface {
	IsEnabled() bool
	After(event dtos.Event, state RuleState) TicketFuture
	RenderLabel() string
}

// TicketFuture is the deferred unit of work a ticket action yields. It is a
// plain value - all data the executor needs travels in Args, nothing hides
// in closures except the provider's footer function.
type TicketFuture struct {
	// Key is the dedup key, provider and integration id joined by a colon.
	// Futures sharing a key are coalesced into a single execution.
	Key  string
	Rule models.Rule
	Args TicketArgs
}

type TicketArgs struct {
	Data           map[string]any
	IntegrationID  uuid.UUID
	Provider       string
	GenerateFooter func(ruleLabel string, ruleURL string) string
	IssueKeyPath   string
}

// DedupeTicketFutures collapses futures sharing a dedup key. The first future
// per key wins, order is preserved.
func DedupeTicketFutures(futures []TicketFuture) []TicketFuture {
	seen := make(map[string]struct{}, len(futures))
	deduped := make([]TicketFuture, 0, len(futures))
	for _, future := range futures {
		if _, ok := seen[future.Key]; ok {
			continue
		}
		seen[future.Key] = struct{}{}
		deduped = append(deduped, future)
	}
	return deduped
}
