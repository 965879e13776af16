// Copyright 2025 watchtowerhq.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package jiratracker

import (
	"fmt"
	"strings"

	"github.com/watchtowerhq/watchtower/database/models"
	"github.com/watchtowerhq/watchtower/shared"
)

const ProviderID = "jira"

// atlassian cloud trackers all live under this suffix, stripping it keeps
// the choice labels short
const domainSuffix = ".atlassian.net"

type Provider struct{}

var _ shared.TicketProvider = Provider{}

func NewProvider() Provider {
	return Provider{}
}

func (Provider) ProviderID() string {
	return ProviderID
}

func (Provider) TicketType() string {
	return "a Jira issue"
}

func (Provider) TranslateIntegration(integration models.Integration) string {
	name := integration.Name
	if domain, ok := integration.Metadata["domain_name"].(string); ok && domain != "" {
		name = domain
	}
	return strings.TrimSuffix(name, domainSuffix)
}

func (Provider) GenerateFooter(ruleLabel string, ruleURL string) string {
	return fmt.Sprintf("This ticket was automatically created by Watchtower via [%s|%s]", ruleLabel, ruleURL)
}

func (Provider) IssueKeyPath() string {
	return "key"
}

func (Provider) MultiValueFields() []string {
	// form submission delivers a bare scalar when exactly one fix version is
	// selected, the Jira API expects a list either way
	return []string{"fixVersions"}
}
