// Copyright 2025 watchtowerhq.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package jiratracker

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/watchtowerhq/watchtower/database/models"
	"github.com/watchtowerhq/watchtower/dtos"
	"github.com/watchtowerhq/watchtower/shared"
)

// jiraInstallation talks to one Jira cloud instance. Connection settings come
// from the integration metadata.
type jiraInstallation struct {
	integrationID uuid.UUID
	baseURL       string
	userEmail     string
	accessToken   string
}

var _ shared.Installation = &jiraInstallation{}

type installationFactory struct{}

var _ shared.InstallationFactory = installationFactory{}

func NewInstallationFactory() installationFactory {
	return installationFactory{}
}

func (installationFactory) GetInstallation(integration models.Integration, orgID uuid.UUID) (shared.Installation, error) {
	baseURL, _ := integration.Metadata["base_url"].(string)
	userEmail, _ := integration.Metadata["user_email"].(string)
	accessToken, _ := integration.Metadata["access_token"].(string)
	if baseURL == "" || userEmail == "" || accessToken == "" {
		return nil, fmt.Errorf("jira integration %s is missing connection settings", integration.ID)
	}
	return &jiraInstallation{
		integrationID: integration.ID,
		baseURL:       baseURL,
		userEmail:     userEmail,
		accessToken:   accessToken,
	}, nil
}

func (i *jiraInstallation) GetGroupDescription(group models.Group, event dtos.Event) string {
	return fmt.Sprintf("Watchtower problem group: %s\n\n%s\n\n", group.Title, event.Title)
}

func (i *jiraInstallation) CreateIssue(payload map[string]any) (map[string]any, error) {
	bodyBytes, err := json.Marshal(map[string]any{
		"fields": payload,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal issue payload: %w", err)
	}

	resp, err := i.request(http.MethodPost, "/rest/api/3/issue", bytes.NewBuffer(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create issue: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		bodyContent, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to create issue, status code: %d, response: %s", resp.StatusCode, string(bodyContent))
	}

	var response map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode create issue response: %w", err)
	}
	return response, nil
}

func (i *jiraInstallation) GetCreateIssueConfigNoParams() ([]map[string]any, error) {
	resp, err := i.request(http.MethodGet, "/rest/api/3/issue/createmeta?expand=projects.issuetypes.fields", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch create issue config: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch create issue config, status code: %d", resp.StatusCode)
	}

	var meta struct {
		Projects []struct {
			IssueTypes []struct {
				Fields map[string]map[string]any `json:"fields"`
			} `json:"issuetypes"`
		} `json:"projects"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return nil, fmt.Errorf("failed to decode create issue config: %w", err)
	}

	fields := make([]map[string]any, 0)
	for _, project := range meta.Projects {
		for _, issueType := range project.IssueTypes {
			for name, field := range issueType.Fields {
				descriptor := make(map[string]any, len(field)+1)
				for k, v := range field {
					descriptor[k] = v
				}
				descriptor["name"] = name
				fields = append(fields, descriptor)
			}
		}
	}
	return fields, nil
}

var jiraHTTPClient = &http.Client{Timeout: 60 * time.Second}

func (i *jiraInstallation) request(method string, url string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequest(method, i.baseURL+url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(i.userEmail, i.accessToken)

	return jiraHTTPClient.Do(req)
}
