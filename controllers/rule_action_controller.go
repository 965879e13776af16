// Copyright 2025 watchtowerhq.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package controllers

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/watchtowerhq/watchtower/database"
	"github.com/watchtowerhq/watchtower/database/models"
	"github.com/watchtowerhq/watchtower/dtos"
	"github.com/watchtowerhq/watchtower/rules/ticketaction"
	"github.com/watchtowerhq/watchtower/shared"
)

// RuleActionController serves the configuration surface of ticket actions,
// the rendered form fields, validation on save and the dynamic field cache
// refresh.
type RuleActionController struct {
	ruleRepository        shared.RuleRepository
	integrationRepository shared.IntegrationRepository

	providers             map[string]shared.TicketProvider
	installationFactories map[string]shared.InstallationFactory
}

func NewRuleActionController(ruleRepository shared.RuleRepository, integrationRepository shared.IntegrationRepository, providers map[string]shared.TicketProvider, installationFactories map[string]shared.InstallationFactory) *RuleActionController {
	return &RuleActionController{
		ruleRepository:        ruleRepository,
		integrationRepository: integrationRepository,
		providers:             providers,
		installationFactories: installationFactories,
	}
}

// Register mounts the ticket action routes on the given group.
func (controller *RuleActionController) Register(server shared.Server) {
	server.GET("/rules/:ruleID/ticket-action/form-fields", controller.GetFormFields)
	server.POST("/rules/:ruleID/ticket-action/validate", controller.Validate)
	server.POST("/rules/:ruleID/ticket-action/refresh-fields", controller.RefreshDynamicFields)
}

type ruleActionFormResponse struct {
	Label   string                  `json:"label"`
	Enabled bool                    `json:"enabled"`
	Fields  ticketaction.FormFields `json:"fields"`
}

// @Summary Get the rendered form fields of a rule's ticket action
// @Param ruleID path string true "Rule id"
// @Param provider query string true "Ticket provider id"
// @Success 200 {object} ruleActionFormResponse
// @Router /rules/{ruleID}/ticket-action/form-fields [get]
func (controller *RuleActionController) GetFormFields(ctx shared.Context) error {
	action, _, err := controller.buildAction(ctx)
	if err != nil {
		return err
	}

	return ctx.JSON(200, ruleActionFormResponse{
		Label:   action.RenderLabel(),
		Enabled: action.IsEnabled(),
		Fields:  action.GetFormFields(),
	})
}

// @Summary Validate a ticket action configuration before it is saved
// @Param ruleID path string true "Rule id"
// @Param provider query string true "Ticket provider id"
// @Param body body dtos.TicketActionValidateRequest true "Request body"
// @Success 200
// @Router /rules/{ruleID}/ticket-action/validate [post]
func (controller *RuleActionController) Validate(ctx shared.Context) error {
	rule, provider, err := controller.loadRule(ctx)
	if err != nil {
		return err
	}

	var req dtos.TicketActionValidateRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}

	if err := shared.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, fmt.Sprintf("could not validate request: %s", err.Error()))
	}

	rule.ActionData = req.ActionData
	action, err := ticketaction.NewTicketAction(rule, rule.Project, provider, controller.integrationRepository)
	if err != nil {
		return echo.NewHTTPError(500, "could not build rule action").WithInternal(err)
	}

	if err := action.Clean(); err != nil {
		var validationErr *shared.ValidationError
		if errors.As(err, &validationErr) {
			return echo.NewHTTPError(400, map[string]string{
				"field":   validationErr.Field,
				"message": validationErr.Message,
			})
		}
		return echo.NewHTTPError(500, "could not validate rule action").WithInternal(err)
	}

	return ctx.NoContent(200)
}

// @Summary Refresh the cached dynamic form fields from the tracker
// @Param ruleID path string true "Rule id"
// @Param provider query string true "Ticket provider id"
// @Success 200 {array} map[string]any
// @Router /rules/{ruleID}/ticket-action/refresh-fields [post]
func (controller *RuleActionController) RefreshDynamicFields(ctx shared.Context) error {
	rule, provider, err := controller.loadRule(ctx)
	if err != nil {
		return err
	}

	factory, ok := controller.installationFactories[provider.ProviderID()]
	if !ok {
		return echo.NewHTTPError(400, "unknown provider")
	}

	rawIntegrationID, _ := rule.ActionData[ticketaction.IntegrationKey].(string)
	integrationID, err := uuid.Parse(rawIntegrationID)
	if err != nil {
		return echo.NewHTTPError(400, "no integration selected")
	}

	integration, err := controller.integrationRepository.FindOneVisible(integrationID, provider.ProviderID(), rule.Project.OrganizationID)
	if errors.Is(err, shared.ErrIntegrationNotFound) {
		return echo.NewHTTPError(404, "integration not found")
	} else if err != nil {
		return echo.NewHTTPError(500, "could not load integration").WithInternal(err)
	}

	installation, err := factory.GetInstallation(integration, rule.Project.OrganizationID)
	if err != nil {
		return echo.NewHTTPError(500, "could not connect to the tracker").WithInternal(err)
	}

	fields, err := installation.GetCreateIssueConfigNoParams()
	if err != nil {
		// a tracker outage only degrades the form, the cached fields stay
		// in use until the next successful refresh
		slog.Info("failed to refresh dynamic form fields",
			"provider", provider.ProviderID(),
			"integrationID", integration.ID,
			"err", err)
		return ctx.JSON(200, rule.ActionData[ticketaction.DynamicFormFieldsKey])
	}

	if rule.ActionData == nil {
		rule.ActionData = database.JSONB{}
	}
	rule.ActionData[ticketaction.DynamicFormFieldsKey] = fields
	if err := controller.ruleRepository.Save(nil, &rule); err != nil {
		return echo.NewHTTPError(500, "could not save rule").WithInternal(err)
	}

	return ctx.JSON(200, fields)
}

func (controller *RuleActionController) buildAction(ctx shared.Context) (*ticketaction.TicketAction, shared.TicketProvider, error) {
	rule, provider, err := controller.loadRule(ctx)
	if err != nil {
		return nil, nil, err
	}

	action, err := ticketaction.NewTicketAction(rule, rule.Project, provider, controller.integrationRepository)
	if err != nil {
		return nil, nil, echo.NewHTTPError(500, "could not build rule action").WithInternal(err)
	}
	return action, provider, nil
}

func (controller *RuleActionController) loadRule(ctx shared.Context) (models.Rule, shared.TicketProvider, error) {
	ruleID, err := uuid.Parse(ctx.Param("ruleID"))
	if err != nil {
		return models.Rule{}, nil, echo.NewHTTPError(400, "invalid rule id")
	}

	provider, ok := controller.providers[ctx.QueryParam("provider")]
	if !ok {
		return models.Rule{}, nil, echo.NewHTTPError(400, "unknown provider")
	}

	rule, err := controller.ruleRepository.ReadWithProject(ruleID)
	if err != nil {
		return models.Rule{}, nil, echo.NewHTTPError(404, "rule not found").WithInternal(err)
	}
	return rule, provider, nil
}
