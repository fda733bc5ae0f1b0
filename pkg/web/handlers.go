// Package web provides the HTTP handlers and REST API endpoints of the
// validation service.
package web

import (
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/flowlint/flowlint/pkg/autofix"
	"github.com/flowlint/flowlint/pkg/expression"
	"github.com/flowlint/flowlint/pkg/models"
	"github.com/flowlint/flowlint/pkg/otelhelper"
	"github.com/flowlint/flowlint/pkg/registry"
	"github.com/flowlint/flowlint/pkg/validator"
	govalidator "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type APIHandlers struct {
	engine   *validator.Validator
	fixer    *autofix.Fixer
	registry registry.NodeTypes
	checker  expression.Checker
	validate *govalidator.Validate
	tracer   trace.Tracer
	logger   *slog.Logger
}

func NewAPIHandlers(
	engine *validator.Validator,
	fixer *autofix.Fixer,
	registry registry.NodeTypes,
	checker expression.Checker,
	validate *govalidator.Validate,
	logger *slog.Logger,
) *APIHandlers {
	return &APIHandlers{
		engine:   engine,
		fixer:    fixer,
		registry: registry,
		checker:  checker,
		validate: validate,
		tracer:   otel.Tracer("flowlint-api"),
		logger:   logger,
	}
}

func (h *APIHandlers) ValidateWorkflow(c fiber.Ctx) error {
	var req ValidateWorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	opts := req.options()

	ctx, span := otelhelper.StartSpan(c.Context(), h.tracer, "workflow.validate",
		attribute.String(otelhelper.ProfileKey, string(opts.Profile)))
	defer span.End()

	result := h.engine.ValidateJSON(req.Workflow, opts)

	span.SetAttributes(
		attribute.Int(otelhelper.NodeCountKey, result.Statistics.TotalNodes),
		attribute.Bool(otelhelper.ValidKey, result.Valid),
		attribute.Int(otelhelper.ErrorCountKey, len(result.Errors)),
		attribute.Int(otelhelper.WarningCountKey, len(result.Warnings)),
	)

	h.logger.InfoContext(ctx, "Workflow validated",
		"valid", result.Valid,
		"errors", len(result.Errors),
		"warnings", len(result.Warnings))

	return c.JSON(result)
}

func (h *APIHandlers) FixWorkflow(c fiber.Ctx) error {
	var req FixWorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	ctx, span := otelhelper.StartSpan(c.Context(), h.tracer, "workflow.fix",
		attribute.Bool(otelhelper.AppliedKey, req.ApplyFixes))
	defer span.End()

	workflow, _, err := validator.ParseWorkflow(req.Workflow)
	if err != nil {
		otelhelper.SetError(span, err)

		return handleEngineError(c, err)
	}

	span.SetAttributes(attribute.String(otelhelper.WorkflowNameKey, workflow.Name))

	result := h.engine.ValidateWorkflow(workflow, validator.DefaultOptions())
	fixes := h.fixer.GenerateFixes(workflow, result, h.expressionIssues(workflow), req.config())

	span.SetAttributes(attribute.Int(otelhelper.FixCountKey, fixes.Stats.Total))

	h.logger.InfoContext(ctx, "Fixes generated",
		"fixes", fixes.Stats.Total,
		"operations", len(fixes.Operations),
		"applied", req.ApplyFixes)

	return c.JSON(FixWorkflowResponse{
		Validation: result,
		Fixes:      fixes,
	})
}

// expressionIssues re-runs the expression checker over the workflow so the
// fixer can consume the corrected values it computes.
func (h *APIHandlers) expressionIssues(workflow *models.Workflow) []expression.Issue {
	if h.checker == nil {
		return nil
	}

	names := make([]string, 0, len(workflow.Nodes))
	for _, node := range workflow.Nodes {
		names = append(names, node.Name)
	}

	var issues []expression.Issue

	for _, node := range workflow.Nodes {
		if node.Disabled || len(node.Parameters) == 0 {
			continue
		}

		errs, _ := h.checker.CheckNodeExpressions(node.Parameters, expression.Context{
			AvailableNodeNames: names,
			CurrentNodeName:    node.Name,
			HasInputData:       true,
		})

		issues = append(issues, errs...)
	}

	return issues
}

func (h *APIHandlers) GetNodeTypes(c fiber.Ctx) error {
	pkg := c.Query("package")

	var onlyTriggers bool

	if triggerStr := c.Query("trigger"); triggerStr != "" {
		trigger, err := strconv.ParseBool(triggerStr)
		if err != nil {
			return badRequest(c, "Invalid query parameters: "+err.Error())
		}

		onlyTriggers = trigger
	}

	all := h.registry.GetAllNodeTypes()
	summaries := make([]NodeTypeSummary, 0, len(all))

	for _, desc := range all {
		if pkg != "" && desc.Package != pkg {
			continue
		}

		if onlyTriggers && !desc.IsTrigger {
			continue
		}

		summaries = append(summaries, summarizeNodeType(desc))
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].NodeType < summaries[j].NodeType
	})

	return c.JSON(fiber.Map{
		"nodeTypes":   summaries,
		"total_count": len(summaries),
	})
}

func (h *APIHandlers) GetNodeType(c fiber.Ctx) error {
	// Wildcard route: langchain identifiers contain a slash.
	nodeType := c.Params("*")
	if nodeType == "" {
		return badRequest(c, "Node type is required")
	}

	desc := h.registry.GetNode(nodeType)
	if desc == nil {
		if expanded := models.ExpandShortNamespace(nodeType); expanded != nodeType {
			desc = h.registry.GetNode(expanded)
		}
	}

	if desc == nil {
		return notFound(c, "Node type not found")
	}

	return c.JSON(desc)
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	nodeTypes := len(h.registry.GetAllNodeTypes())

	status := "healthy"
	message := "Flowlint API is healthy"
	httpStatus := http.StatusOK

	if nodeTypes == 0 {
		status = "unhealthy"
		message = "Flowlint API has no node-type metadata loaded"
		httpStatus = http.StatusInternalServerError
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"checkers": fiber.Map{
			"registry": strconv.Itoa(nodeTypes) + " node types loaded",
		},
		"timestamp": time.Now().UTC(),
	})
}
