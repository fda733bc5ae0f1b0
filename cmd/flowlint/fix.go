package main

import (
	"context"
	"fmt"

	"github.com/flowlint/flowlint/pkg/autofix"
	"github.com/flowlint/flowlint/pkg/expression"
	"github.com/flowlint/flowlint/pkg/log"
	"github.com/flowlint/flowlint/pkg/models"
	"github.com/flowlint/flowlint/pkg/registry"
	"github.com/flowlint/flowlint/pkg/validator"
	"github.com/flowlint/flowlint/pkg/web"
	cli "github.com/urfave/cli/v3"
)

func FixCommand() *cli.Command {
	return &cli.Command{
		Name:      "fix",
		Aliases:   []string{"f"},
		Usage:     "Generate fixes for a workflow JSON file",
		ArgsUsage: "<workflow.json>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "apply",
				Usage: "Emit apply-ready update operations instead of a preview",
			},
			&cli.StringSliceFlag{
				Name:  "fix-type",
				Usage: "Restrict to the given fix families (repeatable)",
			},
			&cli.StringFlag{
				Name:  "confidence",
				Usage: "Minimum fix confidence (high, medium, low)",
			},
			&cli.IntFlag{
				Name:  "max-fixes",
				Usage: "Cap the number of generated fixes (0 = unlimited)",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			raw, err := readWorkflowArg(command)
			if err != nil {
				return err
			}

			workflow, _, err := validator.ParseWorkflow(raw)
			if err != nil {
				return fmt.Errorf("workflow cannot be fixed: %w", err)
			}

			cfg := autofix.Config{
				ApplyFixes:          command.Bool("apply"),
				ConfidenceThreshold: models.FixConfidence(command.String("confidence")),
				MaxFixes:            command.Int("max-fixes"),
			}

			for _, t := range command.StringSlice("fix-type") {
				fixType := models.FixType(t)
				if !knownFixType(fixType) {
					return fmt.Errorf("%w: %q", validator.ErrUnknownFixType, t)
				}

				cfg.FixTypes = append(cfg.FixTypes, fixType)
			}

			logger := log.WithModule("cli")
			engine := newEngine()

			result := engine.ValidateWorkflow(workflow, validator.DefaultOptions())

			var expressionIssues []expression.Issue

			checker := expression.NewFormatChecker()
			for _, node := range workflow.Nodes {
				if node.Disabled || len(node.Parameters) == 0 {
					continue
				}

				errs, _ := checker.CheckNodeExpressions(node.Parameters, expression.Context{
					CurrentNodeName: node.Name,
					HasInputData:    true,
				})
				expressionIssues = append(expressionIssues, errs...)
			}

			fixer := autofix.New(registry.NewDefaultRegistry(logger), logger)
			fixes := fixer.GenerateFixes(workflow, result, expressionIssues, cfg)

			return printJSON(web.FixWorkflowResponse{
				Validation: result,
				Fixes:      fixes,
			})
		},
	}
}

func knownFixType(t models.FixType) bool {
	switch t {
	case models.FixTypeExpressionFormat,
		models.FixTypeTypeVersionCorrection,
		models.FixTypeErrorOutputConfig,
		models.FixTypeNodeTypeCorrection:
		return true
	default:
		return false
	}
}
