package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/flowlint/flowlint/pkg/expression"
	"github.com/flowlint/flowlint/pkg/log"
	"github.com/flowlint/flowlint/pkg/nodeconfig"
	"github.com/flowlint/flowlint/pkg/registry"
	"github.com/flowlint/flowlint/pkg/suggest"
	"github.com/flowlint/flowlint/pkg/validator"
	cli "github.com/urfave/cli/v3"
)

func ValidateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Aliases:   []string{"v"},
		Usage:     "Validate a workflow JSON file",
		ArgsUsage: "<workflow.json>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "profile",
				Usage:   "Validation profile (minimal, runtime, ai-friendly, strict)",
				Value:   string(nodeconfig.DefaultProfile),
				Sources: cli.EnvVars("FLOWLINT_PROFILE"),
			},
			&cli.BoolFlag{
				Name:  "skip-expressions",
				Usage: "Skip expression format checks",
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

			profile := nodeconfig.Profile(command.String("profile"))
			if !nodeconfig.ValidProfile(profile) {
				return fmt.Errorf("%w: %q", validator.ErrUnknownProfile, profile)
			}

			raw, err := readWorkflowArg(command)
			if err != nil {
				return err
			}

			opts := validator.DefaultOptions()
			opts.Profile = profile
			opts.ValidateExpressions = !command.Bool("skip-expressions")

			result := newEngine().ValidateJSON(raw, opts)

			if err := printJSON(result); err != nil {
				return err
			}

			if !result.Valid {
				return cli.Exit("", 1)
			}

			return nil
		},
	}
}

// newEngine assembles the validation engine over the builtin metadata store.
func newEngine() *validator.Validator {
	logger := log.WithModule("cli")
	reg := registry.NewDefaultRegistry(logger)
	config := nodeconfig.NewValidator(
		reg,
		suggest.NewResourceService(reg, logger),
		suggest.NewOperationService(reg, logger),
		logger,
	)

	return validator.New(
		reg,
		config,
		suggest.NewNodeTypeService(reg, logger),
		expression.NewFormatChecker(),
		logger,
	)
}

// readWorkflowArg loads the workflow file named by the first argument, or
// stdin when the argument is "-".
func readWorkflowArg(command *cli.Command) ([]byte, error) {
	path := command.Args().First()
	if path == "" {
		return nil, fmt.Errorf("missing workflow file argument")
	}

	if path == "-" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read workflow from stdin: %w", err)
		}

		return raw, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workflow file: %w", err)
	}

	return raw, nil
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	return encoder.Encode(v)
}
