package main

import (
	"context"
	"fmt"
	"io"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/queryon/queryon/pkg/dispatch"
	"github.com/queryon/queryon/pkg/log"
)

func main() {
	cmd := &cli.Command{
		Name:                  "queryon",
		Usage:                 "Evaluate queries and transformation workflows over JSON",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "error",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:    "query",
				Aliases: []string{"q"},
				Usage:   "Evaluate a query against a JSON document",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "dialect",
						Aliases: []string{"d"},
						Usage:   "Query dialect (jq, jsonata, mongodb)",
						Value:   "jq",
					},
					&cli.StringFlag{
						Name:     "query",
						Aliases:  []string{"q"},
						Usage:    "Query text to evaluate",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "input",
						Aliases: []string{"i"},
						Usage:   "Path to the JSON document (stdin if not provided)",
						Value:   "",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runQuery(ctx, cmd)
				},
			},
			{
				Name:    "workflow",
				Aliases: []string{"w"},
				Usage:   "Run a transformation workflow against a JSON document",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "steps",
						Aliases:  []string{"s"},
						Usage:    "Path to the workflow steps file (JSON array)",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "input",
						Aliases: []string{"i"},
						Usage:   "Path to the JSON document (stdin if not provided)",
						Value:   "",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runWorkflow(ctx, cmd)
				},
			},
			{
				Name:    "explore",
				Aliases: []string{"e"},
				Usage:   "List the paths of a JSON document",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "path",
						Aliases: []string{"p"},
						Usage:   "Path expression to select matches (all paths if not provided)",
						Value:   "",
					},
					&cli.StringFlag{
						Name:    "input",
						Aliases: []string{"i"},
						Usage:   "Path to the JSON document (stdin if not provided)",
						Value:   "",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runExplore(ctx, cmd)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newService(cmd *cli.Command) *dispatch.Service {
	log.Setup(cmd.String("log-level"))

	return dispatch.NewService(log.WithModule("cli"), nil)
}

func readInput(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}

		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}

	return string(data), nil
}
