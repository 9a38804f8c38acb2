package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/queryon/queryon/pkg/dispatch"
	"github.com/queryon/queryon/pkg/workflow"
)

func runQuery(ctx context.Context, cmd *cli.Command) error {
	input, err := readInput(cmd.String("input"))
	if err != nil {
		return err
	}

	service := newService(cmd)

	response := service.Query(ctx, dispatch.QueryRequest{
		Dialect: cmd.String("dialect"),
		JSON:    input,
		Query:   cmd.String("query"),
	})
	if response.Error != "" {
		return errors.New(response.Error)
	}

	fmt.Println(response.Result)

	return nil
}

func runWorkflow(ctx context.Context, cmd *cli.Command) error {
	input, err := readInput(cmd.String("input"))
	if err != nil {
		return err
	}

	stepsData, err := os.ReadFile(cmd.String("steps"))
	if err != nil {
		return fmt.Errorf("failed to read steps file: %w", err)
	}

	var steps []workflow.Step

	err = json.Unmarshal(stepsData, &steps)
	if err != nil {
		return fmt.Errorf("failed to parse steps file: %w", err)
	}

	service := newService(cmd)

	response := service.RunWorkflow(ctx, dispatch.WorkflowRequest{
		JSON:  input,
		Steps: steps,
	})
	if response.Error != "" {
		return errors.New(response.Error)
	}

	for _, result := range response.StepResults {
		if result.Error != "" {
			fmt.Fprintf(os.Stderr, "step %s failed: %s\n", result.StepID, result.Error)
		}
	}

	fmt.Println(response.FinalOutput)

	return nil
}

func runExplore(ctx context.Context, cmd *cli.Command) error {
	input, err := readInput(cmd.String("input"))
	if err != nil {
		return err
	}

	expression := cmd.String("path")
	if expression == "" {
		expression = "."
	}

	service := newService(cmd)

	response := service.Explore(ctx, dispatch.ExploreRequest{
		JSON:       input,
		Expression: expression,
	})
	if response.Error != "" {
		return errors.New(response.Error)
	}

	for _, result := range response.Results {
		fmt.Printf("%s\t%s\t%s\n", result.Path, result.Type, result.Value)
	}

	return nil
}
