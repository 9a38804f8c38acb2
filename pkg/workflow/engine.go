package workflow

import (
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/queryon/queryon/pkg/jsonvalue"
)

// Status is the engine's lifecycle state for one run.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusHalted    Status = "halted"
	StatusCompleted Status = "completed"
)

// StepResult is one entry of the execution trace.
type StepResult struct {
	StepID  string
	Name    string
	Output  *jsonvalue.Value
	Err     error
	Elapsed time.Duration
}

// Result is the outcome of one run. The trace is created fresh per run and
// has no lifetime beyond the response built from it.
type Result struct {
	ExecutionID string
	Status      Status
	StepResults []StepResult
	FinalOutput *jsonvalue.Value
	TotalTime   time.Duration
}

// Engine runs step lists. It is stateless across runs and safe for
// concurrent use.
type Engine struct {
	logger   *slog.Logger
	registry *Registry
	validate *validator.Validate
}

func NewEngine(logger *slog.Logger, registry *Registry) *Engine {
	return &Engine{
		logger:   logger,
		registry: registry,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Run executes the steps in order over input. Disabled steps are skipped
// without a trace entry. On the first step error the run halts: no further
// steps execute, the error is recorded against that step, and FinalOutput is
// the value as of the last successful step. A structurally invalid step list
// fails before anything runs.
func (e *Engine) Run(steps []Step, input *jsonvalue.Value) (*Result, error) {
	for i := range steps {
		if err := e.validate.Struct(&steps[i]); err != nil {
			return nil, &StepError{StepID: steps[i].ID, StepName: steps[i].Name, Err: err}
		}
	}

	result := &Result{
		ExecutionID: uuid.NewString(),
		Status:      StatusPending,
		StepResults: make([]StepResult, 0, len(steps)),
		FinalOutput: input,
	}

	logger := e.logger.With("execution_id", result.ExecutionID)
	started := time.Now()
	current := input

	result.Status = StatusRunning

	for _, step := range steps {
		if !step.Enabled {
			logger.Debug("skipping disabled step", "step_id", step.ID, "kind", step.Kind)

			continue
		}

		output, elapsed, err := e.runStep(step, current)
		if err != nil {
			stepErr := &StepError{StepID: step.ID, StepName: step.Name, Err: err}
			result.StepResults = append(result.StepResults, StepResult{
				StepID:  step.ID,
				Name:    step.Name,
				Err:     stepErr,
				Elapsed: elapsed,
			})
			result.Status = StatusHalted
			result.FinalOutput = current
			result.TotalTime = time.Since(started)

			logger.Warn("workflow halted",
				"step_id", step.ID,
				"kind", step.Kind,
				"error", err,
			)

			return result, nil
		}

		result.StepResults = append(result.StepResults, StepResult{
			StepID:  step.ID,
			Name:    step.Name,
			Output:  output,
			Elapsed: elapsed,
		})
		current = output
	}

	result.Status = StatusCompleted
	result.FinalOutput = current
	result.TotalTime = time.Since(started)

	logger.Debug("workflow completed", "steps", len(result.StepResults), "total_time", result.TotalTime)

	return result, nil
}

func (e *Engine) runStep(step Step, input *jsonvalue.Value) (*jsonvalue.Value, time.Duration, error) {
	started := time.Now()

	transform, err := e.registry.Create(step.Kind, step.Config)
	if err != nil {
		return nil, time.Since(started), err
	}

	output, err := transform.Apply(input)
	if err != nil {
		return nil, time.Since(started), err
	}

	return output, time.Since(started), nil
}
