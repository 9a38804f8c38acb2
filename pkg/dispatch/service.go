package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/queryon/queryon/pkg/dialect"
	"github.com/queryon/queryon/pkg/dialect/jq"
	"github.com/queryon/queryon/pkg/dialect/jsonata"
	"github.com/queryon/queryon/pkg/dialect/mongo"
	"github.com/queryon/queryon/pkg/explorer"
	"github.com/queryon/queryon/pkg/jsonvalue"
	"github.com/queryon/queryon/pkg/otelhelper"
	"github.com/queryon/queryon/pkg/schema"
	"github.com/queryon/queryon/pkg/steps"
	"github.com/queryon/queryon/pkg/workflow"
)

// Service routes boundary requests to the matching interpreter or the
// workflow engine. It is stateless per request and safe for concurrent use.
type Service struct {
	logger   *slog.Logger
	validate *validator.Validate
	tracer   trace.Tracer
	dialects *dialect.Registry
	engine   *workflow.Engine
}

// NewService builds a service with all dialects and step kinds registered.
// Pass a nil tracer to disable tracing.
func NewService(logger *slog.Logger, tracer trace.Tracer) *Service {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("queryon")
	}

	dialects := dialect.NewRegistry(logger)
	dialects.Register(jq.New())
	dialects.Register(jsonata.New())
	dialects.Register(mongo.New())

	return &Service{
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		tracer:   tracer,
		dialects: dialects,
		engine:   workflow.NewEngine(logger, steps.NewRegistry(logger)),
	}
}

// Query evaluates one dialect query. Every failure, including a panicking
// evaluator, lands in the response's Error field.
func (s *Service) Query(ctx context.Context, req QueryRequest) QueryResponse {
	_, span := otelhelper.StartSpan(ctx, s.tracer, "dispatch.query",
		attribute.String(otelhelper.DialectKey, req.Dialect),
	)
	defer span.End()

	started := time.Now()

	fail := func(err error) QueryResponse {
		otelhelper.SetError(span, err)
		s.logger.Debug("query failed", "dialect", req.Dialect, "error", err)

		return QueryResponse{Error: err.Error(), Time: millisSince(started)}
	}

	if err := s.validate.Struct(&req); err != nil {
		return fail(fmt.Errorf("invalid request: %w", err))
	}

	value, err := jsonvalue.Parse(req.JSON)
	if err != nil {
		return fail(err)
	}

	evaluator, err := s.dialects.Get(req.Dialect)
	if err != nil {
		return fail(err)
	}

	result, err := evaluateSafely(evaluator, value, req.Query)
	if err != nil {
		return fail(err)
	}

	return QueryResponse{Result: result.Render(), Time: millisSince(started)}
}

// RunWorkflow executes a step list. A request that fails validation or JSON
// parsing reports a response-level error; step failures appear in the trace.
func (s *Service) RunWorkflow(ctx context.Context, req WorkflowRequest) WorkflowResponse {
	_, span := otelhelper.StartSpan(ctx, s.tracer, "dispatch.workflow",
		attribute.Int(otelhelper.StepCountKey, len(req.Steps)),
	)
	defer span.End()

	started := time.Now()

	fail := func(err error) WorkflowResponse {
		otelhelper.SetError(span, err)
		s.logger.Debug("workflow rejected", "error", err)

		return WorkflowResponse{
			Status:    string(workflow.StatusHalted),
			Error:     err.Error(),
			TotalTime: millisSince(started),
		}
	}

	if err := s.validate.Struct(&req); err != nil {
		return fail(fmt.Errorf("invalid request: %w", err))
	}

	value, err := jsonvalue.Parse(req.JSON)
	if err != nil {
		return fail(err)
	}

	result, err := s.engine.Run(req.Steps, value)
	if err != nil {
		return fail(err)
	}

	span.SetAttributes(attribute.String(otelhelper.ExecutionIDKey, result.ExecutionID))

	resp := WorkflowResponse{
		Status:      string(result.Status),
		StepResults: make([]StepOutcome, 0, len(result.StepResults)),
		FinalOutput: result.FinalOutput.Render(),
		TotalTime:   millisSince(started),
	}

	for _, stepResult := range result.StepResults {
		outcome := StepOutcome{
			StepID: stepResult.StepID,
			Time:   float64(stepResult.Elapsed.Microseconds()) / 1000.0,
		}

		if stepResult.Err != nil {
			outcome.Error = stepResult.Err.Error()
		} else {
			outcome.Output = stepResult.Output.Render()
		}

		resp.StepResults = append(resp.StepResults, outcome)
	}

	return resp
}

// Explore resolves a path-explorer expression.
func (s *Service) Explore(ctx context.Context, req ExploreRequest) ExploreResponse {
	_, span := otelhelper.StartSpan(ctx, s.tracer, "dispatch.explore")
	defer span.End()

	fail := func(err error) ExploreResponse {
		otelhelper.SetError(span, err)

		return ExploreResponse{Error: err.Error()}
	}

	if err := s.validate.Struct(&req); err != nil {
		return fail(fmt.Errorf("invalid request: %w", err))
	}

	value, err := jsonvalue.Parse(req.JSON)
	if err != nil {
		return fail(err)
	}

	results, err := explorer.Explore(value, req.Expression)
	if err != nil {
		return fail(err)
	}

	if results == nil {
		results = []explorer.Result{}
	}

	return ExploreResponse{Results: results}
}

// ValidateSchema checks a document against a JSON Schema.
func (s *Service) ValidateSchema(ctx context.Context, req SchemaRequest) SchemaResponse {
	_, span := otelhelper.StartSpan(ctx, s.tracer, "dispatch.schema")
	defer span.End()

	fail := func(err error) SchemaResponse {
		otelhelper.SetError(span, err)

		return SchemaResponse{Error: err.Error()}
	}

	if err := s.validate.Struct(&req); err != nil {
		return fail(fmt.Errorf("invalid request: %w", err))
	}

	report, err := schema.Validate(req.JSON, req.Schema)
	if err != nil {
		return fail(err)
	}

	return SchemaResponse{Valid: report.Valid, Issues: report.Issues}
}

// Dialects lists the registered dialect names.
func (s *Service) Dialects() []string {
	return s.dialects.IDs()
}

// evaluateSafely converts an evaluator panic into an error so nothing
// escapes the boundary.
func evaluateSafely(evaluator dialect.Evaluator, value *jsonvalue.Value, query string) (result *jsonvalue.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("evaluation panic: %v", r)
		}
	}()

	return evaluator.Evaluate(value, query)
}

func millisSince(started time.Time) float64 {
	return float64(time.Since(started).Microseconds()) / 1000.0
}
