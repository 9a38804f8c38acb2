package dispatch

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/queryon/queryon/pkg/workflow"
)

func newTestService() *Service {
	return NewService(slog.New(slog.NewTextHandler(os.Stdout, nil)), nil)
}

func TestQuery(t *testing.T) {
	service := newTestService()
	people := `[{"name":"ana","age":17},{"name":"bo","age":30},{"name":"cy","age":45}]`

	tests := []struct {
		name    string
		dialect string
		query   string
		want    string
	}{
		{"jq", "jq", ".[] | select(.age > 18)", `[{"name":"bo","age":30},{"name":"cy","age":45}]`},
		{"jsonata", "jsonata", "$sum(age)", `92`},
		{"mongodb", "mongodb", `{"age":{"$gt":18}}`, `[{"name":"bo","age":30},{"name":"cy","age":45}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := service.Query(context.Background(), QueryRequest{
				Dialect: tt.dialect,
				JSON:    people,
				Query:   tt.query,
			})

			assert.Empty(t, resp.Error)
			assert.Equal(t, tt.want, resp.Result)
			assert.GreaterOrEqual(t, resp.Time, 0.0)
		})
	}
}

func TestQueryDialectsAgreeOnFiltering(t *testing.T) {
	service := newTestService()
	people := `[{"age":17},{"age":30},{"age":45}]`

	queries := map[string]string{
		"jq":      ".[] | select(.age > 18)",
		"mongodb": `{"age":{"$gt":18}}`,
	}

	want := `[{"age":30},{"age":45}]`

	for dialectName, query := range queries {
		resp := service.Query(context.Background(), QueryRequest{
			Dialect: dialectName,
			JSON:    people,
			Query:   query,
		})

		require.Empty(t, resp.Error, "dialect %s", dialectName)
		assert.Equal(t, want, resp.Result, "dialect %s", dialectName)
	}
}

func TestQueryErrors(t *testing.T) {
	service := newTestService()

	tests := []struct {
		name string
		req  QueryRequest
	}{
		{"unknown dialect", QueryRequest{Dialect: "sql", JSON: `{}`, Query: "x"}},
		{"malformed json", QueryRequest{Dialect: "jq", JSON: `{`, Query: "."}},
		{"malformed query", QueryRequest{Dialect: "jq", JSON: `{}`, Query: "frobnicate"}},
		{"missing fields", QueryRequest{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := service.Query(context.Background(), tt.req)
			assert.NotEmpty(t, resp.Error)
			assert.Empty(t, resp.Result)
		})
	}
}

func TestRunWorkflow(t *testing.T) {
	service := newTestService()

	resp := service.RunWorkflow(context.Background(), WorkflowRequest{
		JSON: `{"users":[{"name":"bo","age":30},{"name":"ana","age":17}]}`,
		Steps: []workflow.Step{
			workflow.NewStep("extract", workflow.StepKindJQ, ".users"),
			workflow.NewStep("adults", workflow.StepKindFilter, "age >= 18"),
		},
	})

	assert.Empty(t, resp.Error)
	assert.Equal(t, string(workflow.StatusCompleted), resp.Status)
	require.Len(t, resp.StepResults, 2)
	assert.Equal(t, `[{"name":"bo","age":30}]`, resp.FinalOutput)
}

func TestRunWorkflowHaltReportsStepError(t *testing.T) {
	service := newTestService()

	failing := workflow.NewStep("project", workflow.StepKindMap, "x")

	resp := service.RunWorkflow(context.Background(), WorkflowRequest{
		JSON: `{"a":1}`,
		Steps: []workflow.Step{
			workflow.NewStep("extract", workflow.StepKindJQ, ".a"),
			failing,
			workflow.NewStep("identity", workflow.StepKindJQ, "."),
		},
	})

	assert.Empty(t, resp.Error)
	assert.Equal(t, string(workflow.StatusHalted), resp.Status)
	require.Len(t, resp.StepResults, 2)
	assert.Empty(t, resp.StepResults[0].Error)
	assert.NotEmpty(t, resp.StepResults[1].Error)
	assert.Equal(t, failing.ID, resp.StepResults[1].StepID)
	assert.Equal(t, `1`, resp.FinalOutput)
}

func TestRunWorkflowRejectsEmptySteps(t *testing.T) {
	service := newTestService()

	resp := service.RunWorkflow(context.Background(), WorkflowRequest{JSON: `{}`})

	assert.NotEmpty(t, resp.Error)
	assert.Equal(t, string(workflow.StatusHalted), resp.Status)
}

func TestExplore(t *testing.T) {
	service := newTestService()

	resp := service.Explore(context.Background(), ExploreRequest{
		JSON:       `{"users":[{"name":"ana"},{"name":"bo"}]}`,
		Expression: "users[*].name",
	})

	assert.Empty(t, resp.Error)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "users[0].name", resp.Results[0].Path)
	assert.Equal(t, `"ana"`, resp.Results[0].Value)
	assert.Equal(t, "string", resp.Results[0].Type)
}

func TestExploreJSONPath(t *testing.T) {
	service := newTestService()

	resp := service.Explore(context.Background(), ExploreRequest{
		JSON:       `{"users":[{"name":"ana"},{"name":"bo"}]}`,
		Expression: `$.users[*].name`,
	})

	assert.Empty(t, resp.Error)
	assert.Len(t, resp.Results, 2)
}

func TestExploreNoMatches(t *testing.T) {
	service := newTestService()

	resp := service.Explore(context.Background(), ExploreRequest{
		JSON:       `{"a":1}`,
		Expression: "b.c",
	})

	assert.Empty(t, resp.Error)
	assert.NotNil(t, resp.Results)
	assert.Empty(t, resp.Results)
}

func TestValidateSchema(t *testing.T) {
	service := newTestService()

	schemaText := `{"type":"object","properties":{"age":{"type":"number"}},"required":["age"]}`

	valid := service.ValidateSchema(context.Background(), SchemaRequest{
		JSON:   `{"age":30}`,
		Schema: schemaText,
	})
	assert.Empty(t, valid.Error)
	assert.True(t, valid.Valid)
	assert.Empty(t, valid.Issues)

	invalid := service.ValidateSchema(context.Background(), SchemaRequest{
		JSON:   `{"age":"thirty"}`,
		Schema: schemaText,
	})
	assert.Empty(t, invalid.Error)
	assert.False(t, invalid.Valid)
	assert.NotEmpty(t, invalid.Issues)
}

func TestValidateSchemaRejectsMalformedSchema(t *testing.T) {
	service := newTestService()

	resp := service.ValidateSchema(context.Background(), SchemaRequest{
		JSON:   `{}`,
		Schema: `{`,
	})

	assert.NotEmpty(t, resp.Error)
}

func TestDialects(t *testing.T) {
	service := newTestService()

	assert.ElementsMatch(t, []string{"jq", "jsonata", "mongodb"}, service.Dialects())
}
