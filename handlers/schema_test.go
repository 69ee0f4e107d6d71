package handlers

import (
	"context"
	"fmt"
	"testing"

	"github.com/graphql-go/graphql"

	"TaskBackend/engine"
	"TaskBackend/store"
)

func newTestSchema(t *testing.T) graphql.Schema {
	t.Helper()
	schema, err := NewSchema(engine.New(store.NewMemoryStore()))
	if err != nil {
		t.Fatalf("build schema: %v", err)
	}
	return schema
}

func execute(t *testing.T, schema graphql.Schema, ctx context.Context, query string) map[string]interface{} {
	t.Helper()
	result := graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: query,
		Context:       ctx,
	})
	if len(result.Errors) > 0 {
		t.Fatalf("query failed: %v", result.Errors)
	}
	data, ok := result.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected data shape %T", result.Data)
	}
	return data
}

func TestCreateTaskMutation(t *testing.T) {
	schema := newTestSchema(t)

	data := execute(t, schema, context.Background(), `
		mutation {
			createTask(input: {title: "Write spec", tags: ["docs"]}) {
				id title status priority tags historyLog { field }
			}
		}`)

	task := data["createTask"].(map[string]interface{})
	if task["title"] != "Write spec" {
		t.Fatalf("unexpected title %v", task["title"])
	}
	if task["status"] != "TODO" || task["priority"] != "MEDIUM" {
		t.Fatalf("expected defaults, got %v / %v", task["status"], task["priority"])
	}
	if id, _ := task["id"].(string); id == "" {
		t.Fatalf("expected id, got %v", task["id"])
	}
	if history := task["historyLog"].([]interface{}); len(history) != 0 {
		t.Fatalf("expected empty history on create, got %v", history)
	}
}

func TestCreateTaskMutationValidation(t *testing.T) {
	schema := newTestSchema(t)

	result := graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: `mutation { createTask(input: {title: "   "}) { id } }`,
		Context:       context.Background(),
	})
	if len(result.Errors) == 0 {
		t.Fatalf("expected a validation error for blank title")
	}
}

func TestPatchTaskStatusMutation(t *testing.T) {
	schema := newTestSchema(t)

	data := execute(t, schema, context.Background(), `
		mutation { createTask(input: {title: "Write spec"}) { id } }`)
	id := data["createTask"].(map[string]interface{})["id"].(string)

	data = execute(t, schema, context.Background(), fmt.Sprintf(`
		mutation {
			patchTaskStatus(id: %q, status: "DONE", updatedBy: "alice") {
				status completedAt
				historyLog { field oldValue newValue updatedBy }
			}
		}`, id))

	task := data["patchTaskStatus"].(map[string]interface{})
	if task["status"] != "DONE" {
		t.Fatalf("expected DONE, got %v", task["status"])
	}
	if completed, _ := task["completedAt"].(string); completed == "" {
		t.Fatalf("expected completedAt set, got %v", task["completedAt"])
	}

	history := task["historyLog"].([]interface{})
	if len(history) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(history))
	}
	statusEntry := history[0].(map[string]interface{})
	if statusEntry["field"] != "status" || statusEntry["oldValue"] != "TODO" ||
		statusEntry["newValue"] != "DONE" || statusEntry["updatedBy"] != "alice" {
		t.Fatalf("unexpected status entry %v", statusEntry)
	}
	completedEntry := history[1].(map[string]interface{})
	if completedEntry["field"] != "completedAt" || completedEntry["oldValue"] != "" {
		t.Fatalf("unexpected completedAt entry %v", completedEntry)
	}
}

func TestPatchTaskStatusRejectsUnknownStatus(t *testing.T) {
	schema := newTestSchema(t)

	data := execute(t, schema, context.Background(), `
		mutation { createTask(input: {title: "Write spec"}) { id } }`)
	id := data["createTask"].(map[string]interface{})["id"].(string)

	result := graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: fmt.Sprintf(`mutation { patchTaskStatus(id: %q, status: "CANCELLED") { status } }`, id),
		Context:       context.Background(),
	})
	if len(result.Errors) == 0 {
		t.Fatalf("expected an error for unknown status")
	}
}

func TestActorFallsBackToAuthenticatedUser(t *testing.T) {
	schema := newTestSchema(t)
	ctx := context.WithValue(context.Background(), "user_id", "user-42")

	data := execute(t, schema, ctx, `
		mutation { createTask(input: {title: "Write spec"}) { id } }`)
	id := data["createTask"].(map[string]interface{})["id"].(string)

	data = execute(t, schema, ctx, fmt.Sprintf(`
		mutation {
			updateTask(id: %q, input: {title: "Write spec", description: "v2"}) {
				historyLog { field updatedBy }
			}
		}`, id))

	history := data["updateTask"].(map[string]interface{})["historyLog"].([]interface{})
	if len(history) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(history))
	}
	entry := history[0].(map[string]interface{})
	if entry["updatedBy"] != "user-42" {
		t.Fatalf("expected actor from context, got %v", entry["updatedBy"])
	}
}

func TestDeleteTaskMutation(t *testing.T) {
	schema := newTestSchema(t)

	data := execute(t, schema, context.Background(), `
		mutation { createTask(input: {title: "Write spec"}) { id } }`)
	id := data["createTask"].(map[string]interface{})["id"].(string)

	data = execute(t, schema, context.Background(), fmt.Sprintf(`mutation { deleteTask(id: %q) }`, id))
	if data["deleteTask"] != true {
		t.Fatalf("expected true, got %v", data["deleteTask"])
	}

	data = execute(t, schema, context.Background(), fmt.Sprintf(`mutation { deleteTask(id: %q) }`, id))
	if data["deleteTask"] != false {
		t.Fatalf("expected false on second delete, got %v", data["deleteTask"])
	}

	data = execute(t, schema, context.Background(), fmt.Sprintf(`{ task(id: %q) { id } }`, id))
	if data["task"] != nil {
		t.Fatalf("expected deleted task to resolve null, got %v", data["task"])
	}
}

func TestTasksQueryFilters(t *testing.T) {
	schema := newTestSchema(t)

	execute(t, schema, context.Background(), `
		mutation { createTask(input: {title: "Fix login flow"}) { id } }`)
	execute(t, schema, context.Background(), `
		mutation { createTask(input: {title: "Ship release", status: "IN_PROGRESS", description: "final login checks"}) { id } }`)

	data := execute(t, schema, context.Background(), `{ tasks(status: "IN_PROGRESS") { title } }`)
	tasks := data["tasks"].([]interface{})
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if tasks[0].(map[string]interface{})["title"] != "Ship release" {
		t.Fatalf("unexpected task %v", tasks[0])
	}

	data = execute(t, schema, context.Background(), `{ tasks(search: "login") { title } }`)
	if tasks := data["tasks"].([]interface{}); len(tasks) != 2 {
		t.Fatalf("expected search to match both tasks, got %d", len(tasks))
	}
}
