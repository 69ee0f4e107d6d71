package handlers

import (
	"time"

	"github.com/graphql-go/graphql"

	"TaskBackend/engine"
	"TaskBackend/models"
)

// NewSchema builds the GraphQL schema over the mutation engine. Queries:
// task(id), tasks(status, search). Mutations: createTask, updateTask,
// patchTaskStatus, deleteTask. Timestamps cross this boundary as RFC 3339
// strings, ids as opaque strings.
func NewSchema(e *engine.Engine) (graphql.Schema, error) {
	commentType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Comment",
		Fields: graphql.Fields{
			"user": &graphql.Field{Type: graphql.String},
			"text": &graphql.Field{Type: graphql.String},
			"date": &graphql.Field{Type: graphql.String},
		},
	})

	historyType := graphql.NewObject(graphql.ObjectConfig{
		Name: "History",
		Fields: graphql.Fields{
			"field":     &graphql.Field{Type: graphql.String},
			"oldValue":  &graphql.Field{Type: graphql.String},
			"newValue":  &graphql.Field{Type: graphql.String},
			"updatedBy": &graphql.Field{Type: graphql.String},
			"updatedAt": &graphql.Field{Type: graphql.String},
		},
	})

	taskType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Task",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.ID},
			"title":       &graphql.Field{Type: graphql.String},
			"description": &graphql.Field{Type: graphql.String},
			"status":      &graphql.Field{Type: graphql.String},
			"dueDate":     &graphql.Field{Type: graphql.String},
			"createdAt":   &graphql.Field{Type: graphql.String},
			"updatedAt":   &graphql.Field{Type: graphql.String},

			"priority":          &graphql.Field{Type: graphql.String},
			"tags":              &graphql.Field{Type: graphql.NewList(graphql.String)},
			"category":          &graphql.Field{Type: graphql.String},
			"estimatedHours":    &graphql.Field{Type: graphql.Float},
			"actualHours":       &graphql.Field{Type: graphql.Float},
			"progress":          &graphql.Field{Type: graphql.Int},
			"attachments":       &graphql.Field{Type: graphql.NewList(graphql.String)},
			"createdBy":         &graphql.Field{Type: graphql.String},
			"assignedTo":        &graphql.Field{Type: graphql.String},
			"reviewer":          &graphql.Field{Type: graphql.String},
			"team":              &graphql.Field{Type: graphql.NewList(graphql.String)},
			"completedAt":       &graphql.Field{Type: graphql.String},
			"isRecurring":       &graphql.Field{Type: graphql.Boolean},
			"recurrencePattern": &graphql.Field{Type: graphql.String},
			"dependencies":      &graphql.Field{Type: graphql.NewList(graphql.ID)},
			"subTasks":          &graphql.Field{Type: graphql.NewList(graphql.ID)},
			"comments":          &graphql.Field{Type: graphql.NewList(commentType)},
			"historyLog":        &graphql.Field{Type: graphql.NewList(historyType)},
		},
	})

	commentInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CommentInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"user": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"text": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"date": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	taskInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "TaskInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"status":      &graphql.InputObjectFieldConfig{Type: graphql.String},
			"dueDate":     &graphql.InputObjectFieldConfig{Type: graphql.String},

			"priority":          &graphql.InputObjectFieldConfig{Type: graphql.String},
			"tags":              &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.String)},
			"category":          &graphql.InputObjectFieldConfig{Type: graphql.String},
			"estimatedHours":    &graphql.InputObjectFieldConfig{Type: graphql.Float},
			"actualHours":       &graphql.InputObjectFieldConfig{Type: graphql.Float},
			"progress":          &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"attachments":       &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.String)},
			"createdBy":         &graphql.InputObjectFieldConfig{Type: graphql.String},
			"assignedTo":        &graphql.InputObjectFieldConfig{Type: graphql.String},
			"reviewer":          &graphql.InputObjectFieldConfig{Type: graphql.String},
			"team":              &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.String)},
			"completedAt":       &graphql.InputObjectFieldConfig{Type: graphql.String},
			"isRecurring":       &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
			"recurrencePattern": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"dependencies":      &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.ID)},
			"subTasks":          &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.ID)},
			"comments":          &graphql.InputObjectFieldConfig{Type: graphql.NewList(commentInput)},

			"updatedBy": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name: "RootQueryType",
		Fields: graphql.Fields{
			"task": &graphql.Field{
				Type: taskType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.ID},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					task, err := e.GetTask(p.Context, id)
					if err != nil {
						return nil, err
					}
					return taskPayload(task), nil
				},
			},
			"tasks": &graphql.Field{
				Type: graphql.NewList(taskType),
				Args: graphql.FieldConfigArgument{
					"status": &graphql.ArgumentConfig{Type: graphql.String},
					"search": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					status, _ := p.Args["status"].(string)
					search, _ := p.Args["search"].(string)
					tasks, err := e.ListTasks(p.Context, status, search)
					if err != nil {
						return nil, err
					}
					payloads := make([]interface{}, 0, len(tasks))
					for i := range tasks {
						payloads = append(payloads, taskPayload(&tasks[i]))
					}
					return payloads, nil
				},
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createTask": &graphql.Field{
				Type: taskType,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(taskInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					args, _ := p.Args["input"].(map[string]interface{})
					task, err := e.CreateTask(p.Context, taskInputFromArgs(p.Context, args))
					if err != nil {
						return nil, err
					}
					return taskPayload(task), nil
				},
			},
			"updateTask": &graphql.Field{
				Type: taskType,
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(taskInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					args, _ := p.Args["input"].(map[string]interface{})
					task, err := e.UpdateTask(p.Context, id, taskInputFromArgs(p.Context, args))
					if err != nil {
						return nil, err
					}
					return taskPayload(task), nil
				},
			},
			"patchTaskStatus": &graphql.Field{
				Type: taskType,
				Args: graphql.FieldConfigArgument{
					"id":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"status":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"updatedBy": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					status, _ := p.Args["status"].(string)
					updatedBy, ok := p.Args["updatedBy"].(string)
					if !ok {
						updatedBy = actorFromContext(p.Context)
					}
					task, err := e.PatchTaskStatus(p.Context, id, status, updatedBy)
					if err != nil {
						return nil, err
					}
					return taskPayload(task), nil
				},
			},
			"deleteTask": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					return e.DeleteTask(p.Context, id)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    rootQuery,
		Mutation: mutation,
	})
}

// taskPayload flattens a task into the map shape the GraphQL types resolve
// against, with timestamps rendered as RFC 3339 strings. A nil task resolves
// to null, not an empty object.
func taskPayload(t *models.Task) interface{} {
	if t == nil {
		return nil
	}

	comments := make([]map[string]interface{}, 0, len(t.Comments))
	for _, c := range t.Comments {
		comments = append(comments, map[string]interface{}{
			"user": c.User,
			"text": c.Text,
			"date": c.Date.UTC().Format(time.RFC3339),
		})
	}

	history := make([]map[string]interface{}, 0, len(t.HistoryLog))
	for _, h := range t.HistoryLog {
		history = append(history, map[string]interface{}{
			"field":     h.Field,
			"oldValue":  h.OldValue,
			"newValue":  h.NewValue,
			"updatedBy": h.UpdatedBy,
			"updatedAt": h.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}

	return map[string]interface{}{
		"id":                t.ID,
		"title":             t.Title,
		"description":       t.Description,
		"status":            string(t.Status),
		"dueDate":           formatDate(t.DueDate),
		"priority":          string(t.Priority),
		"tags":              t.Tags,
		"category":          t.Category,
		"estimatedHours":    t.EstimatedHours,
		"actualHours":       t.ActualHours,
		"progress":          t.Progress,
		"attachments":       t.Attachments,
		"createdBy":         t.CreatedBy,
		"assignedTo":        t.AssignedTo,
		"reviewer":          t.Reviewer,
		"team":              t.Team,
		"completedAt":       formatDate(t.CompletedAt),
		"isRecurring":       t.IsRecurring,
		"recurrencePattern": t.RecurrencePattern,
		"dependencies":      t.Dependencies,
		"subTasks":          t.SubTasks,
		"comments":          comments,
		"historyLog":        history,
		"createdAt":         t.CreatedAt.UTC().Format(time.RFC3339),
		"updatedAt":         t.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func formatDate(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
