package handlers

import (
	"context"

	"TaskBackend/engine"
)

// taskInputFromArgs converts the GraphQL argument map into the engine input.
// Key presence in the map is what distinguishes "not supplied" from an
// explicit zero value, so absent keys stay nil. When the caller leaves out
// updatedBy, the authenticated user id from the request context is the actor.
func taskInputFromArgs(ctx context.Context, args map[string]interface{}) engine.TaskInput {
	var in engine.TaskInput

	in.Title = stringArg(args, "title")
	in.Description = stringArg(args, "description")
	in.Status = stringArg(args, "status")
	in.DueDate = stringArg(args, "dueDate")
	in.Priority = stringArg(args, "priority")
	in.Tags = stringListArg(args, "tags")
	in.Category = stringArg(args, "category")
	in.EstimatedHours = floatArg(args, "estimatedHours")
	in.ActualHours = floatArg(args, "actualHours")
	in.Progress = intArg(args, "progress")
	in.Attachments = stringListArg(args, "attachments")
	in.CreatedBy = stringArg(args, "createdBy")
	in.AssignedTo = stringArg(args, "assignedTo")
	in.Reviewer = stringArg(args, "reviewer")
	in.Team = stringListArg(args, "team")
	in.CompletedAt = stringArg(args, "completedAt")
	in.IsRecurring = boolArg(args, "isRecurring")
	in.RecurrencePattern = stringArg(args, "recurrencePattern")
	in.Dependencies = stringListArg(args, "dependencies")
	in.SubTasks = stringListArg(args, "subTasks")
	in.Comments = commentInputsArg(args, "comments")

	in.UpdatedBy = stringArg(args, "updatedBy")
	if in.UpdatedBy == nil {
		if actor := actorFromContext(ctx); actor != "" {
			in.UpdatedBy = &actor
		}
	}
	return in
}

func actorFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	actor, _ := ctx.Value("user_id").(string)
	return actor
}

func stringArg(args map[string]interface{}, key string) *string {
	if v, ok := args[key].(string); ok {
		return &v
	}
	return nil
}

func floatArg(args map[string]interface{}, key string) *float64 {
	if v, ok := args[key].(float64); ok {
		return &v
	}
	return nil
}

func intArg(args map[string]interface{}, key string) *int {
	if v, ok := args[key].(int); ok {
		return &v
	}
	return nil
}

func boolArg(args map[string]interface{}, key string) *bool {
	if v, ok := args[key].(bool); ok {
		return &v
	}
	return nil
}

func stringListArg(args map[string]interface{}, key string) []string {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	list := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			list = append(list, s)
		}
	}
	return list
}

func commentInputsArg(args map[string]interface{}, key string) []engine.CommentInput {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	comments := make([]engine.CommentInput, 0, len(raw))
	for _, item := range raw {
		fields, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		var c engine.CommentInput
		if user, ok := fields["user"].(string); ok {
			c.User = user
		}
		if text, ok := fields["text"].(string); ok {
			c.Text = text
		}
		c.Date = stringArg(fields, "date")
		comments = append(comments, c)
	}
	return comments
}
