package engine

import (
	"context"
	"strings"
	"time"

	"TaskBackend/models"
	"TaskBackend/store"
)

const storageTimeout = 5 * time.Second

// Engine applies task mutations. Every update is a read-modify-write: load
// the stored record, merge the supplied fields over it, derive completedAt
// from the status lifecycle, diff old against new, then persist the fields
// and the resulting history entries in one storage write. Concurrent writers
// to the same id race last-write-wins; both writers' history entries survive.
type Engine struct {
	store store.TaskStore
}

func New(s store.TaskStore) *Engine {
	return &Engine{store: s}
}

// TaskInput carries the fields a caller supplies. Nil means "not supplied":
// on update the stored value is kept, on create the default applies. A
// non-nil zero value is an explicit set, so 0, false and "" are all
// reachable through update. Date strings are RFC 3339 or YYYY-MM-DD.
type TaskInput struct {
	Title             *string
	Description       *string
	Status            *string
	DueDate           *string
	Priority          *string
	Tags              []string
	Category          *string
	EstimatedHours    *float64
	ActualHours       *float64
	Progress          *int
	Attachments       []string
	CreatedBy         *string
	AssignedTo        *string
	Reviewer          *string
	Team              []string
	CompletedAt       *string
	IsRecurring       *bool
	RecurrencePattern *string
	Dependencies      []string
	SubTasks          []string
	Comments          []CommentInput
	UpdatedBy         *string
}

type CommentInput struct {
	User string
	Text string
	Date *string
}

// CreateTask builds a new task from the input, applying defaults for
// anything not supplied. The history log starts empty; creation itself is
// not logged.
func (e *Engine) CreateTask(ctx context.Context, input TaskInput) (*models.Task, error) {
	title := ""
	if input.Title != nil {
		title = strings.TrimSpace(*input.Title)
	}
	if title == "" {
		return nil, validationf("title is required")
	}

	status := models.StatusTodo
	if input.Status != nil {
		status = models.Status(*input.Status)
		if !status.Valid() {
			return nil, validationf("invalid status %q", *input.Status)
		}
	}

	priority := models.PriorityMedium
	if input.Priority != nil {
		priority = models.Priority(*input.Priority)
		if !priority.Valid() {
			return nil, validationf("invalid priority %q", *input.Priority)
		}
	}

	dueDate, err := parseDate(input.DueDate)
	if err != nil {
		return nil, err
	}
	completedAt, err := parseDate(input.CompletedAt)
	if err != nil {
		return nil, err
	}
	comments, err := commentsFromInput(input.Comments, time.Now())
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []models.Comment{}
	}

	task := &models.Task{
		Title:             title,
		Description:       strOr(input.Description, ""),
		Status:            status,
		DueDate:           dueDate,
		Priority:          priority,
		Tags:              listOr(input.Tags),
		Category:          strOr(input.Category, ""),
		EstimatedHours:    floatOr(input.EstimatedHours, 0),
		ActualHours:       floatOr(input.ActualHours, 0),
		Progress:          intOr(input.Progress, 0),
		Attachments:       listOr(input.Attachments),
		CreatedBy:         strOr(input.CreatedBy, ""),
		AssignedTo:        strOr(input.AssignedTo, ""),
		Reviewer:          strOr(input.Reviewer, ""),
		Team:              listOr(input.Team),
		CompletedAt:       completedAt,
		IsRecurring:       boolOr(input.IsRecurring, false),
		RecurrencePattern: strOr(input.RecurrencePattern, ""),
		Dependencies:      listOr(input.Dependencies),
		SubTasks:          listOr(input.SubTasks),
		Comments:          comments,
		HistoryLog:        []models.HistoryEntry{},
	}

	ctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()

	created, err := e.store.Insert(ctx, task)
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	return created, nil
}

// UpdateTask merges the supplied fields over the stored task, resolves
// completedAt through the status lifecycle, and persists the effective
// fields together with one history entry per field that actually changed.
func (e *Engine) UpdateTask(ctx context.Context, id string, input TaskInput) (*models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()

	existing, err := e.store.FindByID(ctx, id)
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	now := time.Now()

	title := existing.Title
	if input.Title != nil {
		title = strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, validationf("title is required")
		}
	}

	status := existing.Status
	if input.Status != nil {
		status = models.Status(*input.Status)
		if !status.Valid() {
			return nil, validationf("invalid status %q", *input.Status)
		}
	}

	priority := existing.Priority
	if input.Priority != nil {
		priority = models.Priority(*input.Priority)
		if !priority.Valid() {
			return nil, validationf("invalid priority %q", *input.Priority)
		}
	}

	dueDate := existing.DueDate
	if input.DueDate != nil {
		dueDate, err = parseDate(input.DueDate)
		if err != nil {
			return nil, err
		}
	}

	explicitCompleted, err := parseDate(input.CompletedAt)
	if err != nil {
		return nil, err
	}
	completedAt := deriveCompletedAt(existing.CompletedAt, status, explicitCompleted, now)

	comments := existing.Comments
	if input.Comments != nil {
		comments, err = commentsFromInput(input.Comments, now)
		if err != nil {
			return nil, err
		}
	}

	proposed := []Field{
		{"title", title},
		{"description", strOr(input.Description, existing.Description)},
		{"status", status},
		{"dueDate", dueDate},
		{"priority", priority},
		{"tags", sliceOr(input.Tags, existing.Tags)},
		{"category", strOr(input.Category, existing.Category)},
		{"estimatedHours", floatOr(input.EstimatedHours, existing.EstimatedHours)},
		{"actualHours", floatOr(input.ActualHours, existing.ActualHours)},
		{"progress", intOr(input.Progress, existing.Progress)},
		{"attachments", sliceOr(input.Attachments, existing.Attachments)},
		{"createdBy", strOr(input.CreatedBy, existing.CreatedBy)},
		{"assignedTo", strOr(input.AssignedTo, existing.AssignedTo)},
		{"reviewer", strOr(input.Reviewer, existing.Reviewer)},
		{"team", sliceOr(input.Team, existing.Team)},
		{"completedAt", completedAt},
		{"isRecurring", boolOr(input.IsRecurring, existing.IsRecurring)},
		{"recurrencePattern", strOr(input.RecurrencePattern, existing.RecurrencePattern)},
		{"dependencies", sliceOr(input.Dependencies, existing.Dependencies)},
		{"subTasks", sliceOr(input.SubTasks, existing.SubTasks)},
		{"comments", comments},
	}

	entries := diff(snapshot(existing), proposed, strOr(input.UpdatedBy, ""), now)

	set := make(map[string]interface{}, len(proposed))
	for _, f := range proposed {
		set[f.Name] = f.Value
	}

	updated, err := e.store.UpdateByID(ctx, id, set, entries)
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	return updated, nil
}

// PatchTaskStatus changes only the status. completedAt joins the write when a
// lifecycle rule fires: moving to DONE stamps it, leaving DONE clears it.
// The resulting state matches what a full update with the same status would
// produce.
func (e *Engine) PatchTaskStatus(ctx context.Context, id, statusStr, updatedBy string) (*models.Task, error) {
	status := models.Status(statusStr)
	if !status.Valid() {
		return nil, validationf("invalid status %q", statusStr)
	}

	ctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()

	existing, err := e.store.FindByID(ctx, id)
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	now := time.Now()
	proposed := []Field{{"status", status}}
	if status == models.StatusDone || existing.CompletedAt != nil {
		proposed = append(proposed, Field{"completedAt", deriveCompletedAt(existing.CompletedAt, status, nil, now)})
	}

	entries := diff(snapshot(existing), proposed, updatedBy, now)

	set := make(map[string]interface{}, len(proposed))
	for _, f := range proposed {
		set[f.Name] = f.Value
	}

	updated, err := e.store.UpdateByID(ctx, id, set, entries)
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	return updated, nil
}

// DeleteTask removes the task unconditionally. Tasks referencing it through
// dependencies or subTasks keep their dangling ids.
func (e *Engine) DeleteTask(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()

	removed, err := e.store.DeleteByID(ctx, id)
	if err != nil {
		return false, &StorageError{Err: err}
	}
	return removed, nil
}

// GetTask returns the task or nil when the id is unknown.
func (e *Engine) GetTask(ctx context.Context, id string) (*models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()

	task, err := e.store.FindByID(ctx, id)
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	return task, nil
}

// ListTasks returns tasks newest first, optionally filtered by status and a
// case-insensitive search over title and description.
func (e *Engine) ListTasks(ctx context.Context, status, search string) ([]models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()

	tasks, err := e.store.Find(ctx, store.Filter{Status: status, Search: search})
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	return tasks, nil
}

// snapshot exposes the diffable fields of a stored task under their
// persisted names.
func snapshot(t *models.Task) map[string]interface{} {
	return map[string]interface{}{
		"title":             t.Title,
		"description":       t.Description,
		"status":            t.Status,
		"dueDate":           t.DueDate,
		"priority":          t.Priority,
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
		"completedAt":       t.CompletedAt,
		"isRecurring":       t.IsRecurring,
		"recurrencePattern": t.RecurrencePattern,
		"dependencies":      t.Dependencies,
		"subTasks":          t.SubTasks,
		"comments":          t.Comments,
	}
}

func parseDate(v *string) (*time.Time, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, *v); err == nil {
			return &t, nil
		}
	}
	return nil, validationf("invalid date %q", *v)
}

func commentsFromInput(in []CommentInput, now time.Time) ([]models.Comment, error) {
	if in == nil {
		return nil, nil
	}
	comments := make([]models.Comment, 0, len(in))
	for _, c := range in {
		date := now
		if c.Date != nil && *c.Date != "" {
			parsed, err := parseDate(c.Date)
			if err != nil {
				return nil, err
			}
			date = *parsed
		}
		comments = append(comments, models.Comment{User: c.User, Text: c.Text, Date: date})
	}
	return comments, nil
}

func strOr(v *string, fallback string) string {
	if v != nil {
		return *v
	}
	return fallback
}

func floatOr(v *float64, fallback float64) float64 {
	if v != nil {
		return *v
	}
	return fallback
}

func intOr(v *int, fallback int) int {
	if v != nil {
		return *v
	}
	return fallback
}

func boolOr(v *bool, fallback bool) bool {
	if v != nil {
		return *v
	}
	return fallback
}

func listOr(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func sliceOr(v, fallback []string) []string {
	if v != nil {
		return v
	}
	return fallback
}
