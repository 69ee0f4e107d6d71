package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"TaskBackend/models"
)

// MemoryStore keeps tasks in process memory. It backs the engine and handler
// tests and DB_DRIVER=memory runs where no MongoDB is reachable.
type MemoryStore struct {
	mu    sync.Mutex
	tasks map[string]*models.Task
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tasks: map[string]*models.Task{}}
}

func (s *MemoryStore) FindByID(ctx context.Context, id string) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, nil
	}
	return cloneTask(task), nil
}

func (s *MemoryStore) Insert(ctx context.Context, task *models.Task) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	task.ID = uuid.NewString()
	task.CreatedAt = now
	task.UpdatedAt = now

	s.tasks[task.ID] = cloneTask(task)
	return cloneTask(task), nil
}

func (s *MemoryStore) UpdateByID(ctx context.Context, id string, set map[string]interface{}, history []models.HistoryEntry) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, nil
	}

	for name, value := range set {
		applyField(task, name, value)
	}
	task.HistoryLog = append(task.HistoryLog, history...)
	task.UpdatedAt = time.Now()

	return cloneTask(task), nil
}

func (s *MemoryStore) DeleteByID(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return false, nil
	}
	delete(s.tasks, id)
	return true, nil
}

func (s *MemoryStore) Find(ctx context.Context, filter Filter) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var tasks []models.Task
	for _, task := range s.tasks {
		if filter.Status != "" && string(task.Status) != filter.Status {
			continue
		}
		if filter.Search != "" && !matchesSearch(task, filter.Search) {
			continue
		}
		tasks = append(tasks, *cloneTask(task))
	}

	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func matchesSearch(task *models.Task, search string) bool {
	search = strings.ToLower(search)
	return strings.Contains(strings.ToLower(task.Title), search) ||
		strings.Contains(strings.ToLower(task.Description), search)
}

func applyField(task *models.Task, name string, value interface{}) {
	switch name {
	case "title":
		task.Title = value.(string)
	case "description":
		task.Description = value.(string)
	case "status":
		task.Status = value.(models.Status)
	case "dueDate":
		task.DueDate, _ = value.(*time.Time)
	case "priority":
		task.Priority = value.(models.Priority)
	case "tags":
		task.Tags = value.([]string)
	case "category":
		task.Category = value.(string)
	case "estimatedHours":
		task.EstimatedHours = value.(float64)
	case "actualHours":
		task.ActualHours = value.(float64)
	case "progress":
		task.Progress = value.(int)
	case "attachments":
		task.Attachments = value.([]string)
	case "createdBy":
		task.CreatedBy = value.(string)
	case "assignedTo":
		task.AssignedTo = value.(string)
	case "reviewer":
		task.Reviewer = value.(string)
	case "team":
		task.Team = value.([]string)
	case "completedAt":
		task.CompletedAt, _ = value.(*time.Time)
	case "isRecurring":
		task.IsRecurring = value.(bool)
	case "recurrencePattern":
		task.RecurrencePattern = value.(string)
	case "dependencies":
		task.Dependencies = value.([]string)
	case "subTasks":
		task.SubTasks = value.([]string)
	case "comments":
		task.Comments = value.([]models.Comment)
	}
}

// cloneTask copies a task deeply enough that callers cannot mutate stored
// state. Nil and empty slices stay distinct; the diff engine renders them
// differently.
func cloneTask(task *models.Task) *models.Task {
	clone := *task
	clone.Tags = cloneStrings(task.Tags)
	clone.Attachments = cloneStrings(task.Attachments)
	clone.Team = cloneStrings(task.Team)
	clone.Dependencies = cloneStrings(task.Dependencies)
	clone.SubTasks = cloneStrings(task.SubTasks)
	if task.Comments != nil {
		clone.Comments = make([]models.Comment, len(task.Comments))
		copy(clone.Comments, task.Comments)
	}
	if task.HistoryLog != nil {
		clone.HistoryLog = make([]models.HistoryEntry, len(task.HistoryLog))
		copy(clone.HistoryLog, task.HistoryLog)
	}
	if task.DueDate != nil {
		d := *task.DueDate
		clone.DueDate = &d
	}
	if task.CompletedAt != nil {
		c := *task.CompletedAt
		clone.CompletedAt = &c
	}
	return &clone
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
