package models

import (
	"time"
)

// Status is the task workflow state. Any status can move to any other;
// the only side effect of a transition is the completedAt handling in the
// mutation engine.
type Status string

const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Comment is embedded in a task and has no lifecycle of its own.
type Comment struct {
	User string    `bson:"user" json:"user"`
	Text string    `bson:"text" json:"text"`
	Date time.Time `bson:"date" json:"date"`
}

// HistoryEntry records one field change. Entries are append-only: once
// written they are never edited or removed.
type HistoryEntry struct {
	Field     string    `bson:"field" json:"field"`
	OldValue  string    `bson:"oldValue" json:"oldValue"`
	NewValue  string    `bson:"newValue" json:"newValue"`
	UpdatedBy string    `bson:"updatedBy" json:"updatedBy"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Task is the central record. Dependencies and SubTasks hold ids of other
// tasks as weak references; nothing checks that they exist. CompletedAt is
// set exactly when the last status-affecting mutation ended on DONE.
// CreatedAt and UpdatedAt belong to the storage layer.
type Task struct {
	ID                string         `bson:"_id,omitempty" json:"id"`
	Title             string         `bson:"title" json:"title"`
	Description       string         `bson:"description" json:"description"`
	Status            Status         `bson:"status" json:"status"`
	DueDate           *time.Time     `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	Priority          Priority       `bson:"priority" json:"priority"`
	Tags              []string       `bson:"tags" json:"tags"`
	Category          string         `bson:"category" json:"category"`
	EstimatedHours    float64        `bson:"estimatedHours" json:"estimatedHours"`
	ActualHours       float64        `bson:"actualHours" json:"actualHours"`
	Progress          int            `bson:"progress" json:"progress"`
	Attachments       []string       `bson:"attachments" json:"attachments"`
	CreatedBy         string         `bson:"createdBy" json:"createdBy"`
	AssignedTo        string         `bson:"assignedTo" json:"assignedTo"`
	Reviewer          string         `bson:"reviewer" json:"reviewer"`
	Team              []string       `bson:"team" json:"team"`
	CompletedAt       *time.Time     `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	IsRecurring       bool           `bson:"isRecurring" json:"isRecurring"`
	RecurrencePattern string         `bson:"recurrencePattern" json:"recurrencePattern"`
	Dependencies      []string       `bson:"dependencies" json:"dependencies"`
	SubTasks          []string       `bson:"subTasks" json:"subTasks"`
	Comments          []Comment      `bson:"comments" json:"comments"`
	HistoryLog        []HistoryEntry `bson:"historyLog" json:"historyLog"`
	CreatedAt         time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time      `bson:"updatedAt" json:"updatedAt"`
}
