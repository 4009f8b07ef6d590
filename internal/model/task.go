package model

import "time"

// TaskRecord is one row of the operations dataset.
type TaskRecord struct {
	ID             int64     `json:"id"`
	Date           time.Time `json:"date"`
	Department     string    `json:"department"`
	TasksAssigned  int       `json:"tasksAssigned"`
	TasksCompleted int       `json:"tasksCompleted"`
	CompletionTime float64   `json:"completionTime"` // hours
	SLATarget      float64   `json:"slaTarget"`      // hours
	SourceFile     string    `json:"sourceFile"`
	RowNo          int       `json:"rowNo"` // 1-based row in the source file
	CreatedAt      time.Time `json:"createdAt"`
}

// WithinSLA reports whether the record finished inside its target duration.
func (r *TaskRecord) WithinSLA() bool {
	return r.CompletionTime <= r.SLATarget
}

// OverCompleted reports the tasks_completed <= tasks_assigned violation.
// Violating rows are kept and surfaced in the upload report, never clamped.
func (r *TaskRecord) OverCompleted() bool {
	return r.TasksCompleted > r.TasksAssigned
}

// DatasetInfo describes one imported source file.
type DatasetInfo struct {
	SourceFile string    `json:"sourceFile"`
	Rows       int       `json:"rows"`
	ImportedAt time.Time `json:"importedAt"`
}
