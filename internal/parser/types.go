package parser

import "github.com/Mdbasith05/Operations-dashboard/internal/model"

// Dataset column identifiers, in required-header order.
const (
	ColDate           = "date"
	ColDepartment     = "department"
	ColTasksAssigned  = "tasks_assigned"
	ColTasksCompleted = "tasks_completed"
	ColCompletionTime = "completion_time"
	ColSLATarget      = "sla_target"
)

// RequiredColumns lists every column an ingestible file must carry.
var RequiredColumns = []string{
	ColDate,
	ColDepartment,
	ColTasksAssigned,
	ColTasksCompleted,
	ColCompletionTime,
	ColSLATarget,
}

// Options tunes row parsing.
type Options struct {
	// DefaultSLATarget fills a blank SLA_Target cell, in hours.
	// Zero means a blank cell drops the row.
	DefaultSLATarget float64
	// SourceFile is stamped onto every parsed record.
	SourceFile string
}

// Result is the outcome of parsing one file.
type Result struct {
	Records    []*model.TaskRecord
	TotalRows  int              // data rows seen (header excluded)
	Dropped    []model.RowIssue // rows rejected at parse time
	Violations []model.RowIssue // kept rows violating tasks_completed <= tasks_assigned
}
