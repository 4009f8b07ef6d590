package parser

import (
	"fmt"

	"github.com/Mdbasith05/Operations-dashboard/internal/model"
)

// parseRows turns raw data rows into TaskRecords under the row policy:
// a row failing date/numeric parse is dropped and recorded; a row with
// tasks_completed > tasks_assigned is kept and recorded as a violation.
// rowOffset is the 1-based file row of the first data row.
func parseRows(mapping HeaderMapping, rows [][]string, rowOffset int, opts Options) *Result {
	result := &Result{}

	for i, row := range rows {
		rowNo := rowOffset + i

		if isBlankRow(row) {
			continue
		}
		result.TotalRows++

		record, issue := parseRow(mapping, row, rowNo, opts)
		if issue != nil {
			result.Dropped = append(result.Dropped, *issue)
			continue
		}

		if record.OverCompleted() {
			result.Violations = append(result.Violations, model.RowIssue{
				Row:   rowNo,
				Field: ColTasksCompleted,
				Message: fmt.Sprintf("tasks_completed (%d) exceeds tasks_assigned (%d)",
					record.TasksCompleted, record.TasksAssigned),
			})
		}

		result.Records = append(result.Records, record)
	}

	return result
}

func parseRow(mapping HeaderMapping, row []string, rowNo int, opts Options) (*model.TaskRecord, *model.RowIssue) {
	record := &model.TaskRecord{
		SourceFile: opts.SourceFile,
		RowNo:      rowNo,
	}

	dateStr := mapping.cell(row, ColDate)
	record.Date = ParseDateFlexible(dateStr)
	if record.Date.IsZero() {
		return nil, &model.RowIssue{
			Row: rowNo, Field: ColDate,
			Message: fmt.Sprintf("unparseable date %q", dateStr),
		}
	}

	record.Department = mapping.cell(row, ColDepartment)
	if record.Department == "" {
		return nil, &model.RowIssue{
			Row: rowNo, Field: ColDepartment,
			Message: "empty department",
		}
	}

	var err error
	assignedStr := mapping.cell(row, ColTasksAssigned)
	record.TasksAssigned, err = ParseInt(assignedStr)
	if err != nil || record.TasksAssigned < 0 {
		return nil, &model.RowIssue{
			Row: rowNo, Field: ColTasksAssigned,
			Message: fmt.Sprintf("invalid tasks_assigned %q", assignedStr),
		}
	}

	completedStr := mapping.cell(row, ColTasksCompleted)
	record.TasksCompleted, err = ParseInt(completedStr)
	if err != nil || record.TasksCompleted < 0 {
		return nil, &model.RowIssue{
			Row: rowNo, Field: ColTasksCompleted,
			Message: fmt.Sprintf("invalid tasks_completed %q", completedStr),
		}
	}

	timeStr := mapping.cell(row, ColCompletionTime)
	record.CompletionTime, err = ParseFloat(timeStr)
	if err != nil || record.CompletionTime < 0 {
		return nil, &model.RowIssue{
			Row: rowNo, Field: ColCompletionTime,
			Message: fmt.Sprintf("invalid completion_time %q", timeStr),
		}
	}

	slaStr := mapping.cell(row, ColSLATarget)
	if slaStr == "" && opts.DefaultSLATarget > 0 {
		record.SLATarget = opts.DefaultSLATarget
	} else {
		record.SLATarget, err = ParseFloat(slaStr)
		if err != nil || record.SLATarget < 0 {
			return nil, &model.RowIssue{
				Row: rowNo, Field: ColSLATarget,
				Message: fmt.Sprintf("invalid sla_target %q", slaStr),
			}
		}
	}

	return record, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
