package model

import "time"

// RowIssue records a single row-level problem found during import.
type RowIssue struct {
	Row     int    `json:"row"`     // 1-based row in the source file
	Field   string `json:"field"`   // offending column, empty for whole-row issues
	Message string `json:"message"` // human readable description
}

// UploadReport summarizes one upload/import pass.
type UploadReport struct {
	UploadID     string        `json:"uploadId"`
	Filename     string        `json:"filename"`
	Format       string        `json:"format"` // csv / xlsx
	TotalRows    int           `json:"totalRows"`
	ImportedRows int           `json:"importedRows"`
	DroppedRows  int           `json:"droppedRows"`
	Violations   []RowIssue    `json:"violations"` // kept rows with constraint violations
	Dropped      []RowIssue    `json:"dropped"`    // rows rejected at parse time
	Duration     time.Duration `json:"duration"`
}
