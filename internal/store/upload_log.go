package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Mdbasith05/Operations-dashboard/internal/model"
)

// UploadLogEntry is one persisted import pass.
type UploadLogEntry struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	Format       string    `json:"format"`
	TotalRows    int       `json:"totalRows"`
	ImportedRows int       `json:"importedRows"`
	DroppedRows  int       `json:"droppedRows"`
	Violations   int       `json:"violations"`
	DurationMs   int64     `json:"durationMs"`
	CreatedAt    time.Time `json:"createdAt"`
}

// LogUpload records the outcome of an import pass.
func (s *Store) LogUpload(report *model.UploadReport) error {
	_, err := s.db.Exec(`
		INSERT INTO upload_logs (
			id, filename, format, total_rows, imported_rows,
			dropped_rows, violations, duration_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		report.UploadID, report.Filename, report.Format,
		report.TotalRows, report.ImportedRows, report.DroppedRows,
		len(report.Violations), report.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to log upload: %w", err)
	}
	return nil
}

// LastUpload returns the most recent upload log entry, if any.
func (s *Store) LastUpload() (*UploadLogEntry, error) {
	row := s.db.QueryRow(`
		SELECT id, filename, format, total_rows, imported_rows,
		       dropped_rows, violations, duration_ms, created_at
		FROM upload_logs ORDER BY created_at DESC, rowid DESC LIMIT 1
	`)

	e := &UploadLogEntry{}
	var createdAt string
	err := row.Scan(
		&e.ID, &e.Filename, &e.Format, &e.TotalRows, &e.ImportedRows,
		&e.DroppedRows, &e.Violations, &e.DurationMs, &createdAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan row: %w", err)
	}
	if t, err := time.Parse("2006-01-02 15:04:05", createdAt); err == nil {
		e.CreatedAt = t
	}

	return e, nil
}
