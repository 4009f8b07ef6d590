package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Mdbasith05/Operations-dashboard/internal/model"
)

const dateLayout = "2006-01-02"

// BatchInsertTasks inserts records inside a single transaction.
func (s *Store) BatchInsertTasks(records []*model.TaskRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO task_records (
			date, department, tasks_assigned, tasks_completed,
			completion_time, sla_target, source_file, row_no
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		_, err := stmt.Exec(
			r.Date.Format(dateLayout), r.Department,
			r.TasksAssigned, r.TasksCompleted,
			r.CompletionTime, r.SLATarget,
			r.SourceFile, r.RowNo,
		)
		if err != nil {
			return fmt.Errorf("failed to insert record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// TaskQueryOptions filters task record queries. Nil fields match everything.
type TaskQueryOptions struct {
	Department *string
	From       *time.Time // inclusive
	To         *time.Time // inclusive
	Limit      int
	Offset     int
}

func (opts TaskQueryOptions) whereClause() (string, []interface{}) {
	query := " WHERE 1=1"
	args := []interface{}{}

	if opts.Department != nil {
		query += " AND department = ?"
		args = append(args, *opts.Department)
	}
	if opts.From != nil {
		query += " AND date >= ?"
		args = append(args, opts.From.Format(dateLayout))
	}
	if opts.To != nil {
		query += " AND date <= ?"
		args = append(args, opts.To.Format(dateLayout))
	}

	return query, args
}

// GetTasks returns records matching opts, ordered by date then id.
func (s *Store) GetTasks(opts TaskQueryOptions) ([]*model.TaskRecord, error) {
	where, args := opts.whereClause()
	query := "SELECT id, date, department, tasks_assigned, tasks_completed, completion_time, sla_target, source_file, row_no, created_at FROM task_records" + where
	query += " ORDER BY date, id"

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
		if opts.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, opts.Offset)
		}
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer rows.Close()

	return scanTaskRows(rows)
}

// CountTasks counts records matching opts, ignoring Limit/Offset.
func (s *Store) CountTasks(opts TaskQueryOptions) (int, error) {
	where, args := opts.whereClause()
	query := "SELECT COUNT(*) FROM task_records" + where

	var count int
	if err := s.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count: %w", err)
	}

	return count, nil
}

// DeleteAllTasks wipes the dataset.
func (s *Store) DeleteAllTasks() error {
	if _, err := s.db.Exec("DELETE FROM task_records"); err != nil {
		return fmt.Errorf("failed to delete: %w", err)
	}
	return nil
}

// ListDepartments returns the distinct departments, alphabetically.
func (s *Store) ListDepartments() ([]string, error) {
	rows, err := s.db.Query("SELECT DISTINCT department FROM task_records ORDER BY department")
	if err != nil {
		return nil, fmt.Errorf("failed to query departments: %w", err)
	}
	defer rows.Close()

	var departments []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		departments = append(departments, d)
	}

	return departments, rows.Err()
}

// ListDatasets summarizes imported source files.
func (s *Store) ListDatasets() ([]model.DatasetInfo, error) {
	rows, err := s.db.Query(`
		SELECT source_file, COUNT(*), MAX(created_at)
		FROM task_records GROUP BY source_file ORDER BY source_file
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query datasets: %w", err)
	}
	defer rows.Close()

	var datasets []model.DatasetInfo
	for rows.Next() {
		var info model.DatasetInfo
		var importedAt string
		if err := rows.Scan(&info.SourceFile, &info.Rows, &importedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		if t, err := time.Parse("2006-01-02 15:04:05", importedAt); err == nil {
			info.ImportedAt = t
		}
		datasets = append(datasets, info)
	}

	return datasets, rows.Err()
}

func scanTaskRows(rows *sql.Rows) ([]*model.TaskRecord, error) {
	var results []*model.TaskRecord

	for rows.Next() {
		r := &model.TaskRecord{}
		var date string
		var createdAt sql.NullString
		err := rows.Scan(
			&r.ID, &date, &r.Department,
			&r.TasksAssigned, &r.TasksCompleted,
			&r.CompletionTime, &r.SLATarget,
			&r.SourceFile, &r.RowNo, &createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		r.Date, err = time.Parse(dateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("invalid date in row %d: %w", r.ID, err)
		}
		if createdAt.Valid {
			if t, err := time.Parse("2006-01-02 15:04:05", createdAt.String); err == nil {
				r.CreatedAt = t
			}
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return results, nil
}
