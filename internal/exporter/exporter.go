package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Mdbasith05/Operations-dashboard/internal/kpi"
	"github.com/Mdbasith05/Operations-dashboard/internal/model"
	"github.com/Mdbasith05/Operations-dashboard/internal/store"
)

// Exporter builds XLSX KPI reports from the stored dataset.
type Exporter struct {
	store *store.Store
}

// NewExporter creates an exporter.
func NewExporter(store *store.Store) *Exporter {
	return &Exporter{
		store: store,
	}
}

const (
	sheetSummary     = "Summary"
	sheetDepartments = "Departments"
	sheetRecords     = "Records"
)

// Export builds the report workbook for the current dataset.
func (e *Exporter) Export() (*excelize.File, error) {
	records, err := e.store.GetTasks(store.TaskQueryOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	summary := kpi.Compute(records)

	f := excelize.NewFile()

	if err := e.writeSummarySheet(f, summary); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := e.writeDepartmentsSheet(f, summary); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := e.writeRecordsSheet(f, records); err != nil {
		_ = f.Close()
		return nil, err
	}

	// excelize creates "Sheet1" by default.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}
	f.SetActiveSheet(0)

	return f, nil
}

func (e *Exporter) writeSummarySheet(f *excelize.File, summary kpi.Summary) error {
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	percentStyle, err := newPercentStyle(f)
	if err != nil {
		return err
	}

	rows := []struct {
		label string
		value interface{}
		pct   bool
	}{
		{"Records", summary.Records, false},
		{"Tasks Assigned", summary.TasksAssigned, false},
		{"Tasks Completed", summary.TasksCompleted, false},
		{"Within SLA", summary.WithinSLA, false},
		{"Completion Rate", rateCell(summary.CompletionRate), true},
		{"SLA Compliance Rate", rateCell(summary.SLAComplianceRate), true},
	}

	for i, row := range rows {
		labelCell := fmt.Sprintf("A%d", i+1)
		valueCell := fmt.Sprintf("B%d", i+1)
		if err := f.SetCellValue(sheetSummary, labelCell, row.label); err != nil {
			return fmt.Errorf("failed to write cell: %w", err)
		}
		if row.value == nil {
			continue // "no data" renders as an empty cell
		}
		if err := f.SetCellValue(sheetSummary, valueCell, row.value); err != nil {
			return fmt.Errorf("failed to write cell: %w", err)
		}
		if row.pct {
			if err := f.SetCellStyle(sheetSummary, valueCell, valueCell, percentStyle); err != nil {
				return fmt.Errorf("failed to style cell: %w", err)
			}
		}
	}

	return nil
}

func (e *Exporter) writeDepartmentsSheet(f *excelize.File, summary kpi.Summary) error {
	if _, err := f.NewSheet(sheetDepartments); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	percentStyle, err := newPercentStyle(f)
	if err != nil {
		return err
	}

	headers := []string{"Department", "Records", "Tasks Assigned", "Tasks Completed", "Within SLA", "Completion Rate", "SLA Compliance Rate"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetDepartments, cell, h); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, d := range summary.Departments {
		rowNum := i + 2
		values := []interface{}{
			d.Department, d.Records, d.TasksAssigned, d.TasksCompleted,
			d.WithinSLA, rateCell(d.CompletionRate), rateCell(d.SLAComplianceRate),
		}
		for col, v := range values {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
			if err := f.SetCellValue(sheetDepartments, cell, v); err != nil {
				return fmt.Errorf("failed to write cell: %w", err)
			}
			if col >= 5 {
				if err := f.SetCellStyle(sheetDepartments, cell, cell, percentStyle); err != nil {
					return fmt.Errorf("failed to style cell: %w", err)
				}
			}
		}
	}

	return nil
}

func (e *Exporter) writeRecordsSheet(f *excelize.File, records []*model.TaskRecord) error {
	if _, err := f.NewSheet(sheetRecords); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headers := []string{"Date", "Department", "Tasks_Assigned", "Tasks_Completed", "Completion_Time", "SLA_Target"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetRecords, cell, h); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, r := range records {
		rowNum := i + 2
		values := []interface{}{
			r.Date.Format("2006-01-02"), r.Department,
			r.TasksAssigned, r.TasksCompleted,
			r.CompletionTime, r.SLATarget,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
			if err := f.SetCellValue(sheetRecords, cell, v); err != nil {
				return fmt.Errorf("failed to write cell: %w", err)
			}
		}
	}

	return nil
}

func newPercentStyle(f *excelize.File) (int, error) {
	numFmt := "0.00%"
	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return 0, fmt.Errorf("failed to create style: %w", err)
	}
	return style, nil
}

// rateCell converts a nullable rate into a cell value; nil stays nil so
// undefined rates export as blank cells.
func rateCell(rate *float64) interface{} {
	if rate == nil {
		return nil
	}
	return *rate
}
