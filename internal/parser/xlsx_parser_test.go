package parser

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, sheets map[string][][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	first := true
	for name, rows := range sheets {
		if first {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
			first = false
		} else {
			if _, err := f.NewSheet(name); err != nil {
				t.Fatalf("new sheet: %v", err)
			}
		}
		for i, row := range rows {
			cell, _ := excelize.CoordinatesToCellName(1, i+1)
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				t.Fatalf("set row: %v", err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "tasks.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close workbook: %v", err)
	}
	return path
}

func TestParseXLSX(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"Tasks": {
			{"Date", "Department", "Tasks_Assigned", "Tasks_Completed", "Completion_Time", "SLA_Target"},
			{"2025-03-01", "A", 10, 8, 5, 6},
			{"2025-03-01", "B", 4, 2, 7, 6},
		},
	})

	result, err := ParseXLSX(path, Options{SourceFile: "tasks.xlsx"})
	if err != nil {
		t.Fatalf("ParseXLSX: %v", err)
	}
	if len(result.Records) != 2 {
		t.Fatalf("records: got %d, want 2", len(result.Records))
	}
	if result.Records[1].Department != "B" || result.Records[1].CompletionTime != 7 {
		t.Fatalf("second record wrong: %+v", result.Records[1])
	}
}

func TestParseXLSX_SkipsUnrelatedSheets(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"Notes": {
			{"just", "some", "notes"},
		},
		"Data": {
			{"Date", "Department", "Tasks_Assigned", "Tasks_Completed", "Completion_Time", "SLA_Target"},
			{"2025-03-01", "Ops", 3, 3, 2, 4},
		},
	})

	result, err := ParseXLSX(path, Options{})
	if err != nil {
		t.Fatalf("ParseXLSX: %v", err)
	}
	if len(result.Records) != 1 || result.Records[0].Department != "Ops" {
		t.Fatalf("expected the Data sheet to be ingested, got %+v", result.Records)
	}
}

func TestParseXLSX_NoMatchingSheet(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"Notes": {
			{"Date", "Department"}, // incomplete header
		},
	})

	if _, err := ParseXLSX(path, Options{}); err == nil {
		t.Fatalf("expected error when no sheet has the required columns")
	}
}

func TestParseFile_Dispatch(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"Tasks": {
			{"Date", "Department", "Tasks_Assigned", "Tasks_Completed", "Completion_Time", "SLA_Target"},
			{"2025-03-01", "A", 1, 1, 1, 1},
		},
	})

	_, format, err := ParseFile(path, Options{})
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if format != "xlsx" {
		t.Fatalf("format: got %q, want xlsx", format)
	}

	if _, _, err := ParseFile("data.txt", Options{}); err == nil {
		t.Fatalf("expected error for unsupported extension")
	}
}
