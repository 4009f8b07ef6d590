package parser

import (
	"testing"
	"time"
)

func TestNormalizeColumnName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Tasks_Assigned", "tasks_assigned"},
		{"Tasks Assigned", "tasks_assigned"},
		{" tasks  assigned ", "tasks_assigned"},
		{"TASKS-ASSIGNED", "tasks_assigned"},
		{"SLA_Target\n", "sla_target"},
		{"\uFEFFDate", "date"},
		{"", ""},
	}

	for _, c := range cases {
		if got := NormalizeColumnName(c.in); got != c.want {
			t.Errorf("NormalizeColumnName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseDateFlexible(t *testing.T) {
	want := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	for _, in := range []string{"2025-03-14", "2025/03/14", "14/03/2025", "2025.03.14"} {
		if got := ParseDateFlexible(in); !got.Equal(want) {
			t.Errorf("ParseDateFlexible(%q) = %v, want %v", in, got, want)
		}
	}

	for _, in := range []string{"", "not a date", "14th March"} {
		if got := ParseDateFlexible(in); !got.IsZero() {
			t.Errorf("ParseDateFlexible(%q) = %v, want zero", in, got)
		}
	}
}

func TestParseInt(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"12", 12, false},
		{" 12 ", 12, false},
		{"1,200", 1200, false},
		{"12.0", 12, false},
		{"12.5", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, c := range cases {
		got, err := ParseInt(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseInt(%q): expected error, got %d", c.in, got)
			}
			continue
		}
		if err != nil || got != c.want {
			t.Errorf("ParseInt(%q) = %d, %v, want %d", c.in, got, err, c.want)
		}
	}
}

func TestParseFloat(t *testing.T) {
	got, err := ParseFloat("1,234.5")
	if err != nil || got != 1234.5 {
		t.Fatalf("ParseFloat(\"1,234.5\") = %v, %v", got, err)
	}
	if _, err := ParseFloat("n/a"); err == nil {
		t.Fatalf("ParseFloat(\"n/a\"): expected error")
	}
}
