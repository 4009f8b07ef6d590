package kpi

import (
	"sort"
	"time"

	"github.com/Mdbasith05/Operations-dashboard/internal/model"
)

// DepartmentSummary holds the two KPI ratios for one department partition.
// Rates are fractions in [0,1]; nil means undefined (zero denominator).
type DepartmentSummary struct {
	Department        string   `json:"department"`
	Records           int      `json:"records"`
	TasksAssigned     int      `json:"tasksAssigned"`
	TasksCompleted    int      `json:"tasksCompleted"`
	WithinSLA         int      `json:"withinSla"`
	CompletionRate    *float64 `json:"completionRate"`
	SLAComplianceRate *float64 `json:"slaComplianceRate"`
}

// TrendPoint aggregates one calendar day.
type TrendPoint struct {
	Date           time.Time `json:"date"`
	TasksAssigned  int       `json:"tasksAssigned"`
	TasksCompleted int       `json:"tasksCompleted"`
}

// Summary is the full KPI result for a dataset.
type Summary struct {
	Records           int                 `json:"records"`
	TasksAssigned     int                 `json:"tasksAssigned"`
	TasksCompleted    int                 `json:"tasksCompleted"`
	WithinSLA         int                 `json:"withinSla"`
	CompletionRate    *float64            `json:"completionRate"`
	SLAComplianceRate *float64            `json:"slaComplianceRate"`
	From              *time.Time          `json:"from,omitempty"`
	To                *time.Time          `json:"to,omitempty"`
	Departments       []DepartmentSummary `json:"departments"`
	Trend             []TrendPoint        `json:"trend"`
}

// Compute derives the KPI summary from a set of task records. Pure
// function: no side effects, deterministic output (departments and trend
// points sorted ascending). Undefined ratios come back nil, never NaN.
func Compute(records []*model.TaskRecord) Summary {
	summary := Summary{
		Departments: []DepartmentSummary{},
		Trend:       []TrendPoint{},
	}

	byDept := make(map[string]*DepartmentSummary)
	byDay := make(map[time.Time]*TrendPoint)

	for _, r := range records {
		summary.Records++
		summary.TasksAssigned += r.TasksAssigned
		summary.TasksCompleted += r.TasksCompleted
		if r.WithinSLA() {
			summary.WithinSLA++
		}

		d, ok := byDept[r.Department]
		if !ok {
			d = &DepartmentSummary{Department: r.Department}
			byDept[r.Department] = d
		}
		d.Records++
		d.TasksAssigned += r.TasksAssigned
		d.TasksCompleted += r.TasksCompleted
		if r.WithinSLA() {
			d.WithinSLA++
		}

		day := r.Date
		p, ok := byDay[day]
		if !ok {
			p = &TrendPoint{Date: day}
			byDay[day] = p
		}
		p.TasksAssigned += r.TasksAssigned
		p.TasksCompleted += r.TasksCompleted

		if summary.From == nil || r.Date.Before(*summary.From) {
			t := r.Date
			summary.From = &t
		}
		if summary.To == nil || r.Date.After(*summary.To) {
			t := r.Date
			summary.To = &t
		}
	}

	summary.CompletionRate = ratio(summary.TasksCompleted, summary.TasksAssigned)
	summary.SLAComplianceRate = ratio(summary.WithinSLA, summary.Records)

	for _, d := range byDept {
		d.CompletionRate = ratio(d.TasksCompleted, d.TasksAssigned)
		d.SLAComplianceRate = ratio(d.WithinSLA, d.Records)
		summary.Departments = append(summary.Departments, *d)
	}
	sort.Slice(summary.Departments, func(i, j int) bool {
		return summary.Departments[i].Department < summary.Departments[j].Department
	})

	for _, p := range byDay {
		summary.Trend = append(summary.Trend, *p)
	}
	sort.Slice(summary.Trend, func(i, j int) bool {
		return summary.Trend[i].Date.Before(summary.Trend[j].Date)
	})

	return summary
}

// ratio returns num/den as a fraction, or nil when the denominator is zero.
func ratio(num, den int) *float64 {
	if den == 0 {
		return nil
	}
	v := float64(num) / float64(den)
	return &v
}
