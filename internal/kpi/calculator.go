package kpi

import (
	"github.com/Mdbasith05/Operations-dashboard/internal/store"
)

// Calculator computes KPI summaries over the stored dataset.
type Calculator struct {
	store *store.Store
}

// NewCalculator creates a store-backed calculator.
func NewCalculator(store *store.Store) *Calculator {
	return &Calculator{
		store: store,
	}
}

// Calculate loads the records matching opts and computes their summary.
func (c *Calculator) Calculate(opts store.TaskQueryOptions) (Summary, error) {
	records, err := c.store.GetTasks(opts)
	if err != nil {
		return Summary{}, err
	}
	return Compute(records), nil
}
