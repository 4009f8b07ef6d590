package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mdbasith05/Operations-dashboard/internal/kpi"
	"github.com/Mdbasith05/Operations-dashboard/internal/parser"
	"github.com/Mdbasith05/Operations-dashboard/internal/store"
)

// queryFilter builds store query options from the shared request
// parameters: department, from, to (dates in YYYY-MM-DD or any layout the
// ingester accepts).
func queryFilter(c *gin.Context) (store.TaskQueryOptions, bool) {
	opts := store.TaskQueryOptions{}

	if dept := c.Query("department"); dept != "" {
		opts.Department = &dept
	}
	if from := c.Query("from"); from != "" {
		t := parser.ParseDateFlexible(from)
		if t.IsZero() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
			return opts, false
		}
		opts.From = &t
	}
	if to := c.Query("to"); to != "" {
		t := parser.ParseDateFlexible(to)
		if t.IsZero() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
			return opts, false
		}
		opts.To = &t
	}

	return opts, true
}

// GetSummary computes the KPI summary for the current dataset.
// GET /api/summary?department=&from=&to=
func (h *Handler) GetSummary(c *gin.Context) {
	opts, ok := queryFilter(c)
	if !ok {
		return
	}

	summary, err := kpi.NewCalculator(h.store).Calculate(opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetDepartments returns just the per-department breakdown.
// GET /api/departments
func (h *Handler) GetDepartments(c *gin.Context) {
	opts, ok := queryFilter(c)
	if !ok {
		return
	}

	summary, err := kpi.NewCalculator(h.store).Calculate(opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"departments": summary.Departments})
}

// GetTrend returns the daily trend series.
// GET /api/trend
func (h *Handler) GetTrend(c *gin.Context) {
	opts, ok := queryFilter(c)
	if !ok {
		return
	}

	summary, err := kpi.NewCalculator(h.store).Calculate(opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"trend": summary.Trend})
}
