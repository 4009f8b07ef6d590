package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Mdbasith05/Operations-dashboard/internal/model"
)

const defaultPageSize = 100

// ListRecords returns raw task records with paging.
// GET /api/records?limit=&offset=&department=&from=&to=
func (h *Handler) ListRecords(c *gin.Context) {
	opts, ok := queryFilter(c)
	if !ok {
		return
	}

	total, err := h.store.CountTasks(opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	opts.Limit = defaultPageSize
	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		opts.Limit = limit
	}
	if v := c.Query("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offset"})
			return
		}
		opts.Offset = offset
	}

	records, err := h.store.GetTasks(opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if records == nil {
		records = []*model.TaskRecord{}
	}

	c.JSON(http.StatusOK, gin.H{
		"total":   total,
		"limit":   opts.Limit,
		"offset":  opts.Offset,
		"records": records,
	})
}
