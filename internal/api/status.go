package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mdbasith05/Operations-dashboard/internal/store"
)

// StatusResponse describes the loaded dataset.
type StatusResponse struct {
	Initialized bool                  `json:"initialized"`
	Records     int                   `json:"records"`
	Departments []string              `json:"departments"`
	LastUpload  *store.UploadLogEntry `json:"lastUpload,omitempty"`
	SourceFiles int                   `json:"sourceFiles"`
}

// GetStatus reports whether a dataset is loaded and its shape.
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	count, err := h.store.CountTasks(store.TaskQueryOptions{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	departments, err := h.store.ListDepartments()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if departments == nil {
		departments = []string{}
	}

	lastUpload, err := h.store.LastUpload()
	if err != nil {
		lastUpload = nil
	}

	datasets, err := h.store.ListDatasets()
	if err != nil {
		datasets = nil
	}

	c.JSON(http.StatusOK, StatusResponse{
		Initialized: count > 0,
		Records:     count,
		Departments: departments,
		LastUpload:  lastUpload,
		SourceFiles: len(datasets),
	})
}
