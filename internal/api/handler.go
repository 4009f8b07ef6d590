package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Mdbasith05/Operations-dashboard/internal/config"
	"github.com/Mdbasith05/Operations-dashboard/internal/store"
)

// Handler serves the dashboard JSON API.
type Handler struct {
	store      *store.Store
	sla        config.SLAConfig
	exportsDir string
	downloads  *exportDownloadStore
}

// NewHandler creates the API handler. exportsDir receives generated
// report files; sla supplies fallbacks for business settings not yet
// stored in the database.
func NewHandler(store *store.Store, sla config.SLAConfig, exportsDir string) *Handler {
	return &Handler{
		store:      store,
		sla:        sla,
		exportsDir: exportsDir,
		downloads:  newExportDownloadStore(),
	}
}

// RegisterRoutes registers the API routes on a router group.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// system state
	router.GET("/status", h.GetStatus)

	// dataset ingestion
	router.POST("/upload", h.Upload)
	router.POST("/records/clear", h.ClearRecords)

	// KPI queries
	router.GET("/summary", h.GetSummary)
	router.GET("/departments", h.GetDepartments)
	router.GET("/trend", h.GetTrend)

	// raw data
	router.GET("/records", h.ListRecords)

	// business settings
	router.GET("/config", h.GetConfig)
	router.PATCH("/config", h.UpdateConfig)

	// report export
	router.POST("/export", h.Export)
	router.GET("/export/download/:token", h.DownloadExport)
}
