package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Mdbasith05/Operations-dashboard/internal/exporter"
	"github.com/Mdbasith05/Operations-dashboard/internal/store"
)

const downloadTTL = 10 * time.Minute

// Export builds the XLSX report and hands back a one-shot download token.
// POST /api/export
func (h *Handler) Export(c *gin.Context) {
	count, err := h.store.CountTasks(store.TaskQueryOptions{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if count == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no data available"})
		return
	}

	f, err := exporter.NewExporter(h.store).Export()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("export failed: %v", err)})
		return
	}
	defer f.Close()

	if err := os.MkdirAll(h.exportsDir, 0755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create exports directory"})
		return
	}

	filename := fmt.Sprintf("operations_report_%s.xlsx", time.Now().Format("20060102_150405"))
	filePath := filepath.Join(h.exportsDir, filename)
	if err := f.SaveAs(filePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("failed to save report: %v", err)})
		return
	}

	token := uuid.New().String()
	h.downloads.put(token, filePath, downloadTTL)

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"filename": filename,
	})
}

// DownloadExport serves a previously generated report once.
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")

	download, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "download expired or not found"})
		return
	}
	h.downloads.delete(token)

	c.FileAttachment(download.filePath, filepath.Base(download.filePath))
}
