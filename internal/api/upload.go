package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Mdbasith05/Operations-dashboard/internal/importer"
	"github.com/Mdbasith05/Operations-dashboard/internal/store"
)

// Upload ingests an uploaded dataset file, streaming progress as SSE.
// POST /api/upload
func (h *Handler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data"})
		return
	}

	files := form.File["file"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}

	uploadedFile := files[0]

	tempDir := os.TempDir()
	tempFilePath := filepath.Join(tempDir, fmt.Sprintf("opsdash_upload_%d_%s", time.Now().Unix(), filepath.Base(uploadedFile.Filename)))

	if err := c.SaveUploadedFile(uploadedFile, tempFilePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save upload"})
		return
	}
	defer os.Remove(tempFilePath)

	clearExisting := c.DefaultPostForm("clearExisting", "true") == "true"

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	coordinator := importer.NewCoordinator(h.store)

	progressChan := coordinator.Import(importer.ImportOptions{
		FilePath:         tempFilePath,
		OriginalFilename: uploadedFile.Filename,
		ClearExisting:    clearExisting,
		DefaultSLATarget: h.defaultSLATarget(),
	})

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming unsupported"})
		return
	}

	for event := range progressChan {
		eventData, err := json.Marshal(event)
		if err != nil {
			continue
		}

		// SSE framing: data: {json}\n\n
		fmt.Fprintf(c.Writer, "data: %s\n\n", eventData)
		flusher.Flush()
	}
}

// ClearRecords drops the whole dataset.
// POST /api/records/clear
func (h *Handler) ClearRecords(c *gin.Context) {
	if err := h.store.DeleteAllTasks(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	count, _ := h.store.CountTasks(store.TaskQueryOptions{})
	c.JSON(http.StatusOK, gin.H{"records": count})
}
