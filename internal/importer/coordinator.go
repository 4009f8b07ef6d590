package importer

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Mdbasith05/Operations-dashboard/internal/model"
	"github.com/Mdbasith05/Operations-dashboard/internal/parser"
	"github.com/Mdbasith05/Operations-dashboard/internal/store"
)

// maxStreamedIssues caps per-category row issues sent as progress events.
const maxStreamedIssues = 20

// Coordinator runs import passes against the store.
type Coordinator struct {
	store *store.Store
	log   *logrus.Entry
}

// NewCoordinator creates an import coordinator.
func NewCoordinator(st *store.Store) *Coordinator {
	return &Coordinator{
		store: st,
		log:   logrus.WithField("component", "importer"),
	}
}

// ImportOptions configures one import pass.
type ImportOptions struct {
	FilePath         string
	OriginalFilename string // display name; FilePath may be a temp file
	ClearExisting    bool
	DefaultSLATarget float64
}

// ProgressEvent is streamed to the client while an import runs.
type ProgressEvent struct {
	Type      string      `json:"type"` // start/info/warning/error/done
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Import starts an import pass in the background and returns its progress
// channel. The channel closes when the pass finishes; a "done" event
// carries the UploadReport, an "error" event means nothing was imported.
func (c *Coordinator) Import(opts ImportOptions) <-chan ProgressEvent {
	progressChan := make(chan ProgressEvent, 100)

	go func() {
		defer close(progressChan)
		c.doImport(opts, progressChan)
	}()

	return progressChan
}

// ImportSync runs an import pass to completion, draining progress events.
// Used by the inbox watcher.
func (c *Coordinator) ImportSync(opts ImportOptions) (*model.UploadReport, error) {
	var report *model.UploadReport
	var importErr error

	for event := range c.Import(opts) {
		switch event.Type {
		case "done":
			if r, ok := event.Data.(*model.UploadReport); ok {
				report = r
			}
		case "error":
			importErr = fmt.Errorf("%s", event.Message)
		}
	}

	if importErr != nil {
		return nil, importErr
	}
	return report, nil
}

func (c *Coordinator) doImport(opts ImportOptions, progressChan chan ProgressEvent) {
	startTime := time.Now()

	filename := opts.OriginalFilename
	if filename == "" {
		filename = filepath.Base(opts.FilePath)
	}

	c.sendProgress(progressChan, ProgressEvent{
		Type:    "start",
		Message: fmt.Sprintf("importing %s", filename),
		Data: map[string]string{
			"filename": filename,
		},
		Timestamp: time.Now(),
	})

	result, format, err := parser.ParseFile(opts.FilePath, parser.Options{
		DefaultSLATarget: opts.DefaultSLATarget,
		SourceFile:       filename,
	})
	if err != nil {
		c.log.WithError(err).WithField("file", filename).Warn("import failed")
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "error",
			Message:   fmt.Sprintf("failed to parse file: %v", err),
			Timestamp: time.Now(),
		})
		return
	}

	c.sendProgress(progressChan, ProgressEvent{
		Type:    "info",
		Message: fmt.Sprintf("parsed %d rows (%d dropped, %d violations)", result.TotalRows, len(result.Dropped), len(result.Violations)),
		Data: map[string]interface{}{
			"total_rows": result.TotalRows,
			"dropped":    len(result.Dropped),
			"violations": len(result.Violations),
		},
		Timestamp: time.Now(),
	})

	// The full issue lists travel with the final report; only the first few
	// are streamed so a dirty file cannot flood the progress channel.
	for i, issue := range result.Dropped {
		if i >= maxStreamedIssues {
			break
		}
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "warning",
			Message:   fmt.Sprintf("row %d dropped: %s", issue.Row, issue.Message),
			Data:      issue,
			Timestamp: time.Now(),
		})
	}
	for i, issue := range result.Violations {
		if i >= maxStreamedIssues {
			break
		}
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "warning",
			Message:   fmt.Sprintf("row %d kept with violation: %s", issue.Row, issue.Message),
			Data:      issue,
			Timestamp: time.Now(),
		})
	}

	if len(result.Records) == 0 {
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "error",
			Message:   "no importable rows in file",
			Timestamp: time.Now(),
		})
		return
	}

	if opts.ClearExisting {
		if err := c.store.DeleteAllTasks(); err != nil {
			c.sendProgress(progressChan, ProgressEvent{
				Type:      "error",
				Message:   fmt.Sprintf("failed to clear existing dataset: %v", err),
				Timestamp: time.Now(),
			})
			return
		}
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "info",
			Message:   "cleared existing dataset",
			Timestamp: time.Now(),
		})
	}

	if err := c.store.BatchInsertTasks(result.Records); err != nil {
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "error",
			Message:   fmt.Sprintf("failed to insert records: %v", err),
			Timestamp: time.Now(),
		})
		return
	}

	report := &model.UploadReport{
		UploadID:     uuid.New().String(),
		Filename:     filename,
		Format:       format,
		TotalRows:    result.TotalRows,
		ImportedRows: len(result.Records),
		DroppedRows:  len(result.Dropped),
		Violations:   result.Violations,
		Dropped:      result.Dropped,
		Duration:     time.Since(startTime),
	}

	if err := c.store.LogUpload(report); err != nil {
		// Import already succeeded; losing the log line is not fatal.
		c.log.WithError(err).Warn("failed to record upload log")
	}

	c.log.WithFields(logrus.Fields{
		"file":     filename,
		"format":   format,
		"imported": report.ImportedRows,
		"dropped":  report.DroppedRows,
	}).Info("import complete")

	c.sendProgress(progressChan, ProgressEvent{
		Type:      "done",
		Message:   fmt.Sprintf("imported %d rows", report.ImportedRows),
		Data:      report,
		Timestamp: time.Now(),
	})
}

func (c *Coordinator) sendProgress(ch chan ProgressEvent, event ProgressEvent) {
	select {
	case ch <- event:
	default:
		// channel full, drop the event
	}
}
