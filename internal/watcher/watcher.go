package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/Mdbasith05/Operations-dashboard/internal/importer"
)

// settleDelay gives the writer time to finish after the last write event
// before the file is imported.
const settleDelay = 500 * time.Millisecond

// InboxWatcher imports dataset files dropped into the inbox directory.
// On success the file is moved to uploadsDir; on failure it stays put.
type InboxWatcher struct {
	inboxDir         string
	uploadsDir       string
	coordinator      *importer.Coordinator
	defaultSLATarget float64
	log              *logrus.Entry
}

// New creates an inbox watcher.
func New(inboxDir, uploadsDir string, coordinator *importer.Coordinator, defaultSLATarget float64) *InboxWatcher {
	return &InboxWatcher{
		inboxDir:         inboxDir,
		uploadsDir:       uploadsDir,
		coordinator:      coordinator,
		defaultSLATarget: defaultSLATarget,
		log:              logrus.WithField("component", "watcher"),
	}
}

// Run watches the inbox until ctx is cancelled. Files already present at
// startup are imported first.
func (w *InboxWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.inboxDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.inboxDir, err)
	}

	w.log.WithField("dir", w.inboxDir).Info("watching inbox")

	w.importExisting()

	// Writers emit bursts of write events; track the latest event per file
	// and import once the burst settles.
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(settleDelay)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !ingestible(event.Name) {
				continue
			}
			pending[event.Name] = time.Now()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("watch error")

		case now := <-ticker.C:
			for path, last := range pending {
				if now.Sub(last) < settleDelay {
					continue
				}
				delete(pending, path)
				w.importFile(path)
			}
		}
	}
}

func (w *InboxWatcher) importExisting() {
	entries, err := os.ReadDir(w.inboxDir)
	if err != nil {
		w.log.WithError(err).Warn("failed to list inbox")
		return
	}
	for _, entry := range entries {
		if entry.IsDir() || !ingestible(entry.Name()) {
			continue
		}
		w.importFile(filepath.Join(w.inboxDir, entry.Name()))
	}
}

func (w *InboxWatcher) importFile(path string) {
	log := w.log.WithField("file", filepath.Base(path))

	report, err := w.coordinator.ImportSync(importer.ImportOptions{
		FilePath:         path,
		OriginalFilename: filepath.Base(path),
		ClearExisting:    true,
		DefaultSLATarget: w.defaultSLATarget,
	})
	if err != nil {
		log.WithError(err).Warn("inbox import failed, leaving file in place")
		return
	}

	log.WithFields(logrus.Fields{
		"imported": report.ImportedRows,
		"dropped":  report.DroppedRows,
	}).Info("inbox import complete")

	dest := filepath.Join(w.uploadsDir, filepath.Base(path))
	if err := os.Rename(path, dest); err != nil {
		log.WithError(err).Warn("failed to move imported file out of inbox")
	}
}

func ingestible(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".xlsx", ".xlsm":
		return true
	}
	return false
}
