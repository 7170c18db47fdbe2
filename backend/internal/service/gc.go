package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fourchess/fourchess/shared/logger"
	"github.com/fourchess/fourchess/shared/middleware/metrics"
)

// MediaGarbageCollector reclaims media files no thread references anymore.
// Deleting a thread leaves its file on disk; this is the only path that
// removes it.
type MediaGarbageCollector struct {
	storage         GCStorage
	mediaStorage    GCMediaStorage
	safetyThreshold time.Duration

	mu        sync.Mutex
	lastStats CleanupStats
}

// CleanupStats describes the last collection run.
type CleanupStats struct {
	RunAt         time.Time
	FilesScanned  int
	OrphanedFiles int
	FilesDeleted  int
	Duration      time.Duration
	Errors        []string
}

// GCStorage lists media paths still referenced by threads.
type GCStorage interface {
	GetAllMediaPaths(ctx context.Context) ([]string, error)
}

// GCMediaStorage lists and removes stored files by public path.
type GCMediaStorage interface {
	WalkFiles() ([]string, error)
	GetFileModTime(publicPath string) (time.Time, error)
	DeleteFile(publicPath string) error
}

// NewMediaGarbageCollector creates a collector. Files younger than
// safetyThreshold are never deleted: they may belong to a submission whose
// thread insert has not committed yet.
func NewMediaGarbageCollector(storage GCStorage, mediaStorage GCMediaStorage, safetyThreshold time.Duration) *MediaGarbageCollector {
	return &MediaGarbageCollector{
		storage:         storage,
		mediaStorage:    mediaStorage,
		safetyThreshold: safetyThreshold,
	}
}

// Run collects every interval until ctx is done.
func (gc *MediaGarbageCollector) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	logger.Log.Info("media garbage collector started", "interval", interval, "safety_threshold", gc.safetyThreshold)

	for {
		select {
		case <-ticker.C:
			if err := gc.RunCleanup(ctx); err != nil {
				logger.Log.Error("media gc: cleanup failed", "error", err)
				continue
			}
			stats := gc.LastCleanupStats()
			logger.Log.Info("media gc: completed",
				"scanned", stats.FilesScanned,
				"orphans", stats.OrphanedFiles,
				"deleted", stats.FilesDeleted,
				"duration", stats.Duration,
				"errors", len(stats.Errors))
		case <-ctx.Done():
			logger.Log.Info("media garbage collector stopped")
			return nil
		}
	}
}

// RunCleanup executes one collection cycle. Per-file failures are recorded
// in the stats and do not abort the run.
func (gc *MediaGarbageCollector) RunCleanup(ctx context.Context) error {
	start := time.Now()
	stats := CleanupStats{RunAt: start, Errors: []string{}}

	dbPaths, err := gc.storage.GetAllMediaPaths(ctx)
	if err != nil {
		return fmt.Errorf("failed to list referenced media: %w", err)
	}
	referenced := make(map[string]bool, len(dbPaths))
	for _, p := range dbPaths {
		referenced[p] = true
	}

	fsPaths, err := gc.mediaStorage.WalkFiles()
	if err != nil {
		return fmt.Errorf("failed to list stored media: %w", err)
	}
	stats.FilesScanned = len(fsPaths)

	for _, p := range fsPaths {
		if err := ctx.Err(); err != nil {
			return err
		}
		if referenced[p] {
			continue
		}

		modTime, err := gc.mediaStorage.GetFileModTime(p)
		if err != nil {
			stats.Errors = append(stats.Errors, "stat error: "+p+": "+err.Error())
			continue
		}
		if time.Since(modTime) < gc.safetyThreshold {
			continue
		}

		stats.OrphanedFiles++
		if err := gc.mediaStorage.DeleteFile(p); err != nil {
			stats.Errors = append(stats.Errors, "delete error: "+p+": "+err.Error())
			continue
		}
		stats.FilesDeleted++
		metrics.MediaGCDeleted.Inc()
	}

	stats.Duration = time.Since(start)
	gc.mu.Lock()
	gc.lastStats = stats
	gc.mu.Unlock()
	return nil
}

func (gc *MediaGarbageCollector) LastCleanupStats() CleanupStats {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.lastStats
}
