// Package cache persists processed contract records keyed by source path, so
// repeated batch runs skip files that have not changed on disk.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"lexgraph/pkg/contract"
	"lexgraph/pkg/logger"
)

const (
	// DefaultFlushEvery is how many puts accumulate before the index is
	// written through to disk.
	DefaultFlushEvery = 5
	// DefaultKeepBackups is how many timestamped backup files survive a
	// prune.
	DefaultKeepBackups = 3
)

// Entry is one processed file in the index.
type Entry struct {
	Record      *contract.Record `json:"record"`
	ProcessedAt time.Time        `json:"processed_at"`
	Mtime       int64            `json:"mtime"`
}

// Index is a JSON-file-backed record cache keyed by absolute source path.
// It is single-writer: the batch orchestrator owns it for the duration of a
// run.
type Index struct {
	path        string
	flushEvery  int
	keepBackups int

	entries map[string]Entry
	pending int
}

// NewIndexParams configures an Index.
type NewIndexParams struct {
	Path        string
	FlushEvery  int // <= 0 means DefaultFlushEvery
	KeepBackups int // <= 0 means DefaultKeepBackups
}

// NewIndex opens or creates the cache index at the given path. A missing or
// corrupt file is not an error: the index starts empty and the condition is
// logged.
func NewIndex(params NewIndexParams) *Index {
	idx := &Index{
		path:        params.Path,
		flushEvery:  params.FlushEvery,
		keepBackups: params.KeepBackups,
		entries:     make(map[string]Entry),
	}
	if idx.flushEvery <= 0 {
		idx.flushEvery = DefaultFlushEvery
	}
	if idx.keepBackups <= 0 {
		idx.keepBackups = DefaultKeepBackups
	}

	data, err := os.ReadFile(idx.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("[Cache] load failed, starting empty", "path", idx.path, "err", err)
		}
		return idx
	}
	if err := json.Unmarshal(data, &idx.entries); err != nil {
		logger.Warn("[Cache] corrupt index, starting empty", "path", idx.path, "err", err)
		idx.entries = make(map[string]Entry)
	}

	logger.Info("[Cache] loaded", "path", idx.path, "entries", len(idx.entries))
	return idx
}

// Len returns the number of cached records.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Lookup returns the cached record for a file iff the file has not been
// modified since it was cached. With force set, the cache is bypassed.
func (idx *Index) Lookup(path string, force bool) (*contract.Record, bool) {
	if force {
		return nil, false
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, false
	}
	entry, ok := idx.entries[abs]
	if !ok {
		return nil, false
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, false
	}
	if info.ModTime().UnixNano() > entry.Mtime {
		return nil, false
	}
	return entry.Record, true
}

// Put stores a processed record, stamped with the file's current mtime.
// Every FlushEvery puts the index flushes itself to disk.
func (idx *Index) Put(path string, rec *contract.Record) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("cache put: %w", err)
	}

	var mtime int64
	if info, err := os.Stat(abs); err == nil {
		mtime = info.ModTime().UnixNano()
	}

	idx.entries[abs] = Entry{
		Record:      rec,
		ProcessedAt: time.Now(),
		Mtime:       mtime,
	}
	idx.pending++

	if idx.pending >= idx.flushEvery {
		return idx.Flush()
	}
	return nil
}

// Flush writes the index to disk, drops a timestamped backup alongside it
// and prunes old backups.
func (idx *Index) Flush() error {
	data, err := json.MarshalIndent(idx.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("cache flush: %w", err)
	}

	if err := os.WriteFile(idx.path, data, 0o644); err != nil {
		return fmt.Errorf("cache flush: %w", err)
	}

	backup := idx.backupName(time.Now())
	if err := os.WriteFile(backup, data, 0o644); err != nil {
		logger.Warn("[Cache] backup write failed", "path", backup, "err", err)
	}
	idx.PruneBackups(idx.keepBackups)

	idx.pending = 0
	logger.Debug("[Cache] flushed", "path", idx.path, "entries", len(idx.entries))
	return nil
}

func (idx *Index) backupName(now time.Time) string {
	base := strings.TrimSuffix(idx.path, filepath.Ext(idx.path))
	return fmt.Sprintf("%s_backup_%s.json", base, now.Format("20060102_150405"))
}

// PruneBackups removes all but the most recent keep backup files. Backup
// names embed their timestamp, so lexical order is chronological.
func (idx *Index) PruneBackups(keep int) {
	base := strings.TrimSuffix(idx.path, filepath.Ext(idx.path))
	matches, err := filepath.Glob(base + "_backup_*.json")
	if err != nil || len(matches) <= keep {
		return
	}

	sort.Strings(matches)
	for _, old := range matches[:len(matches)-keep] {
		if err := os.Remove(old); err != nil {
			logger.Warn("[Cache] backup prune failed", "path", old, "err", err)
		}
	}
}
