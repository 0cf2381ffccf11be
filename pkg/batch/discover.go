// Package batch walks a contract corpus, runs each file through the
// extraction pipeline and persists the results, isolating per-file
// failures so one bad document never stops a run.
package batch

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"lexgraph/pkg/loader"
	"lexgraph/pkg/logger"
)

// File is one discovered candidate document.
type File struct {
	Path string
	Type loader.FileType
	Year int // derived from the path, 0 when absent
	Size int64
}

var yearSegmentPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// pathYear pulls a 4-digit year out of a path segment. SEC filing corpora
// are laid out by year, so this drives chronological ordering.
func pathYear(path string) int {
	if m := yearSegmentPattern.FindString(path); m != "" {
		year, _ := strconv.Atoi(m)
		return year
	}
	return 0
}

// Discover walks root for processable contract files. PDFs are returned
// separately so the report can count them as skipped. Duplicate filings
// with the same basename and byte size are collapsed to one candidate.
func Discover(root string) (files []File, pdfSkips []string, err error) {
	type dedupKey struct {
		base string
		size int64
	}
	seen := make(map[dedupKey]bool)

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		fileType := loader.TypeForPath(path)
		if fileType == loader.FileTypePDF {
			pdfSkips = append(pdfSkips, path)
			return nil
		}
		if fileType == loader.FileTypeUnknown {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		key := dedupKey{base: strings.ToLower(filepath.Base(path)), size: info.Size()}
		if seen[key] {
			logger.Debug("[Batch] duplicate filing collapsed", "path", path)
			return nil
		}
		seen[key] = true

		files = append(files, File{
			Path: path,
			Type: fileType,
			Year: pathYear(path),
			Size: info.Size(),
		})
		return nil
	})
	if walkErr != nil {
		return nil, nil, fmt.Errorf("discover %s: %w", root, walkErr)
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].Year != files[j].Year {
			return files[i].Year < files[j].Year
		}
		if files[i].Type != files[j].Type {
			return files[i].Type < files[j].Type
		}
		return files[i].Path < files[j].Path
	})

	return files, pdfSkips, nil
}
