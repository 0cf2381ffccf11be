// Package io loads contract files from the local filesystem.
package io

import (
	"context"
	"os"
	"sync"

	"lexgraph/pkg/loader"

	"golang.org/x/sync/singleflight"
)

// IOContractFileLoader loads files directly from the local filesystem with
// caching. Concurrent reads of the same file are collapsed into one.
type IOContractFileLoader struct {
	cache   map[string][]byte
	cacheMu sync.RWMutex
	group   singleflight.Group
}

// NewIOContractFileLoader creates a new filesystem-based file loader.
func NewIOContractFileLoader() *IOContractFileLoader {
	return &IOContractFileLoader{
		cache: make(map[string][]byte),
	}
}

// GetFileText reads the file content from the filesystem. Results are cached.
func (l *IOContractFileLoader) GetFileText(ctx context.Context, file loader.ContractFile) ([]byte, error) {
	key := loader.CacheKey(file)

	l.cacheMu.RLock()
	if cached, ok := l.cache[key]; ok {
		l.cacheMu.RUnlock()
		return cached, nil
	}
	l.cacheMu.RUnlock()

	result, err, _ := l.group.Do(key, func() (any, error) {
		l.cacheMu.RLock()
		if cached, ok := l.cache[key]; ok {
			l.cacheMu.RUnlock()
			return cached, nil
		}
		l.cacheMu.RUnlock()

		result, err := os.ReadFile(file.FilePath)
		if err != nil {
			return nil, err
		}

		l.cacheMu.Lock()
		l.cache[key] = result
		l.cacheMu.Unlock()

		return result, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]byte), nil
}
