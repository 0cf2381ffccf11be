// Package loader turns contract source files into clean plain text ready for
// extraction.
package loader

import (
	"context"
	"path/filepath"
	"strings"
)

type FileType string

const (
	FileTypeHTML    FileType = "html"
	FileTypeHTM     FileType = "htm"
	FileTypeTXT     FileType = "txt"
	FileTypePDF     FileType = "pdf"
	FileTypeUnknown FileType = ""
)

// TypeForPath maps a file extension to its FileType. Unrecognized extensions
// yield FileTypeUnknown.
func TypeForPath(path string) FileType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html":
		return FileTypeHTML
	case ".htm":
		return FileTypeHTM
	case ".txt":
		return FileTypeTXT
	case ".pdf":
		return FileTypePDF
	default:
		return FileTypeUnknown
	}
}

// ContractFile represents a single source document on its way into the
// pipeline. The actual content is retrieved via the associated FileLoader.
type ContractFile struct {
	ID       string
	FilePath string
	FileType FileType
	Loader   FileLoader
}

// NewContractFileParams defines the input parameters for creating a new
// ContractFile.
type NewContractFileParams struct {
	ID       string
	FilePath string
	Loader   FileLoader
}

// NewContractFile creates a ContractFile whose type is derived from the
// path's extension.
func NewContractFile(params NewContractFileParams) ContractFile {
	return ContractFile{
		ID:       params.ID,
		FilePath: params.FilePath,
		FileType: TypeForPath(params.FilePath),
		Loader:   params.Loader,
	}
}

// GetText retrieves the raw content of the file using its Loader.
func (f *ContractFile) GetText(ctx context.Context) ([]byte, error) {
	return f.Loader.GetFileText(ctx, *f)
}

// FileLoader defines the interface for loading the raw contents of a
// ContractFile. Implementations may load from disk or other sources.
type FileLoader interface {
	GetFileText(ctx context.Context, file ContractFile) ([]byte, error)
}

// CacheKey identifies a file in loader-level caches.
func CacheKey(file ContractFile) string {
	return file.ID + ":" + file.FilePath
}
