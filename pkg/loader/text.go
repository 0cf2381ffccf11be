package loader

import (
	"context"

	htmltext "lexgraph/pkg/loader/html"
	"lexgraph/pkg/logger"
)

// DocumentText returns the cleaned plain text of a contract file. Read and
// decode failures are logged and yield an empty string rather than an error,
// so a single bad file cannot abort a batch. PDF content is not extracted.
func DocumentText(ctx context.Context, file ContractFile) string {
	switch file.FileType {
	case FileTypeHTML, FileTypeHTM, FileTypeTXT:
	default:
		return ""
	}

	raw, err := file.GetText(ctx)
	if err != nil {
		logger.Warn("[Loader] read failed", "path", file.FilePath, "err", err)
		return ""
	}

	var text string
	switch file.FileType {
	case FileTypeHTML, FileTypeHTM:
		text = htmltext.ExtractText(raw)
	case FileTypeTXT:
		text = string(raw)
	}

	return CleanText(text)
}
