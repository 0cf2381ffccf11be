package loader_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lexgraph/pkg/loader"
	loaderio "lexgraph/pkg/loader/io"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDocumentText(t *testing.T) {
	dir := t.TempDir()
	fl := loaderio.NewIOContractFileLoader()

	t.Run("html file", func(t *testing.T) {
		path := writeFile(t, dir, "a.html", `<html><body><p>License   Agreement</p><script>x()</script></body></html>`)
		file := loader.NewContractFile(loader.NewContractFileParams{ID: "a", FilePath: path, Loader: fl})

		got := loader.DocumentText(context.Background(), file)
		if got != "License Agreement" {
			t.Fatalf("DocumentText() = %q, want %q", got, "License Agreement")
		}
	})

	t.Run("txt file verbatim then cleaned", func(t *testing.T) {
		path := writeFile(t, dir, "b.txt", "Securities  Purchase\nAgreement")
		file := loader.NewContractFile(loader.NewContractFileParams{ID: "b", FilePath: path, Loader: fl})

		got := loader.DocumentText(context.Background(), file)
		if got != "Securities Purchase Agreement" {
			t.Fatalf("DocumentText() = %q", got)
		}
	})

	t.Run("missing file yields empty text", func(t *testing.T) {
		file := loader.NewContractFile(loader.NewContractFileParams{
			ID:       "c",
			FilePath: filepath.Join(dir, "does-not-exist.txt"),
			Loader:   fl,
		})

		if got := loader.DocumentText(context.Background(), file); got != "" {
			t.Fatalf("DocumentText() = %q, want empty", got)
		}
	})

	t.Run("pdf is not extracted", func(t *testing.T) {
		path := writeFile(t, dir, "d.pdf", "%PDF-1.4 binary")
		file := loader.NewContractFile(loader.NewContractFileParams{ID: "d", FilePath: path, Loader: fl})

		if got := loader.DocumentText(context.Background(), file); got != "" {
			t.Fatalf("DocumentText() = %q, want empty", got)
		}
	})
}

func TestIOLoaderCaches(t *testing.T) {
	dir := t.TempDir()
	fl := loaderio.NewIOContractFileLoader()
	path := writeFile(t, dir, "e.txt", strings.Repeat("agreement ", 20))
	file := loader.NewContractFile(loader.NewContractFileParams{ID: "e", FilePath: path, Loader: fl})

	first, err := fl.GetFileText(context.Background(), file)
	if err != nil {
		t.Fatal(err)
	}

	// Content served from cache even after the file disappears.
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	second, err := fl.GetFileText(context.Background(), file)
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Fatal("cached read differs from first read")
	}
}
