package batch_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lexgraph/pkg/ai"
	"lexgraph/pkg/batch"
	"lexgraph/pkg/cache"
	"lexgraph/pkg/contract"
	loaderio "lexgraph/pkg/loader/io"
)

const sampleContract = `SECURITIES PURCHASE AGREEMENT

This Securities Purchase Agreement is entered into as of May 16, 2022, by and
between Acme Therapeutics Inc., a Delaware corporation, and Great Point
Partners LLC. The aggregate purchase price is $5,000,000 for 3,333,334 shares
of common stock at a purchase price of $1.50 per share, subject to completion
of due diligence and board of directors approval.`

type fakeClient struct {
	calls int
	err   error
}

func (f *fakeClient) GenerateCompletion(_ context.Context, _ string, _ ...ai.GenerateOption) (string, error) {
	f.calls++
	return "", f.err
}

func (f *fakeClient) GenerateCompletionWithFormat(_ context.Context, _, _, _ string, out any, _ ...ai.GenerateOption) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	if rec, ok := out.(*contract.Record); ok {
		rec.Title = "Securities Purchase Agreement"
		rec.ContractType = contract.TypeSecuritiesPurchase
		rec.Summary = "Purchase of common stock by an institutional investor."
	}
	return nil
}

func (f *fakeClient) ResetMetrics() {}

func (f *fakeClient) GetMetrics() ai.ModelMetrics { return ai.ModelMetrics{} }

type fakeStore struct {
	upserts  []string
	failPath string
}

func (f *fakeStore) UpsertContract(_ context.Context, rec *contract.Record) error {
	if f.failPath != "" && strings.Contains(rec.SourcePath, f.failPath) {
		return errors.New("write refused")
	}
	f.upserts = append(f.upserts, rec.Title)
	return nil
}

func (f *fakeStore) Stats(_ context.Context) (map[string]int64, error) {
	return map[string]int64{"contracts": int64(len(f.upserts))}, nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func newProcessor(t *testing.T, dir string, client *fakeClient, store *fakeStore, force bool) *batch.Processor {
	t.Helper()
	return &batch.Processor{
		Loader: loaderio.NewIOContractFileLoader(),
		Client: client,
		Store:  store,
		Cache:  cache.NewIndex(cache.NewIndexParams{Path: filepath.Join(dir, "cache.json")}),
		Force:  force,
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "2022/spa.html", sampleContract)
	writeFile(t, dir, "2019/lease.txt", sampleContract)
	writeFile(t, dir, "2020/scan.pdf", "binary")
	writeFile(t, dir, "notes.docx", "ignored")
	// same basename and size as 2022/spa.html
	writeFile(t, dir, "dupes/spa.html", sampleContract)

	files, pdfSkips, err := batch.Discover(dir)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("got %d files, want 2 (dedup and extension filter): %+v", len(files), files)
	}
	if files[0].Year != 2019 || files[1].Year != 2022 {
		t.Fatalf("files not sorted by year: %+v", files)
	}
	if len(pdfSkips) != 1 {
		t.Fatalf("got %d pdf skips, want 1", len(pdfSkips))
	}
}

func TestRunProcessesAndPersists(t *testing.T) {
	dir := t.TempDir()
	corpus := filepath.Join(dir, "corpus")
	writeFile(t, corpus, "2022/spa.txt", sampleContract)

	client := &fakeClient{}
	store := &fakeStore{}

	report, err := newProcessor(t, dir, client, store, false).Run(context.Background(), corpus)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if report.Succeeded != 1 || report.Failed != 0 {
		t.Fatalf("report = %+v", report)
	}
	if len(store.upserts) != 1 {
		t.Fatalf("got %d upserts, want 1", len(store.upserts))
	}
	if store.upserts[0] != "Securities Purchase Agreement" {
		t.Fatalf("upserted title = %q", store.upserts[0])
	}
	if report.Stats["contracts"] != 1 {
		t.Fatalf("stats = %v", report.Stats)
	}
}

func TestRunSkippedDistinctFromFailed(t *testing.T) {
	dir := t.TempDir()
	corpus := filepath.Join(dir, "corpus")
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		writeFile(t, corpus, "2022/"+name, sampleContract+" "+name)
	}
	// too short to be contracts
	writeFile(t, corpus, "2022/stub1.txt", "short")
	writeFile(t, corpus, "2022/stub2.txt", "also short")
	writeFile(t, corpus, "2022/stub3.txt", "placeholder exhibit")
	// persistence failure
	writeFile(t, corpus, "2022/bad.txt", strings.Replace(sampleContract, "Acme", "Bad Deal", 1))

	client := &fakeClient{}
	store := &fakeStore{failPath: "bad.txt"}

	report, err := newProcessor(t, dir, client, store, false).Run(context.Background(), corpus)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if report.Succeeded != 3 {
		t.Fatalf("succeeded = %d, want 3", report.Succeeded)
	}
	if report.Skipped != 3 {
		t.Fatalf("skipped = %d, want 3 (length rejects are not failures)", report.Skipped)
	}
	if report.Failed != 1 {
		t.Fatalf("failed = %d, want 1", report.Failed)
	}
	if len(report.Failures) != 1 || !strings.Contains(report.Failures[0].Path, "bad.txt") {
		t.Fatalf("failures = %+v", report.Failures)
	}
}

func TestRunCacheHitMakesNoModelCalls(t *testing.T) {
	dir := t.TempDir()
	corpus := filepath.Join(dir, "corpus")
	writeFile(t, corpus, "2022/spa.txt", sampleContract)

	store := &fakeStore{}
	first := &fakeClient{}
	if _, err := newProcessor(t, dir, first, store, false).Run(context.Background(), corpus); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.calls == 0 {
		t.Fatalf("first run must call the model")
	}

	second := &fakeClient{}
	report, err := newProcessor(t, dir, second, store, false).Run(context.Background(), corpus)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.calls != 0 {
		t.Fatalf("cached run made %d model calls, want 0", second.calls)
	}
	if report.Skipped != 1 || report.Succeeded != 0 {
		t.Fatalf("report = %+v", report)
	}
}

func TestRunForceBypassesCache(t *testing.T) {
	dir := t.TempDir()
	corpus := filepath.Join(dir, "corpus")
	writeFile(t, corpus, "2022/spa.txt", sampleContract)

	store := &fakeStore{}
	if _, err := newProcessor(t, dir, &fakeClient{}, store, false).Run(context.Background(), corpus); err != nil {
		t.Fatalf("first run: %v", err)
	}

	forced := &fakeClient{}
	report, err := newProcessor(t, dir, forced, store, true).Run(context.Background(), corpus)
	if err != nil {
		t.Fatalf("forced run: %v", err)
	}
	if forced.calls == 0 {
		t.Fatalf("force must bypass the cache and call the model")
	}
	if report.Succeeded != 1 {
		t.Fatalf("report = %+v", report)
	}
}

func TestRunFailureIsolation(t *testing.T) {
	dir := t.TempDir()
	corpus := filepath.Join(dir, "corpus")
	writeFile(t, corpus, "2022/bad.txt", strings.Replace(sampleContract, "Acme", "Bad Deal", 1))
	writeFile(t, corpus, "2022/good.txt", sampleContract)

	store := &fakeStore{failPath: "bad.txt"}

	report, err := newProcessor(t, dir, &fakeClient{}, store, false).Run(context.Background(), corpus)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Failed != 1 || report.Succeeded != 1 {
		t.Fatalf("one failure must not stop the batch: %+v", report)
	}
}
