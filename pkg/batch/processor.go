package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"lexgraph"
	"lexgraph/pkg/ai"
	"lexgraph/pkg/cache"
	"lexgraph/pkg/contract"
	"lexgraph/pkg/extract"
	"lexgraph/pkg/loader"
	"lexgraph/pkg/logger"
)

const statsTimeout = 30 * time.Second

// ContractStore is the write surface the processor needs from the graph
// store.
type ContractStore interface {
	UpsertContract(ctx context.Context, rec *contract.Record) error
	Stats(ctx context.Context) (map[string]int64, error)
}

// ProgressFunc reports per-file progress: 1-based index, total candidate
// count, file basename and a short status message.
type ProgressFunc func(index, total int, name, message string)

// Processor drives one ingestion run.
type Processor struct {
	Loader   loader.FileLoader
	Client   ai.ContractAIClient
	Store    ContractStore
	Cache    *cache.Index
	Force    bool // reprocess files even when cached
	MaxFiles int  // 0 means unbounded
	Progress ProgressFunc
}

func (p *Processor) progress(index, total int, name, message string) {
	if p.Progress != nil {
		p.Progress(index, total, name, message)
	}
}

// Run discovers files under root and processes them sequentially. The
// single-threaded loop is deliberate: generative extraction dominates the
// cost and the model backends already bound their own concurrency.
// Cancellation is honored between files; the file in flight at cancel is
// discarded, committed files stay.
func (p *Processor) Run(ctx context.Context, root string) (*Report, error) {
	batchID, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("batch id: %w", err)
	}

	files, pdfSkips, err := Discover(root)
	if err != nil {
		return nil, err
	}
	if p.MaxFiles > 0 && len(files) > p.MaxFiles {
		files = files[:p.MaxFiles]
	}

	report := &Report{BatchID: batchID, Total: len(files), Skipped: len(pdfSkips)}
	for _, path := range pdfSkips {
		logger.Debug("[Batch] pdf skipped", "path", path)
	}

	logger.Info("[Batch] starting", "batch_id", batchID, "files", len(files), "pdf_skipped", len(pdfSkips), "force", p.Force)
	started := time.Now()

	for i, file := range files {
		if err := ctx.Err(); err != nil {
			logger.Warn("[Batch] cancelled", "batch_id", batchID, "processed", i, "remaining", len(files)-i)
			break
		}

		name := filepath.Base(file.Path)

		if cached, ok := p.Cache.Lookup(file.Path, p.Force); ok {
			logger.Debug("[Batch] cache hit", "path", file.Path, "title", cached.Title)
			report.Skipped++
			p.progress(i+1, len(files), name, "cached, skipped")
			continue
		}

		rec, err := p.processFile(ctx, file)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			logger.Warn("[Batch] file failed", "path", file.Path, "err", err)
			report.Failed++
			report.Failures = append(report.Failures, Failure{Path: file.Path, Err: err})
			p.progress(i+1, len(files), name, fmt.Sprintf("failed: %v", err))
			continue
		}
		if rec == nil {
			// too short to be a contract
			report.Skipped++
			p.progress(i+1, len(files), name, "too short, skipped")
			continue
		}

		if err := p.Cache.Put(file.Path, rec); err != nil {
			logger.Warn("[Batch] cache update failed", "path", file.Path, "err", err)
		}
		report.Succeeded++
		p.progress(i+1, len(files), name, fmt.Sprintf("ok: %s", rec.Title))
	}

	if err := p.Cache.Flush(); err != nil {
		logger.Warn("[Batch] final cache flush failed", "err", err)
	}

	report.Elapsed = time.Since(started)
	p.gatherStats(ctx, report)

	logger.Info("[Batch] finished", "batch_id", batchID,
		"succeeded", report.Succeeded, "failed", report.Failed, "skipped", report.Skipped,
		"elapsed", report.Elapsed.Round(time.Second))
	return report, nil
}

// processFile runs one document through the pipeline. A nil record with
// nil error means the file was rejected as too short, which counts as
// skipped rather than failed.
func (p *Processor) processFile(ctx context.Context, file File) (*contract.Record, error) {
	source := loader.NewContractFile(loader.NewContractFileParams{
		ID:       filepath.Base(file.Path),
		FilePath: file.Path,
		Loader:   p.Loader,
	})

	text := loader.DocumentText(ctx, source)
	if text == "" {
		return nil, fmt.Errorf("%w: no text extracted from %s", lexgraph.ErrFileRead, file.Path)
	}
	if len(text) < loader.MinContractLength {
		logger.Debug("[Batch] text below minimum length", "path", file.Path, "chars", len(text))
		return nil, nil
	}

	rule := extract.RuleExtract(text)

	outcome := extract.ExtractorFor(rule.ContractType).Extract(ctx, p.Client, text)
	rec := extract.Merge(outcome, rule, text)
	rec.SourcePath = file.Path

	if err := p.Store.UpsertContract(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// gatherStats snapshots the graph for the report under its own deadline.
// A slow or unreachable store degrades the report, never the run.
func (p *Processor) gatherStats(ctx context.Context, report *Report) {
	statsCtx, cancel := context.WithTimeout(ctx, statsTimeout)
	defer cancel()

	stats, err := p.Store.Stats(statsCtx)
	if err != nil {
		logger.Warn("[Batch] stats unavailable", "err", err)
		report.StatsNote = "unavailable"
		return
	}
	report.Stats = stats
}
