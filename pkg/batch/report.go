package batch

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// maxReportedFailures bounds how many failures the rendered report lists;
// the full set stays on the Report for callers that want it.
const maxReportedFailures = 5

// Failure records one file the run could not process.
type Failure struct {
	Path string
	Err  error
}

// Report summarizes an ingestion run. Skipped covers cache hits, PDFs and
// too-short documents; Failed covers real errors only.
type Report struct {
	BatchID   string
	Total     int
	Succeeded int
	Failed    int
	Skipped   int
	Failures  []Failure
	Elapsed   time.Duration
	Stats     map[string]int64
	StatsNote string
}

// Rate returns processed files per second over the whole run.
func (r *Report) Rate() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Succeeded+r.Failed+r.Skipped) / r.Elapsed.Seconds()
}

// String renders the report as plain text.
func (r *Report) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Batch %s\n", r.BatchID)
	fmt.Fprintf(&sb, "  Candidates: %d\n", r.Total)
	fmt.Fprintf(&sb, "  Succeeded:  %d\n", r.Succeeded)
	fmt.Fprintf(&sb, "  Failed:     %d\n", r.Failed)
	fmt.Fprintf(&sb, "  Skipped:    %d\n", r.Skipped)
	fmt.Fprintf(&sb, "  Elapsed:    %s (%.2f files/s)\n", r.Elapsed.Round(time.Second), r.Rate())

	if len(r.Failures) > 0 {
		fmt.Fprintf(&sb, "  Failures:\n")
		for i, failure := range r.Failures {
			if i == maxReportedFailures {
				fmt.Fprintf(&sb, "    ... and %d more\n", len(r.Failures)-maxReportedFailures)
				break
			}
			fmt.Fprintf(&sb, "    %s: %v\n", failure.Path, failure.Err)
		}
	}

	switch {
	case r.StatsNote != "":
		fmt.Fprintf(&sb, "  Graph stats: %s\n", r.StatsNote)
	case len(r.Stats) > 0:
		fmt.Fprintf(&sb, "  Graph stats:\n")
		keys := make([]string, 0, len(r.Stats))
		for key := range r.Stats {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(&sb, "    %-24s %d\n", key, r.Stats[key])
		}
	}

	return sb.String()
}
