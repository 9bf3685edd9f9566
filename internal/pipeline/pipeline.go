// Package pipeline orchestrates extraction, scoring, and summaries across a
// business list. The extractor and scorer stay pure per-record; this is the
// caller-side layer that owns concurrency, filtering, and aggregates.
package pipeline

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/CohensCoding/Succession/internal/business"
	"github.com/CohensCoding/Succession/internal/score"
	"github.com/CohensCoding/Succession/internal/summary"
	"github.com/CohensCoding/Succession/internal/website"
)

// Outcome pairs one business with everything a scan derived for it.
type Outcome struct {
	Record  business.Record
	Signals website.Signals
	Result  score.Result
	Summary string
}

// Options controls a scan run.
type Options struct {
	Concurrency int  // max in-flight fetches; <1 means 1
	Summarize   bool // generate outreach summaries (needs a summary client)
}

// Run enriches and scores every record. Fetches fan out up to
// opts.Concurrency at a time; scoring runs inline. Results come back in
// input order regardless of fetch completion order. A nil summary client
// with Summarize set degrades to placeholder summaries rather than failing.
func Run(ctx context.Context, records []business.Record, ext *website.Extractor, sum summary.Client, opts Options) []Outcome {
	limit := opts.Concurrency
	if limit < 1 {
		limit = 1
	}

	outcomes := make([]Outcome, len(records))
	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup

	for i, rec := range records {
		wg.Add(1)
		go func(i int, rec business.Record) {
			defer wg.Done()
			sem <- struct{}{}
			sig := ext.Extract(ctx, rec.Website)
			<-sem

			res := score.Score(rec, sig)
			out := Outcome{Record: rec, Signals: sig, Result: res}
			if opts.Summarize {
				out.Summary = summary.Generate(ctx, sum, rec, res)
			}
			outcomes[i] = out
		}(i, rec)
	}

	wg.Wait()
	return outcomes
}

// FilterRegion keeps outcomes whose region token contains any of the
// selected region names, case-insensitively. An empty selection keeps
// everything.
func FilterRegion(outcomes []Outcome, regions []string) []Outcome {
	if len(regions) == 0 {
		return outcomes
	}
	var kept []Outcome
	for _, o := range outcomes {
		if MatchRegion(o.Record, regions) {
			kept = append(kept, o)
		}
	}
	return kept
}

// MatchRegion reports whether any selected region name appears in the
// record's region token.
func MatchRegion(rec business.Record, regions []string) bool {
	token := strings.ToLower(rec.RegionToken())
	for _, region := range regions {
		if region == "" {
			continue
		}
		if strings.Contains(token, strings.ToLower(region)) {
			return true
		}
	}
	return false
}

// FilterMinScore drops outcomes scoring below min.
func FilterMinScore(outcomes []Outcome, min float64) []Outcome {
	if min <= 0 {
		return outcomes
	}
	var kept []Outcome
	for _, o := range outcomes {
		if o.Result.Score >= min {
			kept = append(kept, o)
		}
	}
	return kept
}

// SortByScore orders outcomes by score descending, stable on input order.
func SortByScore(outcomes []Outcome) {
	sort.SliceStable(outcomes, func(i, j int) bool {
		return outcomes[i].Result.Score > outcomes[j].Result.Score
	})
}

// Metrics are the pipeline-level aggregates shown after a scan.
type Metrics struct {
	Total         int
	HighPriority  int     // score >= 70
	AvgScore      float64
	PipelineValue float64 // summed estimated revenue
}

// Aggregate computes metrics over a set of outcomes.
func Aggregate(outcomes []Outcome) Metrics {
	m := Metrics{Total: len(outcomes)}
	if m.Total == 0 {
		return m
	}
	var sum float64
	for _, o := range outcomes {
		sum += o.Result.Score
		m.PipelineValue += o.Record.EstimatedRevenue
		if o.Result.Score >= 70 {
			m.HighPriority++
		}
	}
	m.AvgScore = sum / float64(m.Total)
	return m
}
