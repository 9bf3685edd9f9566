// Package score turns a business record plus its website signals into a
// succession readiness score. Pure and deterministic: no I/O, no state.
package score

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/CohensCoding/Succession/internal/business"
	"github.com/CohensCoding/Succession/internal/website"
)

// Category buckets a normalized score.
type Category string

const (
	High   Category = "High"
	Medium Category = "Medium"
	Low    Category = "Low"
)

// Priority markers paired 1:1 with categories, for display.
const (
	PriorityHigh   = "🔴"
	PriorityMedium = "🟡"
	PriorityLow    = "🟢"
)

// Result is the outcome of a single scoring call.
type Result struct {
	Score    float64 // normalized, 0-100
	RawScore int     // pre-normalization accumulator
	Category Category
	Priority string
	Factors  []string // in rule-evaluation order
}

// maxRawScore is the theoretical maximum across all rules and the fixed
// normalization denominator.
const maxRawScore = 115

// Category thresholds on the normalized score, inclusive on the low side.
const (
	highThreshold   = 70
	mediumThreshold = 40
)

// highSuccessionIndustries are matched case-insensitively as substrings of
// the record's industry; the first hit scores and the rest are skipped.
var highSuccessionIndustries = []string{
	"construction", "manufacturing", "automotive", "plumbing",
	"electrical", "hvac", "roofing", "landscaping", "trucking",
}

// targetRegions match against the location's region token, full names and
// postal abbreviations both.
var targetRegions = []string{"va", "virginia", "co", "colorado", "tn", "tennessee"}

// Target revenue range for acquisitions, in dollars, both ends inclusive.
const (
	revenueRangeMin = 2_000_000
	revenueRangeMax = 10_000_000
)

// Score evaluates the succession rules against rec and sig using the current
// year for the age and copyright-staleness rules.
func Score(rec business.Record, sig website.Signals) Result {
	return scoreAt(rec, sig, time.Now().Year())
}

func scoreAt(rec business.Record, sig website.Signals, currentYear int) Result {
	var (
		raw     int
		factors []string
	)

	// Business age: older businesses are likelier succession candidates.
	if rec.FoundedYear != 0 {
		age := currentYear - rec.FoundedYear
		switch {
		case age >= 20:
			raw += 25
			factors = append(factors, fmt.Sprintf("Established business (%d years)", age))
		case age >= 10:
			raw += 15
			factors = append(factors, fmt.Sprintf("Mature business (%d years)", age))
		}
	}

	// Website signals. An unreachable site scores flat and skips the finer
	// checks: opacity itself is the signal.
	if !sig.Accessible {
		raw += 20
		factors = append(factors, "Website inaccessible/outdated")
	} else {
		if sig.LatestCopyright != 0 && currentYear-sig.LatestCopyright >= 3 {
			raw += 15
			factors = append(factors, fmt.Sprintf("Copyright last updated %d", sig.LatestCopyright))
		}
		if !sig.HasBlog {
			raw += 10
			factors = append(factors, "No blog/news section")
		}
		if !sig.HasCareers {
			raw += 10
			factors = append(factors, "No careers/hiring page")
		}
	}

	industry := strings.ToLower(rec.Industry)
	for _, hi := range highSuccessionIndustries {
		if strings.Contains(industry, hi) {
			raw += 15
			factors = append(factors, fmt.Sprintf("High-succession industry (%s)", industry))
			break
		}
	}

	if rec.EstimatedRevenue >= revenueRangeMin && rec.EstimatedRevenue <= revenueRangeMax {
		raw += 20
		factors = append(factors, "Target revenue range ($2M-$10M)")
	}

	region := strings.ToLower(rec.RegionToken())
	for _, target := range targetRegions {
		if strings.Contains(region, target) {
			raw += 10
			factors = append(factors, "Target geographic region")
			break
		}
	}

	normalized := math.Min(100, float64(raw)/maxRawScore*100)
	normalized = math.Round(normalized*10) / 10

	cat := categorize(normalized)
	return Result{
		Score:    normalized,
		RawScore: raw,
		Category: cat,
		Priority: PriorityFor(cat),
		Factors:  factors,
	}
}

func categorize(score float64) Category {
	switch {
	case score >= highThreshold:
		return High
	case score >= mediumThreshold:
		return Medium
	default:
		return Low
	}
}

// PriorityFor returns the display marker paired with a category.
func PriorityFor(cat Category) string {
	switch cat {
	case High:
		return PriorityHigh
	case Medium:
		return PriorityMedium
	default:
		return PriorityLow
	}
}
