package cache

import (
	"time"

	"github.com/CohensCoding/Succession/internal/business"
	"github.com/CohensCoding/Succession/internal/score"
	"github.com/CohensCoding/Succession/internal/website"
)

// Assessment is a stored scan outcome for one business: the record it was
// computed from plus the signals, score, and optional summary.
type Assessment struct {
	Record    business.Record
	Signals   website.Signals
	Result    score.Result
	Summary   string
	ScannedAt time.Time
}

// QueryOpts narrows business queries. Zero values mean "no filter".
type QueryOpts struct {
	Search string // substring of name or industry
	Limit  int
}
