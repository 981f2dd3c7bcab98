// Package guardrails bounds each stage of a connector run in time
package guardrails

import (
	"context"
	"time"
)

// Stage names a bounded section of a run
type Stage string

// Stages with a budget; parse runs in memory under the run budget only
const (
	StageRun   Stage = "run"
	StageFetch Stage = "fetch"
	StageParse Stage = "parse"
	StageLoad  Stage = "load"
)

// Budget caps each stage of one run. A zero or negative cap leaves that stage unbounded
type Budget struct {
	Run   time.Duration // fetch, parse and load together
	Fetch time.Duration // the GET including the body read
	Load  time.Duration // store open, ping and insert
}

// Of returns the cap for s
func (b Budget) Of(s Stage) time.Duration {
	switch s {
	case StageRun:
		return b.Run
	case StageFetch:
		return b.Fetch
	case StageLoad:
		return b.Load
	default:
		return 0
	}
}

// Bound derives the context for stage s from parent.
// The child always gets its own cancel; a deadline is only added when the stage has a cap,
// and it never outlives the parent deadline
func (b Budget) Bound(parent context.Context, s Stage) (context.Context, context.CancelFunc) {
	d := b.Of(s)
	if d <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, d)
}

// Left is the time until the deadline on ctx; zero when there is none or it passed
func Left(ctx context.Context) time.Duration {
	dl, ok := ctx.Deadline()
	if !ok {
		return 0
	}
	return max(time.Until(dl), 0)
}
