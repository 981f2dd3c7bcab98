package domain

import (
	"time"

	perr "csvconnector/internal/platform/errors"
)

// StageReport is the outcome of one stage
type StageReport struct {
	Name     string
	Duration time.Duration
	Count    int
	Err      error
}

// OK reports whether the stage succeeded
func (s StageReport) OK() bool { return s.Err == nil }

// Code returns the error code of the stage, ErrorCodeUnknown when it succeeded
func (s StageReport) Code() perr.ErrorCode { return perr.CodeOf(s.Err) }

// Report summarises one run
type Report struct {
	RunID      string
	Connector  string
	Collection string
	StartedAt  time.Time
	Elapsed    time.Duration

	Fetch StageReport // Count = bytes
	Parse StageReport // Count = records
	Load  StageReport // Count = inserted documents
}

// Stages returns the stage reports in run order
func (r Report) Stages() []StageReport { return []StageReport{r.Fetch, r.Parse, r.Load} }

// Err returns the first stage error in run order
func (r Report) Err() error {
	for _, s := range r.Stages() {
		if !s.OK() {
			return s.Err
		}
	}
	return nil
}

// OK reports whether every stage succeeded
func (r Report) OK() bool { return r.Err() == nil }

// FailedStage classifies the first failure by its error code, falling back to
// the name of the stage that returned it. Empty when the run succeeded
func (r Report) FailedStage() string {
	for _, s := range r.Stages() {
		if s.Err == nil {
			continue
		}
		if st := perr.Stage(s.Code()); st != "unknown" {
			return st
		}
		return s.Name
	}
	return ""
}
