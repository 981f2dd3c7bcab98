// Package service provides the connector run: fetch, parse, load once
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	perr "csvconnector/internal/platform/errors"
	"csvconnector/internal/platform/logger"
	"csvconnector/internal/services/connector/domain"
	"csvconnector/internal/services/connector/guardrails"
)

// newRunID is the run identity seam
var newRunID = func() string { return uuid.NewString() }

// Config holds the resolved settings of one run
type Config struct {
	SourceURL string
	Connector string
	Target    domain.Target
	Budget    guardrails.Budget
}

// Service implements domain.RunnerPort
type Service struct {
	Fetch domain.Fetcher
	Parse domain.Parser
	Load  domain.Loader
	Cfg   Config
	Log   logger.Logger
}

// New constructs the connector service
func New(f domain.Fetcher, p domain.Parser, l domain.Loader, cfg Config, log logger.Logger) *Service {
	if f == nil || p == nil || l == nil {
		panic("connector.Service requires fetcher, parser and loader")
	}
	return &Service{Fetch: f, Parse: p, Load: l, Cfg: cfg, Log: log}
}

// Run executes fetch, parse and load in order. A failed stage hands an empty value
// to the next one, which then reports its own short-circuit error. The returned
// error is the first stage error; the report carries all of them
func (s *Service) Run(ctx context.Context) (domain.Report, error) {
	runID := newRunID()
	ctx = logger.WithRun(ctx, runID, s.Cfg.Connector)
	log := logger.From(ctx, s.Log)

	budget := s.Cfg.Budget
	runCtx, cancel := budget.Bound(ctx, guardrails.StageRun)
	defer cancel()

	started := time.Now()
	rep := domain.Report{
		RunID:      runID,
		Connector:  s.Cfg.Connector,
		Collection: s.Cfg.Target.Collection,
		StartedAt:  started.UTC(),
	}

	// fetch
	t0 := time.Now()
	fetchCtx, fetchCancel := budget.Bound(runCtx, guardrails.StageFetch)
	payload, err := s.Fetch.Fetch(fetchCtx, s.Cfg.SourceURL)
	fetchCancel()
	rep.Fetch = domain.StageReport{Name: "fetch", Duration: time.Since(t0), Err: err}
	if err != nil {
		stageFailed(log, "fetch", err, nil).Str("url", s.Cfg.SourceURL).Int("status", payload.Status).Msg("fetch failed")
		payload = domain.Payload{}
	} else {
		rep.Fetch.Count = payload.Bytes
		log.Info().
			Str("url", s.Cfg.SourceURL).
			Int("status", payload.Status).
			Int("bytes", payload.Bytes).
			Str("content_type", payload.ContentType).
			Dur("took", rep.Fetch.Duration).
			Msg("fetch ok")
	}

	// parse
	t0 = time.Now()
	batch, err := s.Parse.Parse(runCtx, payload)
	rep.Parse = domain.StageReport{Name: "parse", Duration: time.Since(t0), Err: err}
	if err != nil {
		stageFailed(log, "parse", err, rep.Fetch.Err).Msg("parse failed")
		batch = domain.Batch{}
	} else {
		rep.Parse.Count = batch.Len()
		kinds := make([]string, len(batch.Kinds))
		for i, k := range batch.Kinds {
			kinds[i] = k.String()
		}
		log.Info().
			Int("records", batch.Len()).
			Strs("columns", batch.Columns).
			Strs("kinds", kinds).
			Time("ingested_at", batch.IngestedAt).
			Dur("took", rep.Parse.Duration).
			Msg("parse ok")
	}

	// load
	t0 = time.Now()
	loadCtx, loadCancel := budget.Bound(runCtx, guardrails.StageLoad)
	n, err := s.Load.Load(loadCtx, batch, s.Cfg.Target)
	loadCancel()
	rep.Load = domain.StageReport{Name: "load", Duration: time.Since(t0), Count: n, Err: err}
	if err != nil {
		stageFailed(log, "load", err, rep.Parse.Err).
			Dur("run_left", guardrails.Left(runCtx)).
			Bool("retryable", perr.IsRetryable(err)).
			Str("database", s.Cfg.Target.Database).
			Str("collection", s.Cfg.Target.Collection).
			Int("records", batch.Len()).
			Msg("load failed")
	} else {
		log.Info().
			Int("inserted", n).
			Str("database", s.Cfg.Target.Database).
			Str("collection", s.Cfg.Target.Collection).
			Dur("took", rep.Load.Duration).
			Msg("load ok")
	}

	rep.Elapsed = time.Since(started)
	runErr := rep.Err()

	sum := log.Info()
	if runErr != nil {
		sum = log.Warn().Str("failed_stage", rep.FailedStage()).Str("code", perr.CodeOf(runErr).String())
	}
	sum.Bool("ok", rep.OK()).
		Int("bytes", rep.Fetch.Count).
		Int("records", rep.Parse.Count).
		Int("inserted", rep.Load.Count).
		Dur("elapsed", rep.Elapsed).
		Msg("run finished")

	return rep, runErr
}

// stageFailed starts the failure event of a stage. A short circuit caused by
// the previous stage failing is a warning
func stageFailed(log *logger.Logger, stage string, err, prev error) *zerolog.Event {
	ev := log.Error()
	if prev != nil && (perr.IsCode(err, perr.ErrorCodeNoContent) || perr.IsCode(err, perr.ErrorCodeNoRecords)) {
		ev = log.Warn()
	}
	ev = ev.Err(err).Str("stage", stage).Str("code", perr.CodeOf(err).String())
	if e, ok := perr.As(err); ok && e.Op() != "" {
		ev = ev.Str("op", e.Op())
	}
	return ev
}
