// Package store provides a unified interface to the connector's storage backends
package store

import (
	"context"
	"errors"
	"fmt"

	"csvconnector/internal/platform/logger"
)

// Store is the facade for optional backends
// zero value is safe but does nothing
type Store struct {
	// Log is the logger used by subclients
	// zero means a no op zerolog logger
	Log logger.Logger

	// Mongo is the document store seam, nil when disabled
	Mongo Documents
}

// Documents is the document-collection surface repos use
type Documents interface {
	InsertMany(ctx context.Context, db, coll string, docs []any) (int, error)
	Count(ctx context.Context, db, coll string, filter any) (int64, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Open constructs a Store with the requested backends
// backends not enabled in cfg remain nil on the Store
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	// defaults for zero logger to avoid nil checks
	s.Log = s.Log.With().Logger()

	if cfg.Mongo.Enabled && s.Mongo == nil {
		m, err := openMongo(ctx, cfg, s)
		if err != nil {
			return nil, err
		}
		s.Mongo = m
	}

	return s, nil
}

// Guard verifies all configured seams are reachable
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	var errs []error
	if s.Mongo != nil {
		if err := s.Mongo.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("mongo: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Close closes all initialized backends gracefully
// nil backends are ignored
func (s *Store) Close(ctx context.Context) error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.Mongo != nil {
		if e := s.Mongo.Close(ctx); e != nil {
			errs = append(errs, e)
		}
	}
	return errors.Join(errs...)
}
