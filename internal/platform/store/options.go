package store

import (
	"csvconnector/internal/platform/logger"
)

// Option mutates Store during Open
type Option func(*Store) error

// WithLogger sets the logger used by subclients
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

// WithDocuments installs a prebuilt document seam; Open then skips dialing mongo
func WithDocuments(d Documents) Option {
	return func(s *Store) error {
		s.Mongo = d
		return nil
	}
}
