// Package mongo provides the MongoDB client used by the store facade
package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Config configures the mongo client
type Config struct {
	URI     string
	AppName string

	// ConnectTimeout bounds dialing and server selection; zero keeps driver defaults
	ConnectTimeout time.Duration
}

// Client wraps a *mongo.Client with the narrow surface the store exposes
type Client struct {
	c *mongo.Client
}

// Open builds a client for cfg.URI. The driver connects lazily, so an unreachable
// server surfaces on the first operation, not here; a malformed URI fails here
func Open(ctx context.Context, cfg Config, mon *event.CommandMonitor) (*Client, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongo: empty connection uri")
	}
	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.AppName != "" {
		opts.SetAppName(cfg.AppName)
	}
	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout)
		opts.SetServerSelectionTimeout(cfg.ConnectTimeout)
	}
	if mon != nil {
		opts.SetMonitor(mon)
	}
	c, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Client{c: c}, nil
}

// InsertMany appends docs to db.coll as one ordered bulk insert and returns the
// number of inserted documents. Ordered inserts stop at the first failing document;
// documents before it stay written
func (c *Client) InsertMany(ctx context.Context, db, coll string, docs []any) (int, error) {
	res, err := c.c.Database(db).Collection(coll).InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	if err != nil {
		return 0, err
	}
	return len(res.InsertedIDs), nil
}

// Count returns the number of documents in db.coll matching filter (nil = all)
func (c *Client) Count(ctx context.Context, db, coll string, filter any) (int64, error) {
	if filter == nil {
		filter = map[string]any{}
	}
	return c.c.Database(db).Collection(coll).CountDocuments(ctx, filter)
}

// Ping round-trips to the primary
func (c *Client) Ping(ctx context.Context) error {
	return c.c.Ping(ctx, readpref.Primary())
}

// Close disconnects the client and its pool
func (c *Client) Close(ctx context.Context) error {
	return c.c.Disconnect(ctx)
}
