package store

import (
	"context"

	mgx "csvconnector/internal/platform/store/mongo"
)

// openMongo opens the mongo client; no ping, the first real operation is the probe
func openMongo(ctx context.Context, cfg Config, s *Store) (Documents, error) {
	var tracer mgx.CommandTracer
	if cfg.Mongo.LogCommands {
		tracer = mgx.Tracer(s.Log)
	}
	c, err := mgx.Open(ctx, mgx.Config{
		URI:            cfg.Mongo.URI,
		AppName:        cfg.AppName,
		ConnectTimeout: cfg.Mongo.ConnectTimeout,
	}, mgx.Monitor(tracer, cfg.Mongo.SlowCommandMs))
	if err != nil {
		return nil, err
	}
	return c, nil
}
