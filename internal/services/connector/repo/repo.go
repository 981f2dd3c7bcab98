// Package repo provides mongo access for connector writes
package repo

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	perr "csvconnector/internal/platform/errors"
	"csvconnector/internal/platform/logger"
	"csvconnector/internal/platform/store"
	"csvconnector/internal/services/connector/domain"
)

// openStore is the store seam; tests swap it to avoid dialing
var openStore = store.Open

// MongoLoader implements domain.Loader over the store facade.
// Each Load opens its own client and closes it before returning
type MongoLoader struct {
	cfg store.Config
	log logger.Logger
}

// NewMongo returns a loader; cfg.Mongo.URI and Enabled are taken from the target at load time
func NewMongo(cfg store.Config, log logger.Logger) *MongoLoader {
	return &MongoLoader{cfg: cfg, log: log}
}

// Load appends every record of b to t.Database.t.Collection in one ordered insert
func (l *MongoLoader) Load(ctx context.Context, b domain.Batch, t domain.Target) (int, error) {
	if b.Empty() {
		return 0, perr.ErrNoRecords
	}
	if strings.TrimSpace(t.Database) == "" {
		return 0, perr.WithField(perr.Loadf("database name is empty"), "MONGO_DB")
	}

	cfg := l.cfg
	cfg.Mongo.Enabled = true
	cfg.Mongo.URI = t.URI

	st, err := openStore(ctx, cfg, store.WithLogger(l.log))
	if err != nil {
		return 0, perr.WithField(perr.WithOp(perr.FromMongo(err, "open store"), "open"), "MONGO_URI")
	}
	defer func() {
		if cerr := st.Close(context.WithoutCancel(ctx)); cerr != nil {
			l.log.Warn().Err(cerr).Msg("store close failed")
		}
	}()
	if err := st.Guard(ctx); err != nil {
		return 0, perr.WithField(perr.WithOp(perr.FromMongo(err, "ping store"), "ping"), "MONGO_URI")
	}

	n, err := st.Mongo.InsertMany(ctx, t.Database, t.Collection, Documents(b))
	if err != nil {
		return n, perr.WithOp(perr.FromMongof(err, "insert %d records into %s.%s", b.Len(), t.Database, t.Collection), "insert_many")
	}
	return n, nil
}

// Documents converts records to ordered bson documents
func Documents(b domain.Batch) []any {
	docs := make([]any, len(b.Records))
	for i, r := range b.Records {
		d := make(bson.D, len(r))
		for j, f := range r {
			d[j] = bson.E{Key: f.Key, Value: f.Value}
		}
		docs[i] = d
	}
	return docs
}
