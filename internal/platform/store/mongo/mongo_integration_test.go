//go:build integration_mongo
// +build integration_mongo

package mongo

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	kit "csvconnector/internal/platform/testkit"
)

func TestInsertMany_Integration(t *testing.T) {
	uri := kit.StartMongo(t)

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	c, err := Open(ctx, Config{URI: uri, AppName: "csvconnector-it", ConnectTimeout: 10 * time.Second}, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = c.Close(context.Background()) }()

	if err := c.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	docs := []any{
		bson.D{{Key: "col1", Value: int64(1)}, {Key: "col2", Value: "foo"}},
		bson.D{{Key: "col1", Value: int64(2)}, {Key: "col2", Value: "bar"}},
	}
	n, err := c.InsertMany(ctx, "feeds", "it_raw", docs)
	if err != nil || n != 2 {
		t.Fatalf("InsertMany = %d, %v", n, err)
	}
	got, err := c.Count(ctx, "feeds", "it_raw", nil)
	if err != nil || got != 2 {
		t.Fatalf("Count = %d, %v", got, err)
	}
}
