package store

import "time"

// Config aggregates per backend configuration
type Config struct {
	AppName string

	Mongo MongoConfig
}

// MongoConfig configures document store connectivity and command logging
type MongoConfig struct {
	Enabled        bool
	URI            string
	LogCommands    bool
	SlowCommandMs  int
	ConnectTimeout time.Duration // zero keeps driver defaults
}
