package domain

import "context"

// RunnerPort is the public port exposed by the module
type RunnerPort interface {
	Run(ctx context.Context) (Report, error)
}

// Fetcher retrieves the raw CSV document
type Fetcher interface {
	Fetch(ctx context.Context, url string) (Payload, error)
}

// Parser turns a payload into typed records
type Parser interface {
	Parse(ctx context.Context, p Payload) (Batch, error)
}

// Loader appends a batch to the target collection and returns the inserted count
type Loader interface {
	Load(ctx context.Context, b Batch, t Target) (int, error)
}

// Stages bundles the three stage ports; nil members fall back to the defaults
type Stages struct {
	Fetcher Fetcher
	Parser  Parser
	Loader  Loader
}
