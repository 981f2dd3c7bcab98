// Package module provides the connector module implementation
package module

import (
	"csvconnector/internal/modkit"

	"csvconnector/internal/adapters/ingest/csvfeed"
	"csvconnector/internal/core/version"
	"csvconnector/internal/services/connector/domain"
	"csvconnector/internal/services/connector/repo"
	"csvconnector/internal/services/connector/service"
)

// Ports defines the connector module ports
type Ports struct {
	Runner domain.RunnerPort
}

// Module implements the connector module
type Module struct {
	deps  modkit.Deps
	name  string
	opts  Options
	ports Ports
}

// New constructs the connector module from deps.Cfg.
// Invalid settings are logged as warnings and passed through; the stages report them.
// modkit.WithPorts(domain.Stages{...}) overrides individual stages
func New(deps modkit.Deps, mopts ...modkit.Option) *Module {
	opts := FromConfig(deps.Cfg)
	for _, is := range opts.Validate() {
		deps.Log.Warn().Str("field", is.Field).Str("rule", is.Tag).Msg(is.Message)
	}

	b := modkit.Build(mopts...)
	stages, _ := b.Ports.(domain.Stages)
	if stages.Fetcher == nil {
		stages.Fetcher = csvfeed.NewHTTPFetcher(opts.FetchTimeout,
			csvfeed.WithUserAgent(version.UserAgent()),
			csvfeed.WithMaxBytes(opts.MaxBodyBytes),
		)
	}
	if stages.Parser == nil {
		stages.Parser = csvfeed.NewParser()
	}
	if stages.Loader == nil {
		stages.Loader = repo.NewMongo(opts.Store(), deps.Log)
	}

	svc := service.New(stages.Fetcher, stages.Parser, stages.Loader, opts.Service(), deps.Log)

	name := b.Name
	if name == "" {
		name = "connector"
	}
	return &Module{deps: deps, name: name, opts: opts, ports: Ports{Runner: svc}}
}

// Name returns the module name
func (m *Module) Name() string { return m.name }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Options returns the settings the module was built with
func (m *Module) Options() Options { return m.opts }
