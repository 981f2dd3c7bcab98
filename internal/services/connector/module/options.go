package module

import (
	"time"

	"csvconnector/internal/platform/config"
	"csvconnector/internal/platform/store"
	"csvconnector/internal/platform/validate"
	"csvconnector/internal/services/connector/domain"
	"csvconnector/internal/services/connector/guardrails"
	"csvconnector/internal/services/connector/service"
)

// Options holds the connector settings, read once at startup
type Options struct {
	SourceURL string `env:"CSV_API_URL" validate:"required,url"`
	MongoURI  string `env:"MONGO_URI" validate:"required"`
	Database  string `env:"MONGO_DB" validate:"required"`
	Connector string `env:"CONNECTOR_NAME" validate:"required"`

	RunTimeout   time.Duration `env:"CONNECTOR_RUN_TIMEOUT" validate:"gte=0"`
	FetchTimeout time.Duration `env:"CONNECTOR_FETCH_TIMEOUT" validate:"gte=0"`
	LoadTimeout  time.Duration `env:"CONNECTOR_LOAD_TIMEOUT" validate:"gte=0"`
	MaxBodyBytes int64         `env:"CONNECTOR_MAX_BODY_BYTES" validate:"gte=0"`
	StrictExit   bool          `env:"CONNECTOR_STRICT_EXIT"`

	AppName        string        `env:"MONGO_APP_NAME"`
	LogCommands    bool          `env:"MONGO_LOG_COMMANDS"`
	SlowMs         int           `env:"MONGO_SLOW_MS" validate:"gte=0"`
	ConnectTimeout time.Duration `env:"MONGO_CONNECT_TIMEOUT" validate:"gte=0"`
}

// FromConfig reads the connector options; missing values stay empty
func FromConfig(cfg config.Conf) Options {
	cn := cfg.Prefix("CONNECTOR_")
	mg := cfg.Prefix("MONGO_")
	return Options{
		SourceURL: cfg.MayString("CSV_API_URL", ""),
		MongoURI:  mg.MayString("URI", ""),
		Database:  mg.MayString("DB", ""),
		Connector: cn.MayString("NAME", ""),

		RunTimeout:   cn.MayDuration("RUN_TIMEOUT", 0),
		FetchTimeout: cn.MayDuration("FETCH_TIMEOUT", 30*time.Second),
		LoadTimeout:  cn.MayDuration("LOAD_TIMEOUT", 0),
		MaxBodyBytes: cn.MayInt64("MAX_BODY_BYTES", 0),
		StrictExit:   cn.MayBool("STRICT_EXIT", true),

		AppName:        mg.MayString("APP_NAME", "csvconnector"),
		LogCommands:    mg.MayBool("LOG_COMMANDS", false),
		SlowMs:         mg.MayInt("SLOW_MS", 500),
		ConnectTimeout: mg.MayDuration("CONNECT_TIMEOUT", 10*time.Second),
	}
}

// Validate returns one issue per missing or invalid setting
func (o Options) Validate() []validate.Issue { return validate.Struct(o) }

// Target is where batches are written
func (o Options) Target() domain.Target {
	return domain.Target{
		URI:        o.MongoURI,
		Database:   o.Database,
		Collection: domain.CollectionFor(o.Connector),
	}
}

// Store is the store facade config used by the loader; the URI comes from Target
func (o Options) Store() store.Config {
	return store.Config{
		AppName: o.AppName,
		Mongo: store.MongoConfig{
			LogCommands:    o.LogCommands,
			SlowCommandMs:  o.SlowMs,
			ConnectTimeout: o.ConnectTimeout,
		},
	}
}

// Service is the run config handed to the service
func (o Options) Service() service.Config {
	return service.Config{
		SourceURL: o.SourceURL,
		Connector: o.Connector,
		Target:    o.Target(),
		Budget: guardrails.Budget{
			Run:   o.RunTimeout,
			Fetch: o.FetchTimeout,
			Load:  o.LoadTimeout,
		},
	}
}
