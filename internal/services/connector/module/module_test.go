package module

import (
	"context"
	"testing"
	"time"

	"csvconnector/internal/modkit"
	modreg "csvconnector/internal/modkit/module"
	"csvconnector/internal/platform/config"
	perr "csvconnector/internal/platform/errors"
	kit "csvconnector/internal/platform/testkit"
	"csvconnector/internal/services/connector/domain"
)

func setEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CSV_API_URL", "https://urlhaus.abuse.ch/downloads/csv_recent/")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("MONGO_DB", "threatintel")
	t.Setenv("CONNECTOR_NAME", "urlhaus")
}

func TestFromConfig_Defaults(t *testing.T) {
	setEnv(t)
	for _, k := range []string{
		"CONNECTOR_RUN_TIMEOUT", "CONNECTOR_FETCH_TIMEOUT", "CONNECTOR_LOAD_TIMEOUT", "CONNECTOR_MAX_BODY_BYTES", "CONNECTOR_STRICT_EXIT",
		"MONGO_APP_NAME", "MONGO_LOG_COMMANDS", "MONGO_SLOW_MS", "MONGO_CONNECT_TIMEOUT",
	} {
		t.Setenv(k, "")
	}

	o := FromConfig(config.New())
	if o.RunTimeout != 0 || o.FetchTimeout != 30*time.Second || o.LoadTimeout != 0 || o.MaxBodyBytes != 0 || !o.StrictExit {
		t.Fatalf("connector defaults = %+v", o)
	}
	if o.AppName != "csvconnector" || o.LogCommands || o.SlowMs != 500 || o.ConnectTimeout != 10*time.Second {
		t.Fatalf("mongo defaults = %+v", o)
	}
	if issues := o.Validate(); len(issues) != 0 {
		t.Fatalf("valid env reported issues: %+v", issues)
	}

	tg := o.Target()
	if tg.URI != "mongodb://localhost:27017" || tg.Database != "threatintel" || tg.Collection != "urlhaus_raw" {
		t.Fatalf("Target = %+v", tg)
	}
	st := o.Store()
	if st.AppName != "csvconnector" || st.Mongo.SlowCommandMs != 500 || st.Mongo.Enabled || st.Mongo.URI != "" {
		t.Fatalf("Store = %+v", st)
	}
	sc := o.Service()
	if sc.SourceURL != o.SourceURL || sc.Connector != "urlhaus" || sc.Budget.Fetch != 30*time.Second || sc.Budget.Run != 0 {
		t.Fatalf("Service = %+v", sc)
	}
}

func TestFromConfig_Overrides(t *testing.T) {
	setEnv(t)
	t.Setenv("CONNECTOR_RUN_TIMEOUT", "10m")
	t.Setenv("CONNECTOR_FETCH_TIMEOUT", "5")
	t.Setenv("CONNECTOR_LOAD_TIMEOUT", "2m")
	t.Setenv("CONNECTOR_MAX_BODY_BYTES", "1048576")
	t.Setenv("CONNECTOR_STRICT_EXIT", "false")
	t.Setenv("MONGO_LOG_COMMANDS", "true")
	t.Setenv("MONGO_SLOW_MS", "50")

	o := FromConfig(config.New())
	if o.FetchTimeout != 5*time.Second || o.LoadTimeout != 2*time.Minute || o.MaxBodyBytes != 1<<20 {
		t.Fatalf("overrides = %+v", o)
	}
	if o.StrictExit || !o.LogCommands || o.SlowMs != 50 {
		t.Fatalf("flags = %+v", o)
	}
	b := o.Service().Budget
	if b.Run != 10*time.Minute || b.Fetch != 5*time.Second || b.Load != 2*time.Minute {
		t.Fatalf("budget not propagated: %+v", b)
	}
}

func TestValidate_MissingAndInvalid(t *testing.T) {
	o := Options{SourceURL: "not a url", Connector: "x", FetchTimeout: -time.Second, RunTimeout: -time.Minute}
	issues := o.Validate()

	got := map[string]string{}
	for _, is := range issues {
		got[is.Field] = is.Tag
	}
	want := map[string]string{
		"CSV_API_URL":             "url",
		"MONGO_URI":               "required",
		"MONGO_DB":                "required",
		"CONNECTOR_FETCH_TIMEOUT": "gte",
		"CONNECTOR_RUN_TIMEOUT":   "gte",
	}
	for f, tag := range want {
		if got[f] != tag {
			t.Fatalf("issue for %s = %q, want %q (all: %+v)", f, got[f], tag, issues)
		}
	}
	if _, ok := got["CONNECTOR_NAME"]; ok {
		t.Fatalf("CONNECTOR_NAME is set and should not be reported")
	}
}

type stubFetcher struct{ url string }

func (s *stubFetcher) Fetch(_ context.Context, url string) (domain.Payload, error) {
	s.url = url
	return domain.Payload{}, perr.Fetchf("GET %s: unexpected status 404", url)
}

type stubLoader struct{ calls int }

func (s *stubLoader) Load(context.Context, domain.Batch, domain.Target) (int, error) {
	s.calls++
	return 0, perr.ErrNoRecords
}

func TestNew_WarnsAndWiresOverriddenStages(t *testing.T) {
	t.Setenv("CSV_API_URL", "")
	t.Setenv("MONGO_URI", "")
	t.Setenv("MONGO_DB", "")
	t.Setenv("CONNECTOR_NAME", "feodo")

	buf, log := kit.LogBuffer()
	f, l := &stubFetcher{}, &stubLoader{}

	m := New(modkit.Deps{Log: log, Cfg: config.New()}, modkit.WithPorts(domain.Stages{Fetcher: f, Loader: l}))
	kit.MustContain(t, buf.String(), `"field":"CSV_API_URL"`)
	kit.MustContain(t, buf.String(), `"field":"MONGO_DB"`)
	kit.MustContain(t, buf.String(), "is a required field")

	if m.Name() != "connector" {
		t.Fatalf("Name = %q", m.Name())
	}
	ports, ok := m.Ports().(Ports)
	if !ok || ports.Runner == nil {
		t.Fatalf("Ports = %#v", m.Ports())
	}

	rep, err := ports.Runner.Run(context.Background())
	if !perr.IsCode(err, perr.ErrorCodeFetch) {
		t.Fatalf("Run err = %v", err)
	}
	if !perr.IsCode(rep.Parse.Err, perr.ErrorCodeNoContent) || l.calls != 1 {
		t.Fatalf("default parser not wired or loader skipped: parse=%v loads=%d", rep.Parse.Err, l.calls)
	}
	if rep.Collection != "feodo_raw" {
		t.Fatalf("Collection = %q", rep.Collection)
	}
}

func TestNew_DefaultStagesAndRegistry(t *testing.T) {
	setEnv(t)
	modreg.Reset()
	t.Cleanup(modreg.Reset)

	_, log := kit.LogBuffer()
	m := New(modkit.Deps{Log: log, Cfg: config.New()}, modkit.WithName("urlhaus"))
	modreg.Register(m)

	p, ok := modreg.PortsAs[Ports]("urlhaus")
	if !ok || p.Runner == nil {
		t.Fatalf("registry lookup failed: %#v", p)
	}
	if r, ok := modreg.PortsAs[domain.RunnerPort]("urlhaus"); !ok || r == nil {
		t.Fatalf("runner not resolvable by module name")
	}
	if _, ok := modreg.PortsAs[domain.RunnerPort]("connector"); ok {
		t.Fatalf("module registered under the default name")
	}
	if !m.Options().StrictExit {
		t.Fatalf("StrictExit default should be true")
	}
}
