package module

import (
	"sync"
	"testing"
)

// simple type used in tests
type portSet struct {
	Name string
	ID   int
}

// must is a tiny helper for ok checks
func must(t *testing.T, ok bool, msg string) {
	t.Helper()
	if !ok {
		t.Fatalf("%s", msg)
	}
}

func TestRegistry_RegisterAndPortsAs_Success(t *testing.T) {
	Reset()

	want := portSet{Name: "connector", ID: 1}
	Register(fakeModule{name: "connector", ports: want})

	got, ok := PortsAs[portSet]("connector")
	must(t, ok, "expected ok for existing name")
	if got != want {
		t.Fatalf("unexpected value got=%v want=%v", got, want)
	}
}

func TestRegistry_PortsAs_ResolvesBundleField(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	type Ports struct{ Foo FooPort }
	Register(fakeModule{name: "urlhaus", ports: Ports{Foo: fooImpl{v: 3}}})

	got, ok := PortsAs[FooPort]("urlhaus")
	must(t, ok, "expected field lookup through registry")
	if got.Foo() != 3 {
		t.Fatalf("Foo() = %d, want 3", got.Foo())
	}
}

func TestRegistry_PortsAs_MissingReturnsZeroAndFalse(t *testing.T) {
	Reset()

	got, ok := PortsAs[portSet]("missing")
	if ok {
		t.Fatal("expected ok=false for missing name")
	}
	if got != (portSet{}) {
		t.Fatalf("expected zero value got=%v", got)
	}
}

func TestRegistry_PortsAs_TypeMismatchReturnsFalse(t *testing.T) {
	Reset()

	Register(fakeModule{name: "connector", ports: portSet{Name: "connector", ID: 2}})

	// no field of portSet is a float64
	_, ok := PortsAs[float64]("connector")
	if ok {
		t.Fatal("expected ok=false for type mismatch")
	}
}

func TestRegistry_Register_OverwritesExisting(t *testing.T) {
	Reset()

	Register(fakeModule{name: "svc", ports: portSet{Name: "a", ID: 1}})
	Register(fakeModule{name: "svc", ports: portSet{Name: "b", ID: 2}})

	got, ok := PortsAs[portSet]("svc")
	must(t, ok, "expected ok for svc after overwrite")
	if got.Name != "b" || got.ID != 2 {
		t.Fatalf("expected overwritten value got=%v", got)
	}
}

func TestRegistry_Reset_ClearsAll(t *testing.T) {
	Reset()

	Register(fakeModule{name: "x", ports: portSet{Name: "x", ID: 9}})
	Reset()

	_, ok := PortsAs[portSet]("x")
	if ok {
		t.Fatal("expected ok=false after reset")
	}
}

func TestRegistry_ConcurrentRegisterAndRead_NoRace(t *testing.T) {
	Reset()

	const n = 100
	var wg sync.WaitGroup
	wg.Add(2)

	// writer
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			Register(fakeModule{name: "concurrent", ports: portSet{Name: "k", ID: i}})
		}
	}()

	// reader
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			_, _ = PortsAs[portSet]("concurrent")
		}
	}()

	wg.Wait()

	got, ok := PortsAs[portSet]("concurrent")
	must(t, ok, "expected ok after concurrent writes")
	if got.Name != "k" {
		t.Fatalf("unexpected final value got=%v", got)
	}
}

func TestRegistry_Names_Sorted(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	Register(fakeModule{name: "urlhaus"})
	Register(fakeModule{name: "feodo"})
	Register(fakeModule{name: "urlhaus"})

	got := Names()
	if len(got) != 2 || got[0] != "feodo" || got[1] != "urlhaus" {
		t.Fatalf("Names() = %v", got)
	}
}
