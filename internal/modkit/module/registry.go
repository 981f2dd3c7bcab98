package module

import (
	"sort"
	"sync"
)

// process-wide module registry filled by main during bootstrap
var (
	mu  sync.RWMutex
	reg = map[string]Module{}
)

// Register stores m under its name; a second module with the same name replaces the first
func Register(m Module) {
	mu.Lock()
	reg[m.Name()] = m
	mu.Unlock()
}

// PortsAs resolves T from the ports of the module registered under name, see PortsOf
func PortsAs[T any](name string) (T, bool) {
	mu.RLock()
	m, ok := reg[name]
	mu.RUnlock()
	if !ok {
		var zero T
		return zero, false
	}
	return PortsOf[T](m)
}

// Names lists registered module names in sorted order
func Names() []string {
	mu.RLock()
	out := make([]string, 0, len(reg))
	for n := range reg {
		out = append(out, n)
	}
	mu.RUnlock()
	sort.Strings(out)
	return out
}

// Reset clears the registry for tests
func Reset() {
	mu.Lock()
	reg = map[string]Module{}
	mu.Unlock()
}
