package checks

import (
	"context"
	"fmt"
	"sort"

	"github.com/meridiandb/harness/version"
)

// Product is the query surface of a running product instance.
type Product interface {
	Version(ctx context.Context) (version.Version, error)
	QueryValue(ctx context.Context, query string, args ...any) (string, error)
}

// Cargo resolves the version of the source tree the product was built from.
type Cargo interface {
	DaemonVersion(ctx context.Context) (version.Version, error)
}

// Env carries the collaborators a check runs against. The fixture data is
// loaded once at startup and shared by reference.
type Env struct {
	Product        Product
	Cargo          Cargo
	NaughtyStrings []string
	Parallelism    int
}

type Check interface {
	Name() string
	Run(ctx context.Context, env *Env) error
}

type Factory func() Check

// registry maps check names to factories. It is populated by Register calls
// from package init functions, never at runtime.
var registry = map[string]Factory{}

// Register adds a check factory under the given name. It panics when the
// name is already taken, so duplicates surface at startup.
func Register(name string, factory Factory) {
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("check %q registered twice", name))
	}
	registry[name] = factory
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, bool) {
	factory, ok := registry[name]
	return factory, ok
}

// Names returns all registered check names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
