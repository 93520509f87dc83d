package demo

import (
	"sort"

	"github.com/vango-dev/laiweb/internal/errors"
	"github.com/vango-dev/laiweb/pkg/runtime"
)

var registry = map[string]*runtime.Definition{
	"counter": Counter,
	"list":    List,
	"todo":    Todo,
	"app":     App,
}

// Lookup returns the demo registered under name.
func Lookup(name string) (*runtime.Definition, error) {
	def, ok := registry[name]
	if !ok {
		return nil, errors.New("X001").
			WithSubject(name).
			WithSuggestion("Available demos: " + joinNames())
	}
	return def, nil
}

// Names returns the registered demo names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func joinNames() string {
	s := ""
	for i, name := range Names() {
		if i > 0 {
			s += ", "
		}
		s += name
	}
	return s
}

func intProp(v any, def int) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return def
}
