package sampler

import (
	"fmt"
	"math"
	"sort"
)

// DefaultGenerator is used when no generator is configured.
const DefaultGenerator = "chirp"

var generators = map[string]Generator{
	"chirp":    func(x float64) float64 { return math.Sin(x * x / 2.3) },
	"sine":     math.Sin,
	"parabola": func(x float64) float64 { return x * x },
	"damped":   func(x float64) float64 { return math.Exp(-math.Abs(x)/4) * math.Cos(2*x) },
}

// Lookup returns the named generator.
func Lookup(name string) (Generator, error) {
	if name == "" {
		name = DefaultGenerator
	}
	g, ok := generators[name]
	if !ok {
		return nil, fmt.Errorf("sampler: unknown generator %q (have %v)", name, Names())
	}
	return g, nil
}

// Names lists the registered generators in sorted order.
func Names() []string {
	names := make([]string, 0, len(generators))
	for n := range generators {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
