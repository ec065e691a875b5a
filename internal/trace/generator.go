package trace

import (
	"log/slog"
)

// Generator is the total entry point: every call returns a non-empty trace.
type Generator struct {
	registry *Registry
	metrics  *Metrics
	logger   *slog.Logger
}

type Option func(*Generator)

func WithMetrics(m *Metrics) Option { return func(g *Generator) { g.metrics = m } }

func WithLogger(l *slog.Logger) Option { return func(g *Generator) { g.logger = l } }

func NewGenerator(reg *Registry, opts ...Option) *Generator {
	if reg == nil {
		reg = NewRegistry()
	}
	g := &Generator{registry: reg, logger: slog.Default()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) Registry() *Registry { return g.registry }

func (g *Generator) Generate(algorithm string, input []float64, target *float64) *Trace {
	p, err := g.registry.Get(algorithm)
	if err != nil {
		g.logger.Warn("unknown algorithm", "algorithm", algorithm)
		g.metrics.observe(algorithm, outcomeUnknown, 1)
		return errorTrace(algorithm, input, target, err)
	}

	t, fault := Materialize(algorithm, p, input, target)
	if fault != nil {
		g.logger.Error("producer fault", "algorithm", algorithm, "size", len(input), "error", fault)
		g.metrics.observe(algorithm, outcomeFault, t.Len())
		return t
	}

	g.logger.Debug("trace generated", "algorithm", algorithm, "size", len(input), "steps", t.Len())
	g.metrics.observe(algorithm, outcomeOK, t.Len())
	return t
}

var defaultGenerator = NewGenerator(nil)

// Generate runs algorithm on input with the built-in registry.
func Generate(algorithm string, input []float64, target *float64) *Trace {
	return defaultGenerator.Generate(algorithm, input, target)
}
