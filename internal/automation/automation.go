package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/store"
	"github.com/san-kum/algoviz/internal/trace"
)

// Scenario is a scripted list of runs.
type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Runs        []ScenarioRun `yaml:"runs"`
}

// ScenarioRun is one (algorithm, input, target) to trace. Values wins over
// Preset when both are given.
type ScenarioRun struct {
	Algorithm string    `yaml:"algorithm"`
	Values    []float64 `yaml:"values"`
	Preset    string    `yaml:"preset"`
	Size      int       `yaml:"size"`
	MaxValue  int       `yaml:"max_value"`
	Seed      int64     `yaml:"seed"`
	Target    *float64  `yaml:"target"`
	SaveAs    string    `yaml:"save_as"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if len(scenario.Runs) == 0 {
		return nil, fmt.Errorf("scenario %s has no runs", path)
	}
	return &scenario, nil
}

func (r ScenarioRun) input() []float64 {
	if len(r.Values) > 0 {
		out := make([]float64, len(r.Values))
		copy(out, r.Values)
		return out
	}
	size := r.Size
	if size == 0 {
		size = config.DefaultSize
	}
	return config.Generate(r.Preset, size, r.MaxValue, r.Seed)
}

// RunScenario traces every run in order and returns one summary per run. It
// stops at the first unknown algorithm, failed save or cancelled context.
func RunScenario(ctx context.Context, scenario *Scenario, gen *trace.Generator, logger *slog.Logger) ([]trace.Summary, error) {
	results := make([]trace.Summary, 0, len(scenario.Runs))

	for i, run := range scenario.Runs {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		logger.Info("running scenario step", "step", i+1, "of", len(scenario.Runs), "algorithm", run.Algorithm)

		if _, err := gen.Registry().Get(run.Algorithm); err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		t := gen.Generate(run.Algorithm, run.input(), run.Target)
		if run.SaveAs != "" {
			if err := store.ExportJSON(run.SaveAs, t); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		results = append(results, trace.Summarize(t))
	}

	return results, nil
}

// SizeSweep traces one algorithm over growing input sizes.
type SizeSweep struct {
	Algorithm string
	Preset    string
	MinSize   int
	MaxSize   int
	NumSteps  int
	MaxValue  int
	Seed      int64
}

type SweepResult struct {
	Size        int
	Steps       int
	Comparisons int
	Writes      int
}

func RunSweep(ctx context.Context, sweep *SizeSweep, gen *trace.Generator) ([]SweepResult, error) {
	if _, err := gen.Registry().Get(sweep.Algorithm); err != nil {
		return nil, err
	}
	if sweep.NumSteps < 1 || sweep.MinSize < 0 || sweep.MaxSize < sweep.MinSize {
		return nil, fmt.Errorf("invalid sweep %d..%d in %d steps", sweep.MinSize, sweep.MaxSize, sweep.NumSteps)
	}

	sizes := make([]int, sweep.NumSteps)
	jobs := make([]trace.Job, sweep.NumSteps)
	for i := range jobs {
		size := sweep.MinSize
		if sweep.NumSteps > 1 {
			size += i * (sweep.MaxSize - sweep.MinSize) / (sweep.NumSteps - 1)
		}
		input := config.Generate(sweep.Preset, size, sweep.MaxValue, sweep.Seed)
		var target *float64
		if len(input) > 0 {
			target = &input[len(input)/2]
		}
		sizes[i] = size
		jobs[i] = trace.Job{Algorithm: sweep.Algorithm, Input: input, Target: target}
	}

	traces, err := gen.GenerateAll(ctx, jobs)
	if err != nil {
		return nil, err
	}

	results := make([]SweepResult, len(traces))
	for i, t := range traces {
		s := trace.Summarize(t)
		results[i] = SweepResult{
			Size:        sizes[i],
			Steps:       s.Steps,
			Comparisons: s.Comparisons,
			Writes:      s.Writes,
		}
	}
	return results, nil
}
