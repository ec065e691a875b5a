package config

import (
	"math/rand"
	"sort"
)

const (
	PresetRandom       = "random"
	PresetSorted       = "sorted"
	PresetReversed     = "reversed"
	PresetNearlySorted = "nearly-sorted"
	PresetFewUnique    = "few-unique"
)

type Preset struct {
	Description string
	generate    func(n, maxValue int, rng *rand.Rand) []float64
}

var Presets = map[string]Preset{
	PresetRandom: {
		Description: "uniform values in 1..max",
		generate: func(n, maxValue int, rng *rand.Rand) []float64 {
			out := make([]float64, n)
			for i := range out {
				out[i] = float64(rng.Intn(maxValue) + 1)
			}
			return out
		},
	},
	PresetSorted: {
		Description: "ascending, evenly spaced",
		generate: func(n, maxValue int, _ *rand.Rand) []float64 {
			return ramp(n, maxValue)
		},
	},
	PresetReversed: {
		Description: "descending, evenly spaced",
		generate: func(n, maxValue int, _ *rand.Rand) []float64 {
			out := ramp(n, maxValue)
			for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
				out[i], out[j] = out[j], out[i]
			}
			return out
		},
	},
	PresetNearlySorted: {
		Description: "ascending with a few adjacent swaps",
		generate: func(n, maxValue int, rng *rand.Rand) []float64 {
			out := ramp(n, maxValue)
			if n < 2 {
				return out
			}
			swaps := max(1, n/10)
			for range swaps {
				i := rng.Intn(n - 1)
				out[i], out[i+1] = out[i+1], out[i]
			}
			return out
		},
	},
	PresetFewUnique: {
		Description: "four distinct values, shuffled",
		generate: func(n, maxValue int, rng *rand.Rand) []float64 {
			levels := []float64{
				float64(max(1, maxValue/4)),
				float64(max(1, maxValue/2)),
				float64(max(1, 3*maxValue/4)),
				float64(maxValue),
			}
			out := make([]float64, n)
			for i := range out {
				out[i] = levels[rng.Intn(len(levels))]
			}
			return out
		},
	},
}

// Generate builds n positive values shaped by the named preset. The same
// seed always yields the same values. Unknown presets fall back to random.
func Generate(preset string, n, maxValue int, seed int64) []float64 {
	if n <= 0 {
		return []float64{}
	}
	if maxValue <= 0 {
		maxValue = DefaultMaxValue
	}
	p, ok := Presets[preset]
	if !ok {
		p = Presets[PresetRandom]
	}
	return p.generate(n, maxValue, rand.New(rand.NewSource(seed)))
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ramp spreads n integers over 1..maxValue, never repeating when n <= maxValue.
func ramp(n, maxValue int) []float64 {
	out := make([]float64, n)
	for i := range out {
		v := (i + 1) * maxValue / n
		out[i] = float64(max(v, i+1))
	}
	return out
}
