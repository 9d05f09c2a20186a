package config

import "sort"

var Presets = map[string]map[string]*Config{
	"quadratic": {
		"sqrt2": {
			Model: "quadratic", Method: "doolittle", Epsilon: 1e-12, MaxSteps: 100, InitialGuess: 1,
			Params: map[string]float64{"a": 2},
		},
		"budget": {
			Model: "quadratic", Method: "doolittle", MaxSteps: 5, InitialGuess: 1,
			Params: map[string]float64{"a": 4},
		},
		"far": {
			Model: "quadratic", Method: "crout", Epsilon: 1e-10, MaxSteps: 200, InitialGuess: 1e6,
			Params: map[string]float64{"a": 4},
		},
	},
	"circle": {
		"unit": {
			Model: "circle", Method: "crout", Epsilon: 1e-12, MaxSteps: 100, InitialGuess: 0.5,
			Params: map[string]float64{"r": 1},
		},
	},
	"singular": {
		"doolittle": {
			Model: "singular", Method: "doolittle", Epsilon: 1e-10, MaxSteps: 50, InitialGuess: 1,
		},
		"crout": {
			Model: "singular", Method: "crout", Epsilon: 1e-10, MaxSteps: 50, InitialGuess: 1,
		},
	},
	"sagtension": {
		"hot": {
			Model: "sagtension", Method: "doolittle", Epsilon: 1e-8, MaxSteps: 100, InitialGuess: 28000,
			Params: map[string]float64{"h1": 28000, "t1": 15, "t2": 75},
		},
		"cold": {
			Model: "sagtension", Method: "doolittle", Epsilon: 1e-8, MaxSteps: 100, InitialGuess: 28000,
			Params: map[string]float64{"h1": 28000, "t1": 15, "t2": -10},
		},
		"iced": {
			Model: "sagtension", Method: "doolittle", Epsilon: 1e-8, MaxSteps: 100, InitialGuess: 28000,
			Params: map[string]float64{"h1": 28000, "t1": 15, "t2": 0, "weight": 35},
		},
	},
	"ruling": {
		"uneven": {
			Model: "ruling", Method: "crout", Epsilon: 1e-8, MaxSteps: 200, InitialGuess: 28000,
			Params: map[string]float64{"spans": 3, "span1": 200, "span2": 450, "span3": 250},
		},
		"long": {
			Model: "ruling", Method: "crout", Epsilon: 1e-8, MaxSteps: 200, InitialGuess: 28000,
			Params: map[string]float64{"spans": 12, "coupling": 1e-4},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
