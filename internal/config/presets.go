package config

// Presets are ready-to-run reaction networks for the CLI.
var Presets = map[string]*Config{
	"isomerization": {
		Species: []string{"A", "B"},
		Reactions: []Reaction{
			{Name: "A -> B", Coefficients: []float64{-1, 1}, K: 1},
			{Name: "B -> A", Coefficients: []float64{1, -1}, K: 1},
		},
		Y0:      []float64{1, 0},
		Method:  DefaultMethod,
		Samples: DefaultSamples,
	},
	"sequential": {
		Species: []string{"A", "B", "C"},
		Reactions: []Reaction{
			{Name: "A -> B", Coefficients: []float64{-1, 1, 0}, K: 1},
			{Name: "B -> C", Coefficients: []float64{0, -1, 1}, K: 0.5},
		},
		Y0:      []float64{1, 0, 0},
		Method:  DefaultMethod,
		Samples: DefaultSamples,
	},
	"fast-equilibrium": {
		Species: []string{"A", "B", "C"},
		Reactions: []Reaction{
			{Name: "A -> B", Coefficients: []float64{-1, 1, 0}, HalfEquilibrium: true, K: 1},
			{Name: "B -> A", Coefficients: []float64{1, -1, 0}, HalfEquilibrium: true, K: 1},
			{Name: "B -> C", Coefficients: []float64{0, -1, 1}, K: 0.2},
		},
		Y0:      []float64{1, 0, 0},
		Method:  DefaultMethod,
		Samples: DefaultSamples,
	},
	"dimerization": {
		Species: []string{"A", "A2"},
		Reactions: []Reaction{
			{Name: "2A -> A2", Coefficients: []float64{-2, 1}, K: 1},
		},
		Y0:      []float64{1, 0},
		Method:  DefaultMethod,
		Samples: DefaultSamples,
	},
}

// PresetNames lists the available presets in no particular order.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
