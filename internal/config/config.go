// Package config loads and saves reaction network descriptions. The
// scheme is given numerically (signed stoichiometric coefficients per
// reaction), as a parser collaborator would hand it over — no reaction
// string syntax here.
package config

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/kinsim/internal/kinetics"
)

const (
	DefaultMethod  = "rosenbrock23"
	DefaultSamples = 200
)

// Reaction is one column of the stoichiometric matrix.
type Reaction struct {
	Name            string    `yaml:"name,omitempty"`
	Coefficients    []float64 `yaml:"coefficients"` // one signed entry per species
	HalfEquilibrium bool      `yaml:"half_equilibrium,omitempty"`
	K               float64   `yaml:"k"`
}

type Config struct {
	Species           []string   `yaml:"species"`
	Reactions         []Reaction `yaml:"reactions"`
	Y0                []float64  `yaml:"y0"`
	TSpan             []float64  `yaml:"t_span,omitempty"` // empty means auto-estimate
	Method            string     `yaml:"method"`
	EquilibriumFactor float64    `yaml:"equilibrium_factor,omitempty"`
	Samples           int        `yaml:"samples"`
}

func DefaultConfig() *Config {
	return &Config{
		Method:  DefaultMethod,
		Samples: DefaultSamples,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Scheme assembles the kinetics scheme and rate constant vector from
// the config.
func (c *Config) Scheme() (*kinetics.Scheme, []float64, error) {
	nSpecies := len(c.Species)
	nReactions := len(c.Reactions)
	if nSpecies == 0 || nReactions == 0 {
		return nil, nil, fmt.Errorf("config: need at least one species and one reaction")
	}

	a := mat.NewDense(nSpecies, nReactions, nil)
	flags := make([]bool, nReactions)
	k := make([]float64, nReactions)
	for j, rx := range c.Reactions {
		if len(rx.Coefficients) != nSpecies {
			return nil, nil, fmt.Errorf("config: reaction %d has %d coefficients for %d species",
				j, len(rx.Coefficients), nSpecies)
		}
		for i, coeff := range rx.Coefficients {
			a.Set(i, j, coeff)
		}
		flags[j] = rx.HalfEquilibrium
		k[j] = rx.K
	}

	scheme, err := kinetics.NewScheme(c.Species, a, flags)
	if err != nil {
		return nil, nil, err
	}
	return scheme, k, nil
}

// Span returns the explicit integration window, or nil for
// auto-estimation.
func (c *Config) Span() (*[2]float64, error) {
	switch len(c.TSpan) {
	case 0:
		return nil, nil
	case 2:
		return &[2]float64{c.TSpan[0], c.TSpan[1]}, nil
	default:
		return nil, fmt.Errorf("config: t_span needs exactly two entries, got %d", len(c.TSpan))
	}
}
