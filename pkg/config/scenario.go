package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/mountain-software-jp/trail-simulator/pkg/model"
)

// Scenario is a complete simulation setup loaded from a YAML file. It is
// validated as a whole before any simulation work starts; a malformed file
// aborts the run instead of being partially applied.
type Scenario struct {
	Runners             int     `yaml:"runners" validate:"gte=1"`
	AvgPaceMinPerKm     float64 `yaml:"avgPaceMinPerKm" validate:"gt=0"`
	StdDevPaceMinPerKm  float64 `yaml:"stdDevPaceMinPerKm" validate:"gte=0"`
	TimeLimitHours      float64 `yaml:"timeLimitHours" validate:"gt=0"`
	WaveGroups          int     `yaml:"waveGroups" validate:"gte=0"`
	WaveIntervalMinutes float64 `yaml:"waveIntervalMinutes" validate:"gte=0"`
	Seed                uint64  `yaml:"seed"`

	Cutoffs      []CutoffSpec `yaml:"cutoffs" validate:"dive"`
	SingleTracks SectionSet   `yaml:"singleTracks"`
}

type CutoffSpec struct {
	DistanceKm float64 `yaml:"distanceKm" validate:"gt=0"`
	TimeHours  float64 `yaml:"timeHours" validate:"gt=0"`
}

// SectionSet groups the three single-track specification styles. Any mix
// may be used; sections are applied in the order explicit, percentage,
// random.
type SectionSet struct {
	Explicit   []ExplicitSection   `yaml:"explicit" validate:"dive"`
	Percentage []PercentageSection `yaml:"percentage" validate:"dive"`
	Random     *RandomSection      `yaml:"random"`
}

type ExplicitSection struct {
	StartKm  float64 `yaml:"startKm" validate:"gte=0"`
	EndKm    float64 `yaml:"endKm" validate:"gtfield=StartKm"`
	Capacity int     `yaml:"capacity" validate:"gte=1"`
}

type PercentageSection struct {
	StartPercent float64 `yaml:"startPercent" validate:"gte=0,lte=100"`
	EndPercent   float64 `yaml:"endPercent" validate:"gtfield=StartPercent,lte=100"`
	Capacity     int     `yaml:"capacity" validate:"gte=1"`
}

type RandomSection struct {
	Percent  float64 `yaml:"percent" validate:"gt=0,lte=100"`
	Capacity int     `yaml:"capacity" validate:"gte=1"`
}

// DefaultScenario mirrors the documented parameter defaults.
func DefaultScenario() Scenario {
	return Scenario{
		Runners:            500,
		AvgPaceMinPerKm:    10.0,
		StdDevPaceMinPerKm: 1.5,
		TimeLimitHours:     24,
		WaveGroups:         1,
	}
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file %s: %w", path, err)
	}
	scenario := DefaultScenario()
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parsing scenario file %s: %w", path, err)
	}
	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("scenario file %s: %w", path, err)
	}
	return &scenario, nil
}

func (s *Scenario) Validate() error {
	return validator.New().Struct(s)
}

// SectionSpecs flattens the section set into the canonical spec list.
func (s *Scenario) SectionSpecs() []model.SectionSpec {
	specs := []model.SectionSpec{}
	for _, sec := range s.SingleTracks.Explicit {
		specs = append(specs, model.ExplicitSection(sec.StartKm, sec.EndKm, sec.Capacity))
	}
	for _, sec := range s.SingleTracks.Percentage {
		specs = append(specs,
			model.PercentageSection(sec.StartPercent, sec.EndPercent, sec.Capacity))
	}
	if sec := s.SingleTracks.Random; sec != nil {
		specs = append(specs, model.RandomSection(sec.Percent, sec.Capacity))
	}
	return specs
}

// CutoffList converts the cutoff specs to engine units.
func (s *Scenario) CutoffList() []model.Cutoff {
	cutoffs := make([]model.Cutoff, len(s.Cutoffs))
	for i, c := range s.Cutoffs {
		cutoffs[i] = model.NewCutoff(c.DistanceKm, c.TimeHours)
	}
	return cutoffs
}
