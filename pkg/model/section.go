package model

import "fmt"

// SectionKind selects one of the three equivalent single-track
// specification styles.
type SectionKind int

const (
	// SectionExplicit is a (startKm, endKm, capacity) range.
	SectionExplicit SectionKind = iota
	// SectionPercentage is a (startPercent, endPercent, capacity) range
	// relative to the course length.
	SectionPercentage
	// SectionRandom places randomly chosen non-overlapping chunks covering
	// TotalPercent of the course at the given capacity.
	SectionRandom
)

// SectionSpec describes a single-track section in one of three styles.
// All styles resolve to CapacityRange values before the simulation starts.
type SectionSpec struct {
	Kind SectionKind

	StartKm float64
	EndKm   float64

	StartPercent float64
	EndPercent   float64

	TotalPercent float64

	Capacity int
}

func ExplicitSection(startKm, endKm float64, capacity int) SectionSpec {
	return SectionSpec{
		Kind: SectionExplicit, StartKm: startKm, EndKm: endKm, Capacity: capacity,
	}
}

func PercentageSection(startPercent, endPercent float64, capacity int) SectionSpec {
	return SectionSpec{
		Kind:         SectionPercentage,
		StartPercent: startPercent,
		EndPercent:   endPercent,
		Capacity:     capacity,
	}
}

func RandomSection(totalPercent float64, capacity int) SectionSpec {
	return SectionSpec{
		Kind: SectionRandom, TotalPercent: totalPercent, Capacity: capacity,
	}
}

// Validate checks the spec before resolution.
func (s SectionSpec) Validate() error {
	if s.Capacity < 1 {
		return fmt.Errorf("section capacity must be >= 1, got %d", s.Capacity)
	}
	switch s.Kind {
	case SectionExplicit:
		if s.EndKm <= s.StartKm || s.StartKm < 0 {
			return fmt.Errorf("invalid section range %.2f-%.2f km", s.StartKm, s.EndKm)
		}
	case SectionPercentage:
		if s.EndPercent <= s.StartPercent || s.StartPercent < 0 || s.EndPercent > 100 {
			return fmt.Errorf("invalid section range %.1f%%-%.1f%%",
				s.StartPercent, s.EndPercent)
		}
	case SectionRandom:
		if s.TotalPercent <= 0 || s.TotalPercent > 100 {
			return fmt.Errorf("invalid random section percentage %.1f", s.TotalPercent)
		}
	default:
		return fmt.Errorf("unknown section kind %d", s.Kind)
	}
	return nil
}

// CapacityRange is the canonical resolved form of a single-track section.
type CapacityRange struct {
	StartM   float64
	EndM     float64
	Capacity int
}
