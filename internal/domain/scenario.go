package domain

import (
	"fmt"
	"strings"
)

// Scenario is one disaster with the candidate rescue locations.
type Scenario struct {
	Disaster  Disaster
	Locations []Location
	// Simulated marks scenarios read back from a simulation log.
	Simulated bool
}

// Location is a site with coordinates, a legality status and its residents.
type Location struct {
	Latitude      float64
	LatHemisphere Hemisphere
	Longitude     float64
	LonHemisphere Hemisphere
	Trespassing   bool
	Saved         bool
	Residents     []Resident
}

// Status returns "trespassing" or "legal".
func (l Location) Status() string {
	if l.Trespassing {
		return StatusTrespassing
	}
	return StatusLegal
}

// ResidentKind tags which variant a Resident holds.
type ResidentKind int

const (
	KindHuman ResidentKind = iota + 1
	KindAnimal
)

func (k ResidentKind) String() string {
	switch k {
	case KindHuman:
		return "human"
	case KindAnimal:
		return "animal"
	default:
		return "unknown"
	}
}

// Resident is a human or an animal at a location. Human and Animal hold the
// variant payload; only the one matching Kind is meaningful.
type Resident struct {
	Kind     ResidentKind
	Gender   Gender
	Age      int
	BodyType BodyType
	// Trespassing is only set on animals, copied from the location when the
	// scenario is assembled.
	Trespassing bool

	Human  HumanTraits
	Animal AnimalTraits
}

// HumanTraits holds the human-only fields.
type HumanTraits struct {
	Profession Profession
	Pregnant   bool
}

// AnimalTraits holds the animal-only fields.
type AnimalTraits struct {
	Species string
	Pet     bool
}

// IsHuman reports whether r is the human variant.
func (r Resident) IsHuman() bool { return r.Kind == KindHuman }

// AgeCategory buckets a human age: baby, child, adult or senior.
func AgeCategory(age int) string {
	switch {
	case age <= 4:
		return "baby"
	case age <= 16:
		return "child"
	case age <= MaxWorkingAge:
		return "adult"
	default:
		return "senior"
	}
}

// Description renders the resident for display, e.g.
// "athletic adult doctor female pregnant" or "female cat is pet".
func (r Resident) Description() string {
	parts := make([]string, 0, 6)
	if r.IsHuman() {
		parts = append(parts, string(r.BodyType), AgeCategory(r.Age))
		if r.Human.Profession != ProfessionNone {
			parts = append(parts, string(r.Human.Profession))
		}
		parts = append(parts, string(r.Gender))
		if r.Human.Pregnant {
			parts = append(parts, "pregnant")
		}
		return strings.Join(parts, " ")
	}
	parts = append(parts, string(r.Gender), r.Animal.Species)
	if r.Animal.Pet {
		parts = append(parts, "is pet")
	}
	return strings.Join(parts, " ")
}

// Describe renders a location block as shown to the operator.
func (l Location) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Location: %g %s, %g %s\n", l.Latitude, l.LatHemisphere, l.Longitude, l.LonHemisphere)
	trespassing := "no"
	if l.Trespassing {
		trespassing = "yes"
	}
	fmt.Fprintf(&b, "Trespassing: %s\n", trespassing)
	fmt.Fprintf(&b, "%d Characters:\n", len(l.Residents))
	for _, r := range l.Residents {
		fmt.Fprintf(&b, "- %s\n", r.Description())
	}
	return b.String()
}

// Describe renders the whole scenario with 1-based location numbers.
func (s *Scenario) Describe() string {
	var b strings.Builder
	b.WriteString("======================================\n")
	fmt.Fprintf(&b, "# Scenario: %s\n", s.Disaster)
	b.WriteString("======================================\n")
	for i, l := range s.Locations {
		fmt.Fprintf(&b, "[%d] %s", i+1, l.Describe())
	}
	return b.String()
}

// SavedIndex returns the index of the saved location, or -1.
func (s *Scenario) SavedIndex() int {
	for i := range s.Locations {
		if s.Locations[i].Saved {
			return i
		}
	}
	return -1
}
