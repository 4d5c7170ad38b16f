// Package random generates uniformly random scenarios for simulation runs.
package random

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/couchcryptid/rescuebot/internal/domain"
)

// Generator draws scenarios from a seeded source.
type Generator struct {
	rng *rand.Rand
}

// New creates a generator. A zero seed uses the current time.
func New(seed uint64) *Generator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

var (
	genders   = []domain.Gender{domain.GenderMale, domain.GenderFemale}
	bodyTypes = []domain.BodyType{domain.BodyOverweight, domain.BodyAverage, domain.BodyAthletic}
	hemisLat  = [2]domain.Hemisphere{domain.North, domain.South}
	hemisLon  = [2]domain.Hemisphere{domain.East, domain.West}
)

func pick[T any](g *Generator, set []T) T {
	return set[g.rng.IntN(len(set))]
}

// Scenarios returns n scenarios; n <= 0 picks between 3 and 10.
func (g *Generator) Scenarios(n int) []*domain.Scenario {
	if n <= 0 {
		n = 3 + g.rng.IntN(8)
	}
	out := make([]*domain.Scenario, 0, n)
	for range n {
		out = append(out, g.Scenario())
	}
	return out
}

// Scenario returns one scenario with 2 to 5 locations.
func (g *Generator) Scenario() *domain.Scenario {
	s := &domain.Scenario{Disaster: pick(g, domain.Disasters)}
	for range 2 + g.rng.IntN(4) {
		s.Locations = append(s.Locations, g.Location())
	}
	return s
}

// Location returns a location with 1 to 7 residents.
func (g *Generator) Location() domain.Location {
	lat := g.rng.Float64()*180 - 90
	lon := g.rng.Float64()*360 - 180
	l := domain.Location{
		Latitude:      roundCoord(math.Abs(lat)),
		LatHemisphere: hemisLat[boolIndex(lat < 0)],
		Longitude:     roundCoord(math.Abs(lon)),
		LonHemisphere: hemisLon[boolIndex(lon < 0)],
		Trespassing:   g.rng.IntN(2) == 0,
	}
	for range 1 + g.rng.IntN(7) {
		r := g.Resident()
		if l.Trespassing && r.Kind == domain.KindAnimal {
			r.Trespassing = true
		}
		l.Residents = append(l.Residents, r)
	}
	return l
}

// Resident returns a human or an animal with equal probability.
func (g *Generator) Resident() domain.Resident {
	r := domain.Resident{
		Gender:   pick(g, genders),
		BodyType: pick(g, bodyTypes),
	}
	if g.rng.IntN(2) == 0 {
		r.Kind = domain.KindHuman
		r.Age = g.rng.IntN(100)
		r.Human.Profession = domain.ProfessionNone
		if r.Age >= domain.MinWorkingAge && r.Age <= domain.MaxWorkingAge {
			r.Human.Profession = pick(g, domain.Professions)
		}
		if r.Gender == domain.GenderFemale {
			r.Human.Pregnant = g.rng.IntN(2) == 0
		}
		return r
	}
	r.Kind = domain.KindAnimal
	r.Age = g.rng.IntN(15)
	r.Animal.Species = pick(g, domain.Species)
	r.Animal.Pet = g.rng.IntN(2) == 0
	return r
}

func boolIndex(b bool) int {
	if b {
		return 1
	}
	return 0
}

// roundCoord keeps four decimals, as scenario files do.
func roundCoord(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
