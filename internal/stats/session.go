// Package stats tallies, per attribute, how many residents were seen and how
// many were saved across the scenarios of one run.
package stats

import (
	"github.com/couchcryptid/rescuebot/internal/domain"
)

// Attribute keys that are not taken from a resident's own values.
const (
	KeyPregnant = "pregnant"
	KeyPet      = "pet"
)

// Tally counts residents carrying one attribute key.
type Tally struct {
	Seen  int
	Saved int
}

// Session holds the tallies and rescued-human ages of one run. A session is
// not safe for concurrent use.
type Session struct {
	tallies   map[string]*Tally
	savedAges []int
}

// NewSession starts an empty session.
func NewSession() *Session {
	return &Session{tallies: make(map[string]*Tally)}
}

// Reset clears every tally and saved age.
func (s *Session) Reset() {
	s.tallies = make(map[string]*Tally)
	s.savedAges = nil
}

// Tally returns the counts for key.
func (s *Session) Tally(key string) Tally {
	if t, ok := s.tallies[key]; ok {
		return *t
	}
	return Tally{}
}

// Len returns the number of distinct attribute keys seen.
func (s *Session) Len() int { return len(s.tallies) }

// RecordObservation counts r as seen at loc and, when saved, as saved too.
// Both counters move in the same call so a saved count never exceeds its
// seen count.
func (s *Session) RecordObservation(loc domain.Location, r domain.Resident, saved bool) {
	for _, key := range Keys(loc, r) {
		t, ok := s.tallies[key]
		if !ok {
			t = &Tally{}
			s.tallies[key] = t
		}
		t.Seen++
		if saved {
			t.Saved++
		}
	}
	if saved && r.IsHuman() {
		s.savedAges = append(s.savedAges, r.Age)
	}
}

// ObserveScenario records every resident of s, using each location's Saved
// flag to decide which residents were rescued.
func (s *Session) ObserveScenario(sc *domain.Scenario) {
	for _, loc := range sc.Locations {
		for _, r := range loc.Residents {
			s.RecordObservation(loc, r, loc.Saved)
		}
	}
}

// Keys lists the attribute keys a resident at loc contributes.
func Keys(loc domain.Location, r domain.Resident) []string {
	keys := make([]string, 0, 7)

	trespassing := loc.Trespassing
	if !r.IsHuman() {
		trespassing = r.Trespassing
	}
	if trespassing {
		keys = append(keys, domain.StatusTrespassing)
	} else {
		keys = append(keys, domain.StatusLegal)
	}

	keys = append(keys, r.Kind.String())

	switch r.Kind {
	case domain.KindHuman:
		keys = append(keys, domain.AgeCategory(r.Age), string(r.Gender), string(r.BodyType))
		if r.Human.Profession != domain.ProfessionNone {
			keys = append(keys, string(r.Human.Profession))
		}
		if r.Human.Pregnant {
			keys = append(keys, KeyPregnant)
		}
	case domain.KindAnimal:
		keys = append(keys, r.Animal.Species)
		if r.Animal.Pet {
			keys = append(keys, KeyPet)
		}
	}
	return keys
}
