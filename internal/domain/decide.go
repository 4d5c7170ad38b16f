package domain

import "math"

// Scoring weights for the built-in decision engine.
const (
	humanScore       = 5.0
	pregnantBonus    = 1.0
	animalScore      = 1.0
	trespassingScale = 2.0 / 3
)

// Score rates a location: one point per resident, five more per human plus
// one if pregnant, one more per animal, and the total scaled by 2/3 when the
// location is trespassing.
func Score(l Location) float64 {
	score := float64(len(l.Residents))
	for _, r := range l.Residents {
		switch r.Kind {
		case KindHuman:
			score += humanScore
			if r.Human.Pregnant {
				score += pregnantBonus
			}
		case KindAnimal:
			score += animalScore
		}
	}
	if l.Trespassing {
		score *= trespassingScale
	}
	return score
}

// Decide picks the location to rescue and marks it saved. The first location
// with the strictly highest score wins. The scenario must have at least one
// location.
func Decide(s *Scenario) int {
	best := 0
	bestScore := math.Inf(-1)
	for i := range s.Locations {
		if score := Score(s.Locations[i]); score > bestScore {
			best, bestScore = i, score
		}
	}
	s.Locations[best].Saved = true
	return best
}
