package domain

import "strings"

// Disaster is the kind of event a scenario describes.
type Disaster string

const (
	DisasterCyclone    Disaster = "cyclone"
	DisasterFlood      Disaster = "flood"
	DisasterEarthquake Disaster = "earthquake"
	DisasterBushfire   Disaster = "bushfire"
	DisasterMeteorite  Disaster = "meteorite"
)

// Disasters lists every accepted disaster kind.
var Disasters = []Disaster{DisasterCyclone, DisasterFlood, DisasterEarthquake, DisasterBushfire, DisasterMeteorite}

// Gender of a resident.
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

// Genders lists every accepted gender.
var Genders = []Gender{GenderMale, GenderFemale, GenderUnknown}

// BodyType of a resident.
type BodyType string

const (
	BodyOverweight  BodyType = "overweight"
	BodyAverage     BodyType = "average"
	BodyAthletic    BodyType = "athletic"
	BodyUnspecified BodyType = "unspecified"
)

// BodyTypes lists every accepted body type.
var BodyTypes = []BodyType{BodyOverweight, BodyAverage, BodyAthletic, BodyUnspecified}

// Profession of a human resident. Only adults of working age carry one.
type Profession string

const (
	ProfessionDoctor     Profession = "doctor"
	ProfessionCEO        Profession = "ceo"
	ProfessionCriminal   Profession = "criminal"
	ProfessionHomeless   Profession = "homeless"
	ProfessionUnemployed Profession = "unemployed"
	ProfessionAthlete    Profession = "athletic"
	ProfessionStudent    Profession = "student"
	ProfessionProfessor  Profession = "professor"
	ProfessionNone       Profession = "none"
)

// Professions lists every accepted profession.
var Professions = []Profession{
	ProfessionDoctor, ProfessionCEO, ProfessionCriminal, ProfessionHomeless, ProfessionUnemployed,
	ProfessionAthlete, ProfessionStudent, ProfessionProfessor, ProfessionNone,
}

// Species names the generator draws from. The parser does not restrict
// animals to this list.
var Species = []string{"puppy", "cat", "koala", "wallaby", "snake", "lion", "dog", "dingo", "platypus"}

// SpeciesUnspecified replaces an empty species field.
const SpeciesUnspecified = "unspecified"

// Hemisphere letters for latitude (N/S) and longitude (E/W).
type Hemisphere byte

const (
	North Hemisphere = 'N'
	South Hemisphere = 'S'
	East  Hemisphere = 'E'
	West  Hemisphere = 'W'
)

func (h Hemisphere) String() string { return string(rune(h)) }

// Legality labels used for both location status and attribute keys.
const (
	StatusTrespassing = "trespassing"
	StatusLegal       = "legal"
)

// Defaults substituted for invalid input.
const (
	DefaultDisaster   = DisasterFlood
	DefaultGender     = GenderUnknown
	DefaultBodyType   = BodyUnspecified
	DefaultProfession = ProfessionNone
	DefaultAge        = 18
	DefaultLatitude   = 45.0
	DefaultLongitude  = 90.0
	DefaultLatHemi    = North
	DefaultLonHemi    = East
)

// Working-age bounds outside of which a profession is forced to none.
const (
	MinWorkingAge = 17
	MaxWorkingAge = 68
)

// lookup returns the member of set equal to s (case-insensitive, trimmed).
func lookup[T ~string](set []T, s string) (T, bool) {
	s = strings.TrimSpace(s)
	for _, v := range set {
		if strings.EqualFold(string(v), s) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// ParseDisaster validates a disaster name.
func ParseDisaster(s string) (Disaster, bool) { return lookup(Disasters, s) }

// ParseGender validates a gender token.
func ParseGender(s string) (Gender, bool) { return lookup(Genders, s) }

// ParseBodyType validates a body type token.
func ParseBodyType(s string) (BodyType, bool) { return lookup(BodyTypes, s) }

// ParseProfession validates a profession token.
func ParseProfession(s string) (Profession, bool) { return lookup(Professions, s) }
