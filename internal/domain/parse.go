package domain

import (
	"strconv"
	"strings"
)

// FieldCount is the number of comma-separated fields every record carries.
const FieldCount = 8

const (
	scenarioPrefix = "scenario:"
	locationPrefix = "location:"

	simulationMarker = "Simulation"
	savedMarker      = "true"
)

// WarningKind classifies a substitution made while parsing.
type WarningKind string

const (
	// WarnFormat: wrong field or sub-field count.
	WarnFormat WarningKind = "format"
	// WarnNumber: a numeric field could not be parsed.
	WarnNumber WarningKind = "number"
	// WarnCharacteristic: a value outside its closed set or range.
	WarnCharacteristic WarningKind = "characteristic"
)

// Warning records one default substitution. Warnings never stop a line from
// being parsed.
type Warning struct {
	Line  int
	Kind  WarningKind
	Field string
	Value string
}

// RecordKind tags the variant carried by a Record.
type RecordKind int

const (
	RecordScenario RecordKind = iota + 1
	RecordLocation
	RecordResident
)

func (k RecordKind) String() string {
	switch k {
	case RecordScenario:
		return "scenario"
	case RecordLocation:
		return "location"
	case RecordResident:
		return "resident"
	default:
		return "unknown"
	}
}

// Record is the typed result of parsing one line. Exactly one of Scenario,
// Location or Resident is set, matching Kind.
type Record struct {
	Kind     RecordKind
	Line     int
	Scenario *Scenario
	Location *Location
	Resident *Resident
}

// lineParser accumulates warnings for a single line.
type lineParser struct {
	line     int
	warnings []Warning
}

func (p *lineParser) warn(kind WarningKind, field, value string) {
	p.warnings = append(p.warnings, Warning{Line: p.line, Kind: kind, Field: field, Value: value})
}

// ParseLine converts one input line into a scenario header, a location header
// or a resident. Malformed input degrades to documented defaults, each
// substitution reported as a Warning; ParseLine never fails.
func ParseLine(line string, lineNumber int) (Record, []Warning) {
	p := &lineParser{line: lineNumber}

	fields := strings.Split(line, ",")
	if len(fields) != FieldCount {
		p.warn(WarnFormat, "fields", strconv.Itoa(len(fields)))
	}
	// Short lines read as empty trailing fields.
	for len(fields) < FieldCount {
		fields = append(fields, "")
	}

	rec := Record{Line: lineNumber}
	switch head := fields[0]; {
	case strings.HasPrefix(head, scenarioPrefix):
		rec.Kind = RecordScenario
		rec.Scenario = p.scenario(fields)
	case strings.HasPrefix(head, locationPrefix):
		rec.Kind = RecordLocation
		rec.Location = p.location(fields)
	default:
		rec.Kind = RecordResident
		rec.Resident = p.resident(fields)
	}
	return rec, p.warnings
}

func (p *lineParser) scenario(fields []string) *Scenario {
	name := fields[0][len(scenarioPrefix):]
	disaster, ok := ParseDisaster(name)
	if !ok {
		p.warn(WarnCharacteristic, "disaster", name)
		disaster = DefaultDisaster
	}
	return &Scenario{
		Disaster:  disaster,
		Simulated: strings.TrimSpace(fields[1]) == simulationMarker,
	}
}

// location parses "location:<lat> <NS>;<lon> <EW>;<status>".
func (p *lineParser) location(fields []string) *Location {
	parts := strings.Split(fields[0][len(locationPrefix):], ";")
	if len(parts) != 3 {
		p.warn(WarnFormat, "location", fields[0])
	}
	for len(parts) < 3 {
		parts = append(parts, "")
	}

	lat, latHemi := p.coordinate("latitude", parts[0], DefaultLatitude, 90, North, South, DefaultLatHemi)
	lon, lonHemi := p.coordinate("longitude", parts[1], DefaultLongitude, 180, East, West, DefaultLonHemi)

	status := strings.TrimSpace(parts[2])
	trespassing := true
	switch {
	case strings.EqualFold(status, StatusLegal):
		trespassing = false
	case strings.EqualFold(status, StatusTrespassing):
	default:
		p.warn(WarnCharacteristic, "status", status)
	}

	return &Location{
		Latitude:      lat,
		LatHemisphere: latHemi,
		Longitude:     lon,
		LonHemisphere: lonHemi,
		Trespassing:   trespassing,
		Saved:         strings.TrimSpace(fields[1]) == savedMarker,
	}
}

// coordinate parses "<magnitude> <hemisphere>". The magnitude must lie in
// [0, limit] and the hemisphere must be one of a or b.
func (p *lineParser) coordinate(field, raw string, def, limit float64, a, b, defHemi Hemisphere) (float64, Hemisphere) {
	tokens := strings.Fields(raw)
	var magText, hemiText string
	if len(tokens) > 0 {
		magText = tokens[0]
	}
	if len(tokens) > 1 {
		hemiText = tokens[1]
	}

	mag, err := strconv.ParseFloat(magText, 64)
	switch {
	case err != nil:
		p.warn(WarnNumber, field, magText)
		mag = def
	case mag < 0 || mag > limit:
		p.warn(WarnCharacteristic, field, magText)
		mag = def
	}

	hemi := defHemi
	if len(hemiText) > 0 && (Hemisphere(hemiText[0]) == a || Hemisphere(hemiText[0]) == b) {
		hemi = Hemisphere(hemiText[0])
	} else {
		p.warn(WarnCharacteristic, field+"_direction", hemiText)
	}
	return mag, hemi
}

func (p *lineParser) resident(fields []string) *Resident {
	r := &Resident{
		Gender:   p.gender(fields[1]),
		Age:      p.age(fields[2]),
		BodyType: p.bodyType(fields[3]),
	}

	kind := strings.TrimSpace(fields[0])
	switch {
	case strings.EqualFold(kind, KindHuman.String()):
		r.Kind = KindHuman
		r.Human = p.humanTraits(r, fields[4], fields[5])
	case strings.EqualFold(kind, KindAnimal.String()):
		r.Kind = KindAnimal
		r.Animal = animalTraits(fields[6], fields[7])
	default:
		// Anything that is not a human is read as an animal.
		p.warn(WarnCharacteristic, "resident", kind)
		r.Kind = KindAnimal
		r.Animal = animalTraits(fields[6], fields[7])
	}
	return r
}

func (p *lineParser) gender(raw string) Gender {
	g, ok := ParseGender(raw)
	if !ok {
		p.warn(WarnCharacteristic, "gender", raw)
		return DefaultGender
	}
	return g
}

func (p *lineParser) age(raw string) int {
	age, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		p.warn(WarnNumber, "age", raw)
		return DefaultAge
	}
	if age < 0 {
		p.warn(WarnCharacteristic, "age", raw)
		return DefaultAge
	}
	return age
}

func (p *lineParser) bodyType(raw string) BodyType {
	b, ok := ParseBodyType(raw)
	if !ok {
		p.warn(WarnCharacteristic, "body_type", raw)
		return DefaultBodyType
	}
	return b
}

func (p *lineParser) humanTraits(r *Resident, profession, pregnant string) HumanTraits {
	prof, ok := ParseProfession(profession)
	if !ok {
		p.warn(WarnCharacteristic, "profession", profession)
		prof = DefaultProfession
	}
	if prof != ProfessionNone && (r.Age < MinWorkingAge || r.Age > MaxWorkingAge) {
		p.warn(WarnCharacteristic, "profession", profession)
		prof = ProfessionNone
	}

	isPregnant := parseBool(pregnant)
	if isPregnant && r.Gender == GenderMale {
		p.warn(WarnCharacteristic, "pregnant", pregnant)
		isPregnant = false
	}
	return HumanTraits{Profession: prof, Pregnant: isPregnant}
}

func animalTraits(species, pet string) AnimalTraits {
	species = strings.ToLower(strings.TrimSpace(species))
	if species == "" {
		species = SpeciesUnspecified
	}
	return AnimalTraits{Species: species, Pet: parseBool(pet)}
}

// parseBool is true only for a case-insensitive "true"; everything else,
// including empty input, is false.
func parseBool(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}
