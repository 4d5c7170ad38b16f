// Package yamlexport dumps assembled scenarios as YAML for inspection.
package yamlexport

import (
	"fmt"
	"io"

	"github.com/couchcryptid/rescuebot/internal/domain"
	"gopkg.in/yaml.v3"
)

type scenarioDoc struct {
	Disaster  string        `yaml:"disaster"`
	Simulated bool          `yaml:"simulated,omitempty"`
	Locations []locationDoc `yaml:"locations"`
}

type locationDoc struct {
	Latitude  string        `yaml:"latitude"`
	Longitude string        `yaml:"longitude"`
	Status    string        `yaml:"status"`
	Saved     bool          `yaml:"saved,omitempty"`
	Score     float64       `yaml:"score"`
	Residents []residentDoc `yaml:"residents"`
}

type residentDoc struct {
	Kind        string `yaml:"kind"`
	Gender      string `yaml:"gender"`
	Age         int    `yaml:"age"`
	AgeCategory string `yaml:"age_category,omitempty"`
	BodyType    string `yaml:"body_type"`
	Profession  string `yaml:"profession,omitempty"`
	Pregnant    bool   `yaml:"pregnant,omitempty"`
	Species     string `yaml:"species,omitempty"`
	Pet         bool   `yaml:"pet,omitempty"`
	Trespassing bool   `yaml:"trespassing,omitempty"`
}

// Write encodes scenarios as a YAML sequence, annotating each location with
// its decision-engine score.
func Write(w io.Writer, scenarios []*domain.Scenario) error {
	docs := make([]scenarioDoc, 0, len(scenarios))
	for _, s := range scenarios {
		docs = append(docs, toDoc(s))
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(docs); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return nil
}

func toDoc(s *domain.Scenario) scenarioDoc {
	doc := scenarioDoc{
		Disaster:  string(s.Disaster),
		Simulated: s.Simulated,
		Locations: make([]locationDoc, 0, len(s.Locations)),
	}
	for _, l := range s.Locations {
		ld := locationDoc{
			Latitude:  fmt.Sprintf("%g %s", l.Latitude, l.LatHemisphere),
			Longitude: fmt.Sprintf("%g %s", l.Longitude, l.LonHemisphere),
			Status:    l.Status(),
			Saved:     l.Saved,
			Score:     domain.Score(l),
			Residents: make([]residentDoc, 0, len(l.Residents)),
		}
		for _, r := range l.Residents {
			ld.Residents = append(ld.Residents, toResidentDoc(r))
		}
		doc.Locations = append(doc.Locations, ld)
	}
	return doc
}

func toResidentDoc(r domain.Resident) residentDoc {
	rd := residentDoc{
		Kind:        r.Kind.String(),
		Gender:      string(r.Gender),
		Age:         r.Age,
		BodyType:    string(r.BodyType),
		Trespassing: r.Trespassing,
	}
	if r.IsHuman() {
		rd.AgeCategory = domain.AgeCategory(r.Age)
		rd.Profession = string(r.Human.Profession)
		rd.Pregnant = r.Human.Pregnant
	} else {
		rd.Species = r.Animal.Species
		rd.Pet = r.Animal.Pet
	}
	return rd
}
