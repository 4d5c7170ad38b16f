package logfile

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/rescuebot/internal/domain"
)

// Header is written as the first line of a new log. The loader skips it.
const Header = "scenario:disaster,gender,age,bodyType,profession,pregnant,species,isPet"

// Writer appends judged scenarios to a rescue log in the scenario file
// format, so logs can be read back by the same parser.
// It implements pipeline.Recorder.
type Writer struct {
	path      string
	simulated bool
}

// NewWriter creates a writer for the log at path. When simulated is set,
// every scenario is written with the Simulation marker.
func NewWriter(path string, simulated bool) *Writer {
	return &Writer{path: path, simulated: simulated}
}

// Path returns the log file path.
func (w *Writer) Path() string { return w.path }

// Record appends one scenario, writing the header first if the log is empty.
func (w *Writer) Record(s *domain.Scenario) error {
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat log: %w", err)
	}

	var b strings.Builder
	if info.Size() == 0 {
		b.WriteString(Header + "\n")
	}
	scenario := *s
	scenario.Simulated = s.Simulated || w.simulated
	writeScenario(&b, &scenario)

	if _, err := io.WriteString(f, b.String()); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// Encode renders scenarios with a header, as a new log file would hold them.
func Encode(w io.Writer, scenarios []*domain.Scenario) error {
	var b strings.Builder
	b.WriteString(Header + "\n")
	for _, s := range scenarios {
		writeScenario(&b, s)
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("encode scenarios: %w", err)
	}
	return nil
}

func writeScenario(b *strings.Builder, s *domain.Scenario) {
	marker := ""
	if s.Simulated {
		marker = "Simulation"
	}
	writeRecord(b, "scenario:"+string(s.Disaster), marker)

	for _, l := range s.Locations {
		saved := ""
		if l.Saved {
			saved = "true"
		}
		head := fmt.Sprintf("location:%s %s;%s %s;%s",
			formatCoord(l.Latitude), l.LatHemisphere,
			formatCoord(l.Longitude), l.LonHemisphere,
			l.Status(),
		)
		writeRecord(b, head, saved)

		for _, r := range l.Residents {
			writeResident(b, r)
		}
	}
}

func writeResident(b *strings.Builder, r domain.Resident) {
	age := strconv.Itoa(r.Age)
	if r.IsHuman() {
		writeRecord(b, "human", string(r.Gender), age, string(r.BodyType),
			string(r.Human.Profession), strconv.FormatBool(r.Human.Pregnant))
		return
	}
	writeRecord(b, "animal", string(r.Gender), age, string(r.BodyType),
		"", "", r.Animal.Species, strconv.FormatBool(r.Animal.Pet))
}

// writeRecord writes fields padded to the fixed record width.
func writeRecord(b *strings.Builder, fields ...string) {
	for i := range domain.FieldCount {
		if i > 0 {
			b.WriteByte(',')
		}
		if i < len(fields) {
			b.WriteString(fields[i])
		}
	}
	b.WriteByte('\n')
}

// formatCoord uses the shortest representation that parses back exactly.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
