package pipeline

import (
	"log/slog"

	"github.com/couchcryptid/rescuebot/internal/domain"
	"github.com/couchcryptid/rescuebot/internal/observability"
)

// Assembler builds the scenario tree from parsed records in file order.
// Residents attach to the most recent location, locations to the most recent
// scenario. Records without an enclosing parent are dropped.
type Assembler struct {
	logger  *slog.Logger
	metrics *observability.Metrics

	scenarios []*domain.Scenario
	current   *domain.Scenario
	// location indexes current.Locations; -1 when no location is open.
	location int
}

// NewAssembler creates an empty assembler.
func NewAssembler(logger *slog.Logger, metrics *observability.Metrics) *Assembler {
	return &Assembler{logger: logger, metrics: metrics, location: -1}
}

// Add parses one line and attaches the resulting record.
func (a *Assembler) Add(line string, lineNumber int) {
	rec, warnings := domain.ParseLine(line, lineNumber)
	for _, w := range warnings {
		a.reportWarning(w)
	}
	a.Attach(rec)
}

// Attach places an already parsed record into the tree.
func (a *Assembler) Attach(rec domain.Record) {
	a.metrics.RecordsParsed.WithLabelValues(rec.Kind.String()).Inc()

	switch rec.Kind {
	case domain.RecordScenario:
		a.current = rec.Scenario
		a.location = -1
		a.scenarios = append(a.scenarios, rec.Scenario)

	case domain.RecordLocation:
		if a.current == nil {
			a.drop(rec, "location before any scenario")
			return
		}
		loc := *rec.Location
		if loc.Saved && a.current.SavedIndex() >= 0 {
			// A scenario has at most one rescued location; the first one wins.
			a.reportWarning(domain.Warning{
				Line:  rec.Line,
				Kind:  domain.WarnCharacteristic,
				Field: "saved",
				Value: "true",
			})
			loc.Saved = false
		}
		a.current.Locations = append(a.current.Locations, loc)
		a.location = len(a.current.Locations) - 1

	case domain.RecordResident:
		if a.current == nil || a.location < 0 {
			a.drop(rec, "resident before any location")
			return
		}
		loc := &a.current.Locations[a.location]
		r := *rec.Resident
		if loc.Trespassing && r.Kind == domain.KindAnimal {
			r.Trespassing = true
		}
		loc.Residents = append(loc.Residents, r)
	}
}

// Scenarios returns the scenarios assembled so far.
func (a *Assembler) Scenarios() []*domain.Scenario {
	return a.scenarios
}

func (a *Assembler) drop(rec domain.Record, reason string) {
	a.metrics.RecordsDropped.Inc()
	a.logger.Debug("record dropped", "line", rec.Line, "record", rec.Kind.String(), "reason", reason)
}

func (a *Assembler) reportWarning(w domain.Warning) {
	a.metrics.ParseWarnings.WithLabelValues(string(w.Kind)).Inc()

	attrs := []any{"line", w.Line, "field", w.Field, "value", w.Value}
	switch w.Kind {
	case domain.WarnFormat:
		a.logger.Warn("invalid data format", attrs...)
	case domain.WarnNumber:
		a.logger.Warn("invalid number format", attrs...)
	default:
		a.logger.Debug("invalid characteristic, using default", attrs...)
	}
}
