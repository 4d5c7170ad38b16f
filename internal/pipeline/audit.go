package pipeline

import (
	"errors"
	"fmt"
	"io"

	"github.com/couchcryptid/rescuebot/internal/domain"
	"github.com/couchcryptid/rescuebot/internal/stats"
)

// Audit titles for decisions taken by the engine and by the operator.
const (
	AlgorithmAuditTitle = "Algorithm Audit"
	UserAuditTitle      = "User Audit"
)

// Audit replays rescue logs and writes one report per origin. Scenarios are
// split by their Simulation marker, so user and simulation decisions may
// share a log file. Missing logs are skipped.
func (l *Loader) Audit(w io.Writer, paths ...string) error {
	var simulated, judged []*domain.Scenario
	seen := make(map[string]bool, len(paths))
	for _, path := range paths {
		if path == "" || seen[path] {
			continue
		}
		seen[path] = true

		scenarios, err := l.LoadScenarios(path)
		if err != nil {
			if errors.Is(err, ErrScenariosNotFound) {
				l.logger.Debug("audit log missing", "path", path)
				continue
			}
			return err
		}
		for _, s := range scenarios {
			if s.Simulated {
				simulated = append(simulated, s)
			} else {
				judged = append(judged, s)
			}
		}
	}

	if len(simulated) == 0 && len(judged) == 0 {
		if _, err := io.WriteString(w, "No history found.\n"); err != nil {
			return fmt.Errorf("write audit: %w", err)
		}
		return nil
	}

	for _, group := range []struct {
		title     string
		scenarios []*domain.Scenario
	}{
		{AlgorithmAuditTitle, simulated},
		{UserAuditTitle, judged},
	} {
		if len(group.scenarios) == 0 {
			continue
		}
		if err := AuditReport(group.title, group.scenarios).Render(w); err != nil {
			return err
		}
	}
	return nil
}

// AuditReport tallies already judged scenarios into a fresh session.
func AuditReport(title string, scenarios []*domain.Scenario) stats.Report {
	session := stats.NewSession()
	for _, s := range scenarios {
		session.ObserveScenario(s)
	}
	rep := session.Report(len(scenarios))
	rep.Title = title
	return rep
}
