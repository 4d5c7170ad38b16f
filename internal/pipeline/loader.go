package pipeline

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/couchcryptid/rescuebot/internal/domain"
	"github.com/couchcryptid/rescuebot/internal/observability"
)

// ErrScenariosNotFound is returned when the scenario file does not exist.
var ErrScenariosNotFound = errors.New("could not find scenarios file")

// Loader reads scenario files into assembled scenarios.
type Loader struct {
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewLoader creates a Loader.
func NewLoader(logger *slog.Logger, metrics *observability.Metrics) *Loader {
	return &Loader{logger: logger, metrics: metrics}
}

// LoadScenarios reads the file at path. A missing file is the only error; any
// other I/O failure is logged and the scenarios read up to that point are
// returned.
func (l *Loader) LoadScenarios(path string) ([]*domain.Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrScenariosNotFound, path)
		}
		l.logger.Error("open scenarios file failed", "path", path, "error", err)
		return nil, nil
	}
	defer f.Close()

	return l.Load(f), nil
}

// Load reads records from r. The first line is a header and is skipped.
func (l *Loader) Load(r io.Reader) []*domain.Scenario {
	asm := NewAssembler(l.logger, l.metrics)

	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if lineNumber == 1 || strings.TrimSpace(line) == "" {
			continue
		}
		asm.Add(line, lineNumber)
	}
	if err := scanner.Err(); err != nil {
		l.logger.Error("read scenarios failed, keeping partial results",
			"error", err,
			"line", lineNumber,
			"scenarios", len(asm.Scenarios()),
		)
	}

	scenarios := asm.Scenarios()
	l.logger.Debug("scenarios loaded", "scenarios", len(scenarios), "lines", lineNumber)
	return scenarios
}
