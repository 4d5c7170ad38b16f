package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/couchcryptid/rescuebot/internal/domain"
	"github.com/couchcryptid/rescuebot/internal/observability"
	"github.com/couchcryptid/rescuebot/internal/stats"
)

// ErrNoLocations marks a scenario that cannot be judged.
var ErrNoLocations = errors.New("scenario has no locations")

// Mode labels who judges scenarios.
type Mode string

const (
	ModeSimulation  Mode = "simulation"
	ModeInteractive Mode = "interactive"
)

// Judge picks the location to rescue in a scenario.
type Judge interface {
	Choose(ctx context.Context, s *domain.Scenario) (int, error)
}

// JudgeFunc adapts a function to Judge.
type JudgeFunc func(ctx context.Context, s *domain.Scenario) (int, error)

// Choose calls f.
func (f JudgeFunc) Choose(ctx context.Context, s *domain.Scenario) (int, error) { return f(ctx, s) }

// EngineJudge is the built-in decision engine.
var EngineJudge = JudgeFunc(func(_ context.Context, s *domain.Scenario) (int, error) {
	return domain.Decide(s), nil
})

// Recorder persists a judged scenario.
type Recorder interface {
	Record(s *domain.Scenario) error
}

// Options configures a Runner.
type Options struct {
	Mode     Mode
	Judge    Judge
	Session  *stats.Session
	Recorder Recorder // nil disables recording
	Out      io.Writer

	// ReportEvery prints a report after every n judged scenarios; zero only
	// prints the final report.
	ReportEvery int
	// Proceed is asked after each periodic report while scenarios remain.
	// Nil always continues.
	Proceed func(ctx context.Context) (bool, error)

	// Logger and Metrics default to a discarding logger and unregistered
	// collectors.
	Logger  *slog.Logger
	Metrics *observability.Metrics
}

// Runner drives scenarios through a judge into the statistics session.
type Runner struct {
	opts Options
}

// Summary describes a finished run.
type Summary struct {
	Judged   int
	Stopped  bool
	Started  time.Time
	Finished time.Time
}

// NewRunner creates a Runner.
func NewRunner(opts Options) *Runner {
	if opts.Session == nil {
		opts.Session = stats.NewSession()
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = observability.NewNop()
	}
	if opts.Metrics == nil {
		opts.Metrics = observability.NewMetricsForTesting()
	}
	return &Runner{opts: opts}
}

// Session returns the statistics session the runner feeds.
func (r *Runner) Session() *stats.Session { return r.opts.Session }

// Run judges each scenario in order, records it, and prints reports. It
// stops early when the context is cancelled, the judge fails, or Proceed
// declines.
func (r *Runner) Run(ctx context.Context, scenarios []*domain.Scenario) (sum Summary, err error) {
	sum.Started = clock.Now()
	defer func() {
		sum.Finished = clock.Now()
		r.opts.Metrics.RunDuration.Observe(sum.Finished.Sub(sum.Started).Seconds())
	}()

	r.opts.Logger.Info("run started", "mode", r.opts.Mode, "scenarios", len(scenarios))
	lastReport := -1

	for i, s := range scenarios {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		if len(s.Locations) == 0 {
			r.opts.Logger.Warn("skipping scenario", "index", i, "error", ErrNoLocations)
			continue
		}

		if err := r.judge(ctx, s); err != nil {
			return sum, err
		}
		sum.Judged++

		if r.opts.ReportEvery > 0 && sum.Judged%r.opts.ReportEvery == 0 {
			if err := r.opts.Session.Render(r.opts.Out, sum.Judged); err != nil {
				return sum, err
			}
			lastReport = sum.Judged
			if i < len(scenarios)-1 && r.opts.Proceed != nil {
				ok, err := r.opts.Proceed(ctx)
				if err != nil {
					return sum, err
				}
				if !ok {
					sum.Stopped = true
					r.opts.Logger.Info("run stopped by operator", "judged", sum.Judged)
					return sum, nil
				}
			}
		}
	}

	if lastReport != sum.Judged {
		if err := r.opts.Session.Render(r.opts.Out, sum.Judged); err != nil {
			return sum, err
		}
	}
	r.opts.Logger.Info("run finished", "mode", r.opts.Mode, "judged", sum.Judged)
	return sum, nil
}

// judge asks the judge for a location, marks it saved, tallies the scenario
// and records it. A decision already present on s is replaced.
func (r *Runner) judge(ctx context.Context, s *domain.Scenario) error {
	for i := range s.Locations {
		s.Locations[i].Saved = false
	}
	idx, err := r.opts.Judge.Choose(ctx, s)
	if err != nil {
		return fmt.Errorf("judge scenario: %w", err)
	}
	if idx < 0 || idx >= len(s.Locations) {
		return fmt.Errorf("judge scenario: location %d out of range [0,%d)", idx, len(s.Locations))
	}
	s.Locations[idx].Saved = true

	r.opts.Session.ObserveScenario(s)
	r.opts.Metrics.ScenariosJudged.WithLabelValues(string(r.opts.Mode)).Inc()
	r.opts.Metrics.ResidentsSaved.Add(float64(len(s.Locations[idx].Residents)))
	r.opts.Logger.Debug("scenario judged",
		"disaster", s.Disaster,
		"saved", idx+1,
		"locations", len(s.Locations),
	)

	if r.opts.Recorder != nil {
		if err := r.opts.Recorder.Record(s); err != nil {
			return fmt.Errorf("record scenario: %w", err)
		}
	}
	return nil
}
