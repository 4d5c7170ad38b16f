package pipeline_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/couchcryptid/rescuebot/internal/domain"
	"github.com/couchcryptid/rescuebot/internal/observability"
	"github.com/couchcryptid/rescuebot/internal/pipeline"
	"github.com/couchcryptid/rescuebot/internal/stats"
	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFile = `scenario:disaster,gender,age,bodyType,profession,pregnant,species,isPet
scenario:flood,,,,,,,
location:13.7154 N;150.9094 W;trespassing,,,,,,,
human,female,30,athletic,doctor,true,,
animal,male,4,average,,,dog,true
location:40.5 S;20.25 E;legal,,,,,,,
human,male,abc,average,none,false,,
human,female,70,overweight,ceo,false,,
scenario:tsunami,,,,,,,
location:1 N;2 E;legal,,,,,,,
animal,female,2,average,,,cat,false
`

// --- helpers ---

func newLoader() (*pipeline.Loader, *observability.Metrics) {
	metrics := observability.NewMetricsForTesting()
	return pipeline.NewLoader(observability.NewNop(), metrics), metrics
}

func loadString(t *testing.T, data string) []*domain.Scenario {
	t.Helper()
	loader, _ := newLoader()
	return loader.Load(strings.NewReader(data))
}

type memoryRecorder struct {
	recorded []*domain.Scenario
	err      error
}

func (m *memoryRecorder) Record(s *domain.Scenario) error {
	if m.err != nil {
		return m.err
	}
	m.recorded = append(m.recorded, s)
	return nil
}

// --- assembler / loader ---

func TestLoad_BuildsTree(t *testing.T) {
	scenarios := loadString(t, sampleFile)
	require.Len(t, scenarios, 2)

	first := scenarios[0]
	assert.Equal(t, domain.DisasterFlood, first.Disaster)
	require.Len(t, first.Locations, 2)
	require.Len(t, first.Locations[0].Residents, 2)
	require.Len(t, first.Locations[1].Residents, 2)

	dog := first.Locations[0].Residents[1]
	assert.Equal(t, domain.KindAnimal, dog.Kind)
	assert.True(t, dog.Trespassing, "animals inherit trespassing from their location")
	assert.False(t, first.Locations[0].Residents[0].Trespassing, "humans never carry the flag")

	malformed := first.Locations[1].Residents[0]
	assert.Equal(t, domain.DefaultAge, malformed.Age)
	senior := first.Locations[1].Residents[1]
	assert.Equal(t, domain.ProfessionNone, senior.Human.Profession)

	second := scenarios[1]
	assert.Equal(t, domain.DisasterFlood, second.Disaster, "unknown disaster defaults to flood")
	require.Len(t, second.Locations, 1)
	assert.False(t, second.Locations[0].Residents[0].Trespassing)
}

func TestLoad_SkipsHeaderUnconditionally(t *testing.T) {
	scenarios := loadString(t, "scenario:cyclone,,,,,,,\nscenario:earthquake,,,,,,,\n")
	require.Len(t, scenarios, 1)
	assert.Equal(t, domain.DisasterEarthquake, scenarios[0].Disaster)
}

func TestLoad_DropsOrphans(t *testing.T) {
	loader, metrics := newLoader()
	data := "header\n" +
		"human,female,30,average,none,false,,\n" + // no location yet
		"location:1 N;1 E;legal,,,,,,,\n" + // no scenario yet
		"animal,male,2,average,,,cat,false\n" + // its location was dropped
		"scenario:cyclone,,,,,,,\n" +
		"human,male,30,average,none,false,,\n" + // new scenario, no location yet
		"location:2 N;2 E;legal,,,,,,,\n" +
		"human,male,31,average,none,false,,\n"

	scenarios := loader.Load(strings.NewReader(data))

	require.Len(t, scenarios, 1)
	require.Len(t, scenarios[0].Locations, 1)
	require.Len(t, scenarios[0].Locations[0].Residents, 1)
	assert.Equal(t, 31, scenarios[0].Locations[0].Residents[0].Age)
	assert.InDelta(t, 4, testutil.ToFloat64(metrics.RecordsDropped), 1e-9)
}

func TestLoad_CountsRecordsAndWarnings(t *testing.T) {
	loader, metrics := newLoader()
	loader.Load(strings.NewReader(sampleFile))

	assert.InDelta(t, 2, testutil.ToFloat64(metrics.RecordsParsed.WithLabelValues("scenario")), 1e-9)
	assert.InDelta(t, 3, testutil.ToFloat64(metrics.RecordsParsed.WithLabelValues("location")), 1e-9)
	assert.InDelta(t, 5, testutil.ToFloat64(metrics.RecordsParsed.WithLabelValues("resident")), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.ParseWarnings.WithLabelValues("number")), 1e-9)
	// tsunami and the over-age ceo.
	assert.InDelta(t, 2, testutil.ToFloat64(metrics.ParseWarnings.WithLabelValues("characteristic")), 1e-9)
}

func TestLoad_KeepsFirstSavedLocation(t *testing.T) {
	loader, metrics := newLoader()
	data := "header\n" +
		"scenario:flood,,,,,,,\n" +
		"location:1 N;1 E;legal,true,,,,,,\n" +
		"location:2 N;2 E;legal,true,,,,,,\n" +
		"location:3 N;3 E;legal,true,,,,,,\n" +
		"scenario:cyclone,,,,,,,\n" +
		"location:1 N;1 E;legal,,,,,,,\n" +
		"location:2 N;2 E;legal,true,,,,,,\n"

	scenarios := loader.Load(strings.NewReader(data))

	require.Len(t, scenarios, 2)
	assert.Equal(t, []bool{true, false, false}, savedFlags(scenarios[0]))
	assert.Equal(t, []bool{false, true}, savedFlags(scenarios[1]))
	assert.InDelta(t, 2, testutil.ToFloat64(metrics.ParseWarnings.WithLabelValues("characteristic")), 1e-9)
}

func savedFlags(s *domain.Scenario) []bool {
	flags := make([]bool, 0, len(s.Locations))
	for _, l := range s.Locations {
		flags = append(flags, l.Saved)
	}
	return flags
}

func TestLoad_BlankLinesIgnored(t *testing.T) {
	scenarios := loadString(t, "header\n\nscenario:flood,,,,,,,\n   \nlocation:1 N;1 E;legal,,,,,,,\n")
	require.Len(t, scenarios, 1)
	require.Len(t, scenarios[0].Locations, 1)
	assert.Empty(t, scenarios[0].Locations[0].Residents)
}

type failingReader struct {
	data []byte
	done bool
}

func (f *failingReader) Read(p []byte) (int, error) {
	if f.done {
		return 0, errors.New("disk on fire")
	}
	f.done = true
	return copy(p, f.data), nil
}

func TestLoad_ReadErrorKeepsPartialResults(t *testing.T) {
	loader, _ := newLoader()
	r := &failingReader{data: []byte("header\nscenario:flood,,,,,,,\nlocation:1 N;1 E;legal,,,,,,,\n")}

	scenarios := loader.Load(r)

	require.Len(t, scenarios, 1)
	assert.Len(t, scenarios[0].Locations, 1)
}

func TestLoadScenarios_FileNotFound(t *testing.T) {
	loader, _ := newLoader()
	_, err := loader.LoadScenarios(filepath.Join(t.TempDir(), "missing.csv"))
	require.ErrorIs(t, err, pipeline.ErrScenariosNotFound)
}

func TestLoadScenarios_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleFile), 0o600))

	loader, _ := newLoader()
	scenarios, err := loader.LoadScenarios(path)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(loadString(t, sampleFile), scenarios))
}

// --- runner ---

func TestRunner_Simulation(t *testing.T) {
	fakeClock := clockwork.NewFakeClockAt(time.Date(2026, time.October, 14, 9, 0, 0, 0, time.UTC))
	pipeline.SetClock(fakeClock)
	t.Cleanup(func() { pipeline.SetClock(nil) })

	scenarios := loadString(t, sampleFile)
	rec := &memoryRecorder{}
	metrics := observability.NewMetricsForTesting()
	var out bytes.Buffer

	r := pipeline.NewRunner(pipeline.Options{
		Mode:     pipeline.ModeSimulation,
		Judge:    pipeline.EngineJudge,
		Recorder: rec,
		Out:      &out,
		Metrics:  metrics,
	})
	sum, err := r.Run(context.Background(), scenarios)

	require.NoError(t, err)
	assert.Equal(t, 2, sum.Judged)
	assert.False(t, sum.Stopped)
	assert.Equal(t, fakeClock.Now(), sum.Started)
	assert.Equal(t, fakeClock.Now(), sum.Finished)
	assert.Len(t, rec.recorded, 2)

	// Location 1: (2 + 5 + 1 + 1) * 2/3 = 6; location 2: 2 + 10 = 12.
	assert.Equal(t, 1, scenarios[0].SavedIndex())
	assert.Equal(t, 0, scenarios[1].SavedIndex())

	assert.Equal(t, 1, strings.Count(out.String(), "# Statistic"))
	assert.Contains(t, out.String(), "- % SAVED AFTER 2 RUNS")
	assert.InDelta(t, 2, testutil.ToFloat64(metrics.ScenariosJudged.WithLabelValues("simulation")), 1e-9)
	assert.InDelta(t, 3, testutil.ToFloat64(metrics.ResidentsSaved), 1e-9)

	human := r.Session().Tally("human")
	assert.Equal(t, stats.Tally{Seen: 3, Saved: 2}, human)
}

func TestRunner_PeriodicReportsAndStop(t *testing.T) {
	block := "scenario:flood,,,,,,,\nlocation:1 N;1 E;legal,,,,,,,\nhuman,male,30,average,none,false,,\n"
	scenarios := loadString(t, "header\n"+strings.Repeat(block, 5))
	require.Len(t, scenarios, 5)

	asked := 0
	var out bytes.Buffer
	r := pipeline.NewRunner(pipeline.Options{
		Mode:        pipeline.ModeInteractive,
		Judge:       pipeline.EngineJudge,
		Out:         &out,
		ReportEvery: 2,
		Proceed: func(context.Context) (bool, error) {
			asked++
			return asked < 2, nil
		},
	})

	sum, err := r.Run(context.Background(), scenarios)

	require.NoError(t, err)
	assert.True(t, sum.Stopped)
	assert.Equal(t, 4, sum.Judged)
	assert.Equal(t, 2, asked)
	assert.Contains(t, out.String(), "- % SAVED AFTER 2 RUNS")
	assert.Contains(t, out.String(), "- % SAVED AFTER 4 RUNS")
	assert.Equal(t, 2, strings.Count(out.String(), "# Statistic"))
	assert.Equal(t, -1, scenarios[4].SavedIndex())
}

func TestRunner_NoDuplicateFinalReport(t *testing.T) {
	scenarios := loadString(t, "header\n"+strings.Repeat("scenario:flood,,,,,,,\nlocation:1 N;1 E;legal,,,,,,,\n", 3))
	var out bytes.Buffer
	r := pipeline.NewRunner(pipeline.Options{Mode: pipeline.ModeInteractive, Judge: pipeline.EngineJudge, Out: &out, ReportEvery: 3})

	_, err := r.Run(context.Background(), scenarios)

	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out.String(), "# Statistic"))
}

func TestRunner_HumanChoiceMarksSaved(t *testing.T) {
	scenarios := loadString(t, sampleFile)
	pickLast := pipeline.JudgeFunc(func(_ context.Context, s *domain.Scenario) (int, error) {
		return len(s.Locations) - 1, nil
	})
	r := pipeline.NewRunner(pipeline.Options{Mode: pipeline.ModeInteractive, Judge: pickLast})

	_, err := r.Run(context.Background(), scenarios[:1])

	require.NoError(t, err)
	assert.Equal(t, 1, scenarios[0].SavedIndex())
	assert.False(t, scenarios[0].Locations[0].Saved)
}

func TestRunner_RejudgeReplacesRecordedDecision(t *testing.T) {
	// A replayed log already carries a decision for the first location.
	scenarios := loadString(t, "header\n"+
		"scenario:flood,Simulation,,,,,,\n"+
		"location:1 N;1 E;legal,true,,,,,,\n"+
		"human,male,30,average,none,false,,\n"+
		"location:2 N;2 E;legal,,,,,,,\n"+
		"human,male,30,average,none,false,,\n"+
		"human,female,40,average,none,false,,\n")
	require.Equal(t, 0, scenarios[0].SavedIndex())

	r := pipeline.NewRunner(pipeline.Options{Mode: pipeline.ModeSimulation, Judge: pipeline.EngineJudge})
	_, err := r.Run(context.Background(), scenarios)

	require.NoError(t, err)
	assert.Equal(t, []bool{false, true}, savedFlags(scenarios[0]))
	assert.Equal(t, stats.Tally{Seen: 3, Saved: 2}, r.Session().Tally("human"))
}

func TestRunner_DefaultsLoggerAndMetrics(t *testing.T) {
	r := pipeline.NewRunner(pipeline.Options{Judge: pipeline.EngineJudge})
	require.NotPanics(t, func() {
		sum, err := r.Run(context.Background(), loadString(t, sampleFile))
		require.NoError(t, err)
		assert.Equal(t, 2, sum.Judged)
	})
}

func TestRunner_SkipsEmptyScenario(t *testing.T) {
	scenarios := []*domain.Scenario{{Disaster: domain.DisasterFlood}}
	r := pipeline.NewRunner(pipeline.Options{Mode: pipeline.ModeSimulation, Judge: pipeline.EngineJudge})

	sum, err := r.Run(context.Background(), scenarios)

	require.NoError(t, err)
	assert.Zero(t, sum.Judged)
}

func TestRunner_Errors(t *testing.T) {
	scenarios := func() []*domain.Scenario { return loadString(t, sampleFile) }

	t.Run("judge error", func(t *testing.T) {
		failing := pipeline.JudgeFunc(func(context.Context, *domain.Scenario) (int, error) {
			return 0, errors.New("operator left")
		})
		_, err := pipeline.NewRunner(pipeline.Options{Judge: failing}).Run(context.Background(), scenarios())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "operator left")
	})

	t.Run("index out of range", func(t *testing.T) {
		bad := pipeline.JudgeFunc(func(context.Context, *domain.Scenario) (int, error) { return 7, nil })
		_, err := pipeline.NewRunner(pipeline.Options{Judge: bad}).Run(context.Background(), scenarios())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "out of range")
	})

	t.Run("recorder error", func(t *testing.T) {
		rec := &memoryRecorder{err: errors.New("disk full")}
		_, err := pipeline.NewRunner(pipeline.Options{Judge: pipeline.EngineJudge, Recorder: rec}).Run(context.Background(), scenarios())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "record scenario")
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		sum, err := pipeline.NewRunner(pipeline.Options{Judge: pipeline.EngineJudge}).Run(ctx, scenarios())
		require.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, sum.Judged)
	})
}

// --- audit ---

func TestAudit_NoHistory(t *testing.T) {
	loader, _ := newLoader()
	var out bytes.Buffer
	require.NoError(t, loader.Audit(&out, filepath.Join(t.TempDir(), "none.csv")))
	assert.Equal(t, "No history found.\n", out.String())
}

func TestAudit_SplitsByOrigin(t *testing.T) {
	log := "header\n" +
		"scenario:flood,Simulation,,,,,,\n" +
		"location:1 N;1 E;legal,true,,,,,,\n" +
		"human,male,30,average,none,false,,\n" +
		"location:2 N;2 E;legal,,,,,,,\n" +
		"human,male,40,average,none,false,,\n" +
		"scenario:cyclone,,,,,,,\n" +
		"location:1 N;1 E;legal,,,,,,,\n" +
		"animal,male,3,average,,,dog,true\n" +
		"location:2 N;2 E;legal,true,,,,,,\n" +
		"animal,male,3,average,,,dog,false\n"
	path := filepath.Join(t.TempDir(), "shared.csv")
	require.NoError(t, os.WriteFile(path, []byte(log), 0o600))

	loader, _ := newLoader()
	var out bytes.Buffer
	require.NoError(t, loader.Audit(&out, path, path))

	text := out.String()
	algo := strings.Index(text, "# "+pipeline.AlgorithmAuditTitle)
	user := strings.Index(text, "# "+pipeline.UserAuditTitle)
	require.GreaterOrEqual(t, algo, 0)
	require.Greater(t, user, algo)

	assert.Contains(t, text[algo:user], "human: 0.50")
	assert.Contains(t, text[algo:user], "average age: 30.00")
	assert.Contains(t, text[user:], "dog: 0.50")
	assert.Contains(t, text[user:], "pet: 0.00")
	assert.Equal(t, 2, strings.Count(text, "- % SAVED AFTER 1 RUNS"))
}

func TestAuditReport(t *testing.T) {
	scenarios := loadString(t, sampleFile)
	for _, s := range scenarios {
		domain.Decide(s)
	}

	rep := pipeline.AuditReport(pipeline.UserAuditTitle, scenarios)

	assert.Equal(t, pipeline.UserAuditTitle, rep.Title)
	assert.Equal(t, 2, rep.Runs)
	assert.NotEmpty(t, rep.Entries)
}
