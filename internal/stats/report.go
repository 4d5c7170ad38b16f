package stats

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"
)

// Entry is the survival ratio of one attribute key.
type Entry struct {
	Key   string
	Seen  int
	Saved int
	Ratio float64
}

// Report is a snapshot of a session.
type Report struct {
	// Title heads the rendered block; empty renders as "Statistic".
	Title   string
	Runs    int
	Entries []Entry
	// AverageAge is the mean age of every rescued human, rounded half up to
	// two decimals. Zero when no human was rescued.
	AverageAge float64
}

// Report computes survival ratios sorted ascending. Equal ratios are ordered
// by key.
func (s *Session) Report(runs int) Report {
	entries := make([]Entry, 0, len(s.tallies))
	for key, t := range s.tallies {
		entries = append(entries, Entry{
			Key:   key,
			Seen:  t.Seen,
			Saved: t.Saved,
			Ratio: float64(t.Saved) / float64(t.Seen),
		})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		if c := cmp.Compare(a.Ratio, b.Ratio); c != 0 {
			return c
		}
		return strings.Compare(a.Key, b.Key)
	})

	return Report{Runs: runs, Entries: entries, AverageAge: s.averageAge()}
}

func (s *Session) averageAge() float64 {
	if len(s.savedAges) == 0 {
		return 0
	}
	total := 0
	for _, age := range s.savedAges {
		total += age
	}
	return roundRatio(total, len(s.savedAges))
}

const rule = "======================================"

// Render writes the statistics block shown after a batch of scenarios.
func (r Report) Render(w io.Writer) error {
	var b strings.Builder
	b.WriteString(rule + "\n")
	title := r.Title
	if title == "" {
		title = "Statistic"
	}
	fmt.Fprintf(&b, "# %s\n", title)
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "- %% SAVED AFTER %d RUNS\n", r.Runs)
	for _, e := range r.Entries {
		fmt.Fprintf(&b, "%s: %.2f\n", e.Key, roundRatio(e.Saved, e.Seen))
	}
	b.WriteString("--\n")
	fmt.Fprintf(&b, "average age: %.2f\n", r.AverageAge)

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// roundRatio rounds num/den to two decimals, half up, in integer arithmetic
// so exact ties such as 1/8 give 0.13.
func roundRatio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	hundredths := (num*200 + den) / (2 * den)
	return float64(hundredths) / 100
}

// Render renders the session's current report for runs scenarios.
func (s *Session) Render(w io.Writer, runs int) error {
	return s.Report(runs).Render(w)
}
