package observ_test

import (
	"strings"
	"testing"

	"shine/internal/observ"
)

func TestTimerReport(t *testing.T) {
	tm := observ.NewTimer()
	idx := tm.Begin(observ.PhaseLex)
	tm.End(idx, "42 tokens")
	idx = tm.Begin(observ.PhaseHighlight)
	tm.End(idx, "")

	report := tm.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("got %d phases, want 2", len(report.Phases))
	}
	if report.Phases[0].Name != "lex" || report.Phases[0].Note != "42 tokens" {
		t.Errorf("first phase %+v", report.Phases[0])
	}
	if report.Phases[1].Name != "highlight" {
		t.Errorf("second phase %+v", report.Phases[1])
	}

	var sum float64
	for _, p := range report.Phases {
		if p.DurationMS < 0 {
			t.Errorf("negative duration in %+v", p)
		}
		sum += p.DurationMS
	}
	if report.TotalMS < sum-0.001 || report.TotalMS > sum+0.001 {
		t.Errorf("TotalMS = %v, phases sum to %v", report.TotalMS, sum)
	}
}

func TestTimerEmptyReport(t *testing.T) {
	report := observ.NewTimer().Report()
	if len(report.Phases) != 0 || report.TotalMS != 0 {
		t.Errorf("empty timer reported %+v", report)
	}
}

func TestTimerEndOutOfRange(t *testing.T) {
	tm := observ.NewTimer()
	tm.End(0, "no phase started")
	tm.End(-1, "negative")
	if got := tm.Report(); len(got.Phases) != 0 {
		t.Errorf("out-of-range End created phases: %+v", got)
	}
}

func TestTimerSummary(t *testing.T) {
	tm := observ.NewTimer()
	tm.End(tm.Begin(observ.PhaseParse), "")
	s := tm.Summary()
	if !strings.Contains(s, "parse") || !strings.Contains(s, "total") {
		t.Errorf("summary missing phases:\n%s", s)
	}
}
