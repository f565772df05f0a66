package scorecard

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekWindow(weeks int) WindowSpec {
	to := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	return NewWindow(to.AddDate(0, 0, -7*weeks), to)
}

func TestCohortNormalizationMidpoint(t *testing.T) {
	cohort := []SubjectMetrics{
		{Subject: Subject{ID: "a"}, Raw: RawMetrics{Completed: 2}},
		{Subject: Subject{ID: "b"}, Raw: RawMetrics{Completed: 5}},
		{Subject: Subject{ID: "c"}, Raw: RawMetrics{Completed: 8}},
	}
	results, mode := ScoreCohort(cohort, weekWindow(1), ManagerWeights(), false)

	require.Len(t, results, 3)
	assert.Equal(t, NormalizationCohort, mode)
	assert.InDelta(t, 0.0, results[0].Derived.ThroughputNorm, 1e-9)
	assert.InDelta(t, 0.5, results[1].Derived.ThroughputNorm, 1e-9)
	assert.InDelta(t, 1.0, results[2].Derived.ThroughputNorm, 1e-9)
}

func TestCohortNormalizationAllTied(t *testing.T) {
	norms, mode := NormalizeThroughput([]float64{3, 3, 3, 3}, false)

	assert.Equal(t, NormalizationCohort, mode)
	for _, n := range norms {
		assert.Equal(t, 0.5, n)
	}
}

func TestSingleSubjectClosedForm(t *testing.T) {
	window := weekWindow(13)
	require.Equal(t, 13, window.Weeks)

	raw := RawMetrics{Completed: 10, DueWithDate: 10, OnTime: 10}
	results, mode := ScoreCohort([]SubjectMetrics{{Subject: Subject{ID: "solo"}, Raw: raw}}, window, SelfWeights(), true)

	require.Len(t, results, 1)
	assert.Equal(t, NormalizationSingle, mode)
	r := results[0]
	assert.Equal(t, 100, r.Derived.CompletionRate)
	assert.Equal(t, 100, r.Derived.OnTimeRate)

	tp := 10.0 / 13.0
	wantNorm := 0.5 + tp/(tp+5)
	assert.InDelta(t, wantNorm, r.Derived.ThroughputNorm, 1e-12)

	base := 0.30*100 + 0.20*(wantNorm*100) + 0.50*100
	assert.Equal(t, int(math.Floor(base+0.5)), r.Score)
	assert.Equal(t, 93, r.Score)
}

func TestSingleSubjectWithoutThroughput(t *testing.T) {
	norms, mode := NormalizeThroughput([]float64{0}, true)

	assert.Equal(t, NormalizationSingle, mode)
	assert.Equal(t, 0.25, norms[0])
}

func TestCohortOfOneOutsideSelfViewIsNeutral(t *testing.T) {
	window := weekWindow(13)
	raw := RawMetrics{Completed: 10}
	results, mode := ScoreCohort([]SubjectMetrics{{Subject: Subject{ID: "solo"}, Raw: raw}}, window, ManagerWeights(), false)

	require.Len(t, results, 1)
	assert.Equal(t, NormalizationCohort, mode)
	assert.Equal(t, 0.5, results[0].Derived.ThroughputNorm)
	// 40% of a 0.5 throughput norm plus 15% completion.
	assert.Equal(t, 35, results[0].Score)
}

func TestDeriveZeroDivision(t *testing.T) {
	d := Derive(RawMetrics{}, 0, 0.5)

	assert.Equal(t, 0, d.CompletionRate)
	assert.Equal(t, 0, d.OnTimeRate)
	assert.Equal(t, 0.0, d.OverdueRate)
	assert.False(t, math.IsNaN(d.Throughput))
}

func TestDeriveRates(t *testing.T) {
	raw := RawMetrics{Completed: 3, DueWithDate: 3, OnTime: 2, Pending: 1, OverdueOpen: 1}
	d := Derive(raw, 3, 1)

	assert.Equal(t, 75, d.CompletionRate)
	assert.Equal(t, 67, d.OnTimeRate)
	assert.InDelta(t, 0.5, d.OverdueRate, 1e-9)
}

func TestCalculateStaysInRange(t *testing.T) {
	best := DerivedMetrics{OnTimeRate: 100, CompletionRate: 100, ThroughputNorm: 1}
	worst := DerivedMetrics{OverdueRate: 1}
	heavy := WeightSet{OnTime: 100, Throughput: 100, Completion: 100, Penalty: 100}

	assert.Equal(t, 100, Calculate(best, heavy))
	assert.Equal(t, 0, Calculate(worst, heavy))
	assert.Equal(t, 0, Calculate(DerivedMetrics{}, WeightSet{}))
}

func TestCalculateClampsWeights(t *testing.T) {
	d := DerivedMetrics{OnTimeRate: 50, CompletionRate: 50, ThroughputNorm: 0.5}
	out := WeightSet{OnTime: 500, Throughput: -20, Completion: 0, Penalty: 0}
	clamped := WeightSet{OnTime: 100}

	assert.Equal(t, Calculate(d, clamped), Calculate(d, out))
	assert.Equal(t, 50, Calculate(d, out))
}

func TestCalculateIsDeterministic(t *testing.T) {
	d := DerivedMetrics{OnTimeRate: 83, CompletionRate: 71, ThroughputNorm: 0.37, OverdueRate: 0.2}
	first := Calculate(d, ManagerWeights())
	for range 100 {
		assert.Equal(t, first, Calculate(d, ManagerWeights()))
	}
}

func TestItemRoundsReportedMetrics(t *testing.T) {
	window := weekWindow(3)
	r := ScoreResult{
		Subject: Subject{ID: "u1", DisplayName: "Ada", Email: "ada@example.com", DepartmentName: "Eng"},
		Raw:     RawMetrics{Completed: 10, Pending: 2, OverdueOpen: 1},
		Derived: DerivedMetrics{Throughput: 10.0 / 3.0, OverdueRate: 1.0 / 3.0},
		Score:   70,
	}
	item := r.Item(window)

	assert.Equal(t, 3.33, item.Metrics.Throughput)
	assert.Equal(t, 33, item.Metrics.OverdueRate)
	assert.Equal(t, 3, item.Metrics.Weeks)
	assert.Equal(t, "Eng", item.Department)
}
