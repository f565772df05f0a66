package scorecard

import "math"

// Throughput is completed tasks per week of the window.
func Throughput(raw RawMetrics, window WindowSpec) float64 {
	weeks := max(window.Weeks, 1)
	return float64(raw.Completed) / float64(weeks)
}

func Derive(raw RawMetrics, throughput, throughputNorm float64) DerivedMetrics {
	derived := DerivedMetrics{Throughput: throughput, ThroughputNorm: throughputNorm}
	if total := raw.Completed + raw.Pending; total > 0 {
		derived.CompletionRate = int(roundHalfUp(100 * float64(raw.Completed) / float64(total)))
	}
	if raw.DueWithDate > 0 {
		derived.OnTimeRate = int(roundHalfUp(100 * float64(raw.OnTime) / float64(raw.DueWithDate)))
	}
	if open := raw.OverdueOpen + raw.Pending; open > 0 {
		derived.OverdueRate = float64(raw.OverdueOpen) / float64(open)
	}
	return derived
}

// Calculate folds derived metrics into a weighted index in [0,100].
func Calculate(derived DerivedMetrics, weights WeightSet) int {
	w := weights.Clamp()
	base := w.OnTime/100*float64(derived.OnTimeRate) +
		w.Throughput/100*(derived.ThroughputNorm*100) +
		w.Completion/100*float64(derived.CompletionRate)
	penalty := w.Penalty / 100 * (derived.OverdueRate * 100)
	score := roundHalfUp(base - penalty)
	if math.IsNaN(score) {
		return 0
	}
	return int(math.Max(0, math.Min(100, score)))
}

// SubjectMetrics pairs a subject with the counters fetched for it.
type SubjectMetrics struct {
	Subject Subject
	Raw     RawMetrics
}

// ScoreCohort normalizes throughput across the cohort and scores every
// subject. Output order matches input order. selfView selects the
// single-subject curve for a cohort of one.
func ScoreCohort(cohort []SubjectMetrics, window WindowSpec, weights WeightSet, selfView bool) ([]ScoreResult, string) {
	if len(cohort) == 0 {
		return []ScoreResult{}, ""
	}
	throughputs := make([]float64, len(cohort))
	for i, entry := range cohort {
		throughputs[i] = Throughput(entry.Raw, window)
	}
	norms, mode := NormalizeThroughput(throughputs, selfView)

	results := make([]ScoreResult, len(cohort))
	for i, entry := range cohort {
		derived := Derive(entry.Raw, throughputs[i], norms[i])
		results[i] = ScoreResult{
			Subject: entry.Subject,
			Raw:     entry.Raw,
			Derived: derived,
			Score:   Calculate(derived, weights),
		}
	}
	return results, mode
}

func (r ScoreResult) Item(window WindowSpec) ScorecardItem {
	return ScorecardItem{
		UserID:     r.Subject.ID,
		Username:   r.Subject.DisplayName,
		Email:      r.Subject.Email,
		Department: r.Subject.DepartmentName,
		Metrics: MetricsView{
			Completed:      r.Raw.Completed,
			Pending:        r.Raw.Pending,
			OverdueOpen:    r.Raw.OverdueOpen,
			Weeks:          window.Weeks,
			Throughput:     roundHalfUp(r.Derived.Throughput*100) / 100,
			OnTimeRate:     r.Derived.OnTimeRate,
			CompletionRate: r.Derived.CompletionRate,
			OverdueRate:    int(roundHalfUp(r.Derived.OverdueRate * 100)),
		},
		Score: r.Score,
	}
}
