package scorecard

import (
	"slices"
	"strings"
)

func ClampLimit(n int) int {
	return max(MinRankLimit, min(MaxRankLimit, n))
}

// SortResults orders by score descending, then subject ID ascending.
func SortResults(results []ScoreResult) []ScoreResult {
	sorted := slices.Clone(results)
	slices.SortStableFunc(sorted, func(a, b ScoreResult) int {
		if a.Score != b.Score {
			return b.Score - a.Score
		}
		return strings.Compare(a.Subject.ID, b.Subject.ID)
	})
	return sorted
}

// Rank slices the best topN and the worst lowN results. Low is reversed so
// index 0 is the weakest subject.
func Rank(results []ScoreResult, window WindowSpec, topN, lowN int) Rankings {
	out := Rankings{Top: []ScorecardItem{}, Low: []ScorecardItem{}, Window: window}
	if len(results) == 0 {
		return out
	}
	sorted := SortResults(results)
	topN = min(ClampLimit(topN), len(sorted))
	lowN = min(ClampLimit(lowN), len(sorted))

	for _, r := range sorted[:topN] {
		out.Top = append(out.Top, r.Item(window))
	}
	for i := len(sorted) - 1; i >= len(sorted)-lowN; i-- {
		out.Low = append(out.Low, sorted[i].Item(window))
	}

	avg := averageScore(sorted)
	topCutoff := out.Top[len(out.Top)-1].Score
	lowCutoff := out.Low[len(out.Low)-1].Score
	out.Summary = RankingSummary{
		Count:     len(sorted),
		AvgScore:  &avg,
		TopCutoff: &topCutoff,
		LowCutoff: &lowCutoff,
	}
	return out
}

// BuildScorecards lists every result in rank order with a cohort summary.
func BuildScorecards(results []ScoreResult, window WindowSpec, mode string) Scorecards {
	out := Scorecards{Items: []ScorecardItem{}, Window: window, Normalization: mode}
	if len(results) == 0 {
		return out
	}
	for _, r := range SortResults(results) {
		out.Items = append(out.Items, r.Item(window))
	}
	avg := averageScore(results)
	top := out.Items[0]
	out.Summary = ScorecardSummary{Count: len(out.Items), AvgScore: &avg, TopPerformer: &top}
	return out
}

func averageScore(results []ScoreResult) int {
	if len(results) == 0 {
		return 0
	}
	total := 0
	for _, r := range results {
		total += r.Score
	}
	return int(roundHalfUp(float64(total) / float64(len(results))))
}
