package scorecard

import "math"

// NormalizeThroughput maps weekly throughput onto [0,1] with cohort min-max
// scaling. A self view of exactly one subject is placed on a saturating curve
// instead; any other cohort of one gets the neutral 0.5.
func NormalizeThroughput(throughputs []float64, selfView bool) ([]float64, string) {
	if selfView && len(throughputs) == 1 {
		return []float64{singleSubjectNorm(throughputs[0])}, NormalizationSingle
	}
	return cohortNorm(throughputs), NormalizationCohort
}

func cohortNorm(throughputs []float64) []float64 {
	out := make([]float64, len(throughputs))
	if len(throughputs) == 0 {
		return out
	}
	lo, hi := throughputs[0], throughputs[0]
	for _, t := range throughputs[1:] {
		lo = math.Min(lo, t)
		hi = math.Max(hi, t)
	}
	spread := hi - lo
	for i, t := range throughputs {
		if spread > 0 {
			out[i] = (t - lo) / spread
		} else {
			out[i] = 0.5
		}
	}
	return out
}

func singleSubjectNorm(t float64) float64 {
	if t > 0 {
		return 0.5 + math.Min(0.5, t/(t+singleSubjectScale))
	}
	return 0.25
}
