package scorecard

const (
	TaskStatusCompleted = "completed"

	DefaultWindowDays = 90
	DefaultRankLimit  = 10
	MinRankLimit      = 1
	MaxRankLimit      = 50

	MinWeight = 0
	MaxWeight = 100

	PresetManager = "manager"
	PresetSelf    = "self"

	NormalizationCohort = "cohort"
	NormalizationSingle = "single"

	// singleSubjectScale is the half-saturation constant of the single-subject curve.
	singleSubjectScale = 5.0

	dayMillis = 86400000
)
