package scorecard

import "time"

type WindowSpec struct {
	From  time.Time `json:"from"`
	To    time.Time `json:"to"`
	Days  int       `json:"days"`
	Weeks int       `json:"weeks"`
}

type Subject struct {
	ID             string `json:"userId"`
	DisplayName    string `json:"username"`
	Email          string `json:"email"`
	DepartmentName string `json:"department"`
}

type RawMetrics struct {
	Completed   int `json:"completed"`
	DueWithDate int `json:"dueWithDate"`
	OnTime      int `json:"onTime"`
	Pending     int `json:"pending"`
	OverdueOpen int `json:"overdueOpen"`
}

// DerivedMetrics is recomputed on every request and never written back.
type DerivedMetrics struct {
	OnTimeRate     int     `json:"onTimeRate"`
	CompletionRate int     `json:"completionRate"`
	Throughput     float64 `json:"throughput"`
	ThroughputNorm float64 `json:"throughputNorm"`
	OverdueRate    float64 `json:"overdueRate"`
}

type ScoreResult struct {
	Subject Subject
	Raw     RawMetrics
	Derived DerivedMetrics
	Score   int
}

type MetricsView struct {
	Completed      int     `json:"completed"`
	Pending        int     `json:"pending"`
	OverdueOpen    int     `json:"overdueOpen"`
	Weeks          int     `json:"weeks"`
	Throughput     float64 `json:"throughput"`
	OnTimeRate     int     `json:"onTimeRate"`
	CompletionRate int     `json:"completionRate"`
	OverdueRate    int     `json:"overdueRate"`
}

type ScorecardItem struct {
	UserID     string      `json:"userId"`
	Username   string      `json:"username"`
	Email      string      `json:"email"`
	Department string      `json:"department"`
	Metrics    MetricsView `json:"metrics"`
	Score      int         `json:"score"`
}

type ScorecardSummary struct {
	Count        int            `json:"count"`
	AvgScore     *int           `json:"avgScore,omitempty"`
	TopPerformer *ScorecardItem `json:"topPerformer,omitempty"`
}

type Scorecards struct {
	Items         []ScorecardItem  `json:"items"`
	Summary       ScorecardSummary `json:"summary"`
	Window        WindowSpec       `json:"window"`
	Normalization string           `json:"normalization,omitempty"`
}

type RankingSummary struct {
	Count     int  `json:"count"`
	AvgScore  *int `json:"avgScore,omitempty"`
	TopCutoff *int `json:"topCutoff,omitempty"`
	LowCutoff *int `json:"lowCutoff,omitempty"`
}

type Rankings struct {
	Top           []ScorecardItem `json:"top"`
	Low           []ScorecardItem `json:"low"`
	Summary       RankingSummary  `json:"summary"`
	Window        WindowSpec      `json:"window"`
	Normalization string          `json:"normalization,omitempty"`
}

type Department struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
