package report

import (
	"bytes"
	"testing"
	"time"

	"scorecard/internal/domain/scorecard"
)

func TestRankingsPDFRendersDocument(t *testing.T) {
	to := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	results := []scorecard.ScoreResult{
		{Subject: scorecard.Subject{ID: "u1", DisplayName: "Ana", Email: "ana@example.com", DepartmentName: "Eng"}, Score: 81},
		{Subject: scorecard.Subject{ID: "u2", DisplayName: "Ben", Email: "ben@example.com", DepartmentName: "Ops"}, Score: 42},
	}
	rankings := scorecard.Rank(results, scorecard.NewWindow(to.AddDate(0, 0, -90), to), 10, 10)

	out, err := RankingsPDF("Performance rankings", rankings)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("expected pdf header, got %q", out[:min(len(out), 8)])
	}
}

func TestRankingsPDFEmptyCohort(t *testing.T) {
	rankings := scorecard.Rank(nil, scorecard.NewWindow(time.Now().AddDate(0, 0, -7), time.Now()), 10, 10)

	out, err := RankingsPDF("Performance rankings", rankings)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("expected non-empty document")
	}
}

func TestSummaryLine(t *testing.T) {
	avg, top, low := 60, 70, 50
	line := summaryLine(scorecard.RankingSummary{Count: 4, AvgScore: &avg, TopCutoff: &top, LowCutoff: &low})
	if line != "Employees: 4   Average: 60   Top cutoff: 70   Low cutoff: 50" {
		t.Fatalf("unexpected summary line: %q", line)
	}
}
