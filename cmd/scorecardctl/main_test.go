package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"scorecard/internal/domain/auth"
	"scorecard/internal/domain/scorecard"
)

func TestRootRegistersSubcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"scorecards", "rankings", "migrate", "seed", "token"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("missing subcommand %s", name)
		}
	}
}

func TestRankingsCmdFlags(t *testing.T) {
	cmd := newRankingsCmd()
	f := cmd.Flags()

	if preset, _ := f.GetString("preset"); preset != scorecard.PresetManager {
		t.Errorf("default preset = %q, want manager", preset)
	}
	if top, _ := f.GetInt("top"); top != scorecard.DefaultRankLimit {
		t.Errorf("default top = %d, want %d", top, scorecard.DefaultRankLimit)
	}
	for _, flag := range []string{"tenant", "department", "employee", "from", "to", "output", "pdf", "w-on-time", "w-penalty"} {
		if f.Lookup(flag) == nil {
			t.Errorf("missing flag: %s", flag)
		}
	}
}

func TestQueryFlagsOnlyOverrideChangedWeights(t *testing.T) {
	cmd := newScorecardsCmd()
	if err := cmd.ParseFlags([]string{"--tenant", "t1", "--department", "d1", "--w-penalty", "0"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	var flags queryFlags
	flags.tenantID = "t1"
	flags.department = "d1"
	flags.preset = scorecard.PresetManager

	q := flags.query(cmd)
	if q.Scope != scorecard.DepartmentScope("d1") {
		t.Fatalf("unexpected scope: %+v", q.Scope)
	}
	if q.Overrides.Penalty == nil || *q.Overrides.Penalty != 0 {
		t.Fatalf("expected explicit zero penalty, got %+v", q.Overrides.Penalty)
	}
	if q.Overrides.OnTime != nil {
		t.Fatal("expected untouched weight to stay nil")
	}
}

func TestEmployeeFlagWinsOverDepartment(t *testing.T) {
	cmd := newScorecardsCmd()
	flags := queryFlags{tenantID: "t1", department: "d1", employee: "u9", selfView: true}
	q := flags.query(cmd)
	if q.Scope != scorecard.EmployeeScope("u9") {
		t.Fatalf("unexpected scope: %+v", q.Scope)
	}
	if !q.SelfView {
		t.Fatal("expected self view for an employee scope")
	}
	flags.employee = ""
	if q := flags.query(cmd); q.SelfView {
		t.Fatal("expected self view to require an employee scope")
	}
}

func TestRunTokenRoundTrip(t *testing.T) {
	var out bytes.Buffer
	if err := runToken(&out, "cli-secret", auth.Claims{UserID: "u1", TenantID: "t1", RoleName: auth.RoleHR}, time.Hour); err != nil {
		t.Fatalf("run token: %v", err)
	}
	claims, err := auth.ParseToken("cli-secret", strings.TrimSpace(out.String()))
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.RoleName != auth.RoleHR {
		t.Fatalf("unexpected role %q", claims.RoleName)
	}
	if err := runToken(&out, "", auth.Claims{}, time.Hour); err == nil {
		t.Fatal("expected missing secret to fail")
	}
}

func TestWriteRankingsText(t *testing.T) {
	results := []scorecard.ScoreResult{
		{Subject: scorecard.Subject{ID: "a", DisplayName: "Ana"}, Score: 90},
		{Subject: scorecard.Subject{ID: "b", DisplayName: "Ben"}, Score: 40},
	}
	to := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	r := scorecard.Rank(results, scorecard.NewWindow(to.AddDate(0, 0, -7), to), 1, 1)

	var out bytes.Buffer
	if err := writeRankings(&out, r); err != nil {
		t.Fatalf("write: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "Employees: 2") || !strings.Contains(text, "Ana") || !strings.Contains(text, "Ben") {
		t.Fatalf("unexpected output:\n%s", text)
	}
}
