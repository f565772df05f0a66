package main

import (
	"github.com/spf13/cobra"

	"scorecard/internal/domain/scorecard"
)

type queryFlags struct {
	tenantID   string
	department string
	employee   string
	from       string
	to         string
	preset     string
	outputFmt  string
	selfView   bool
	weights    [4]float64
}

var weightFlagNames = [4]string{"w-on-time", "w-throughput", "w-completion", "w-penalty"}

func (f *queryFlags) register(cmd *cobra.Command, defaultPreset string) {
	flags := cmd.Flags()
	flags.StringVar(&f.tenantID, "tenant", "", "Tenant ID (required)")
	flags.StringVar(&f.department, "department", "", "Limit to one department ID")
	flags.StringVar(&f.employee, "employee", "", "Limit to one employee ID")
	flags.StringVar(&f.from, "from", "", "Window start (RFC3339 or YYYY-MM-DD)")
	flags.StringVar(&f.to, "to", "", "Window end (RFC3339 or YYYY-MM-DD)")
	flags.StringVar(&f.preset, "preset", defaultPreset, "Weight preset name")
	flags.StringVar(&f.outputFmt, "output", "text", "Output format: text or json")
	flags.BoolVar(&f.selfView, "self-view", false, "Score --employee as their own self view")
	for i, name := range weightFlagNames {
		flags.Float64Var(&f.weights[i], name, 0, "Override weight (0-100)")
	}
	_ = cmd.MarkFlagRequired("tenant")
}

func (f *queryFlags) query(cmd *cobra.Command) scorecard.Query {
	q := scorecard.Query{
		TenantID: f.tenantID,
		From:     f.from,
		To:       f.to,
		Preset:   f.preset,
		Scope:    scorecard.ScopeFromDepartment(f.department),
	}
	if f.employee != "" {
		q.Scope = scorecard.EmployeeScope(f.employee)
		q.SelfView = f.selfView
	}

	overrides := [4]**float64{&q.Overrides.OnTime, &q.Overrides.Throughput, &q.Overrides.Completion, &q.Overrides.Penalty}
	for i, name := range weightFlagNames {
		if cmd.Flags().Changed(name) {
			v := f.weights[i]
			*overrides[i] = &v
		}
	}
	return q
}
