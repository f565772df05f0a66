package scorecard

import (
	"context"
	"time"
)

// Directory resolves scopes into subjects. Subjects come back ordered by ID.
type Directory interface {
	ListSubjects(ctx context.Context, tenantID string, scope ScopeQuery) ([]Subject, error)
	DepartmentExists(ctx context.Context, tenantID, departmentID string) (bool, error)
}

// TaskStore reads per-subject task counters.
type TaskStore interface {
	SubjectCounters(ctx context.Context, tenantID, subjectID string, window WindowSpec, now time.Time) (RawMetrics, error)
}

type StoreAPI interface {
	Directory
	TaskStore
	ListTenants(ctx context.Context) ([]string, error)
	ListDepartments(ctx context.Context, tenantID string) ([]Department, error)
}
