package scorecard

import (
	"context"
	"time"
)

func (s *Store) ListSubjects(ctx context.Context, tenantID string, scope ScopeQuery) ([]Subject, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	query := `
    SELECT u.id, u.display_name, u.email, COALESCE(d.name, '')
    FROM users u
    LEFT JOIN departments d ON d.id = u.department_id AND d.tenant_id = u.tenant_id
    WHERE u.tenant_id = $1 AND u.active = true
  `
	args := []any{tenantID}
	switch scope.Kind {
	case ScopeDepartment:
		query += " AND u.department_id = $2"
		args = append(args, scope.ID)
	case ScopeEmployee:
		query += " AND u.id = $2"
		args = append(args, scope.ID)
	}
	query += " ORDER BY u.id"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Subject
	for rows.Next() {
		var subject Subject
		if err := rows.Scan(&subject.ID, &subject.DisplayName, &subject.Email, &subject.DepartmentName); err != nil {
			return nil, err
		}
		out = append(out, subject)
	}
	return out, rows.Err()
}

func (s *Store) DepartmentExists(ctx context.Context, tenantID, departmentID string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM departments WHERE tenant_id = $1 AND id = $2", tenantID, departmentID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// SubjectCounters computes all five counters in a single pass over the
// subject's tasks. Pending and overdue ignore the window.
func (s *Store) SubjectCounters(ctx context.Context, tenantID, subjectID string, window WindowSpec, now time.Time) (RawMetrics, error) {
	var raw RawMetrics
	err := s.DB.QueryRow(ctx, `
    SELECT
      COUNT(*) FILTER (WHERE status = $3 AND completed_at BETWEEN $4 AND $5),
      COUNT(*) FILTER (WHERE status = $3 AND completed_at BETWEEN $4 AND $5 AND due_date IS NOT NULL),
      COUNT(*) FILTER (WHERE status = $3 AND completed_at BETWEEN $4 AND $5 AND due_date IS NOT NULL AND completed_at <= due_date),
      COUNT(*) FILTER (WHERE status <> $3),
      COUNT(*) FILTER (WHERE status <> $3 AND due_date IS NOT NULL AND due_date < $6)
    FROM tasks
    WHERE tenant_id = $1 AND owner_id = $2
  `, tenantID, subjectID, TaskStatusCompleted, window.From, window.To, now).Scan(
		&raw.Completed,
		&raw.DueWithDate,
		&raw.OnTime,
		&raw.Pending,
		&raw.OverdueOpen,
	)
	if err != nil {
		return RawMetrics{}, err
	}
	return raw, nil
}

func (s *Store) ListTenants(ctx context.Context) ([]string, error) {
	rows, err := s.DB.Query(ctx, "SELECT DISTINCT tenant_id FROM departments ORDER BY tenant_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var tenantID string
		if err := rows.Scan(&tenantID); err != nil {
			return nil, err
		}
		out = append(out, tenantID)
	}
	return out, rows.Err()
}

func (s *Store) ListDepartments(ctx context.Context, tenantID string) ([]Department, error) {
	rows, err := s.DB.Query(ctx, "SELECT id, name FROM departments WHERE tenant_id = $1 ORDER BY id", tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Department
	for rows.Next() {
		var dept Department
		if err := rows.Scan(&dept.ID, &dept.Name); err != nil {
			return nil, err
		}
		out = append(out, dept)
	}
	return out, rows.Err()
}
