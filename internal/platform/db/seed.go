package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"scorecard/internal/platform/querier"
)

// SeedTask is one demo task relative to the seeding time.
type SeedTask struct {
	Status         string
	DueOffset      time.Duration
	CompletedAfter *time.Duration
}

type SeedUser struct {
	Name  string
	Email string
	Tasks []SeedTask
}

type SeedDepartment struct {
	Name  string
	Users []SeedUser
}

// DemoDataset spreads completion volume and punctuality across two
// departments so rankings have visible top and low ends.
func DemoDataset() []SeedDepartment {
	day := 24 * time.Hour
	done := func(dueDaysAgo, lateDays int) SeedTask {
		after := time.Duration(lateDays) * day
		return SeedTask{Status: "completed", DueOffset: -time.Duration(dueDaysAgo) * day, CompletedAfter: &after}
	}
	open := func(dueInDays int) SeedTask {
		return SeedTask{Status: "open", DueOffset: time.Duration(dueInDays) * day}
	}

	return []SeedDepartment{
		{Name: "Engineering", Users: []SeedUser{
			{Name: "Ada Byrne", Email: "ada@demo.local", Tasks: []SeedTask{done(3, -1), done(10, 0), done(17, -2), done(24, 0), done(31, -1), open(4)}},
			{Name: "Linus Okoro", Email: "linus@demo.local", Tasks: []SeedTask{done(5, 2), done(12, 0), done(40, 5), open(-6), open(9)}},
			{Name: "Grace Mendes", Email: "grace@demo.local", Tasks: []SeedTask{done(8, 0), open(-12), open(-3), open(2)}},
		}},
		{Name: "Support", Users: []SeedUser{
			{Name: "Tomas Hale", Email: "tomas@demo.local", Tasks: []SeedTask{done(2, 0), done(6, 0), done(9, 1), done(14, 0)}},
			{Name: "Mira Sato", Email: "mira@demo.local", Tasks: []SeedTask{done(20, 3), open(-1)}},
		}},
	}
}

type SeedResult struct {
	Departments int
	Users       int
	Tasks       int
}

// Seed inserts the dataset for one tenant. Departments and users are matched
// by name and email so reruns only add tasks for users that have none.
func Seed(ctx context.Context, q querier.Querier, tenantID string, dataset []SeedDepartment, now time.Time) (SeedResult, error) {
	var result SeedResult
	if strings.TrimSpace(tenantID) == "" {
		return result, errors.New("tenant id is required")
	}

	for _, dept := range dataset {
		deptID, err := ensureDepartment(ctx, q, tenantID, dept.Name)
		if err != nil {
			return result, fmt.Errorf("seed department %s: %w", dept.Name, err)
		}
		result.Departments++

		for _, user := range dept.Users {
			userID, created, err := ensureUser(ctx, q, tenantID, deptID, user)
			if err != nil {
				return result, fmt.Errorf("seed user %s: %w", user.Email, err)
			}
			result.Users++
			if !created {
				continue
			}
			for _, task := range user.Tasks {
				if err := insertTask(ctx, q, tenantID, userID, task, now); err != nil {
					return result, fmt.Errorf("seed task for %s: %w", user.Email, err)
				}
				result.Tasks++
			}
		}
	}
	return result, nil
}

func ensureDepartment(ctx context.Context, q querier.Querier, tenantID, name string) (string, error) {
	var id string
	err := q.QueryRow(ctx, "SELECT id FROM departments WHERE tenant_id = $1 AND name = $2", tenantID, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", err
	}

	err = q.QueryRow(ctx, "INSERT INTO departments (tenant_id, name) VALUES ($1, $2) RETURNING id", tenantID, name).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func ensureUser(ctx context.Context, q querier.Querier, tenantID, departmentID string, user SeedUser) (string, bool, error) {
	var id string
	err := q.QueryRow(ctx, "SELECT id FROM users WHERE tenant_id = $1 AND email = $2", tenantID, user.Email).Scan(&id)
	if err == nil {
		return id, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", false, err
	}

	err = q.QueryRow(ctx, `
    INSERT INTO users (tenant_id, display_name, email, department_id)
    VALUES ($1, $2, $3, $4)
    RETURNING id
  `, tenantID, user.Name, user.Email, departmentID).Scan(&id)
	if err != nil {
		return "", false, err
	}
	return id, true, nil
}

func insertTask(ctx context.Context, q querier.Querier, tenantID, ownerID string, task SeedTask, now time.Time) error {
	due := now.Add(task.DueOffset)
	var completedAt *time.Time
	if task.CompletedAfter != nil {
		at := due.Add(*task.CompletedAfter)
		if at.After(now) {
			at = now
		}
		completedAt = &at
	}
	_, err := q.Exec(ctx, `
    INSERT INTO tasks (tenant_id, owner_id, status, due_date, completed_at)
    VALUES ($1, $2, $3, $4, $5)
  `, tenantID, ownerID, task.Status, due, completedAt)
	return err
}
