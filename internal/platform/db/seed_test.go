package db

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type fakeRow struct {
	id  string
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*string) = r.id
	return nil
}

type fakeQuerier struct {
	departments map[string]string
	users       map[string]string
	tasks       []time.Time
	nextID      int
}

func newFakeQuerier() *fakeQuerier {
	return &fakeQuerier{departments: map[string]string{}, users: map[string]string{}}
}

func (f *fakeQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, fmt.Errorf("unexpected query: %s", sql)
}

func (f *fakeQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	lookup := func(m map[string]string, key string) pgx.Row {
		if id, ok := m[key]; ok {
			return fakeRow{id: id}
		}
		return fakeRow{err: pgx.ErrNoRows}
	}
	insert := func(m map[string]string, key string) pgx.Row {
		f.nextID++
		m[key] = fmt.Sprintf("id-%d", f.nextID)
		return fakeRow{id: m[key]}
	}

	switch {
	case strings.Contains(sql, "SELECT id FROM departments"):
		return lookup(f.departments, args[1].(string))
	case strings.Contains(sql, "INSERT INTO departments"):
		return insert(f.departments, args[1].(string))
	case strings.Contains(sql, "SELECT id FROM users"):
		return lookup(f.users, args[1].(string))
	case strings.Contains(sql, "INSERT INTO users"):
		return insert(f.users, args[2].(string))
	}
	return fakeRow{err: fmt.Errorf("unexpected query: %s", sql)}
}

func (f *fakeQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if completed, ok := args[4].(*time.Time); ok && completed != nil {
		f.tasks = append(f.tasks, *completed)
	} else {
		f.tasks = append(f.tasks, time.Time{})
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func TestSeedIsIdempotent(t *testing.T) {
	q := newFakeQuerier()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	dataset := DemoDataset()

	first, err := Seed(context.Background(), q, "tenant-1", dataset, now)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if first.Departments != 2 || first.Users != 5 || first.Tasks == 0 {
		t.Fatalf("unexpected first result: %+v", first)
	}

	second, err := Seed(context.Background(), q, "tenant-1", dataset, now)
	if err != nil {
		t.Fatalf("reseed: %v", err)
	}
	if second.Tasks != 0 {
		t.Fatalf("expected reseed to add no tasks, got %d", second.Tasks)
	}
	if len(q.departments) != 2 || len(q.users) != 5 {
		t.Fatalf("expected no duplicate rows, got %d departments %d users", len(q.departments), len(q.users))
	}
}

func TestSeedNeverCompletesInTheFuture(t *testing.T) {
	q := newFakeQuerier()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	if _, err := Seed(context.Background(), q, "tenant-1", DemoDataset(), now); err != nil {
		t.Fatalf("seed: %v", err)
	}
	for _, completed := range q.tasks {
		if completed.After(now) {
			t.Fatalf("completion %s is after now", completed)
		}
	}
}

func TestSeedRequiresTenant(t *testing.T) {
	if _, err := Seed(context.Background(), newFakeQuerier(), " ", DemoDataset(), time.Now()); err == nil {
		t.Fatal("expected missing tenant to fail")
	}
}
