//go:build integration

package store

import (
	"context"
	"os"
	"testing"
	"time"
)

func setupTestDB(t *testing.T) *PostgresStore {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	s, err := NewPostgresStore(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}

	t.Cleanup(func() {
		// Truncate in dependency order
		_, _ = s.pool.Exec(ctx, "TRUNCATE triage_task_dependencies CASCADE")
		_, _ = s.pool.Exec(ctx, "TRUNCATE triage_tasks CASCADE")
		s.Close()
	})

	return s
}

func TestCreateAndGetTask(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	task := &Task{
		Title:          "integration round-trip",
		DueDate:        time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		EstimatedHours: 3.5,
		Importance:     6,
	}

	if err := s.CreateTask(ctx, task); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if task.ID == 0 {
		t.Fatal("expected non-zero task ID after create")
	}
	if task.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}

	got, err := s.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected task, got nil")
	}
	if got.Title != task.Title {
		t.Errorf("expected %q, got %q", task.Title, got.Title)
	}
	if got.Importance != 6 {
		t.Errorf("expected importance 6, got %d", got.Importance)
	}
}

func TestGetTaskNotFound(t *testing.T) {
	s := setupTestDB(t)

	got, err := s.GetTask(context.Background(), 999999)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing task, got %+v", got)
	}
}

func TestListTaskRecordsAssemblesDependencies(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	blocker := &Task{Title: "blocker", DueDate: time.Now().AddDate(0, 0, 3), EstimatedHours: 1, Importance: 8}
	blocked := &Task{Title: "blocked", DueDate: time.Now().AddDate(0, 0, 7), EstimatedHours: 2, Importance: 5}
	for _, task := range []*Task{blocker, blocked} {
		if err := s.CreateTask(ctx, task); err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}
	}

	dep := &Dependency{TaskID: blocked.ID, DependsOn: blocker.ID}
	if err := s.CreateDependency(ctx, dep); err != nil {
		t.Fatalf("CreateDependency failed: %v", err)
	}
	if dep.ID == 0 {
		t.Fatal("expected non-zero dependency ID")
	}

	records, err := s.ListTaskRecords(ctx)
	if err != nil {
		t.Fatalf("ListTaskRecords failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	for _, r := range records {
		switch r.ID {
		case blocked.ID:
			if len(r.Dependencies) != 1 || r.Dependencies[0] != blocker.ID {
				t.Errorf("expected blocked to depend on %d, got %v", blocker.ID, r.Dependencies)
			}
		case blocker.ID:
			if len(r.Dependencies) != 0 {
				t.Errorf("expected blocker to have no dependencies, got %v", r.Dependencies)
			}
		}
	}
}

func TestGetStats(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	overdue := &Task{Title: "overdue", DueDate: time.Now().AddDate(0, 0, -2), EstimatedHours: 4, Importance: 5}
	if err := s.CreateTask(ctx, overdue); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	stats, err := s.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.TotalTasks != 1 {
		t.Errorf("expected 1 task, got %d", stats.TotalTasks)
	}
	if stats.OverdueTasks != 1 {
		t.Errorf("expected 1 overdue task, got %d", stats.OverdueTasks)
	}
}
