package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const taskColumns = `id, title, due_date, estimated_hours, importance, created_at, updated_at`

func (s *PostgresStore) CreateTask(ctx context.Context, task *Task) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO triage_tasks (title, due_date, estimated_hours, importance)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`,
		task.Title, task.DueDate, task.EstimatedHours, task.Importance,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
}

func (s *PostgresStore) GetTask(ctx context.Context, id int64) (*Task, error) {
	t := &Task{}
	err := s.pool.QueryRow(ctx, `
		SELECT `+taskColumns+`
		FROM triage_tasks WHERE id = $1`, id,
	).Scan(&t.ID, &t.Title, &t.DueDate, &t.EstimatedHours, &t.Importance, &t.CreatedAt, &t.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *PostgresStore) ListTasks(ctx context.Context, filter TaskFilter) ([]*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM triage_tasks WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.DueBefore != nil {
		n++
		query += fmt.Sprintf(" AND due_date < $%d", n)
		args = append(args, *filter.DueBefore)
	}
	if filter.MinImportance > 0 {
		n++
		query += fmt.Sprintf(" AND importance >= $%d", n)
		args = append(args, filter.MinImportance)
	}

	query += " ORDER BY due_date ASC, id ASC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	n++
	query += fmt.Sprintf(" LIMIT $%d", n)
	args = append(args, limit)

	if filter.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTasks(rows)
}

func (s *PostgresStore) UpdateTask(ctx context.Context, task *Task) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE triage_tasks SET
			title = $2, due_date = $3, estimated_hours = $4, importance = $5,
			updated_at = now()
		WHERE id = $1`,
		task.ID, task.Title, task.DueDate, task.EstimatedHours, task.Importance,
	)
	return err
}

func (s *PostgresStore) DeleteTask(ctx context.Context, id int64) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM triage_tasks WHERE id = $1`, id)
	return err
}

// ListTaskRecords loads every task plus its dependency edges in two
// queries and assembles the records in memory.
func (s *PostgresStore) ListTaskRecords(ctx context.Context) ([]*Task, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM triage_tasks ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks, err := scanTasks(rows)
	if err != nil {
		return nil, err
	}

	deps, err := s.ListDependencies(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}
	for _, d := range deps {
		if t, ok := byID[d.TaskID]; ok {
			t.Dependencies = append(t.Dependencies, d.DependsOn)
		}
	}
	return tasks, nil
}

func (s *PostgresStore) CreateDependency(ctx context.Context, dep *Dependency) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO triage_task_dependencies (task_id, depends_on)
		VALUES ($1, $2)
		RETURNING id, created_at`,
		dep.TaskID, dep.DependsOn,
	).Scan(&dep.ID, &dep.CreatedAt)
}

func (s *PostgresStore) DeleteDependency(ctx context.Context, id int64) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM triage_task_dependencies WHERE id = $1`, id)
	return err
}

func (s *PostgresStore) ListDependenciesForTask(ctx context.Context, taskID int64) ([]*Dependency, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, task_id, depends_on, created_at
		FROM triage_task_dependencies WHERE task_id = $1
		ORDER BY id ASC`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDependencies(rows)
}

func (s *PostgresStore) ListDependencies(ctx context.Context) ([]*Dependency, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, task_id, depends_on, created_at
		FROM triage_task_dependencies
		ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDependencies(rows)
}

func (s *PostgresStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	err := s.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM triage_tasks),
			(SELECT COUNT(*) FROM triage_task_dependencies),
			(SELECT COUNT(*) FROM triage_tasks WHERE due_date < CURRENT_DATE),
			COALESCE((SELECT AVG(estimated_hours) FROM triage_tasks), 0)`,
	).Scan(&stats.TotalTasks, &stats.TotalDependencies, &stats.OverdueTasks, &stats.AvgEstimatedHours)
	return stats, err
}

func scanTasks(rows pgx.Rows) ([]*Task, error) {
	var tasks []*Task
	for rows.Next() {
		t := &Task{}
		if err := rows.Scan(&t.ID, &t.Title, &t.DueDate, &t.EstimatedHours, &t.Importance, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func scanDependencies(rows pgx.Rows) ([]*Dependency, error) {
	var deps []*Dependency
	for rows.Next() {
		d := &Dependency{}
		if err := rows.Scan(&d.ID, &d.TaskID, &d.DependsOn, &d.CreatedAt); err != nil {
			return nil, err
		}
		deps = append(deps, d)
	}
	return deps, rows.Err()
}
