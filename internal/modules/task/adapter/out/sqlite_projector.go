package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"moonlight/internal/modules/task/domain"
	taskout "moonlight/internal/modules/task/port/out"

	_ "modernc.org/sqlite"
)

// SQLiteTaskProjector mirrors the task collection into a small sqlite
// index so date queries do not rescan the whole state document.
type SQLiteTaskProjector struct {
	db *sql.DB
}

func NewSQLiteTaskProjector(dbPath string) (taskout.TaskIndexProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteTaskProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteTaskProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS tasks (
  id TEXT PRIMARY KEY,
  goal_id TEXT NOT NULL,
  title TEXT NOT NULL,
  scheduled_date TEXT NOT NULL,
  status TEXT NOT NULL,
  difficulty TEXT NOT NULL,
  estimated_minutes INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tasks_scheduled_date ON tasks (scheduled_date);
CREATE INDEX IF NOT EXISTS idx_tasks_goal_id ON tasks (goal_id);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create tasks table: %w", err)
	}
	return nil
}

func (s *SQLiteTaskProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("reset tasks: %w", err)
	}
	return nil
}

func (s *SQLiteTaskProjector) Upsert(ctx context.Context, task domain.Task) error {
	const stmt = `
INSERT INTO tasks (id, goal_id, title, scheduled_date, status, difficulty, estimated_minutes)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  goal_id=excluded.goal_id,
  title=excluded.title,
  scheduled_date=excluded.scheduled_date,
  status=excluded.status,
  difficulty=excluded.difficulty,
  estimated_minutes=excluded.estimated_minutes;
`
	_, err := s.db.ExecContext(ctx, stmt,
		task.ID,
		task.GoalID,
		task.Title,
		task.ScheduledDate,
		string(task.Status),
		string(task.Difficulty),
		task.EstimatedMinutes,
	)
	if err != nil {
		return fmt.Errorf("upsert task: %w", err)
	}
	return nil
}

func (s *SQLiteTaskProjector) DeleteByGoal(ctx context.Context, goalID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE goal_id = ?`, goalID); err != nil {
		return fmt.Errorf("delete tasks for goal %s: %w", goalID, err)
	}
	return nil
}

// ScheduledOn orders pending tasks first, then by effort ascending so
// quick wins surface at the top of the day.
func (s *SQLiteTaskProjector) ScheduledOn(ctx context.Context, date string) ([]string, error) {
	const query = `
SELECT id FROM tasks
WHERE scheduled_date = ?
ORDER BY
  CASE status WHEN 'pending' THEN 0 ELSE 1 END,
  estimated_minutes ASC,
  id ASC;
`
	return s.queryIDs(ctx, query, date)
}

func (s *SQLiteTaskProjector) PendingOn(ctx context.Context, date string) ([]string, error) {
	const query = `
SELECT id FROM tasks
WHERE scheduled_date = ? AND status = 'pending'
ORDER BY estimated_minutes ASC, id ASC;
`
	return s.queryIDs(ctx, query, date)
}

func (s *SQLiteTaskProjector) queryIDs(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query task index: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan task id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate task index: %w", err)
	}
	return ids, nil
}
