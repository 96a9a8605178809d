package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/njb1/what2do/internal/domain"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	content TEXT NOT NULL,
	completed BOOLEAN NOT NULL DEFAULT 0,
	date_created TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
)`

// TaskRepository stores tasks in a SQLite database file (or ":memory:").
type TaskRepository struct {
	db *sql.DB
}

// New opens the database at path and creates the tasks table if needed.
func New(path string) (*TaskRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// One connection: sqlite has a single writer and ":memory:" is per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tasks table: %w", err)
	}
	return &TaskRepository{db: db}, nil
}

func (r *TaskRepository) Close() error {
	return r.db.Close()
}

func (r *TaskRepository) List(ctx context.Context) ([]*domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, content, completed, date_created FROM tasks ORDER BY date_created DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]*domain.Task, 0)
	for rows.Next() {
		var (
			t       domain.Task
			created string
		)
		if err := rows.Scan(&t.ID, &t.Content, &t.Completed, &created); err != nil {
			return nil, err
		}
		if t.DateCreated, err = parseTime(created); err != nil {
			return nil, err
		}
		res = append(res, &t)
	}
	return res, rows.Err()
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	var created string
	err := r.db.QueryRowContext(ctx, `INSERT INTO tasks (content) VALUES (?) RETURNING id, completed, date_created`, t.Content).
		Scan(&t.ID, &t.Completed, &created)
	if err != nil {
		return err
	}
	t.DateCreated, err = parseTime(created)
	return err
}

func (r *TaskRepository) SetCompleted(ctx context.Context, id int64, completed bool) (int64, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE tasks SET completed = ? WHERE id = ?`, completed, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *TaskRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date_created %q: %w", s, err)
	}
	return t, nil
}
