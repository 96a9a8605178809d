package repository

import (
	"context"

	"github.com/njb1/what2do/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TaskRepository stores tasks in PostgreSQL.
type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) List(ctx context.Context) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx, `SELECT id, content, completed, date_created FROM tasks ORDER BY date_created DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]*domain.Task, 0)
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.Content, &t.Completed, &t.DateCreated); err != nil {
			return nil, err
		}
		res = append(res, &t)
	}
	return res, rows.Err()
}

// Create inserts t and fills in the store-assigned id, completed flag and creation time.
func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	return r.db.QueryRow(ctx, `INSERT INTO tasks (content) VALUES ($1) RETURNING id, completed, date_created`, t.Content).Scan(&t.ID, &t.Completed, &t.DateCreated)
}

// SetCompleted returns the number of rows changed; zero means no task has that id.
func (r *TaskRepository) SetCompleted(ctx context.Context, id int64, completed bool) (int64, error) {
	tag, err := r.db.Exec(ctx, `UPDATE tasks SET completed = $1 WHERE id = $2`, completed, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *TaskRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
