package sqlite

import (
	"context"
	"database/sql"

	"github.com/taskdeck/taskdeck/internal/api/domain"
)

type todosRepo struct {
	db *sql.DB
}

const todoColumns = `id, title, message, complete, created_at, updated_at`

func scanTodo(row interface{ Scan(...any) error }) (domain.Todo, error) {
	var t domain.Todo
	err := row.Scan(&t.ID, &t.Title, &t.Message, &t.Complete, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r *todosRepo) ListTodos(ctx context.Context) ([]domain.Todo, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+todoColumns+` FROM todos ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := make([]domain.Todo, 0)
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func (r *todosRepo) GetTodoByID(ctx context.Context, id int64) (domain.Todo, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+todoColumns+` FROM todos WHERE id = ?`, id)
	t, err := scanTodo(row)
	if err != nil {
		return domain.Todo{}, mapNotFound(err)
	}
	return t, nil
}

func (r *todosRepo) CreateTodo(ctx context.Context, t domain.Todo) (domain.Todo, error) {
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO todos (title, message, complete) VALUES (?, ?, ?)
		 RETURNING `+todoColumns,
		t.Title, t.Message, t.Complete,
	)
	created, err := scanTodo(row)
	if err != nil {
		return domain.Todo{}, err
	}
	return created, nil
}

func (r *todosRepo) UpdateTodo(ctx context.Context, t domain.Todo) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE todos SET title = ?, message = ?, complete = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		t.Title, t.Message, t.Complete, t.ID,
	)
	return requireRowTouched(res, err)
}

func (r *todosRepo) DeleteTodo(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	return requireRowTouched(res, err)
}
