package sqlite

import (
	"context"
	"database/sql"

	"github.com/taskdeck/taskdeck/internal/api/domain"
)

type usersRepo struct {
	db *sql.DB
}

const userColumns = `id, name, email, phonenumber, COALESCE(password, ''), created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PhoneNumber, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	var password any
	if u.PasswordHash != "" {
		password = u.PasswordHash
	}

	row := r.db.QueryRowContext(ctx,
		`INSERT INTO users (name, email, phonenumber, password) VALUES (?, ?, ?, ?)
		 RETURNING `+userColumns,
		u.Name, u.Email, u.PhoneNumber, password,
	)
	created, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapConstraint(err)
	}
	return created, nil
}

func (r *usersRepo) UpdateUser(ctx context.Context, id int64, name, phoneNumber string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET name = ?, phonenumber = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		name, phoneNumber, id,
	)
	return requireRowTouched(res, err)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, id int64, newHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		newHash, id,
	)
	return requireRowTouched(res, err)
}

func (r *usersRepo) DeleteUser(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	return requireRowTouched(res, err)
}
