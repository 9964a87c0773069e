package store

import (
	"context"
	"errors"

	"github.com/taskdeck/taskdeck/internal/api/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Todos() Todos

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Users interface {
	// ListUsers returns all users ordered by id ascending.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// GetUserByID returns a user by its store-assigned identity.
	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// GetUserByEmail is used during login and the register existence check.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new row and returns it with the store-assigned id.
	// A violated email uniqueness constraint reports ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)

	// UpdateUser mutates name and phone number.
	UpdateUser(ctx context.Context, id int64, name, phoneNumber string) error

	// UpdatePasswordHash sets the password hash (bcrypt).
	UpdatePasswordHash(ctx context.Context, id int64, newHash string) error

	// DeleteUser removes a user row.
	DeleteUser(ctx context.Context, id int64) error
}

type Todos interface {
	// ListTodos returns all todos ordered by id ascending.
	ListTodos(ctx context.Context) ([]domain.Todo, error)

	// GetTodoByID returns a todo by id.
	GetTodoByID(ctx context.Context, id int64) (domain.Todo, error)

	// CreateTodo inserts a new row and returns it with the store-assigned id.
	CreateTodo(ctx context.Context, t domain.Todo) (domain.Todo, error)

	// UpdateTodo replaces title, message and complete.
	UpdateTodo(ctx context.Context, t domain.Todo) error

	// DeleteTodo removes a todo row.
	DeleteTodo(ctx context.Context, id int64) error
}
