package service

import (
	"context"
	"strings"

	"github.com/taskdeck/taskdeck/internal/api/domain"
	"github.com/taskdeck/taskdeck/internal/api/store"
)

// TodoService covers the todo CRUD endpoints.
type TodoService struct {
	Store store.Store
}

func (s *TodoService) ListTodos(ctx context.Context) ([]domain.Todo, error) {
	return s.Store.Todos().ListTodos(ctx)
}

func (s *TodoService) GetTodo(ctx context.Context, todoID int64) (domain.Todo, error) {
	return s.Store.Todos().GetTodoByID(ctx, todoID)
}

func (s *TodoService) CreateTodo(ctx context.Context, title, message string) (domain.Todo, error) {
	return s.Store.Todos().CreateTodo(ctx, domain.Todo{
		Title:   strings.TrimSpace(title),
		Message: message,
	})
}

// UpdateTodo replaces the todo's title, message and completion flag.
func (s *TodoService) UpdateTodo(ctx context.Context, todoID int64, title, message string, complete bool) (domain.Todo, error) {
	err := s.Store.Todos().UpdateTodo(ctx, domain.Todo{
		ID:       todoID,
		Title:    strings.TrimSpace(title),
		Message:  message,
		Complete: complete,
	})
	if err != nil {
		return domain.Todo{}, err
	}
	return s.Store.Todos().GetTodoByID(ctx, todoID)
}

func (s *TodoService) DeleteTodo(ctx context.Context, todoID int64) error {
	return s.Store.Todos().DeleteTodo(ctx, todoID)
}
