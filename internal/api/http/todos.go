package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/taskdeck/taskdeck/internal/api/domain"
	"github.com/taskdeck/taskdeck/internal/api/service"
	"github.com/taskdeck/taskdeck/internal/api/store"
	"github.com/taskdeck/taskdeck/pkg/apisdk"
	"github.com/taskdeck/taskdeck/pkg/httpx"
	"github.com/taskdeck/taskdeck/pkg/slogx"
)

// TodoHandler serves the todo CRUD endpoints. All routes sit behind the
// bearer token gate.
type TodoHandler struct {
	TodoService *service.TodoService
}

// HandleList godoc
//
//	@Summary	List todos
//	@Tags		Todos
//	@Produce	json
//	@Success	200	{array}		apisdk.Todo
//	@Failure	401	{object}	apisdk.APIError
//	@Failure	500	{object}	apisdk.APIError
//	@Security	BearerAuth
//	@Router		/api/todos [get]
func (h *TodoHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	todos, err := h.TodoService.ListTodos(ctx)
	if err != nil {
		log.Error("list todos failed", "err", err)
		apisdk.ErrStoreFailure.WriteError(w)
		return
	}

	out := make([]apisdk.Todo, 0, len(todos))
	for _, t := range todos {
		out = append(out, todoView(t))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet godoc
//
//	@Summary	Get a todo
//	@Tags		Todos
//	@Produce	json
//	@Param		id	path		int	true	"Todo id"
//	@Success	200	{object}	apisdk.Todo
//	@Failure	401	{object}	apisdk.APIError
//	@Failure	404	{object}	apisdk.APIError
//	@Failure	500	{object}	apisdk.APIError
//	@Security	BearerAuth
//	@Router		/api/todos/{id} [get]
func (h *TodoHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	todo, err := h.TodoService.GetTodo(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			apisdk.NewNotFound("Todo not found").WriteError(w)
			return
		}
		log.Error("get todo failed", "err", err)
		apisdk.ErrStoreFailure.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, todoView(todo))
}

// HandleCreate godoc
//
//	@Summary	Create a todo
//	@Tags		Todos
//	@Accept		json
//	@Produce	json
//	@Param		body	body		apisdk.TodoRequest	true	"Todo fields"
//	@Success	201		{object}	apisdk.TodoCreatedResponse
//	@Failure	400		{object}	apisdk.APIError
//	@Failure	401		{object}	apisdk.APIError
//	@Failure	500		{object}	apisdk.APIError
//	@Security	BearerAuth
//	@Router		/api/todos [post]
func (h *TodoHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req apisdk.TodoRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		apisdk.NewValidationError().WriteError(w)
		return
	}
	if fields := requiredFields(map[string]string{"title": req.Title}); len(fields) > 0 {
		apisdk.NewValidationError(fields...).WriteError(w)
		return
	}

	todo, err := h.TodoService.CreateTodo(ctx, req.Title, req.Message)
	if err != nil {
		log.Error("create todo failed", "err", err)
		apisdk.ErrStoreFailure.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, apisdk.TodoCreatedResponse{
		Message: "Todo added",
		Todo:    todoView(todo),
	})
}

// HandleUpdate godoc
//
//	@Summary	Update a todo
//	@Tags		Todos
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int					true	"Todo id"
//	@Param		body	body		apisdk.TodoRequest	true	"Todo fields"
//	@Success	200		{object}	apisdk.MessageResponse
//	@Failure	400		{object}	apisdk.APIError
//	@Failure	401		{object}	apisdk.APIError
//	@Failure	404		{object}	apisdk.APIError
//	@Failure	500		{object}	apisdk.APIError
//	@Security	BearerAuth
//	@Router		/api/todos/{id} [put]
func (h *TodoHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req apisdk.TodoRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		apisdk.NewValidationError().WriteError(w)
		return
	}
	if fields := requiredFields(map[string]string{"title": req.Title}); len(fields) > 0 {
		apisdk.NewValidationError(fields...).WriteError(w)
		return
	}

	if _, err := h.TodoService.UpdateTodo(ctx, id, req.Title, req.Message, req.Complete); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			apisdk.NewNotFound("Todo not found").WriteError(w)
			return
		}
		log.Error("update todo failed", "err", err)
		apisdk.ErrStoreFailure.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, apisdk.MessageResponse{Message: "Todo updated successfully."})
}

// HandleDelete godoc
//
//	@Summary	Delete a todo
//	@Tags		Todos
//	@Produce	json
//	@Param		id	path		int	true	"Todo id"
//	@Success	200	{object}	apisdk.MessageResponse
//	@Failure	401	{object}	apisdk.APIError
//	@Failure	404	{object}	apisdk.APIError
//	@Failure	500	{object}	apisdk.APIError
//	@Security	BearerAuth
//	@Router		/api/todos/{id} [delete]
func (h *TodoHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.TodoService.DeleteTodo(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			apisdk.NewNotFound("Todo not found").WriteError(w)
			return
		}
		log.Error("delete todo failed", "err", err)
		apisdk.ErrStoreFailure.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, apisdk.MessageResponse{Message: "Todo deleted successfully."})
}

func todoView(t domain.Todo) apisdk.Todo {
	return apisdk.Todo{
		ID:       t.ID,
		Title:    t.Title,
		Message:  t.Message,
		Complete: t.Complete,
	}
}

// pathID parses the {id} path segment, writing a validation error on failure.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		apisdk.NewValidationError(apisdk.FieldError{Field: "id", Msg: "must be a positive integer"}).WriteError(w)
		return 0, false
	}
	return id, true
}
