package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ytakahashi/todo-api/internal/auth"
	"github.com/ytakahashi/todo-api/internal/models"
	"github.com/ytakahashi/todo-api/internal/services"
)

type TodoHandler struct {
	todos *services.TodoService
}

func NewTodoHandler(todos *services.TodoService) *TodoHandler {
	return &TodoHandler{
		todos: todos,
	}
}

// Register mounts the to-do routes behind the given auth middleware.
func (h *TodoHandler) Register(e *echo.Echo, authMiddleware echo.MiddlewareFunc) {
	g := e.Group("/todos", authMiddleware)
	g.GET("", h.List)
	g.POST("", h.Create)
	g.PATCH("/:todoId", h.Update)
	g.DELETE("/:todoId", h.Delete)
	g.POST("/:todoId/attachment", h.Attach)
}

func (h *TodoHandler) List(c echo.Context) error {
	todos, err := h.todos.ListTodos(c.Request().Context(), auth.UserID(c))
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{"items": todos})
}

func (h *TodoHandler) Create(c echo.Context) error {
	var req models.CreateTodoRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	todo, err := h.todos.CreateTodo(c.Request().Context(), auth.UserID(c), req)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]any{"item": todo})
}

func (h *TodoHandler) Update(c echo.Context) error {
	var patch models.UpdateTodoRequest
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	err := h.todos.UpdateTodo(c.Request().Context(), auth.UserID(c), c.Param("todoId"), patch)
	if err != nil {
		return h.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *TodoHandler) Delete(c echo.Context) error {
	var expected *int64
	if raw := c.QueryParam("version"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid version"})
		}
		expected = &v
	}

	err := h.todos.DeleteTodo(c.Request().Context(), auth.UserID(c), c.Param("todoId"), expected)
	if err != nil {
		return h.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// Attach issues a signed upload URL for a fresh attachment id and
// records its retrieval URL on the item, both gated on ownership.
func (h *TodoHandler) Attach(c echo.Context) error {
	ctx := c.Request().Context()
	userID := auth.UserID(c)
	todoID := c.Param("todoId")
	attachmentID := uuid.New().String()

	uploadURL, err := h.todos.UploadURLForTodo(ctx, userID, todoID, attachmentID)
	if err != nil {
		return h.fail(c, err)
	}

	attachmentURL, err := h.todos.AttachTodo(ctx, userID, todoID, attachmentID)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"uploadUrl":     uploadURL,
		"attachmentUrl": attachmentURL,
	})
}

// fail maps service errors onto HTTP status codes. Unrecognized errors
// are adapter failures and come back as 500.
func (h *TodoHandler) fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrTodoNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, services.ErrNotOwner):
		return c.JSON(http.StatusForbidden, map[string]string{"error": err.Error()})
	case errors.Is(err, services.ErrEmptyName):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, services.ErrVersionConflict), errors.Is(err, services.ErrTodoExists):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		log.Printf("Service error: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
