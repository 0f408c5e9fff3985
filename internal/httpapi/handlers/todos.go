package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/todonaut/todonaut/internal/httpapi/middleware"
	"github.com/todonaut/todonaut/pkg/logger"
	"github.com/todonaut/todonaut/pkg/store"
	"github.com/todonaut/todonaut/pkg/types"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 50
)

// ListTodos returns one page of the user's locally cached todos.
func (h *Handlers) ListTodos(c *gin.Context) {
	userID := c.GetInt(middleware.UserIDKey)

	page := parsePositiveInt(c.Query("page"), defaultPage)
	limit := parsePositiveInt(c.Query("limit"), defaultLimit)
	if limit > maxLimit {
		limit = maxLimit
	}
	skip := (page - 1) * limit

	all, err := h.store.Todos.List(c.Request.Context(), userID)
	if err != nil {
		h.storeError(c, err)
		return
	}

	total := len(all)
	slice := []types.Todo{}
	if skip < total {
		end := skip + limit
		if end > total {
			end = total
		}
		slice = all[skip:end]
	}

	c.JSON(http.StatusOK, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"todos": slice,
	})
}

// CreateTodo inserts a new todo at the front of the user's list.
func (h *Handlers) CreateTodo(c *gin.Context) {
	userID := c.GetInt(middleware.UserIDKey)

	input := types.TodoInput{}
	if err := c.ShouldBindJSON(&input); err != nil || input.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing todo text"})
		return
	}

	created, err := h.store.Todos.Create(c.Request.Context(), userID, input)
	if err != nil {
		h.storeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetTodo returns one todo by id.
func (h *Handlers) GetTodo(c *gin.Context) {
	userID := c.GetInt(middleware.UserIDKey)

	id, ok := pathID(c)
	if !ok {
		return
	}

	todo, err := h.store.Todos.Get(c.Request.Context(), userID, id)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, todo)
}

// UpdateTodo merges the provided fields into an existing todo.
func (h *Handlers) UpdateTodo(c *gin.Context) {
	userID := c.GetInt(middleware.UserIDKey)

	id, ok := pathID(c)
	if !ok {
		return
	}

	patch := types.TodoPatch{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid body"})
		return
	}

	updated, err := h.store.Todos.Update(c.Request.Context(), userID, id, patch)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteTodo removes a todo by id.
func (h *Handlers) DeleteTodo(c *gin.Context) {
	userID := c.GetInt(middleware.UserIDKey)

	id, ok := pathID(c)
	if !ok {
		return
	}

	removed, err := h.store.Todos.Delete(c.Request.Context(), userID, id)
	if err != nil {
		h.storeError(c, err)
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// pathID parses the :id path segment, answering 400 itself on junk input.
func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return 0, false
	}
	return id, true
}

func parsePositiveInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	if n < 1 {
		return 1
	}
	return n
}

func (h *Handlers) storeError(c *gin.Context, err error) {
	if errors.Is(err, store.ErrTodoNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		return
	}
	logger.Logger(c.Request.Context()).WithError(err).Error("store operation failed")
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal error"})
}
