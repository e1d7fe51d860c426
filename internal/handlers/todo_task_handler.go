package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"todolist/internal/i18n"
	"todolist/internal/logger"
	"todolist/internal/models"
	"todolist/internal/services"
	v "todolist/internal/validation"
)

type TodoTaskHandler struct {
	base
	tasks  services.TodoTaskService
	exists v.ExistenceChecker
}

func NewTodoTaskHandler(tasks services.TodoTaskService, exists v.ExistenceChecker, catalog *i18n.Catalog, log logger.Logger) *TodoTaskHandler {
	return &TodoTaskHandler{base: base{catalog: catalog, log: log}, tasks: tasks, exists: exists}
}

// POST /todo-task
func (h *TodoTaskHandler) Create(c *gin.Context) {
	user, ok := h.user(c)
	if !ok {
		return
	}
	b, ok := h.bindBody(c)
	if !ok {
		return
	}
	if !h.validate(c,
		v.F("name", b.value("name"), v.IsString(), v.NotEmpty(), v.MaxLength(50), v.DontExist(h.exists, "todo_tasks", "name")),
		v.F("description", b.value("description"), v.IsString(), v.NotEmpty()),
	) {
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), models.CreateTodoTaskRequest{
		Name:        b.str("name"),
		Description: b.str("description"),
	}, user.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// PATCH /todo-task
func (h *TodoTaskHandler) Update(c *gin.Context) {
	user, ok := h.user(c)
	if !ok {
		return
	}
	b, ok := h.bindBody(c)
	if !ok {
		return
	}
	if !h.validate(c,
		v.F("id", b.value("id"), v.IsNumber(), v.GreaterThanZero()),
		v.F("name", b.value("name"), v.IsString(), v.NotEmpty(), v.MaxLength(50)),
		v.F("description", b.value("description"), v.IsString(), v.NotEmpty()),
		v.F("status", b.value("status"), v.IsString(), v.NotEmpty(), v.OneOf(models.TodoTaskStatuses...)),
	) {
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), models.UpdateTodoTaskRequest{
		ID:          b.int64("id"),
		Name:        b.str("name"),
		Description: b.str("description"),
		Status:      models.TodoTaskStatus(b.str("status")),
	}, user.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// GET /todo-task/all
func (h *TodoTaskHandler) FindAll(c *gin.Context) {
	user, ok := h.user(c)
	if !ok {
		return
	}
	tasks, err := h.tasks.FindAll(c.Request.Context(), user.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// GET /todo-task/all/:status
func (h *TodoTaskHandler) FindAllWithStatus(c *gin.Context) {
	user, ok := h.user(c)
	if !ok {
		return
	}
	status := c.Param("status")
	if !isTaskStatus(status) {
		h.respondError(c, services.BadRequest(fmt.Sprintf(
			"Validation failed (enum string is expected). Param status (%s)", status)))
		return
	}
	tasks, err := h.tasks.FindAllWithStatus(c.Request.Context(), user.ID, models.TodoTaskStatus(status))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func isTaskStatus(s string) bool {
	for _, st := range models.TodoTaskStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// DELETE /todo-task/:id
func (h *TodoTaskHandler) Delete(c *gin.Context) {
	user, ok := h.user(c)
	if !ok {
		return
	}
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}
	task, err := h.tasks.Delete(c.Request.Context(), id, user.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// GET /todo-task/export
// @Summary   Export my tasks as PDF
// @Tags      todo-task
// @Produce   application/pdf
// @Security  BearerAuth
// @Success   200  {file}    binary
// @Failure   401  {object}  map[string]interface{}
// @Router    /todo-task/export [get]
func (h *TodoTaskHandler) Export(c *gin.Context) {
	user, ok := h.user(c)
	if !ok {
		return
	}
	out, err := h.tasks.ExportPDF(c.Request.Context(), user)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="todo-tasks-%d.pdf"`, user.ID))
	c.Data(http.StatusOK, "application/pdf", out)
}
