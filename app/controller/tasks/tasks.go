// Package tasks exposes the task engine over HTTP. Tasks are addressed by
// their index in the unfiltered collection, as returned by the list route.
package tasks

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"taskmanager/domain/task"
	"taskmanager/internal/export"
)

type Engine interface {
	CreateTask(ctx context.Context, d task.Draft) (task.Task, error)
	UpdateTask(ctx context.Context, index int, patch task.Patch) (task.Task, error)
	ToggleComplete(ctx context.Context, index int) (task.Task, error)
	DeleteTask(ctx context.Context, index int) error
	SetFilter(ctx context.Context, f task.Filter) error
	Filter() task.Filter
	VisibleTasks() []task.IndexedTask
	Dirty() bool

	Draft() task.Draft
	SetDraft(d task.Draft)
	SubmitDraft(ctx context.Context) (task.Task, error)
	BeginEdit(index int) error
	EditingIndex() (int, bool)
	CancelEdit()
	SaveEdit(ctx context.Context, patch task.Patch) (task.Task, error)
}

type (
	Handler struct {
		engine Engine
	}
	TaskRequest struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Priority    string `json:"priority" validate:"omitempty,oneof=low medium high"`
		DueDate     string `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	}
	// PatchRequest leaves absent fields untouched. An empty dueDate clears it.
	PatchRequest struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Priority    *string `json:"priority" validate:"omitempty,oneof=low medium high"`
		DueDate     *string `json:"dueDate" validate:"omitempty,duedate"`
	}
	FilterRequest struct {
		Filter string `json:"filter" validate:"required"`
	}
	ListResponse struct {
		Filter task.Filter        `json:"filter"`
		Tasks  []task.IndexedTask `json:"tasks"`
		Dirty  bool               `json:"dirty"`
	}
	FilterResponse struct {
		Filter task.Filter `json:"filter"`
	}
)

func NewHandler(engine Engine) *Handler {
	return &Handler{engine: engine}
}

func (r TaskRequest) draft() task.Draft {
	return task.Draft{
		Title:       r.Title,
		Description: r.Description,
		Priority:    task.Priority(r.Priority),
		DueDate:     r.DueDate,
	}
}

func (r PatchRequest) patch() task.Patch {
	p := task.Patch{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
	}
	if r.Priority != nil {
		priority := task.Priority(*r.Priority)
		p.Priority = &priority
	}
	return p
}

func (h Handler) Index(c echo.Context) error {
	ctx := c.Request().Context()

	if f := c.QueryParam("filter"); f != "" {
		if err := h.engine.SetFilter(ctx, task.Filter(f)); err != nil {
			return errorResponse(c, err)
		}
	}

	return c.JSON(http.StatusOK, h.list())
}

func (h Handler) list() ListResponse {
	return ListResponse{
		Filter: h.engine.Filter(),
		Tasks:  h.engine.VisibleTasks(),
		Dirty:  h.engine.Dirty(),
	}
}

func (h Handler) Create(c echo.Context) error {
	var req TaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	created, err := h.engine.CreateTask(c.Request().Context(), req.draft())
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, created)
}

func (h Handler) Update(c echo.Context) error {
	index, err := indexParam(c)
	if err != nil {
		return err
	}

	var req PatchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	updated, err := h.engine.UpdateTask(c.Request().Context(), index, req.patch())
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, updated)
}

func (h Handler) Toggle(c echo.Context) error {
	index, err := indexParam(c)
	if err != nil {
		return err
	}

	toggled, err := h.engine.ToggleComplete(c.Request().Context(), index)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, toggled)
}

func (h Handler) Delete(c echo.Context) error {
	index, err := indexParam(c)
	if err != nil {
		return err
	}

	if err := h.engine.DeleteTask(c.Request().Context(), index); err != nil {
		return errorResponse(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h Handler) GetFilter(c echo.Context) error {
	return c.JSON(http.StatusOK, FilterResponse{Filter: h.engine.Filter()})
}

func (h Handler) PutFilter(c echo.Context) error {
	var req FilterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.engine.SetFilter(c.Request().Context(), task.Filter(req.Filter)); err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, FilterResponse{Filter: h.engine.Filter()})
}

func (h Handler) Export(c echo.Context) error {
	format := c.QueryParam("format")
	if format == "" {
		format = "json"
	}

	data, err := export.Export(h.engine.VisibleTasks(), format)
	if err != nil {
		if errors.Is(err, export.ErrUnknownFormat) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to export tasks: " + err.Error(),
		})
	}

	return c.Blob(http.StatusOK, export.ContentType(format), data)
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/tasks", h.Index)
	g.POST("/tasks", h.Create)
	g.PATCH("/tasks/:index", h.Update)
	g.DELETE("/tasks/:index", h.Delete)
	g.POST("/tasks/:index/toggle", h.Toggle)
	g.POST("/tasks/:index/edit", h.BeginEdit)

	g.GET("/filter", h.GetFilter)
	g.PUT("/filter", h.PutFilter)

	g.GET("/draft", h.GetDraft)
	g.PUT("/draft", h.PutDraft)
	g.POST("/draft/submit", h.SubmitDraft)

	g.GET("/edit", h.GetEdit)
	g.POST("/edit/save", h.SaveEdit)
	g.DELETE("/edit", h.CancelEdit)

	g.GET("/export", h.Export)
}

func indexParam(c echo.Context) (int, error) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid task index")
	}
	return index, nil
}

func errorResponse(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, task.ErrEmptyTitle):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, task.ErrIndexOutOfRange):
		status = http.StatusNotFound
	case errors.Is(err, task.ErrInvalidFilter):
		status = http.StatusBadRequest
	case errors.Is(err, task.ErrNotEditing):
		status = http.StatusConflict
	}
	return c.JSON(status, map[string]string{"error": err.Error()})
}
