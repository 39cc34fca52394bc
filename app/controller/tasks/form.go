package tasks

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type EditResponse struct {
	Editing bool `json:"editing"`
	Index   int  `json:"index"`
}

func (h Handler) GetDraft(c echo.Context) error {
	return c.JSON(http.StatusOK, h.engine.Draft())
}

func (h Handler) PutDraft(c echo.Context) error {
	var req TaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	h.engine.SetDraft(req.draft())
	return c.JSON(http.StatusOK, h.engine.Draft())
}

func (h Handler) SubmitDraft(c echo.Context) error {
	created, err := h.engine.SubmitDraft(c.Request().Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h Handler) BeginEdit(c echo.Context) error {
	index, err := indexParam(c)
	if err != nil {
		return err
	}
	if err := h.engine.BeginEdit(index); err != nil {
		return errorResponse(c, err)
	}
	return h.GetEdit(c)
}

func (h Handler) GetEdit(c echo.Context) error {
	index, ok := h.engine.EditingIndex()
	if !ok {
		return c.JSON(http.StatusOK, EditResponse{Index: -1})
	}
	return c.JSON(http.StatusOK, EditResponse{Editing: true, Index: index})
}

func (h Handler) SaveEdit(c echo.Context) error {
	var req PatchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	updated, err := h.engine.SaveEdit(c.Request().Context(), req.patch())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h Handler) CancelEdit(c echo.Context) error {
	h.engine.CancelEdit()
	return c.NoContent(http.StatusNoContent)
}
