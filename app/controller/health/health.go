// Package health is for the health route
package health

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskmanager/version"
)

// Durability reports whether engine state is ahead of storage.
type Durability interface {
	Dirty() bool
}

type (
	Handler struct {
		state Durability
	}
	OkResponse struct {
		Ok      bool   `json:"ok"`
		Version string `json:"version"`
		// Dirty is true while the last storage write has failed.
		Dirty bool `json:"dirty"`
	}
)

func NewHandler(state Durability) *Handler {
	return &Handler{state: state}
}

func (h Handler) GET(c echo.Context) error {
	ok := OkResponse{
		Ok:      true,
		Version: version.Version,
		Dirty:   h.state.Dirty(),
	}
	return c.JSON(http.StatusOK, ok)
}

func Register(g *echo.Group, state Durability) {
	h := NewHandler(state)

	g.GET("/health", h.GET)
}
