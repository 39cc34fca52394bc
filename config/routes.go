package config

import (
	"github.com/labstack/echo/v4"

	"taskmanager/app/controller/health"
	"taskmanager/app/controller/tasks"
	"taskmanager/app/services/taskstore"
)

// AddRoutes registers every route served for one task store.
func AddRoutes(e *echo.Echo, store *taskstore.Store) {
	root := e.Group("")
	health.Register(root, store)

	tasksHandler := tasks.NewHandler(store)
	tasksHandler.RegisterRoutes(e.Group("/api/v1"))
}
