// Package validator plugs go-playground/validator into echo.
package validator

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"taskmanager/domain/task"
)

type CustomValidator struct {
	validator *validator.Validate
}

func New() *CustomValidator {
	v := validator.New()
	// duedate accepts YYYY-MM-DD or the empty string, which clears a due
	// date. datetime alone rejects "" behind a non-nil pointer.
	_ = v.RegisterValidation("duedate", validDueDate)
	return &CustomValidator{validator: v}
}

func validDueDate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := time.Parse(task.DateLayout, s)
	return err == nil
}

// Validate returns an echo 400 error describing the first failed rule set.
func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
