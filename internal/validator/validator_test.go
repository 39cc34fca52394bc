package validator

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Priority string `validate:"omitempty,oneof=low medium high"`
	DueDate  string `validate:"omitempty,datetime=2006-01-02"`
}

func TestCustomValidator_Validate(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&sample{}))
	assert.NoError(t, v.Validate(&sample{Priority: "high", DueDate: "2024-02-29"}))

	err := v.Validate(&sample{Priority: "urgent"})
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)

	assert.Error(t, v.Validate(&sample{DueDate: "29/02/2024"}))
}

type patchSample struct {
	DueDate *string `validate:"omitempty,duedate"`
}

func TestCustomValidator_DueDatePointer(t *testing.T) {
	v := New()
	ptr := func(s string) *string { return &s }

	assert.NoError(t, v.Validate(&patchSample{}), "absent")
	assert.NoError(t, v.Validate(&patchSample{DueDate: ptr("")}), "empty clears the date")
	assert.NoError(t, v.Validate(&patchSample{DueDate: ptr("2024-12-31")}))
	assert.Error(t, v.Validate(&patchSample{DueDate: ptr("soon")}))
	assert.Error(t, v.Validate(&patchSample{DueDate: ptr("2024-13-01")}))
}
