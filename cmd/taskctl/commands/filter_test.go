package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmanager/domain/task"
)

func TestFilterGet_StartsAtAll(t *testing.T) {
	out, err := runApp(t, t.TempDir(), "filter", "get")
	require.NoError(t, err)
	assert.Equal(t, `"all"`, out)
}

func TestFilterSet(t *testing.T) {
	out, err := runApp(t, t.TempDir(), "filter", "set", "completed")
	require.NoError(t, err)
	assert.Equal(t, `"completed"`, out)
}

func TestFilterSet_Errors(t *testing.T) {
	_, err := runApp(t, t.TempDir(), "filter", "set", "finished")
	assert.ErrorIs(t, err, task.ErrInvalidFilter)

	_, err = runApp(t, t.TempDir(), "filter", "set")
	assert.ErrorContains(t, err, "filter value is required")
}
