package development

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDevconf_Defaults(t *testing.T) {
	t.Setenv("TM_APP_PORT", "")
	t.Setenv("TM_STORAGE_DRIVER", "")
	t.Setenv("TM_STORAGE_URL", "")
	t.Setenv("TM_LOG_LEVEL", "")

	conf := New()
	assert.Equal(t, "8080", conf.GetPort())
	assert.Equal(t, "sqlite", conf.GetStorageDriver())
	assert.Equal(t, "file:taskmanager.db", conf.GetStorageURL())
	assert.Equal(t, "debug", conf.GetLogLevel())
}

func TestDevconf_StorageURLFollowsDriver(t *testing.T) {
	t.Setenv("TM_STORAGE_URL", "")
	t.Setenv("TM_STORAGE_DRIVER", "file")

	assert.Equal(t, ".taskmanager", New().GetStorageURL())
}

func TestDevconf_EnvOverrides(t *testing.T) {
	t.Setenv("TM_APP_PORT", "9090")
	t.Setenv("TM_STORAGE_DRIVER", "postgres")
	t.Setenv("TM_STORAGE_URL", "postgres://db/tasks")

	conf := New()
	assert.Equal(t, "9090", conf.GetPort())
	assert.Equal(t, "postgres", conf.GetStorageDriver())
	assert.Equal(t, "postgres://db/tasks", conf.GetStorageURL())
}
