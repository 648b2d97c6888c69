package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	t.Setenv("ENVTEST_STR", "hello")
	assert.Equal(t, "hello", Get("ENVTEST_STR", "def"))
	assert.Equal(t, "def", Get("ENVTEST_MISSING", "def"))
}

func TestGetInt(t *testing.T) {
	t.Setenv("ENVTEST_INT", "42")
	assert.Equal(t, 42, GetInt("ENVTEST_INT", 7))
	assert.Equal(t, 7, GetInt("ENVTEST_INT_MISSING", 7))

	t.Setenv("ENVTEST_INT_BAD", "forty-two")
	assert.Equal(t, 7, GetInt("ENVTEST_INT_BAD", 7))
}

func TestGetBool(t *testing.T) {
	t.Setenv("ENVTEST_BOOL", "yes")
	assert.True(t, GetBool("ENVTEST_BOOL", false))

	t.Setenv("ENVTEST_BOOL", "off")
	assert.False(t, GetBool("ENVTEST_BOOL", true))

	assert.True(t, GetBool("ENVTEST_BOOL_MISSING", true))
}

func TestGetDuration(t *testing.T) {
	t.Setenv("ENVTEST_DUR", "90s")
	assert.Equal(t, 90*time.Second, GetDuration("ENVTEST_DUR", time.Minute))

	t.Setenv("ENVTEST_DUR", "15")
	assert.Equal(t, 15*time.Second, GetDuration("ENVTEST_DUR", time.Minute))

	assert.Equal(t, time.Minute, GetDuration("ENVTEST_DUR_MISSING", time.Minute))
}
