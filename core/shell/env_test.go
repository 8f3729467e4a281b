package shell

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapEnviron(t *testing.T) {
	env := NewMapEnviron()

	assert.Equal(t, "", env.Getenv("MISSING"))

	env.Setenv("A", "1")
	env.Setenv("A", "2")
	assert.Equal(t, "2", env.Getenv("A"))
}

func TestOSEnviron(t *testing.T) {
	t.Setenv("SHOAL_TEST_VAR", "value")

	assert.Equal(t, "value", OSEnviron().Getenv("SHOAL_TEST_VAR"))
	assert.Equal(t, os.Getenv("PATH"), OSEnviron().Getenv("PATH"))
}
