package autoreg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultReturnsSameRegistry(t *testing.T) {
	assert.Same(t, Default(), Default())
}

func TestDefaultIsUsable(t *testing.T) {
	type globalProbe struct{ _ byte }

	r := Default()
	t.Cleanup(r.Clear)

	Register[globalProbe](r, WithName(t.Name()))
	_, ok := GetNamed[globalProbe](r, t.Name())
	require.True(t, ok)
}
