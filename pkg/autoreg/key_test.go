package autoreg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type keyProbe struct{ _ byte }

type otherProbe struct{ _ byte }

func TestTypeKey(t *testing.T) {
	key := TypeKey[keyProbe]()
	assert.Contains(t, key, "keyProbe")
	assert.Contains(t, key, "autoreg", "key should carry the package path")
	assert.NotContains(t, key, NameSeparator)
}

func TestTypeKeyDistinctTypes(t *testing.T) {
	assert.NotEqual(t, TypeKey[keyProbe](), TypeKey[otherProbe]())
}

func TestTypeKeyStable(t *testing.T) {
	assert.Equal(t, TypeKey[keyProbe](), TypeKey[keyProbe]())
}

func TestNamedTypeKey(t *testing.T) {
	key := NamedTypeKey[keyProbe]("primary")
	assert.Equal(t, TypeKey[keyProbe]()+NameSeparator+"primary", key)
}

func TestNamedTypeKeyDisjointFromUnnamed(t *testing.T) {
	assert.NotEqual(t, TypeKey[keyProbe](), NamedTypeKey[keyProbe](""))
}

func TestTypeKeyUnnamedType(t *testing.T) {
	// Unnamed types fall back to reflect's structural rendering.
	key := TypeKey[map[string]int]()
	assert.Equal(t, "map[string]int", key)
}
