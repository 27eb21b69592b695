package autoreg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampPriority(t *testing.T) {
	assert.Equal(t, 0, clampPriority(-5))
	assert.Equal(t, 0, clampPriority(0))
	assert.Equal(t, 5, clampPriority(5))
	assert.Equal(t, 10, clampPriority(10))
	assert.Equal(t, 10, clampPriority(99))
}

func TestEntryMaterializeCreatesOnce(t *testing.T) {
	calls := 0
	e := &entry{
		key:      "k",
		priority: DefaultPriority,
		creator: func() (any, error) {
			calls++
			return &calls, nil
		},
	}

	res, err := e.materialize(false)
	require.NoError(t, err)
	assert.True(t, res.created)
	assert.NotNil(t, res.instance)

	res, err = e.materialize(false)
	require.NoError(t, err)
	assert.False(t, res.created, "second call must reuse the cached instance")
	assert.Equal(t, 1, calls)
}

func TestEntryMaterializeAssignsInstanceID(t *testing.T) {
	e := &entry{key: "k", creator: func() (any, error) { return new(int), nil }}

	assert.Empty(t, e.snapshot().InstanceID)

	_, err := e.materialize(false)
	require.NoError(t, err)
	assert.NotEmpty(t, e.snapshot().InstanceID)
}

func TestEntryCreateFailureRetries(t *testing.T) {
	calls := 0
	e := &entry{
		key: "k",
		creator: func() (any, error) {
			calls++
			if calls == 1 {
				return nil, errors.New("boom")
			}
			return new(int), nil
		},
	}

	_, err := e.materialize(false)
	require.ErrorIs(t, err, ErrCreateFailed)
	assert.False(t, e.snapshot().Built, "failed creation must leave the entry un-built")

	res, err := e.materialize(false)
	require.NoError(t, err)
	assert.True(t, res.created)
	assert.True(t, e.snapshot().Built)
	assert.Equal(t, 2, calls)
}

func TestEntryNilCreator(t *testing.T) {
	e := &entry{key: "k"}
	_, err := e.materialize(false)
	assert.ErrorIs(t, err, ErrNilCreator)
}

func TestEntryNilInstance(t *testing.T) {
	e := &entry{key: "k", creator: func() (any, error) { return nil, nil }}
	_, err := e.materialize(false)
	assert.ErrorIs(t, err, ErrNilInstance)
	assert.False(t, e.snapshot().Built)
}

func TestEntryCreatorPanicRecovered(t *testing.T) {
	e := &entry{key: "k", creator: func() (any, error) { panic("bad factory") }}

	_, err := e.materialize(false)
	require.ErrorIs(t, err, ErrCreateFailed)
	assert.Contains(t, err.Error(), "bad factory")
}

func TestEntryInitRunsOnce(t *testing.T) {
	inits := 0
	e := &entry{
		key:     "k",
		creator: func() (any, error) { return new(int), nil },
		init: func(any) error {
			inits++
			return nil
		},
	}

	_, err := e.materialize(true)
	require.NoError(t, err)
	_, err = e.materialize(true)
	require.NoError(t, err)

	assert.Equal(t, 1, inits)
	assert.True(t, e.snapshot().Initialized)
}

func TestEntryInitWithoutInitializer(t *testing.T) {
	e := &entry{key: "k", creator: func() (any, error) { return new(int), nil }}

	_, err := e.materialize(true)
	require.NoError(t, err)
	assert.True(t, e.snapshot().Initialized, "entry with no initializer is initialized once built")
}

func TestEntryInitFailureKeepsInstanceAndRetries(t *testing.T) {
	inits := 0
	e := &entry{
		key:     "k",
		creator: func() (any, error) { return new(int), nil },
		init: func(any) error {
			inits++
			if inits == 1 {
				return errors.New("flaky")
			}
			return nil
		},
	}

	_, err := e.materialize(true)
	require.ErrorIs(t, err, ErrInitFailed)
	info := e.snapshot()
	assert.True(t, info.Built, "failed init must retain the built instance")
	assert.False(t, info.Initialized)

	_, err = e.materialize(true)
	require.NoError(t, err)
	assert.True(t, e.snapshot().Initialized)
	assert.Equal(t, 2, inits)
}

func TestEntryInitPanicRecovered(t *testing.T) {
	e := &entry{
		key:     "k",
		creator: func() (any, error) { return new(int), nil },
		init:    func(any) error { panic("bad init") },
	}

	_, err := e.materialize(true)
	require.ErrorIs(t, err, ErrInitFailed)
	assert.Contains(t, err.Error(), "bad init")
}

func TestEntryMaterializeWithoutInitSkipsInitializer(t *testing.T) {
	inits := 0
	e := &entry{
		key:     "k",
		creator: func() (any, error) { return new(int), nil },
		init: func(any) error {
			inits++
			return nil
		},
	}

	_, err := e.materialize(false)
	require.NoError(t, err)
	assert.Equal(t, 0, inits)
	info := e.snapshot()
	assert.True(t, info.Built)
	assert.False(t, info.Initialized)
}

func TestEntryInfoString(t *testing.T) {
	info := EntryInfo{Key: "pkg.T#primary", Priority: 3, Built: true, Initialized: false}
	s := info.String()
	assert.Contains(t, s, "key=pkg.T#primary")
	assert.Contains(t, s, "priority=3")
	assert.Contains(t, s, "built=true")
	assert.Contains(t, s, "initialized=false")
}
