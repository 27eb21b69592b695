package autoreg

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Priority bounds for batch initialization. Lower priorities run earlier.
const (
	PriorityMin = 0
	PriorityMax = 10

	// DefaultPriority is used when a registration does not specify one.
	DefaultPriority = 5
)

// clampPriority forces p into [PriorityMin, PriorityMax].
func clampPriority(p int) int {
	if p < PriorityMin {
		return PriorityMin
	}
	if p > PriorityMax {
		return PriorityMax
	}
	return p
}

// Creator produces a fresh instance for an entry. The returned value is
// stored type-erased; the typed facade wraps concrete factories into this
// shape. A nil result without an error is treated as a creation failure.
type Creator func() (any, error)

// Initializer runs once against a successfully created instance.
type Initializer func(instance any) error

// entry is one registration: a key's creator, optional initializer,
// priority, and the cached instance once built.
//
// The entry mutex serializes creation and initialization for its key and
// guards instance, instanceID, and initialized. It is never taken while
// the registry lock is held, and client callables run under it so that
// exactly one goroutine creates per key (peers wait and observe the
// result). Re-entrant lookups of other keys are safe; a key must not
// look itself up from its own callables, that deadlocks on e.mu.
type entry struct {
	key      string
	creator  Creator
	init     Initializer
	priority int

	mu          sync.Mutex
	instance    any
	instanceID  string
	initialized bool
}

// EntryInfo is a point-in-time snapshot of an entry, used for
// introspection and diagnostics output.
type EntryInfo struct {
	Key         string
	Priority    int
	Built       bool
	Initialized bool

	// InstanceID is a unique identifier assigned when the instance was
	// built. Empty until creation succeeds.
	InstanceID string
}

// String renders a one-line human-readable summary.
func (i EntryInfo) String() string {
	return fmt.Sprintf("key=%s priority=%d built=%t initialized=%t",
		i.Key, i.Priority, i.Built, i.Initialized)
}

// materializeResult reports what a materialize call did.
type materializeResult struct {
	instance any

	// created is true when this call invoked the creator, whether or not
	// it succeeded. createDur is the creator's wall time in that case.
	created   bool
	createDur time.Duration
}

// materialize ensures the entry's instance exists and, when withInit is
// set, that its initializer has run. Creation is at-most-once on success;
// a failed creation leaves the entry un-built so the next call retries.
// A failed initializer keeps the built instance and leaves initialized
// false for the same reason.
//
// The caller must not hold the registry lock.
func (e *entry) materialize(withInit bool) (materializeResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var res materializeResult
	if e.instance == nil {
		if e.creator == nil {
			return res, ErrNilCreator
		}
		start := time.Now()
		inst, err := invokeCreator(e.creator)
		res.created = true
		res.createDur = time.Since(start)
		if err != nil {
			return res, fmt.Errorf("%w: %s", ErrCreateFailed, err)
		}
		if inst == nil {
			return res, ErrNilInstance
		}
		e.instance = inst
		e.instanceID = uuid.NewString()
	}

	if withInit && !e.initialized {
		if e.init != nil {
			if err := invokeInitializer(e.init, e.instance); err != nil {
				return res, fmt.Errorf("%w: %s", ErrInitFailed, err)
			}
		}
		e.initialized = true
	}

	res.instance = e.instance
	return res, nil
}

// snapshot returns the entry's current state for diagnostics.
func (e *entry) snapshot() EntryInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	return EntryInfo{
		Key:         e.key,
		Priority:    e.priority,
		Built:       e.instance != nil,
		Initialized: e.initialized,
		InstanceID:  e.instanceID,
	}
}

// built reports whether the instance has been created.
func (e *entry) built() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.instance != nil
}

// invokeCreator calls a client creator, converting panics into errors so
// one bad factory cannot take down a batch pass.
func invokeCreator(c Creator) (inst any, err error) {
	defer func() {
		if r := recover(); r != nil {
			inst = nil
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return c()
}

// invokeInitializer calls a client initializer, converting panics into errors.
func invokeInitializer(init Initializer, instance any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return init(instance)
}
