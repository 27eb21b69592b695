package autoreg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/randalmurphal/autoreg/pkg/autoreg/observability"
)

// Registry is a process-wide directory mapping keys to registrations.
// It fulfills lookups with lazy creation and drives batch initialization
// in priority order. All methods are safe for concurrent use.
//
// The registry lock guards only the entry map; client creators and
// initializers always run with it released, so they may call back into
// the registry.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry

	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager

	defaultPriority   int
	priorityOverrides map[string]int
	disabled          map[string]struct{}
}

// New creates an empty registry. By default it logs through slog.Default
// with a component attribute and records no metrics or spans; use options
// to change that.
func New(opts ...Option) *Registry {
	r := &Registry{
		entries:         make(map[string]*entry),
		logger:          slog.Default().With(slog.String("component", "autoreg")),
		metrics:         observability.NoopMetrics{},
		spans:           observability.NoopSpanManager{},
		defaultPriority: DefaultPriority,
	}
	for _, fn := range opts {
		fn(r)
	}
	return r
}

// RegisterEntry is the primitive registration entry point; the typed
// Register functions all funnel into it. The priority is clamped into
// [PriorityMin, PriorityMax] after any configured override for the key is
// applied. Registering an existing key overwrites the prior entry and
// logs a warning. A registration for a key disabled by configuration is
// skipped.
func (r *Registry) RegisterEntry(key string, creator Creator, init Initializer, priority int) {
	if key == "" {
		observability.LogRejected(r.logger, key, ErrEmptyKey)
		return
	}
	if creator == nil {
		observability.LogRejected(r.logger, key, ErrNilCreator)
		return
	}
	if _, off := r.disabled[key]; off {
		observability.LogDisabled(r.logger, key)
		return
	}
	if p, ok := r.priorityOverrides[key]; ok {
		priority = p
	}
	priority = clampPriority(priority)

	e := &entry{
		key:      key,
		creator:  creator,
		init:     init,
		priority: priority,
	}

	r.mu.Lock()
	_, exists := r.entries[key]
	r.entries[key] = e
	r.mu.Unlock()

	if exists {
		observability.LogOverwrite(r.logger, key)
	}
	observability.LogRegistered(r.logger, key, priority)
	r.metrics.RecordRegistration(context.Background(), key)
}

// Instance resolves key, lazily building and initializing the entry's
// instance. It returns the type-erased instance, or false when the key is
// unregistered or creation or initialization failed. Failed entries are
// retried on the next call.
func (r *Registry) Instance(key string) (any, bool) {
	return r.instance(context.Background(), key)
}

func (r *Registry) instance(ctx context.Context, key string) (any, bool) {
	r.mu.Lock()
	e, ok := r.entries[key]
	r.mu.Unlock()

	r.metrics.RecordLookup(ctx, key, ok)
	if !ok {
		observability.LogMissing(r.logger, key)
		return nil, false
	}

	res, err := e.materialize(true)
	if res.created {
		r.metrics.RecordCreation(ctx, key, res.createDur, err)
	}
	if err != nil {
		r.logMaterializeError(key, err)
		if errors.Is(err, ErrInitFailed) {
			r.metrics.RecordInitError(ctx, key)
		}
		return nil, false
	}
	return res.instance, true
}

// ExecuteAllInits eagerly builds and initializes every entry, in
// ascending priority order. Equivalent to ExecutePriorInits(ctx, PriorityMax).
func (r *Registry) ExecuteAllInits(ctx context.Context) {
	r.ExecutePriorInits(ctx, PriorityMax)
}

// ExecutePriorInits builds and initializes every entry whose priority is
// at most maxPriority. The batch runs two phases over the selected slice:
// all creators first, then all initializers, both in ascending priority
// order with deterministic (priority, key) tie-breaking. An initializer
// may therefore look up any peer in the slice without racing its creator.
//
// Client failures are logged and skipped; the batch never panics and
// never returns an error.
func (r *Registry) ExecutePriorInits(ctx context.Context, maxPriority int) {
	maxPriority = clampPriority(maxPriority)
	scope := fmt.Sprintf("0-%d", maxPriority)
	batch := r.snapshotSorted(func(e *entry) bool { return e.priority <= maxPriority })
	r.runBatch(ctx, scope, batch)
}

// ExecuteInitsAtPriority builds and initializes only the entries
// registered at exactly the given priority.
func (r *Registry) ExecuteInitsAtPriority(ctx context.Context, priority int) {
	priority = clampPriority(priority)
	scope := fmt.Sprintf("%d", priority)
	batch := r.snapshotSorted(func(e *entry) bool { return e.priority == priority })
	r.runBatch(ctx, scope, batch)
}

// snapshotSorted copies the matching entries out under the registry lock
// and orders them by (priority, key). Ordering by key as well keeps batch
// passes and their diagnostics deterministic across runs.
func (r *Registry) snapshotSorted(keep func(*entry) bool) []*entry {
	r.mu.Lock()
	batch := make([]*entry, 0, len(r.entries))
	for _, e := range r.entries {
		if keep(e) {
			batch = append(batch, e)
		}
	}
	r.mu.Unlock()

	sort.Slice(batch, func(i, j int) bool {
		if batch[i].priority != batch[j].priority {
			return batch[i].priority < batch[j].priority
		}
		return batch[i].key < batch[j].key
	})
	return batch
}

// runBatch performs the two-phase create/init pass over an ordered batch.
func (r *Registry) runBatch(ctx context.Context, scope string, batch []*entry) {
	bctx, batchSpan := r.spans.StartBatchSpan(ctx, scope, len(batch))
	observability.LogBatchStart(r.logger, scope, len(batch))
	start := time.Now()

	for _, e := range batch {
		ectx, span := r.spans.StartEntrySpan(bctx, e.key, observability.PhaseCreate)
		res, err := e.materialize(false)
		if res.created {
			r.metrics.RecordCreation(ectx, e.key, res.createDur, err)
		}
		if err != nil {
			r.logMaterializeError(e.key, err)
		}
		r.spans.EndSpanWithError(span, err)
	}

	for _, e := range batch {
		ectx, span := r.spans.StartEntrySpan(bctx, e.key, observability.PhaseInit)
		res, err := e.materialize(true)
		if res.created {
			// A creator that failed in the first phase is retried here.
			r.metrics.RecordCreation(ectx, e.key, res.createDur, err)
		}
		if err != nil {
			r.logMaterializeError(e.key, err)
			if errors.Is(err, ErrInitFailed) {
				r.metrics.RecordInitError(ectx, e.key)
			}
		}
		r.spans.EndSpanWithError(span, err)
	}

	r.metrics.RecordBatch(ctx, len(batch), time.Since(start))
	observability.LogBatchComplete(r.logger, scope, len(batch), r.InstanceCount())
	r.spans.EndSpanWithError(batchSpan, nil)
}

func (r *Registry) logMaterializeError(key string, err error) {
	if errors.Is(err, ErrInitFailed) {
		observability.LogInitFailed(r.logger, key, err)
		return
	}
	observability.LogCreateFailed(r.logger, key, err)
}

// HasKey reports whether an entry exists for key.
func (r *Registry) HasKey(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[key]
	return ok
}

// EntryCount returns the number of registered entries.
func (r *Registry) EntryCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// InstanceCount returns the number of entries whose instance has been built.
func (r *Registry) InstanceCount() int {
	n := 0
	for _, e := range r.snapshotSorted(func(*entry) bool { return true }) {
		if e.built() {
			n++
		}
	}
	return n
}

// Keys returns all registered keys in lexicographic order.
func (r *Registry) Keys() []string {
	r.mu.Lock()
	keys := make([]string, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	r.mu.Unlock()
	sort.Strings(keys)
	return keys
}

// Entries returns a snapshot of every entry's state in key order.
func (r *Registry) Entries() []EntryInfo {
	batch := r.snapshotSorted(func(*entry) bool { return true })
	infos := make([]EntryInfo, 0, len(batch))
	for _, e := range batch {
		infos = append(infos, e.snapshot())
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos
}

// Clear atomically discards all entries and their cached instances.
//
// A creator or initializer already in flight on another goroutine
// completes against its detached entry; its result is published only to
// that entry and is unobservable afterwards. Clear never blocks on
// client callables.
func (r *Registry) Clear() {
	r.mu.Lock()
	n := len(r.entries)
	r.entries = make(map[string]*entry)
	r.mu.Unlock()
	observability.LogCleared(r.logger, n)
}

// DumpEntries writes a human-readable listing of all registrations to w.
func (r *Registry) DumpEntries(w io.Writer) {
	infos := r.Entries()
	fmt.Fprintf(w, "autoreg entries (%d):\n", len(infos))
	if len(infos) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for _, info := range infos {
		fmt.Fprintf(w, "  - %s\n", info)
	}
}

// DumpInstances writes a human-readable listing of built instances to w.
// Each built instance carries a unique ID assigned at creation time so
// distinct instances are tellable apart in the output.
func (r *Registry) DumpInstances(w io.Writer) {
	infos := r.Entries()
	built := infos[:0]
	for _, info := range infos {
		if info.Built {
			built = append(built, info)
		}
	}
	fmt.Fprintf(w, "autoreg instances (%d):\n", len(built))
	if len(built) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for _, info := range built {
		fmt.Fprintf(w, "  - key=%s id=%s initialized=%t\n", info.Key, info.InstanceID, info.Initialized)
	}
}
