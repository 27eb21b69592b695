/*
Package autoreg provides a type-keyed registry with priority-ordered
initialization and lazy singleton instantiation.

# Overview

autoreg is a process-wide directory that maps a Go type (optionally
qualified by an instance name) to a creator function and an optional
post-construction initializer. Instances are built lazily on first
lookup, or eagerly in priority order via batch initialization.

The registry is designed for program start-up wiring:
  - Type-safe generic registration and lookup
  - Singleton semantics: at most one successful creation per key
  - Batch initialization ordered by a small integer priority (0 earliest,
    10 latest), with all creators running before any initializers
  - Failure isolation: one bad factory never blocks the rest
  - OpenTelemetry integration for observability

# Basic Usage

Register types during start-up, then look them up anywhere:

	type Logger struct {
	    Out io.Writer
	}

	func main() {
	    r := autoreg.New()

	    autoreg.RegisterWithInit(r, func(l *Logger) error {
	        l.Out = os.Stdout
	        return nil
	    }, autoreg.WithPriority(1))

	    r.ExecuteAllInits(context.Background())

	    logger, ok := autoreg.Get[Logger](r)
	    if !ok {
	        log.Fatal("logger not registered")
	    }
	    fmt.Fprintln(logger.Out, "ready")
	}

# Named Instances

A type may have several registrations distinguished by a label. Named and
unnamed registrations of the same type never collide:

	autoreg.RegisterFactory(r, newPrimary, autoreg.WithName("primary"))
	autoreg.RegisterFactory(r, newReplica, autoreg.WithName("replica"))

	primary, _ := autoreg.GetNamed[Conn](r, "primary")
	replica, _ := autoreg.GetNamed[Conn](r, "replica")

# Priorities

Batch initialization visits entries in ascending priority order and runs
two phases over the selected slice: every creator first, then every
initializer. An initializer may therefore look up any peer registered at a
priority no later than its own:

	autoreg.Register[Logger](r, autoreg.WithPriority(1))
	autoreg.RegisterWithInit(r, func(s *Service) error {
	    logger, ok := autoreg.Get[Logger](r)
	    if !ok {
	        return errors.New("logger missing")
	    }
	    s.Logger = logger
	    return nil
	}, autoreg.WithPriority(5))

	r.ExecuteAllInits(ctx)

# Concurrency

All operations are safe for concurrent use. Creation and initialization
are serialized per key: exactly one goroutine runs the creator, peers wait
and observe the result. Client callables run with the registry lock
released, so an initializer is free to call back into the registry for
other keys. A key whose initializer looks itself up deadlocks; cycle
detection is deliberately out of scope.

# Failure Handling

The registry never propagates client failures to batch callers. A creator
that returns an error (or panics) leaves the entry un-built and is retried
on the next lookup. A failed initializer keeps the built instance cached
and retries on the next lookup. Lookups report absence on failure so the
caller decides whether that is fatal. All failures are logged through the
registry's slog logger.
*/
package autoreg
