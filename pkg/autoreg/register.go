package autoreg

import (
	"fmt"

	"github.com/randalmurphal/autoreg/pkg/autoreg/observability"
)

// RegisterOption configures a single registration.
type RegisterOption func(*registerOpts)

type registerOpts struct {
	name        string
	priority    int
	hasPriority bool
}

// WithName labels the registration as a named instance of its type,
// addressed later via GetNamed. The NameSeparator character is reserved
// and must not appear in the name.
func WithName(name string) RegisterOption {
	return func(o *registerOpts) {
		o.name = name
	}
}

// WithPriority sets the batch-initialization priority. Values outside
// [PriorityMin, PriorityMax] are clamped. Default: DefaultPriority, or
// the registry's configured default.
func WithPriority(priority int) RegisterOption {
	return func(o *registerOpts) {
		o.priority = priority
		o.hasPriority = true
	}
}

// Register registers default construction of T: the creator is new(T).
func Register[T any](r *Registry, opts ...RegisterOption) {
	RegisterFactory(r, func() (*T, error) { return new(T), nil }, opts...)
}

// RegisterWithInit registers default construction of T with a
// post-construction initializer.
func RegisterWithInit[T any](r *Registry, init func(*T) error, opts ...RegisterOption) {
	RegisterFactoryWithInit(r, func() (*T, error) { return new(T), nil }, init, opts...)
}

// RegisterFactory registers a caller-supplied factory for T. A factory
// returning a nil instance without an error counts as a creation failure.
func RegisterFactory[T any](r *Registry, factory func() (*T, error), opts ...RegisterOption) {
	RegisterFactoryWithInit(r, factory, nil, opts...)
}

// RegisterFactoryWithInit registers a factory for T plus an initializer.
// It is the most general typed form; every other Register function
// desugars to it, and it in turn desugars to Registry.RegisterEntry.
func RegisterFactoryWithInit[T any](r *Registry, factory func() (*T, error), init func(*T) error, opts ...RegisterOption) {
	o := registerOpts{priority: r.defaultPriority}
	for _, fn := range opts {
		fn(&o)
	}
	if !o.hasPriority {
		o.priority = r.defaultPriority
	}

	key := TypeKey[T]()
	if o.name != "" {
		key = NamedTypeKey[T](o.name)
	}

	var wrapped Initializer
	if init != nil {
		wrapped = wrapInitializer(init)
	}
	r.RegisterEntry(key, wrapCreator(factory), wrapped, o.priority)
}

// wrapCreator erases the factory's concrete type into the registry's
// opaque instance shape.
func wrapCreator[T any](factory func() (*T, error)) Creator {
	return func() (any, error) {
		if factory == nil {
			return nil, ErrNilCreator
		}
		inst, err := factory()
		if err != nil {
			return nil, err
		}
		if inst == nil {
			// Return untyped nil so the entry sees the absence.
			return nil, nil
		}
		return inst, nil
	}
}

// wrapInitializer downcasts the stored instance back to the concrete
// type before invoking the client's hook.
func wrapInitializer[T any](init func(*T) error) Initializer {
	return func(instance any) error {
		inst, ok := instance.(*T)
		if !ok {
			return fmt.Errorf("%w: have %T", ErrTypeMismatch, instance)
		}
		return init(inst)
	}
}

// Get looks up the default instance of T, lazily building and
// initializing it. It returns false when T was never registered or its
// creator or initializer failed; failed entries are retried on the next
// call.
func Get[T any](r *Registry) (*T, bool) {
	return getKey[T](r, TypeKey[T]())
}

// GetNamed looks up the instance of T labeled name.
func GetNamed[T any](r *Registry, name string) (*T, bool) {
	return getKey[T](r, NamedTypeKey[T](name))
}

func getKey[T any](r *Registry, key string) (*T, bool) {
	v, ok := r.Instance(key)
	if !ok {
		return nil, false
	}
	inst, ok := v.(*T)
	if !ok {
		// The caller's T disagrees with the registration's type. The
		// registry does not verify this contract at registration time,
		// so surface it here instead of panicking.
		observability.LogTypeMismatch(r.logger, key, fmt.Sprintf("%T", v))
		return nil, false
	}
	return inst, true
}

// Has reports whether the default instance of T is registered.
func Has[T any](r *Registry) bool {
	return r.HasKey(TypeKey[T]())
}

// HasNamed reports whether the instance of T labeled name is registered.
func HasNamed[T any](r *Registry, name string) bool {
	return r.HasKey(NamedTypeKey[T](name))
}
