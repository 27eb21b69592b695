package autoreg

import "errors"

// Sentinel errors for registration.
var (
	// ErrNilCreator indicates an entry was installed without a creator.
	ErrNilCreator = errors.New("nil creator")

	// ErrEmptyKey indicates a registration with an empty key.
	ErrEmptyKey = errors.New("empty registration key")
)

// Sentinel errors for instantiation. These never escape batch operations;
// they are logged and, for lookups, collapse into an absent result.
var (
	// ErrNotRegistered indicates a lookup for a key with no entry.
	ErrNotRegistered = errors.New("no registration for key")

	// ErrCreateFailed indicates the creator returned an error or panicked.
	ErrCreateFailed = errors.New("creator failed")

	// ErrNilInstance indicates the creator returned nil without an error.
	ErrNilInstance = errors.New("creator returned nil instance")

	// ErrInitFailed indicates the initializer returned an error or panicked.
	ErrInitFailed = errors.New("initializer failed")

	// ErrTypeMismatch indicates the stored instance does not match the
	// type requested at the lookup site.
	ErrTypeMismatch = errors.New("instance type mismatch")
)
