package autoreg

import "reflect"

// NameSeparator joins a type identity with an instance name inside a key.
// It is reserved: instance names must not contain it.
const NameSeparator = "#"

// TypeKey returns the registry key for the default (unnamed) instance of T.
//
// The key is derived from T's package path and type name, so it is stable
// within a process run and distinct for distinct types. Types from
// different packages with the same name never collide.
func TypeKey[T any]() string {
	return typeIdentity(reflect.TypeOf((*T)(nil)).Elem())
}

// NamedTypeKey returns the registry key for the instance of T labeled name.
// The named key space is disjoint from the unnamed one by construction.
func NamedTypeKey[T any](name string) string {
	return TypeKey[T]() + NameSeparator + name
}

// typeIdentity renders a stable textual identity for t. Named types use
// their fully qualified name; unnamed types (maps, slices, funcs) fall
// back to reflect's structural rendering.
func typeIdentity(t reflect.Type) string {
	if t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}
