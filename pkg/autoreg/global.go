package autoreg

import "sync"

// defaultRegistry is constructed lazily on first use.
var defaultRegistry = sync.OnceValue(func() *Registry {
	return New()
})

// Default returns the process-wide registry, constructing it on first
// call. It exists for programs that install registrations from package
// init functions; code that can thread a registry explicitly should
// prefer New.
//
//	func init() {
//	    autoreg.Register[Cache](autoreg.Default(), autoreg.WithPriority(2))
//	}
func Default() *Registry {
	return defaultRegistry()
}
