// Package host defines the narrow capability interface through which the
// transcoder talks to a host object model.
//
// A host supplies type objects (Type) and values (Value), and a Runtime
// exposing four capabilities: attribute get, attribute set, construction and
// indexing. Runtimes may guard their state with an interpreter-style lock;
// callers acquire it with Acquire and pass the Guard into each call:
//
//	err := host.With(rt, func(g host.Guard) error {
//		v, err := rt.GetAttr(g, obj, "addr")
//		...
//	})
//
// Access is scoped per interaction. Callers never hold a guard while
// recursing into nested types, so runtimes may use a non-reentrant lock.
package host
