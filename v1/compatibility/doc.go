// Package compatibility owns the schema compatibility strategy enumeration
// and the dispatch table that routes a candidate revision to the checker
// registered for its schema type.
//
// The package does not implement structural compatibility algorithms for any
// particular schema language. Checkers are external collaborators: callers
// register one Check per schema type and the registry dispatches to it,
// falling back to a default check for unregistered types. The default check
// admits candidates only under the AlwaysCompatible strategy.
//
// # Usage
//
//	reg := compatibility.NewRegistry()
//	reg.Register(schema.TypeAvro, avroCheck)
//
//	err := reg.ForType(candidate.Type).CheckCompatible(existing, candidate, compatibility.Backward)
//	if compatibility.IsIncompatible(err) {
//	    // candidate violates the strategy
//	}
//
// Transitive strategies validate the candidate against every surviving prior
// revision; non-transitive strategies validate only against the latest one.
// The distinction is made at the call site: single-revision call sites pass a
// one-element slice of priors.
package compatibility
