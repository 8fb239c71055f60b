package compatibility

import (
	"sync"

	"github.com/Aleph-Alpha/schema-registry/v1/schema"
)

// Check validates one candidate revision against prior revisions of the same
// lineage under a named strategy. Implementations are supplied per schema
// type by external collaborators.
//
// Non-transitive call sites pass a one-element existing slice; transitive
// call sites pass the full surviving lineage, oldest to newest. A nil return
// means the candidate is admissible; a violation is reported as an
// IncompatibleSchemaError.
//
// Implementations must be safe for concurrent use.
type Check interface {
	CheckCompatible(existing []schema.Data, candidate schema.Data, strategy Strategy) error
}

// DefaultCheck is the fallback for schema types with no registered checker.
// It admits candidates only under AlwaysCompatible: without a type-specific
// algorithm there is no basis for claiming any stronger contract holds.
type DefaultCheck struct{}

// CheckCompatible implements Check.
func (DefaultCheck) CheckCompatible(_ []schema.Data, candidate schema.Data, strategy Strategy) error {
	if strategy == AlwaysCompatible {
		return nil
	}
	return Incompatible("no compatibility checker registered for schema type %s under strategy %s",
		candidate.Type, strategy)
}

// Registry is the dispatch table from schema type to compatibility checker.
// It is process-wide, read-mostly state, safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	checks   map[schema.Type]Check
	fallback Check
}

// NewRegistry creates an empty dispatch table backed by DefaultCheck.
func NewRegistry() *Registry {
	return &Registry{
		checks:   make(map[schema.Type]Check),
		fallback: DefaultCheck{},
	}
}

// Register installs the checker for a schema type, replacing any previous
// registration. Registration normally happens once at startup.
func (r *Registry) Register(t schema.Type, c Check) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checks[t] = c
}

// ForType returns the checker registered for the type, or the default check
// if none is registered.
func (r *Registry) ForType(t schema.Type) Check {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := r.checks[t]; ok {
		return c
	}
	return r.fallback
}
