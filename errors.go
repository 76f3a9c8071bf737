package decoplant

import "fmt"

// ConfigurationError reports a plant kind declared with values the placer
// cannot honour. It is logged once per kind and the placer degrades to a
// single instance.
type ConfigurationError struct {
	Kind  string
	Field string
	Value any
}

func (e *ConfigurationError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("invalid %s %v", e.Field, e.Value)
	}
	return fmt.Sprintf("plant %q: invalid %s %v", e.Kind, e.Field, e.Value)
}

// PreconditionViolation is returned by position index lookups made with an
// instance count the table was never built for.
type PreconditionViolation struct {
	Count int
}

func (e *PreconditionViolation) Error() string {
	return fmt.Sprintf("position indices: instance count %d outside 1..%d", e.Count, MaxInstanceCount)
}
