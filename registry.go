// FILE: cfgtemplate/registry.go
package cfgtemplate

import (
	"fmt"
	"log/slog"
)

// Registry holds one value per member of a parameter enumeration P.
//
// The set of parameters is fixed when the registry is built. Read-only values and
// the registry structure never change afterwards, so all methods are safe for
// concurrent use; updatable values are replaced atomically.
type Registry[P comparable] struct {
	params  []P
	values  map[P]*Value
	byKey   map[string]*Value
	tagName string
	logger  *slog.Logger
}

// Value returns the value wired to p.
// Asking for a member that was never wired is a programming error and panics.
func (r *Registry[P]) Value(p P) *Value {
	v, ok := r.values[p]
	if !ok {
		panic(fmt.Sprintf("cfgtemplate: parameter %v is not wired", p))
	}
	return v
}

// Lookup returns the value with the given key.
func (r *Registry[P]) Lookup(key string) (*Value, bool) {
	v, ok := r.byKey[key]
	return v, ok
}

// Set replaces the value of an updatable parameter.
// ErrReadOnly and *ParseError from the value are returned unchanged.
func (r *Registry[P]) Set(p P, newValue string) error {
	return r.set(r.Value(p), newValue)
}

// SetKey is Set addressed by parameter key, for callers that only have the key
// at hand (ops tooling, command lines).
func (r *Registry[P]) SetKey(key, newValue string) error {
	v, ok := r.byKey[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return r.set(v, newValue)
}

func (r *Registry[P]) set(v *Value, newValue string) error {
	old := v.String()
	if err := v.Set(newValue); err != nil {
		r.logger.Debug("config update rejected", "key", v.Key(), "value", newValue, "error", err)
		return err
	}
	r.logger.Info("config value updated", "key", v.Key(), "old", old, "new", v.String())
	return nil
}

// Params returns the parameters in definition order.
func (r *Registry[P]) Params() []P {
	out := make([]P, len(r.params))
	copy(out, r.params)
	return out
}

// Keys returns the parameter keys in definition order.
func (r *Registry[P]) Keys() []string {
	keys := make([]string, 0, len(r.params))
	for _, p := range r.params {
		keys = append(keys, r.values[p].Key())
	}
	return keys
}

// Len returns the number of parameters.
func (r *Registry[P]) Len() int { return len(r.params) }

// String returns the parameter's value as a string.
func (r *Registry[P]) String(p P) string {
	return r.Value(p).String()
}

// Int64 returns the parameter's value as an int64.
func (r *Registry[P]) Int64(p P) (int64, error) {
	return r.Value(p).Int64()
}

// Bool returns the parameter's value as a bool.
func (r *Registry[P]) Bool(p P) bool {
	return r.Value(p).Bool()
}
