// FILE: cfgtemplate/definition.go
package cfgtemplate

import "golang.org/x/exp/constraints"

// Definition declares one parameter: its key, help text, hard-coded default and
// the factory call that produces its value.
//
// The exported fields describe the wiring so it can be inspected without building
// a registry.
type Definition struct {
	Key     string
	Help    string
	Kind    Kind
	IntKind IntKind
	Mode    Mode
	// Default is the hard-coded default in canonical textual form.
	Default string

	newValue func(f *Factory) (*Value, error)
}

// IntReadOnly declares a read-only parameter stored as the integer type T.
func IntReadOnly[T constraints.Integer](key string, def T, help string) Definition {
	return intDefinition(key, def, help, ReadOnly, MakeIntReadOnly[T])
}

// IntUpdatable declares a runtime-updatable parameter stored as the integer type T.
func IntUpdatable[T constraints.Integer](key string, def T, help string) Definition {
	return intDefinition(key, def, help, Updatable, MakeIntUpdatable[T])
}

func intDefinition[T constraints.Integer](key string, def T, help string, mode Mode,
	mk func(*Factory, string, T, string) (*Value, error)) Definition {
	ik := intKindOf[T]()
	return Definition{
		Key:      key,
		Help:     help,
		Kind:     KindInt,
		IntKind:  ik,
		Mode:     mode,
		Default:  FormatInt(int64(def), ik),
		newValue: func(f *Factory) (*Value, error) {
			return mk(f, key, def, help)
		},
	}
}

// BoolReadOnly declares a read-only boolean parameter.
func BoolReadOnly(key string, def bool, help string) Definition {
	return Definition{
		Key:      key,
		Help:     help,
		Kind:     KindBool,
		Mode:     ReadOnly,
		Default:  FormatBool(def),
		newValue: func(f *Factory) (*Value, error) {
			return f.MakeBoolReadOnly(key, def, help), nil
		},
	}
}

// StrReadOnly declares a read-only string parameter.
func StrReadOnly(key, def, help string) Definition {
	return Definition{
		Key:      key,
		Help:     help,
		Kind:     KindString,
		Mode:     ReadOnly,
		Default:  def,
		newValue: func(f *Factory) (*Value, error) {
			return f.MakeStrReadOnly(key, def, help), nil
		},
	}
}

// Make resolves the definition against the factory's override table.
func (d Definition) Make(f *Factory) (*Value, error) {
	if d.newValue == nil {
		return nil, ErrUnwired
	}
	return d.newValue(f)
}
