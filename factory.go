// FILE: cfgtemplate/factory.go
package cfgtemplate

import "golang.org/x/exp/constraints"

// Factory creates values, picking each initial value from the override table when
// the key is present there and from the hard-coded default otherwise.
//
// A Factory only reads its table and is safe for concurrent use. The caller must
// not modify the map passed to NewFactory afterwards.
type Factory struct {
	overrides map[string]string
	sources   map[string]Source
}

// NewFactory creates a factory over a flat key -> override text table.
func NewFactory(overrides map[string]string) *Factory {
	return &Factory{overrides: overrides}
}

func newFactoryFromTable(t overrideTable) *Factory {
	return &Factory{overrides: t.values, sources: t.sources}
}

// lookup returns the override text for key and the source it came from.
func (f *Factory) lookup(key string) (string, Source, bool) {
	s, ok := f.overrides[key]
	if !ok {
		return "", SourceDefault, false
	}
	if src, known := f.sources[key]; known {
		return s, src, true
	}
	return s, SourceOverride, true
}

// MakeIntReadOnly makes a read-only value stored as the integer type T.
func MakeIntReadOnly[T constraints.Integer](f *Factory, key string, def T, help string) (*Value, error) {
	return makeInt(f, key, def, help, ReadOnly)
}

// MakeIntUpdatable makes a value stored as the integer type T that can be replaced
// at runtime with Set.
func MakeIntUpdatable[T constraints.Integer](f *Factory, key string, def T, help string) (*Value, error) {
	return makeInt(f, key, def, help, Updatable)
}

func makeInt[T constraints.Integer](f *Factory, key string, def T, help string, mode Mode) (*Value, error) {
	ik := intKindOf[T]()
	bits, src, err := resolveInt(f, key, int64(def), ik)
	if err != nil {
		return nil, err
	}
	return newIntValue(key, help, ik, mode, bits, int64(def), src), nil
}

// MakeBoolReadOnly makes a read-only boolean value. Override text follows ParseBool.
func (f *Factory) MakeBoolReadOnly(key string, def bool, help string) *Value {
	b, src := resolveBool(f, key, def)
	return newBoolValue(key, help, b, def, src)
}

// MakeStrReadOnly makes a read-only string value. Override text is used verbatim.
func (f *Factory) MakeStrReadOnly(key, def, help string) *Value {
	s, src := resolveString(f, key, def)
	return newStringValue(key, help, s, def, src)
}

// resolveInt resolves the initial value for an integer config value.
func resolveInt(f *Factory, key string, def int64, ik IntKind) (int64, Source, error) {
	s, src, ok := f.lookup(key)
	if !ok {
		return def, SourceDefault, nil
	}
	n, err := ParseInt(s, ik)
	if err != nil {
		return 0, src, &ParseError{Key: key, Input: s, Type: ik.String(), Err: err}
	}
	return n, src, nil
}

func resolveBool(f *Factory, key string, def bool) (bool, Source) {
	s, src, ok := f.lookup(key)
	if !ok {
		return def, SourceDefault
	}
	return ParseBool(s), src
}

func resolveString(f *Factory, key, def string) (string, Source) {
	s, src, ok := f.lookup(key)
	if !ok {
		return def, SourceDefault
	}
	return s, src
}
