// FILE: cfgtemplate/value.go
package cfgtemplate

import (
	"reflect"
	"strconv"
	"sync/atomic"
	"time"

	"golang.org/x/exp/constraints"
)

// Kind is the semantic kind of a value's payload.
type Kind uint8

const (
	KindInt Kind = iota + 1
	KindBool
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// IntKind is the native integer type backing an integer value.
type IntKind uint8

const (
	IntNone IntKind = iota
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
)

// Signed reports whether the kind is a signed integer type.
func (k IntKind) Signed() bool { return k >= Int8 && k <= Int64 }

// Bits returns the bit width of the kind.
func (k IntKind) Bits() int {
	switch k {
	case Int8, Uint8:
		return 8
	case Int16, Uint16:
		return 16
	case Int32, Uint32:
		return 32
	default:
		return 64
	}
}

func (k IntKind) String() string {
	switch k {
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Uint16:
		return "uint16"
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	default:
		return "none"
	}
}

// intKindOf maps an integer type parameter to its IntKind.
// Platform-sized int/uint/uintptr resolve to their actual width.
func intKindOf[T constraints.Integer]() IntKind {
	t := reflect.TypeFor[T]()
	switch t.Kind() {
	case reflect.Int8:
		return Int8
	case reflect.Int16:
		return Int16
	case reflect.Int32:
		return Int32
	case reflect.Int64:
		return Int64
	case reflect.Int:
		if t.Bits() == 32 {
			return Int32
		}
		return Int64
	case reflect.Uint8:
		return Uint8
	case reflect.Uint16:
		return Uint16
	case reflect.Uint32:
		return Uint32
	case reflect.Uint64:
		return Uint64
	case reflect.Uint, reflect.Uintptr:
		if t.Bits() == 32 {
			return Uint32
		}
		return Uint64
	default:
		return IntNone
	}
}

// Mode is a value's mutability.
type Mode uint8

const (
	ReadOnly Mode = iota
	Updatable
)

func (m Mode) String() string {
	if m == Updatable {
		return "updatable"
	}
	return "read-only"
}

// Value is a single named configuration entry.
//
// A Value holds exactly one scalar payload selected by its Kind. Integer payloads
// keep the native bit pattern of their IntKind, sign- or zero-extended to 64 bits,
// in an atomic cell so that updatable values can be replaced while being read.
// Read-only values never change after construction.
type Value struct {
	key  string
	help string
	kind Kind
	ik   IntKind
	mode Mode

	num  atomic.Int64
	flag bool
	str  string

	def    string
	origin Source

	updatedAtUnixNano atomic.Int64
}

func newIntValue(key, help string, ik IntKind, mode Mode, bits, def int64, origin Source) *Value {
	v := &Value{
		key:    key,
		help:   help,
		kind:   KindInt,
		ik:     ik,
		mode:   mode,
		def:    FormatInt(def, ik),
		origin: origin,
	}
	v.num.Store(bits)
	return v
}

func newBoolValue(key, help string, b, def bool, origin Source) *Value {
	return &Value{
		key:    key,
		help:   help,
		kind:   KindBool,
		mode:   ReadOnly,
		flag:   b,
		def:    FormatBool(def),
		origin: origin,
	}
}

func newStringValue(key, help, s, def string, origin Source) *Value {
	return &Value{
		key:    key,
		help:   help,
		kind:   KindString,
		mode:   ReadOnly,
		str:    s,
		def:    def,
		origin: origin,
	}
}

// Key returns the parameter name.
func (v *Value) Key() string { return v.key }

// Help returns the parameter description.
func (v *Value) Help() string { return v.help }

func (v *Value) Kind() Kind       { return v.kind }
func (v *Value) IntKind() IntKind { return v.ik }
func (v *Value) Mode() Mode       { return v.mode }
func (v *Value) Updatable() bool  { return v.mode == Updatable }

// Default returns the hard-coded default in canonical textual form.
func (v *Value) Default() string { return v.def }

// Source reports where the current value comes from.
// It is SourceRuntime once Set has succeeded at least once.
func (v *Value) Source() Source {
	if v.updatedAtUnixNano.Load() != 0 {
		return SourceRuntime
	}
	return v.origin
}

// UpdatedAt returns the time of the last successful Set. Zero means never updated.
func (v *Value) UpdatedAt() time.Time {
	ns := v.updatedAtUnixNano.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}

// String renders the current value: integers in base 10, booleans as
// "true"/"false", strings verbatim.
func (v *Value) String() string {
	switch v.kind {
	case KindInt:
		return FormatInt(v.num.Load(), v.ik)
	case KindBool:
		return FormatBool(v.flag)
	default:
		return v.str
	}
}

// Int64 returns the value as a 64-bit signed integer.
// String payloads are parsed in base 10 and fail with a *ParseError when not numeric.
func (v *Value) Int64() (int64, error) {
	switch v.kind {
	case KindInt:
		return v.num.Load(), nil
	case KindBool:
		if v.flag {
			return 1, nil
		}
		return 0, nil
	default:
		n, err := strconv.ParseInt(v.str, 10, 64)
		if err != nil {
			return 0, &ParseError{Key: v.key, Input: v.str, Type: "int64", Err: err}
		}
		return n, nil
	}
}

// Bool returns the value as a boolean. Integers are true when nonzero and strings
// follow ParseBool.
func (v *Value) Bool() bool {
	switch v.kind {
	case KindInt:
		return v.num.Load() != 0
	case KindBool:
		return v.flag
	default:
		return ParseBool(v.str)
	}
}

// Set parses s into the value's native integer type and stores it.
// Read-only values always fail with ErrReadOnly.
func (v *Value) Set(s string) error {
	if v.mode != Updatable || v.kind != KindInt {
		return readOnlyError(v.key)
	}
	n, err := ParseInt(s, v.ik)
	if err != nil {
		return &ParseError{Key: v.key, Input: s, Type: v.ik.String(), Err: err}
	}
	v.num.Store(n)
	v.updatedAtUnixNano.Store(time.Now().UnixNano())
	return nil
}

// integer returns the payload as a 64-bit quantity together with whether it must be
// read as unsigned.
func (v *Value) integer() (int64, bool, error) {
	if v.kind == KindInt {
		return v.num.Load(), !v.ik.Signed(), nil
	}
	n, err := v.Int64()
	return n, false, err
}

// native returns the payload as a Go value of its kind.
func (v *Value) native() any {
	switch v.kind {
	case KindInt:
		n := v.num.Load()
		if v.ik.Signed() {
			return n
		}
		return uint64(n)
	case KindBool:
		return v.flag
	default:
		return v.str
	}
}
