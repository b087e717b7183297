// File: cfgtemplate/doc.go

// Package cfgtemplate provides typed configuration registries for Go applications:
// a fixed set of named parameters, each with a hard-coded default, an optional
// textual override, help text and a declared mutability.
//
// Features:
//   - One Value type covering read-only integers of any width, updatable integers,
//     read-only booleans and read-only strings
//   - Values readable as any string, bool or integer type with Go conversion rules
//   - Lock-free updates of updatable values using sync/atomic
//   - Override text from a map, environment variables and command-line arguments
//     with configurable precedence
//   - Builder pattern with a totality check over the parameter enumeration
//   - Source tracking to see where values originated
//   - Struct scanning and TOML/YAML/JSON export
//
// Quick Start:
//
//	type Parm int8
//
//	const (
//	    MaxRows Parm = iota
//	    CacheSize
//	)
//
//	reg, err := cfgtemplate.NewBuilder[Parm]().
//	    WithMembers(MaxRows, CacheSize).
//	    Define(MaxRows, cfgtemplate.IntReadOnly[int32]("MAX_ROWS", 10000, "Maximum number of rows.")).
//	    Define(CacheSize, cfgtemplate.IntUpdatable[int64]("CACHE_SZ", 0, "Memory size of cache")).
//	    WithOverrides(map[string]string{"MAX_ROWS": "512"}).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	rows, _ := cfgtemplate.Get[string](reg, MaxRows) // "512"
//	_ = reg.Set(CacheSize, "4096000")
//	size, _ := cfgtemplate.Get[uint64](reg, CacheSize)
//
// Text conventions:
//
// Booleans are parsed by ParseBool: "0", "false" and "off" in any case are false and
// every other string is true. Integers are parsed in base 10 for the parameter's
// native width; out of range text is a parse error.
//
// Default Precedence (highest to lowest):
//  1. Command-line arguments (--MAX_ROWS=512), when WithArgs is used
//  2. Environment variables (MYAPP_MAX_ROWS=512), when WithEnvPrefix is used
//  3. The override table given to WithOverrides
//  4. Hard-coded defaults
//
// Thread Safety:
// A built Registry is safe for concurrent use. Read-only values never change;
// updatable values are stored in atomic cells, so readers never observe a torn
// value and concurrent Set calls resolve as last store wins.
package cfgtemplate
