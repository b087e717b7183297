// FILE: cfgtemplate/source.go
package cfgtemplate

import (
	"fmt"
	"os"
	"strings"
)

// Source identifies where a value's initial text came from, and is used to define
// override precedence.
type Source string

const (
	// SourceDefault represents the hard-coded default
	SourceDefault Source = "default"
	// SourceOverride represents the caller-supplied override table
	SourceOverride Source = "override"
	// SourceEnv represents values taken from environment variables
	SourceEnv Source = "env"
	// SourceCLI represents values taken from command-line arguments
	SourceCLI Source = "cli"
	// SourceRuntime marks a value replaced by Set after construction
	SourceRuntime Source = "runtime"
)

// EnvTransformFunc converts a parameter key to an environment variable name
type EnvTransformFunc func(key string) string

// DefaultSources is the standard precedence order (first = highest priority).
func DefaultSources() []Source {
	return []Source{SourceCLI, SourceEnv, SourceOverride, SourceDefault}
}

// overrideTable is the merged, immutable key -> text table handed to a Factory,
// together with the source each entry was taken from.
type overrideTable struct {
	values  map[string]string
	sources map[string]Source
}

// mergeLayers layers per-source tables by precedence. sources is ordered first =
// highest priority, so layers are applied in reverse.
func mergeLayers(sources []Source, layers map[Source]map[string]string) overrideTable {
	t := overrideTable{
		values:  make(map[string]string),
		sources: make(map[string]Source),
	}
	for i := len(sources) - 1; i >= 0; i-- {
		src := sources[i]
		for key, val := range layers[src] {
			t.values[key] = val
			t.sources[key] = src
		}
	}
	return t
}

// defaultEnvTransform creates the default environment variable transformer.
// Keys are uppercased and dots become underscores.
func defaultEnvTransform(prefix string) EnvTransformFunc {
	return func(key string) string {
		env := strings.ReplaceAll(key, ".", "_")
		env = strings.ToUpper(env)
		if prefix != "" {
			env = prefix + env
		}
		return env
	}
}

// collectEnv looks up the environment variable of every key.
func collectEnv(keys []string, transform EnvTransformFunc, whitelist map[string]bool) (map[string]string, error) {
	found := make(map[string]string)
	for _, key := range keys {
		if whitelist != nil && !whitelist[key] {
			continue
		}
		envVar := transform(key)
		if value, exists := os.LookupEnv(envVar); exists {
			if len(value) > MaxValueSize {
				return nil, fmt.Errorf("%w: %s", ErrValueSize, envVar)
			}
			found[key] = value
		}
	}
	return found, nil
}

// parseArgs processes command-line arguments into a flat key -> text table.
// Accepted forms are "--KEY=value", "--KEY value" and a bare "--KEY", which is
// taken as "true". Arguments not starting with "--" are skipped.
func parseArgs(args []string) (map[string]string, error) {
	result := make(map[string]string)
	i := 0
	for i < len(args) {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") {
			i++
			continue
		}

		argContent := strings.TrimPrefix(arg, "--")
		if argContent == "" {
			// "--" used as a separator
			i++
			continue
		}

		var key, value string
		if k, v, ok := strings.Cut(argContent, "="); ok {
			key, value = k, v
			i++
		} else {
			key = argContent
			if i+1 >= len(args) || strings.HasPrefix(args[i+1], "--") {
				value = "true"
				i++
			} else {
				value = args[i+1]
				i += 2
			}
		}

		if !isValidKey(key) {
			return nil, fmt.Errorf("%w: invalid key %q", ErrCLIParse, key)
		}
		result[key] = value
	}
	return result, nil
}
