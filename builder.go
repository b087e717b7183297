// File: cfgtemplate/builder.go
package cfgtemplate

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// ValidatorFunc validates a fully built registry.
type ValidatorFunc[P comparable] func(r *Registry[P]) error

// binding pairs a parameter member with its definition.
type binding[P comparable] struct {
	param P
	def   Definition
}

// Builder wires every member of a parameter enumeration to a definition and
// builds the registry.
//
// Each enumeration gets its own flat builder function listing all of its
// parameters, for example:
//
//	func NewClusterConfig(overrides map[string]string) (*cfgtemplate.Registry[ClusterParm], error) {
//		return cfgtemplate.NewBuilder[ClusterParm]().
//			WithMembers(AllClusterParms()...).
//			Define(NumNodes, cfgtemplate.IntReadOnly[int8]("NUM_NODES", 3, "Number of nodes in the cluster.")).
//			Define(InsertFlush, cfgtemplate.BoolReadOnly("INSERT_FLUSH", true, "Does each insert flush?")).
//			WithOverrides(overrides).
//			Build()
//	}
type Builder[P comparable] struct {
	bindings   []binding[P]
	defined    map[P]bool
	members    []P
	overrides  map[string]string
	args       []string
	sources    []Source
	envOn      bool
	envPrefix  string
	envFn      EnvTransformFunc
	envAllow   map[string]bool
	strict     bool
	tagName    string
	logger     *slog.Logger
	validators []ValidatorFunc[P]
	err        error
}

// NewBuilder creates a new registry builder.
func NewBuilder[P comparable]() *Builder[P] {
	return &Builder[P]{
		defined: make(map[P]bool),
		sources: DefaultSources(),
		tagName: "toml",
	}
}

// Define wires a parameter to its definition.
func (b *Builder[P]) Define(p P, def Definition) *Builder[P] {
	if b.defined[p] {
		b.fail(fmt.Errorf("%w: %v", ErrDuplicateParam, p))
		return b
	}
	b.defined[p] = true
	b.bindings = append(b.bindings, binding[P]{param: p, def: def})
	return b
}

// WithMembers declares the complete enumeration. Build fails with ErrUnwired if
// any member has no definition.
func (b *Builder[P]) WithMembers(members ...P) *Builder[P] {
	b.members = append(b.members, members...)
	return b
}

// WithOverrides sets the override table. The map is read during Build only.
func (b *Builder[P]) WithOverrides(overrides map[string]string) *Builder[P] {
	b.overrides = overrides
	return b
}

// WithArgs sets command-line arguments to take overrides from.
// Accepted forms are "--KEY=value", "--KEY value" and "--KEY".
func (b *Builder[P]) WithArgs(args []string) *Builder[P] {
	b.args = args
	return b
}

// WithEnvPrefix enables environment overrides. A parameter key is looked up as
// prefix + upper-cased key, with dots replaced by underscores.
func (b *Builder[P]) WithEnvPrefix(prefix string) *Builder[P] {
	b.envOn = true
	b.envPrefix = prefix
	return b
}

// WithEnvTransform enables environment overrides using a custom key -> variable mapping.
func (b *Builder[P]) WithEnvTransform(fn EnvTransformFunc) *Builder[P] {
	if fn != nil {
		b.envOn = true
		b.envFn = fn
	}
	return b
}

// WithEnvWhitelist limits which keys are checked for env vars
func (b *Builder[P]) WithEnvWhitelist(keys ...string) *Builder[P] {
	if b.envAllow == nil {
		b.envAllow = make(map[string]bool)
	}
	for _, key := range keys {
		b.envAllow[key] = true
	}
	return b
}

// WithSources sets the precedence order for override sources (first = highest).
func (b *Builder[P]) WithSources(sources ...Source) *Builder[P] {
	b.sources = sources
	return b
}

// WithStrictOverrides makes Build fail with ErrUnknownKey when the override
// table or the command line names a key no parameter declares.
func (b *Builder[P]) WithStrictOverrides() *Builder[P] {
	b.strict = true
	return b
}

// WithTagName sets the struct tag Scan uses to match keys. Default "toml".
func (b *Builder[P]) WithTagName(tag string) *Builder[P] {
	if tag != "" {
		b.tagName = tag
	}
	return b
}

// WithLogger sets the logger used by Build and by the registry.
func (b *Builder[P]) WithLogger(logger *slog.Logger) *Builder[P] {
	b.logger = logger
	return b
}

// WithValidator adds a validation function that runs at the end of the build process.
// Validators are executed in the order they are added.
func (b *Builder[P]) WithValidator(fn ValidatorFunc[P]) *Builder[P] {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

func (b *Builder[P]) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Build resolves every definition and returns the registry.
// On any error no registry is returned: a registry is never partially initialized.
func (b *Builder[P]) Build() (*Registry[P], error) {
	if b.err != nil {
		return nil, b.err
	}

	logger := b.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if err := b.checkWiring(); err != nil {
		return nil, err
	}

	table, err := b.overrideTable(logger)
	if err != nil {
		return nil, err
	}

	f := newFactoryFromTable(table)
	r := &Registry[P]{
		params:  make([]P, 0, len(b.bindings)),
		values:  make(map[P]*Value, len(b.bindings)),
		byKey:   make(map[string]*Value, len(b.bindings)),
		tagName: b.tagName,
		logger:  logger,
	}

	var errs *multierror.Error
	for _, bd := range b.bindings {
		v, err := bd.def.Make(f)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		r.params = append(r.params, bd.param)
		r.values[bd.param] = v
		r.byKey[v.Key()] = v
		logger.Debug("config value resolved", "key", v.Key(), "value", v.String(), "source", v.Source())
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	for _, validator := range b.validators {
		if err := validator(r); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	return r, nil
}

// MustBuild is like Build but panics on error
func (b *Builder[P]) MustBuild() *Registry[P] {
	r, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("config build failed: %v", err))
	}
	return r
}

// checkWiring validates keys and checks that every declared member is defined.
func (b *Builder[P]) checkWiring() error {
	var errs *multierror.Error
	seen := make(map[string]P, len(b.bindings))
	for _, bd := range b.bindings {
		key := bd.def.Key
		if !isValidKey(key) {
			errs = multierror.Append(errs, fmt.Errorf("%w: %q (parameter %v)", ErrInvalidKey, key, bd.param))
			continue
		}
		if other, dup := seen[key]; dup {
			errs = multierror.Append(errs, fmt.Errorf("%w: %q used by %v and %v", ErrDuplicateKey, key, other, bd.param))
			continue
		}
		seen[key] = bd.param
	}

	var missing []string
	for _, m := range b.members {
		if !b.defined[m] {
			missing = append(missing, fmt.Sprint(m))
		}
	}
	if len(missing) > 0 {
		errs = multierror.Append(errs, fmt.Errorf("%w: %s", ErrUnwired, strings.Join(missing, ", ")))
	}
	return errs.ErrorOrNil()
}

// overrideTable collects every configured source and merges them by precedence.
func (b *Builder[P]) overrideTable(logger *slog.Logger) (overrideTable, error) {
	keys := make([]string, 0, len(b.bindings))
	known := make(map[string]bool, len(b.bindings))
	for _, bd := range b.bindings {
		keys = append(keys, bd.def.Key)
		known[bd.def.Key] = true
	}

	layers := make(map[Source]map[string]string)
	var errs *multierror.Error

	for _, src := range b.sources {
		var layer map[string]string
		switch src {
		case SourceDefault, SourceRuntime:
			// Defaults live in the definitions; runtime values only come from Set.
			continue
		case SourceOverride:
			layer = b.overrides
		case SourceEnv:
			if !b.envOn {
				continue
			}
			transform := b.envFn
			if transform == nil {
				transform = defaultEnvTransform(b.envPrefix)
			}
			env, err := collectEnv(keys, transform, b.envAllow)
			if err != nil {
				return overrideTable{}, err
			}
			layer = env
		case SourceCLI:
			if len(b.args) == 0 {
				continue
			}
			cli, err := parseArgs(b.args)
			if err != nil {
				return overrideTable{}, err
			}
			layer = cli
		default:
			return overrideTable{}, fmt.Errorf("unknown override source %q", src)
		}

		for _, key := range sortedKeys(layer) {
			if known[key] {
				continue
			}
			if b.strict {
				errs = multierror.Append(errs, fmt.Errorf("%w: %s (from %s)", ErrUnknownKey, key, src))
				continue
			}
			logger.Warn("ignoring override for unknown key", "key", key, "source", src)
		}
		layers[src] = layer
	}
	if err := errs.ErrorOrNil(); err != nil {
		return overrideTable{}, err
	}

	return mergeLayers(b.sources, layers), nil
}
