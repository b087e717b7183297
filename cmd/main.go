// FILE: cfgtemplate/cmd/main.go
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"unsafe"

	"github.com/spf13/cobra"

	"cfgtemplate"
	"cfgtemplate/params"
)

// options holds the flags shared by every command.
type options struct {
	overrides map[string]string
	envPrefix string
	logLevel  string
}

// registry is the part of a built registry the commands need, independent of the
// parameter enumeration.
type registry interface {
	Lookup(key string) (*cfgtemplate.Value, bool)
	SetKey(key, newValue string) error
	Debug() string
	Export(w io.Writer, format cfgtemplate.Format) error
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "cfgdemo",
		Short: "Inspect the database and cluster configuration registries",
		Long: "cfgdemo builds the database and cluster registries from hard-coded defaults\n" +
			"and overrides, and prints, exports or updates their values.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd.OutOrStdout(), opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringToStringVarP(&opts.overrides, "override", "o", nil, "override a parameter (KEY=VALUE, repeatable)")
	flags.StringVar(&opts.envPrefix, "env-prefix", "", "read overrides from environment variables with this prefix")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(newShowCmd(opts), newGetCmd(opts), newExportCmd(opts))
	return root
}

func newShowCmd(opts *options) *cobra.Command {
	var sets map[string]string

	cmd := &cobra.Command{
		Use:       "show <database|cluster>",
		Short:     "Print every parameter with its value, default and source",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"database", "cluster"},
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := buildRegistry(args[0], opts)
			if err != nil {
				return err
			}
			for _, key := range sortedKeys(sets) {
				if err := r.SetKey(key, sets[key]); err != nil {
					return err
				}
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), r.Debug())
			return err
		},
	}
	cmd.Flags().StringToStringVar(&sets, "set", nil, "set an updatable parameter after construction (KEY=VALUE)")
	return cmd
}

func newGetCmd(opts *options) *cobra.Command {
	var (
		as     string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "get <database|cluster> <KEY>",
		Short: "Print one parameter converted to a Go type",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := buildRegistry(args[0], opts)
			if err != nil {
				return err
			}
			v, ok := r.Lookup(args[1])
			if !ok {
				return fmt.Errorf("%w: %s", cfgtemplate.ErrUnknownKey, args[1])
			}
			out, err := convertAs(v, as, strict)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().StringVar(&as, "as", "string", "type to read the value as (string, bool, int, int8..int64, uint, uint8..uint64)")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail instead of truncating when the value does not fit")
	return cmd
}

func newExportCmd(opts *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export <database|cluster>",
		Short: "Write the current values as a TOML, YAML or JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := cfgtemplate.ParseFormat(format)
			if err != nil {
				return err
			}
			r, err := buildRegistry(args[0], opts)
			if err != nil {
				return err
			}
			return r.Export(cmd.OutOrStdout(), f)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "toml", "output format (toml, yaml, json)")
	return cmd
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}

func configure[P comparable](b *cfgtemplate.Builder[P], opts *options, logger *slog.Logger) *cfgtemplate.Builder[P] {
	b = b.WithOverrides(opts.overrides).WithLogger(logger)
	if opts.envPrefix != "" {
		b = b.WithEnvPrefix(opts.envPrefix)
	}
	return b
}

func buildRegistry(name string, opts *options) (registry, error) {
	logger, err := newLogger(opts.logLevel)
	if err != nil {
		return nil, err
	}

	switch name {
	case "database", "db":
		r, err := configure(params.DatabaseBuilder(), opts, logger).Build()
		if err != nil {
			return nil, err
		}
		return r, nil
	case "cluster":
		r, err := configure(params.ClusterBuilder(), opts, logger).Build()
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unknown registry %q (want database or cluster)", name)
	}
}

func convertAs(v *cfgtemplate.Value, as string, strict bool) (any, error) {
	switch as {
	case "string":
		return cfgtemplate.As[string](v)
	case "bool":
		return cfgtemplate.As[bool](v)
	case "int":
		return convertInt[int](v, strict)
	case "int8":
		return convertInt[int8](v, strict)
	case "int16":
		return convertInt[int16](v, strict)
	case "int32":
		return convertInt[int32](v, strict)
	case "int64":
		return convertInt[int64](v, strict)
	case "uint":
		return convertInt[uint](v, strict)
	case "uint8":
		return convertInt[uint8](v, strict)
	case "uint16":
		return convertInt[uint16](v, strict)
	case "uint32":
		return convertInt[uint32](v, strict)
	case "uint64":
		return convertInt[uint64](v, strict)
	default:
		return nil, fmt.Errorf("unsupported type %q", as)
	}
}

func convertInt[T int | int8 | int16 | int32 | int64 | uint | uint8 | uint16 | uint32 | uint64](v *cfgtemplate.Value, strict bool) (any, error) {
	if strict {
		return cfgtemplate.AsStrict[T](v)
	}
	return cfgtemplate.As[T](v)
}

// runDemo walks through reading and updating both registries.
func runDemo(w io.Writer, opts *options) error {
	logger, err := newLogger(opts.logLevel)
	if err != nil {
		return err
	}

	dbOverrides := map[string]string{"MAX_ROWS_PER_ROWGROUP": "512"}
	clusterOverrides := map[string]string{"INSERT_FLUSH": "false"}
	for k, v := range opts.overrides {
		dbOverrides[k] = v
		clusterOverrides[k] = v
	}

	dbcfg, err := params.DatabaseBuilder().WithOverrides(dbOverrides).WithLogger(logger).Build()
	if err != nil {
		return err
	}
	clcfg, err := params.ClusterBuilder().WithOverrides(clusterOverrides).WithLogger(logger).Build()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Max Rows Per Row Group = %s\n", cfgtemplate.MustGet[string](dbcfg, params.MaxRowsPerRowgroup))
	fmt.Fprintf(w, "Stridesize = %s\n", cfgtemplate.MustGet[string](dbcfg, params.StrideSize))
	fmt.Fprintf(w, "Num nodes = %s\n", cfgtemplate.MustGet[string](clcfg, params.NumNodes))
	fmt.Fprintf(w, "ZK Timeout = %s\n", cfgtemplate.MustGet[string](clcfg, params.ZKTimeout))
	fmt.Fprintf(w, "Shared FS Type = %s\n", cfgtemplate.MustGet[string](dbcfg, params.SharedFSType))

	v6 := cfgtemplate.MustGet[int32](dbcfg, params.StrideSize)
	fmt.Fprintf(w, "Stridesize = %d (%d)\n", v6, unsafe.Sizeof(v6))
	v7 := cfgtemplate.MustGet[int64](dbcfg, params.StrideSize)
	fmt.Fprintf(w, "Stridesize = %d (%d)\n", v7, unsafe.Sizeof(v7))
	v8 := cfgtemplate.MustGet[uint8](clcfg, params.NumNodes)
	fmt.Fprintf(w, "Num nodes = %d (%d)\n", v8, unsafe.Sizeof(v8))
	v9 := cfgtemplate.MustGet[bool](clcfg, params.QuorumWrite)
	fmt.Fprintf(w, "Quorum Write = %t (%d)\n", v9, unsafe.Sizeof(v9))

	if err := dbcfg.Set(params.CacheMemSize, strconv.Itoa(4096*1000)); err != nil {
		return err
	}
	v10 := cfgtemplate.MustGet[uint64](dbcfg, params.CacheMemSize)
	fmt.Fprintf(w, "Cache mem size = %d\n", v10)

	v11 := cfgtemplate.MustGet[bool](clcfg, params.InsertFlush)
	fmt.Fprintf(w, "Insert flush = %t (%d)\n", v11, unsafe.Sizeof(v11))
	v12 := cfgtemplate.MustGet[uint64](clcfg, params.NumNodes)
	fmt.Fprintf(w, "Num nodes = %d (%d)\n", v12, unsafe.Sizeof(v12))
	v13 := cfgtemplate.MustGet[uint8](dbcfg, params.CacheMemSize)
	fmt.Fprintf(w, "Cache mem size = %d (%d)\n", v13, unsafe.Sizeof(v13))

	if err := clcfg.Set(params.NumNodes, "5"); err != nil {
		fmt.Fprintf(w, "Set NUM_NODES rejected: %v\n", err)
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
