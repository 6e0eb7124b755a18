package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// configKeyKind classifies a known config key so runConfigSet can validate
// the value before it ever reaches the aligner/translator (§4.3/§4.4's
// scoring knobs are the ones most likely to be hand-edited and most likely
// to silently misbehave if mistyped).
type configKeyKind int

const (
	kindString configKeyKind = iota
	kindInt
	kindNegativeInt // gap penalties must be <= 0, per params.Default's convention
	kindBool
	kindPath
)

// knownConfigKeys is the whitelist of keys runConfigSet accepts. The scoring,
// translatePastStop, workers and log keys are the ones paramsFromViper and
// the root/run flag bindings read. The reference.path, genemap.path and
// tree.path keys are stored but not read: `nextplace run` takes its inputs
// from the --reference, --genemap and --tree flags (viper keys reference,
// genemap, tree). Setting any other key is rejected.
var knownConfigKeys = map[string]configKeyKind{
	"scoring.match":     kindInt,
	"scoring.mismatch":  kindNegativeInt,
	"scoring.gapOpen":   kindNegativeInt,
	"scoring.gapExtend": kindNegativeInt,
	"translatePastStop": kindBool,
	"workers":           kindInt,
	"reference.path":    kindPath,
	"genemap.path":      kindPath,
	"tree.path":         kindPath,
	"log.level":         kindString,
	"log.pretty":        kindBool,
}

// newConfigCmd mirrors cmd/vibe-vep/config.go's show/get/set shape, adapted
// to this tool's config keys (reference/genemap/tree paths, scoring
// parameters, worker count) and, unlike that version, validates each key
// against knownConfigKeys and its value's expected kind before writing.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage nextplace configuration",
		Long:  "Show, get, or set configuration values. Config is stored in ~/.nextplace.yaml.",
		Example: `  nextplace config                          # show all config
  nextplace config set scoring.gapOpen -8   # tune the gap-open penalty
  nextplace config get reference.path       # get a value`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow()
		},
	}

	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigGetCmd())

	return cmd
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(args[0], args[1])
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(args[0])
		},
	}
}

func runConfigShow() error {
	settings := viper.AllSettings()
	if len(settings) == 0 {
		fmt.Println("# No configuration set. Config file: ~/.nextplace.yaml")
		return nil
	}

	out, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	fmt.Print(string(out))
	return nil
}

// runConfigSet validates key against knownConfigKeys and coerces value to
// its expected kind before writing, instead of passing it through to viper
// untyped — a typo'd key or an out-of-range gap penalty fails here rather
// than silently never being read by paramsFromViper.
func runConfigSet(key, value string) error {
	kind, ok := knownConfigKeys[key]
	if !ok {
		return fmt.Errorf("unknown config key %q (see `nextplace config` for the keys nextplace reads)", key)
	}

	switch kind {
	case kindInt, kindNegativeInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s must be an integer, got %q", key, value)
		}
		if kind == kindNegativeInt && n > 0 {
			return fmt.Errorf("%s must be <= 0 (it's a penalty), got %d", key, n)
		}
		viper.Set(key, n)
	case kindBool:
		b, err := parseConfigBool(value)
		if err != nil {
			return fmt.Errorf("%s must be a boolean (true/false/yes/no/on/off), got %q", key, value)
		}
		viper.Set(key, b)
	case kindPath:
		if value == "" {
			return fmt.Errorf("%s cannot be empty", key)
		}
		viper.Set(key, value)
	default:
		viper.Set(key, value)
	}

	cfgFile := viper.ConfigFileUsed()
	if cfgFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot determine home directory: %w", err)
		}
		cfgFile = filepath.Join(home, ".nextplace.yaml")
	}

	if err := viper.WriteConfigAs(cfgFile); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("Set %s = %s in %s\n", key, value, cfgFile)
	return nil
}

func parseConfigBool(value string) (bool, error) {
	switch value {
	case "true", "yes", "on":
		return true, nil
	case "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("not a recognized boolean word")
	}
}

func runConfigGet(key string) error {
	val := viper.Get(key)
	if val == nil {
		return fmt.Errorf("key %q is not set", key)
	}
	fmt.Println(val)
	return nil
}
