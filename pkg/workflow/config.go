package workflow

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Options are caller-provided converter settings, typically loaded from a
// YAML file. All fields are optional.
type Options struct {
	// ToolAliases maps additional plugin name segments (case-insensitive)
	// to kind names, extending the built-in plugin table.
	ToolAliases map[string]string `yaml:"tool_aliases"`

	// Strict makes the CLI treat any warning as a failing exit condition.
	// The core pipeline still produces its best-effort script.
	Strict bool `yaml:"strict"`
}

// LoadOptions reads an Options YAML file.
func LoadOptions(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read options file: %w", err)
	}
	var opts Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("parse options file %s: %w", path, err)
	}
	for alias, kindName := range opts.ToolAliases {
		if _, ok := KindFromString(kindName); !ok {
			return nil, fmt.Errorf("options file %s: alias %q maps to unknown tool kind %q", path, alias, kindName)
		}
	}
	return &opts, nil
}

// lookupAlias resolves a plugin name candidate against the alias table.
func (o *Options) lookupAlias(candidate string) (ToolKind, bool) {
	for alias, kindName := range o.ToolAliases {
		if strings.EqualFold(alias, candidate) {
			k, ok := KindFromString(kindName)
			return k, ok
		}
	}
	return "", false
}
