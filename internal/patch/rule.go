package patch

import (
	"errors"
	"fmt"
)

// Rule names the one substitution the engine performs.
type Rule struct {
	Tool      string `yaml:"tool" env:"TOOL"`
	Buildable string `yaml:"buildable" env:"BUILDABLE"`
	Source    string `yaml:"source" env:"SOURCE"`
	Target    string `yaml:"target" env:"TARGET"`
}

// DefaultRule makes the stonecutter cost bronze instead of iron.
func DefaultRule() Rule {
	return Rule{
		Tool:      "Hammer",
		Buildable: "piece_stonecutter",
		Source:    "Iron",
		Target:    "Bronze",
	}
}

// Validate checks that every name is set and that the rule changes something.
func (r Rule) Validate() error {
	var errs []error
	for _, f := range []struct{ field, value string }{
		{"tool", r.Tool},
		{"buildable", r.Buildable},
		{"source", r.Source},
		{"target", r.Target},
	} {
		if f.value == "" {
			errs = append(errs, fmt.Errorf("rule %s is empty", f.field))
		}
	}
	if r.Source != "" && r.Source == r.Target {
		errs = append(errs, fmt.Errorf("rule source and target are both %q", r.Source))
	}
	return errors.Join(errs...)
}
