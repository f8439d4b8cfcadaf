// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/ik5/regionedit/timecode"
)

// overrideString copies the flag into dst when it was set explicitly.
func overrideString(flags *pflag.FlagSet, name string, dst *string) {
	if f := flags.Lookup(name); f != nil && f.Changed {
		*dst = f.Value.String()
	}
}

func overrideInt(flags *pflag.FlagSet, name string, dst *int) {
	if f := flags.Lookup(name); f != nil && f.Changed {
		if v, err := flags.GetInt(name); err == nil {
			*dst = v
		}
	}
}

// timeFlag parses an hh:mm:ss flag. Empty text gives def.
func timeFlag(flags *pflag.FlagSet, name string, def float64) (float64, error) {
	text, err := flags.GetString(name)
	if err != nil {
		return 0, err
	}
	if text == "" {
		return def, nil
	}

	v, err := timecode.Parse(text)
	if err != nil {
		return 0, fmt.Errorf("--%s: %w", name, err)
	}
	return v, nil
}
