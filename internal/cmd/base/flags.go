package base

import (
	"io"

	"github.com/spf13/pflag"
)

// FlagSet is a pflag.FlagSet whose usage is rendered into command help.
type FlagSet struct {
	*pflag.FlagSet
}

func NewFlagSet(f *pflag.FlagSet) *FlagSet {
	f.SetOutput(io.Discard)
	return &FlagSet{FlagSet: f}
}

func (f *FlagSet) Help() string {
	return "\n\nOptions:\n\n" + f.FlagUsages()
}

// StringIfSet returns a pointer to value when the named flag was given on
// the command line, and nil otherwise.
func (f *FlagSet) StringIfSet(name, value string) *string {
	if !f.Changed(name) {
		return nil
	}
	return &value
}

// IntIfSet is StringIfSet for int flags.
func (f *FlagSet) IntIfSet(name string, value int) *int {
	if !f.Changed(name) {
		return nil
	}
	return &value
}
