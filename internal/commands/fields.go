package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// optionalString is a flag value that remembers whether it was given,
// so an explicit empty value can clear a field.
type optionalString struct {
	value string
	set   bool
}

func (o *optionalString) Set(s string) error {
	o.value, o.set = s, true
	return nil
}

func (o *optionalString) String() string { return o.value }
func (o *optionalString) Type() string   { return "string" }

// ptr returns nil when the flag was not given.
func (o *optionalString) ptr() *string {
	if !o.set {
		return nil
	}
	v := o.value
	return &v
}

// optionalBool is the boolean counterpart of optionalString.
// A bare --flag means true.
type optionalBool struct {
	value bool
	set   bool
}

func (o *optionalBool) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	o.value, o.set = v, true
	return nil
}

func (o *optionalBool) String() string { return strconv.FormatBool(o.value) }
func (o *optionalBool) Type() string   { return "bool" }

func (o *optionalBool) ptr() *bool {
	if !o.set {
		return nil
	}
	v := o.value
	return &v
}

func boolFlag(fs *pflag.FlagSet, v *optionalBool, name, usage string) {
	f := fs.VarPF(v, name, "", usage)
	f.NoOptDefVal = "true"
}

// normalizeDue validates a due date given on the command line.
// Empty stays empty; anything else must be YYYY-MM-DD.
func normalizeDue(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if _, err := time.Parse(time.DateOnly, s); err != nil {
		return "", fmt.Errorf("invalid due date: %s (want YYYY-MM-DD)", s)
	}
	return s, nil
}
