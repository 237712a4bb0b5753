// Package flags provides flag types and helpers shared by the commands.
package flags

import (
	"fmt"
	"strings"
)

// BoolFlag is a boolean flag that tracks whether it was explicitly set, so
// a command can tell "not given" from "given as false" when layering flags
// over the config file.
type BoolFlag struct {
	Value  bool
	WasSet bool
}

// Set parses and sets the boolean value.
func (b *BoolFlag) Set(s string) error {
	if s == "" {
		b.Value = true
		b.WasSet = true
		return nil
	}
	switch strings.ToLower(s) {
	case "true", "1":
		b.Value = true
	case "false", "0":
		b.Value = false
	default:
		return fmt.Errorf("invalid boolean %q", s)
	}
	b.WasSet = true
	return nil
}

// String returns the string representation of the boolean value.
func (b *BoolFlag) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// IsBoolFlag lets the flag be given without a value.
func (b *BoolFlag) IsBoolFlag() bool { return true }

// Or returns the flag value when set, otherwise fallback.
func (b *BoolFlag) Or(fallback bool) bool {
	if b.WasSet {
		return b.Value
	}
	return fallback
}

// StringList collects a repeatable flag. Comma separated values are split.
type StringList []string

// Set appends one or more values.
func (l *StringList) Set(s string) error {
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*l = append(*l, part)
		}
	}
	return nil
}

func (l *StringList) String() string {
	return strings.Join(*l, ",")
}
