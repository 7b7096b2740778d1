package lints

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cast"
)

// ErrInvalidOption is wrapped by every option validation failure.
var ErrInvalidOption = errors.New("invalid option")

// OptionType is the accepted type of a rule option.
type OptionType int

const (
	OptionBool OptionType = iota
	OptionInt
	// OptionPermutation is a list that must contain every element of Values
	// exactly once.
	OptionPermutation
)

func (t OptionType) String() string {
	switch t {
	case OptionBool:
		return "bool"
	case OptionInt:
		return "int"
	case OptionPermutation:
		return "permutation"
	}
	return "unknown"
}

// OptionSpec declares one recognized option of a rule.
type OptionSpec struct {
	Name        string
	Type        OptionType
	Default     any
	Min         int
	Values      []string
	Description string
}

// Options is a normalized option set: every declared option present with its
// canonical Go type (bool, int or []string).
type Options map[string]any

// Normalize validates raw user options against schema, coerces their types and
// fills in defaults.
func Normalize(schema []OptionSpec, raw map[string]any) (Options, error) {
	known := make(map[string]OptionSpec, len(schema))
	for _, spec := range schema {
		known[spec.Name] = spec
	}
	var unknown []string
	for name := range raw {
		if _, ok := known[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown options %v: %w", unknown, ErrInvalidOption)
	}

	opts := make(Options, len(schema))
	for _, spec := range schema {
		value, ok := raw[spec.Name]
		if !ok || value == nil {
			value = spec.Default
		}
		v, err := coerce(spec, value)
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", spec.Name, err)
		}
		opts[spec.Name] = v
	}
	return opts, nil
}

func coerce(spec OptionSpec, value any) (any, error) {
	switch spec.Type {
	case OptionBool:
		b, err := cast.ToBoolE(value)
		if err != nil {
			return nil, fmt.Errorf("expected bool, got %v: %w", value, ErrInvalidOption)
		}
		return b, nil
	case OptionInt:
		n, err := cast.ToIntE(value)
		if err != nil {
			return nil, fmt.Errorf("expected integer, got %v: %w", value, ErrInvalidOption)
		}
		if n < spec.Min {
			return nil, fmt.Errorf("must be at least %d, got %d: %w", spec.Min, n, ErrInvalidOption)
		}
		return n, nil
	case OptionPermutation:
		list, err := cast.ToStringSliceE(value)
		if err != nil {
			return nil, fmt.Errorf("expected a list, got %v: %w", value, ErrInvalidOption)
		}
		if err := checkPermutation(list, spec.Values); err != nil {
			return nil, err
		}
		return list, nil
	}
	panic(fmt.Sprintf("lints: option %q has unknown type %d", spec.Name, spec.Type))
}

func checkPermutation(list, values []string) error {
	if len(list) != len(values) {
		return fmt.Errorf("expected %d elements, got %d: %w", len(values), len(list), ErrInvalidOption)
	}
	allowed := make(map[string]bool, len(values))
	for _, v := range values {
		allowed[v] = true
	}
	seen := make(map[string]bool, len(list))
	for _, v := range list {
		if !allowed[v] {
			return fmt.Errorf("unexpected value %q, want one of %v: %w", v, values, ErrInvalidOption)
		}
		if seen[v] {
			return fmt.Errorf("duplicate value %q: %w", v, ErrInvalidOption)
		}
		seen[v] = true
	}
	return nil
}

// Defaults returns the normalized default options of schema.
func Defaults(schema []OptionSpec) Options {
	opts, err := Normalize(schema, nil)
	if err != nil {
		panic(fmt.Sprintf("lints: invalid default options: %v", err))
	}
	return opts
}

// Bool returns a normalized bool option.
func (o Options) Bool(name string) bool { return o[name].(bool) }

// Int returns a normalized integer option.
func (o Options) Int(name string) int { return o[name].(int) }

// Strings returns a normalized list option.
func (o Options) Strings(name string) []string { return o[name].([]string) }
