package lints

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDefaults(t *testing.T) {
	t.Parallel()
	opts, err := Normalize(ImportSpacing{}.Meta().Schema, nil)
	require.NoError(t, err)
	assert.Equal(t, Options{
		"collapse":           true,
		"multiline":          false,
		"maxProperties":      0,
		"indent":             2,
		"enforceIndentation": true,
	}, opts)

	opts = Defaults(SortImports{}.Meta().Schema)
	assert.Equal(t, []string{"none", "type", "all", "named", "default"}, opts.Strings("memberSyntaxSortOrder"))
	assert.False(t, opts.Bool("ignoreCase"))
}

func TestNormalizeCoercion(t *testing.T) {
	t.Parallel()
	opts, err := Normalize(ImportSpacing{}.Meta().Schema, map[string]any{
		"collapse":      "false",
		"maxProperties": "3",
		"indent":        4.0,
	})
	require.NoError(t, err)
	assert.False(t, opts.Bool("collapse"))
	assert.Equal(t, 3, opts.Int("maxProperties"))
	assert.Equal(t, 4, opts.Int("indent"))
	assert.False(t, opts.Bool("multiline"))
}

func TestNormalizeErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		schema []OptionSpec
		raw    map[string]any
		msg    string
	}{
		{
			name:   "unknown option",
			schema: Alphabetize{}.Meta().Schema,
			raw:    map[string]any{"favourShorthand": true},
			msg:    "unknown options [favourShorthand]",
		},
		{
			name:   "not a bool",
			schema: Alphabetize{}.Meta().Schema,
			raw:    map[string]any{"favorShorthand": "sometimes"},
			msg:    `option "favorShorthand"`,
		},
		{
			name:   "below minimum",
			schema: ImportSpacing{}.Meta().Schema,
			raw:    map[string]any{"maxProperties": -1},
			msg:    "must be at least 0",
		},
		{
			name:   "not an integer",
			schema: ImportSpacing{}.Meta().Schema,
			raw:    map[string]any{"indent": "wide"},
			msg:    "expected integer",
		},
		{
			name:   "short permutation",
			schema: SortImports{}.Meta().Schema,
			raw:    map[string]any{"memberSyntaxSortOrder": []any{"none", "all"}},
			msg:    "expected 5 elements",
		},
		{
			name:   "duplicate in permutation",
			schema: SortImports{}.Meta().Schema,
			raw:    map[string]any{"memberSyntaxSortOrder": []any{"none", "none", "all", "named", "default"}},
			msg:    `duplicate value "none"`,
		},
		{
			name:   "unexpected permutation value",
			schema: SortImports{}.Meta().Schema,
			raw:    map[string]any{"memberSyntaxSortOrder": []any{"none", "type", "all", "named", "single"}},
			msg:    `unexpected value "single"`,
		},
		{
			name:   "options for a rule without schema",
			schema: Shortcut{}.Meta().Schema,
			raw:    map[string]any{"x": 1},
			msg:    "unknown options [x]",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Normalize(tt.schema, tt.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidOption)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{
		"alphabetize",
		"call-argument-newline",
		"chained-semi",
		"import-destructuring-spacing",
		"props-destructuring",
		"shortcut",
		"sort-imports",
		"switch-braces",
	}, Names())

	for _, r := range All() {
		meta := r.Meta()
		assert.NotEmpty(t, meta.Description, meta.Name)
		assert.NotEmpty(t, meta.Category, meta.Name)
		assert.NotPanics(t, func() { Defaults(meta.Schema) }, meta.Name)
	}

	r, ok := Lookup("sort-imports")
	require.True(t, ok)
	assert.True(t, r.Meta().Fixable)
	_, ok = Lookup("no-such-rule")
	assert.False(t, ok)
}

func TestReportText(t *testing.T) {
	t.Parallel()
	r := Report{Message: "Property '{{current}}' should be before '{{previous}}'", Data: map[string]string{"current": "a", "previous": "b"}}
	assert.Equal(t, "Property 'a' should be before 'b'", r.Text())
	assert.Equal(t, "plain", Report{Message: "plain"}.Text())
}
