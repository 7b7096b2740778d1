package lints

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylekit/jsstyle/internal/jsast"
)

func TestKeyOf(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name          string
		key           jsast.Node
		caseSensitive bool
		want          Key
	}{
		{"identifier folded", &jsast.Identifier{Name: "Foo"}, false, Key{Text: "foo"}},
		{"identifier exact", &jsast.Identifier{Name: "Foo"}, true, Key{Text: "Foo"}},
		{"string literal", &jsast.Literal{Raw: `"Bar"`, Value: "Bar"}, false, Key{Text: "bar"}},
		{"number literal", &jsast.Literal{Raw: "1.5", Value: 1.5}, false, Key{Text: "1.5"}},
		{"boolean literal", &jsast.Literal{Raw: "true", Value: true}, false, Key{Text: "true"}},
		{"null literal", &jsast.Literal{Raw: "null"}, false, Key{Text: "null"}},
		{"upper case folds", &jsast.Identifier{Name: "STRASSE"}, false, Key{Text: "strasse"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := KeyOf(tt.key, tt.caseSensitive)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeyOfUnsupported(t *testing.T) {
	t.Parallel()
	_, err := KeyOf(&jsast.MemberExpression{}, false)
	assert.ErrorIs(t, err, ErrUnsupportedKey)

	_, err = KeyOf(&jsast.Literal{Raw: "/a/", Value: "/a/", Regex: true}, false)
	assert.ErrorIs(t, err, ErrUnsupportedKey)

	_, err = PropertyKey(&jsast.Property{Key: &jsast.Identifier{Name: "a"}, Computed: true}, false)
	assert.ErrorIs(t, err, ErrUnsupportedKey)

	_, err = PropertyKey(&jsast.SpreadElement{}, false)
	assert.ErrorIs(t, err, ErrUnsupportedKey)
}

func TestKeyOfPanicsOnUnknownLiteral(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() {
		_, _ = KeyOf(&jsast.Literal{Raw: "1", Value: int64(1)}, false)
	})
}

func TestIsOrdered(t *testing.T) {
	t.Parallel()
	prop := func(name string, shorthand bool) *jsast.Property {
		return &jsast.Property{Key: &jsast.Identifier{Name: name}, Shorthand: shorthand}
	}
	num := func(v float64, raw string) *jsast.Property {
		return &jsast.Property{Key: &jsast.Literal{Raw: raw, Value: v}}
	}
	tests := []struct {
		name           string
		favorShorthand bool
		a, b           jsast.Node
		want           bool
	}{
		{"ascending", true, prop("a", false), prop("b", false), true},
		{"descending", true, prop("b", false), prop("a", false), false},
		{"equal keys", true, prop("a", false), prop("a", false), true},
		{"case folded", true, prop("B", false), prop("a", false), false},
		{"shorthand before named", true, prop("z", true), prop("a", false), true},
		{"named before shorthand", true, prop("a", false), prop("z", true), false},
		{"shorthand ignored", false, prop("a", false), prop("z", true), true},
		{"both shorthand", true, prop("b", true), prop("a", true), false},
		{"numbers as text", true, num(10, "10"), num(9, "9"), true},
		{"numbers out of text order", true, num(9, "9"), num(10, "10"), false},
		{"number before string", true, num(10, "10"), &jsast.Property{Key: &jsast.Literal{Raw: "'1a'", Value: "1a"}}, true},
		{"number after string", true, num(9, "9"), &jsast.Property{Key: &jsast.Literal{Raw: "'1a'", Value: "1a"}}, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := IsOrdered(tt.favorShorthand, tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsOrderedImportSpecifiers(t *testing.T) {
	t.Parallel()
	a := &jsast.ImportSpecifier{Local: &jsast.Identifier{Name: "alpha"}}
	b := &jsast.ImportSpecifier{Local: &jsast.Identifier{Name: "Beta"}}
	ok, err := IsOrdered(false, a, b)
	require.NoError(t, err)
	assert.True(t, ok)
}
