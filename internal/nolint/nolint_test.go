package nolint

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylekit/jsstyle/internal/jsast"
)

func TestParseNolintRules(t *testing.T) {
	t.Parallel()
	result := parseIgnoreRuleNames("rule1, rule2,rule3,")
	assert.Len(t, result, 3)
	for _, rule := range []string{"rule1", "rule2", "rule3"} {
		assert.Contains(t, result, rule)
	}
	assert.Empty(t, parseIgnoreRuleNames(""))
}

func parse(t *testing.T, src string) *Manager {
	t.Helper()
	sc, err := jsast.ParseString(src)
	require.NoError(t, err)
	return ParseComments(sc)
}

func at(line int) token.Position {
	return token.Position{Filename: "input.js", Line: line, Column: 1}
}

func TestIsNolint(t *testing.T) {
	t.Parallel()
	src := `const a = 1;

// nolint:alphabetize,sort-imports
const o = {
  b: 1,
  a: 2,
};

foo({ b, a }); // nolint
bar({ b, a });

/* nolint */
baz();
qux();
`
	m := parse(t, src)

	tests := []struct {
		name string
		line int
		rule string
		want bool
	}{
		{"standalone covers next statement", 5, "alphabetize", true},
		{"standalone covers only listed rules", 5, "shortcut", false},
		{"standalone covers the whole statement", 7, "sort-imports", true},
		{"inline covers its line", 9, "anything", true},
		{"following line is not covered", 10, "alphabetize", false},
		{"block comment covers next statement", 13, "switch-braces", true},
		{"statement after is not covered", 14, "switch-braces", false},
		{"before any directive", 1, "alphabetize", false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, m.IsNolint(at(tt.line), tt.rule))
		})
	}
}

func TestFileLevelNolint(t *testing.T) {
	t.Parallel()
	m := parse(t, "// nolint:alphabetize\nimport a from 'a';\n\nconst o = { b: 1, a: 2 };\n")
	assert.True(t, m.IsNolint(at(4), "alphabetize"))
	assert.False(t, m.IsNolint(at(4), "shortcut"))
}

func TestInlineNolintOnMultilineStatement(t *testing.T) {
	t.Parallel()
	m := parse(t, "foo();\nbar(a, // nolint:call-argument-newline\n  b);\nbaz(a,\n  b);\n")
	assert.True(t, m.IsNolint(at(2), "call-argument-newline"))
	assert.True(t, m.IsNolint(at(3), "call-argument-newline"))
	assert.False(t, m.IsNolint(at(4), "call-argument-newline"))
}

func TestInvalidNolintComments(t *testing.T) {
	t.Parallel()
	m := parse(t, "foo();\n// nolintx\nbar();\n// nolint:\nbaz();\n// just a comment\nqux();\n")
	assert.False(t, m.IsNolint(at(3), "any"))
	assert.False(t, m.IsNolint(at(5), "any"))
	assert.False(t, m.IsNolint(at(7), "any"))
}
