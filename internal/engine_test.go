package internal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stylekit/jsstyle/internal/jsast"
	"github.com/stylekit/jsstyle/internal/lints"
	"github.com/stylekit/jsstyle/internal/types"
)

// createTempDir creates a temporary directory and returns its path.
// It also registers a cleanup function to remove the directory after the test.
func createTempDir(t testing.TB, prefix string) string {
	tempDir, err := os.MkdirTemp("", prefix)
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tempDir) })
	return tempDir
}

func newTestEngine(t *testing.T, rules map[string]types.ConfigRule) *Engine {
	t.Helper()
	engine, err := NewEngine(zap.NewNop(), rules)
	require.NoError(t, err)
	return engine
}

func ruleNames(issues []types.Issue) []string {
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = issue.Rule
	}
	return out
}

func TestNewEngine(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t, nil)
	assert.Len(t, engine.rules, len(lints.Names()))
	assert.Len(t, engine.enabled(), len(lints.Names()))
}

func TestNewEngineConfig(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t, map[string]types.ConfigRule{
		"shortcut":      {Severity: types.SeverityOff},
		"alphabetize":   {Severity: types.SeverityWarning, Options: map[string]any{"favorShorthand": "false"}},
		"no-such-thing": {Severity: types.SeverityError},
	})
	assert.True(t, engine.ignoredRules["shortcut"])
	assert.Equal(t, types.SeverityWarning, engine.rules["alphabetize"].severity)
	assert.False(t, engine.rules["alphabetize"].options.Bool("favorShorthand"))
	assert.Len(t, engine.enabled(), len(lints.Names())-1)

	_, err := NewEngine(zap.NewNop(), map[string]types.ConfigRule{
		"import-destructuring-spacing": {Options: map[string]any{"maxProperties": -1}},
	})
	assert.ErrorIs(t, err, lints.ErrInvalidOption)
}

func TestEngine_IgnoreRule(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t, nil)
	engine.IgnoreRule("alphabetize")

	issues, err := engine.RunSource("a.js", []byte("var o = { b: 1, a: 2 };\n"))
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestEngine_IgnorePath(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t, nil)
	engine.IgnorePath("*.min.js")
	engine.IgnorePath("vendor/*")

	assert.True(t, engine.IsIgnoredPath("dist/app.min.js"))
	assert.True(t, engine.IsIgnoredPath("vendor/lib.js"))
	assert.False(t, engine.IsIgnoredPath("src/app.js"))

	issues, err := engine.Run("dist/app.min.js")
	assert.NoError(t, err)
	assert.Empty(t, issues)
}

func TestEngine_RunSource(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t, nil)

	src := "import b from 'x';\nimport a from 'y';\n\nif (ok === true) {\n  use({ b: 1, a: 2 });\n}\n"
	issues, err := engine.RunSource("app.js", []byte(src))
	require.NoError(t, err)
	require.Equal(t, []string{"sort-imports", "shortcut", "alphabetize"}, ruleNames(issues))

	first := issues[0]
	assert.Equal(t, "app.js", first.Filename)
	assert.Equal(t, "Imports should be sorted alphabetically", first.Message)
	assert.Equal(t, 2, first.Start.Line)
	assert.Equal(t, 1, first.Start.Column)
	assert.Equal(t, types.SeverityError, first.Severity)
	assert.True(t, first.Fixable())

	shortcut := issues[1]
	assert.Equal(t, 4, shortcut.Start.Line)
	assert.Equal(t, 5, shortcut.Start.Column)
	assert.Equal(t, "if (ok) {", shortcut.Suggestion)

	alpha := issues[2]
	assert.Equal(t, "style", alpha.Category)
	assert.Equal(t, "  use({ a: 2, b: 1 });", alpha.Suggestion)
}

func TestEngine_RunSourceSyntaxError(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t, nil)
	_, err := engine.RunSource("bad.js", []byte("function ("))
	assert.ErrorIs(t, err, jsast.ErrSyntax)
}

func TestEngine_Nolint(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t, nil)
	src := "const a = { b: 1, a: 2 }; // nolint:alphabetize\nconst c = { b: 1, a: 2 };\n"
	issues, err := engine.RunSource("a.js", []byte(src))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, 2, issues[0].Start.Line)
}

func TestEngine_Note(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t, nil)
	issues, err := engine.RunSource("a.js", []byte("switch (a) {\n  case 1\n  : foo();\n}\n"))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Nil(t, issues[0].Fix)
	assert.NotEmpty(t, issues[0].Note)
}

func TestEngine_FixSource(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t, nil)
	src := "import b from 'x';\nimport a from 'y';\n\nconst o = { c: 1, b: 2, a: 3 };\nif (o.a === false) {\n  use(o);\n}\n"
	want := "import a from 'y';\nimport b from 'x';\n\nconst o = { a: 3, b: 2, c: 1 };\nif (!o.a) {\n  use(o);\n}\n"

	fixed, remaining, err := engine.FixSource("a.js", []byte(src))
	require.NoError(t, err)
	assert.Equal(t, want, string(fixed))
	assert.Empty(t, remaining)
}

func TestEngine_FixSourceKeepsUnfixable(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t, nil)
	src := "function C(props) { const { name } = props; return name; }\n"
	fixed, remaining, err := engine.FixSource("a.js", []byte(src))
	require.NoError(t, err)
	assert.Equal(t, src, string(fixed))
	assert.Equal(t, []string{"props-destructuring"}, ruleNames(remaining))
}

type panicRule struct{}

func (panicRule) Meta() lints.Meta { return lints.Meta{Name: "panic-rule", Category: "test"} }

func (panicRule) Create(*lints.Context) lints.Visitors {
	return lints.Visitors{
		lints.On(jsast.KindIdentifier): func(n jsast.Node) {
			if n.(*jsast.Identifier).Name == "boom" {
				panic("unexpected identifier")
			}
		},
	}
}

func TestEngine_RecoversRulePanics(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t, nil)
	engine.rules["panic-rule"] = &ruleEntry{
		rule:     panicRule{},
		meta:     panicRule{}.Meta(),
		severity: types.SeverityError,
		options:  lints.Options{},
	}

	issues, err := engine.RunSource("a.js", []byte("boom();\nvar o = { b: 1, a: 2 };\nboom();\n"))
	require.Error(t, err)

	var ruleErr *RuleError
	require.True(t, errors.As(err, &ruleErr))
	assert.Equal(t, "panic-rule", ruleErr.Rule)
	assert.Equal(t, 1, ruleErr.Pos.Line)
	assert.Contains(t, err.Error(), "unexpected identifier")
	assert.Equal(t, []string{"alphabetize"}, ruleNames(issues))
}

func TestEngine_Run(t *testing.T) {
	t.Parallel()
	dir := createTempDir(t, "engine_run")
	path := filepath.Join(dir, "main.ts")
	require.NoError(t, os.WriteFile(path, []byte("const x: number = 1;\nswitch (x) { case 1: go(); }\n"), 0o644))

	engine := newTestEngine(t, nil)
	issues, err := engine.Run(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"switch-braces"}, ruleNames(issues))

	_, err = engine.Run(filepath.Join(dir, "missing.js"))
	assert.Error(t, err)
}
