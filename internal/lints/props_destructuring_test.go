package lints

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylekit/jsstyle/internal/jsast"
)

func TestPropsDestructuring(t *testing.T) {
	t.Parallel()
	runRuleCases(t, PropsDestructuring{}, []ruleCase{
		{
			name:     "destructured from props",
			code:     "function C(props) { const { a } = props; return a; }",
			messages: []string{"'a' was referenced from illegal props destructuring"},
		},
		{
			name:     "copied props",
			code:     "const C = (props) => {\n  const p = props;\n  return p.title;\n};",
			messages: []string{"'p' was referenced from illegal props destructuring"},
		},
		{
			name: "this.props in a class",
			code: "class C {\n  render() {\n    const { a, b } = this.props;\n    return a + b;\n  }\n}",
			messages: []string{
				"'a' was referenced from illegal props destructuring",
				"'b' was referenced from illegal props destructuring",
			},
		},
		{
			name:     "renamed and defaulted",
			code:     "function C(props) {\n  const { a: x, b = 1 } = props;\n  return x + b;\n}",
			messages: []string{
				"'x' was referenced from illegal props destructuring",
				"'b' was referenced from illegal props destructuring",
			},
		},
		{
			name: "reading props directly",
			code: "function C(props) { return props.a; }",
		},
		{
			name: "unused binding",
			code: "function C(props) { const { a } = props; return null; }",
		},
		{
			name: "props of another object",
			code: "function C(p) { const { a } = p.props; return a; }",
		},
		{
			name: "shadowed by a parameter",
			code: "function C(props) {\n  const { a } = props;\n  const f = (a) => a;\n  return f;\n}",
		},
		{
			name: "property names are not reads",
			code: "function C(props) {\n  const { a } = props;\n  return { a: 1, b: x.a };\n}",
		},
	})
}

func TestPropsDestructuringAnchorsOnInit(t *testing.T) {
	t.Parallel()
	code := "function C(props) { const { a } = props; return a; }"
	reports := runRule(t, PropsDestructuring{}, nil, code)
	require.Len(t, reports, 1)
	id, ok := reports[0].Node.(*jsast.Identifier)
	require.True(t, ok)
	assert.Equal(t, "props", id.Name)
	assert.Equal(t, 34, id.Range().Start)
	assert.Nil(t, reports[0].Fix)
}
