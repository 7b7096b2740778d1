package jsast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identifiers(src *SourceCode, name string) []*Identifier {
	var out []*Identifier
	Inspect(src.Program, func(n Node) bool {
		if id, ok := n.(*Identifier); ok && id.Name == name {
			out = append(out, id)
		}
		return true
	})
	return out
}

func TestResolve(t *testing.T) {
	t.Parallel()
	src, err := ParseString("function f(x) {\n  if (x) {\n    let x = 1;\n    use(x);\n  }\n  return x;\n}\nuse(y);\n")
	require.NoError(t, err)
	scopes := NewScopes(src.Parents)

	xs := identifiers(src, "x")
	require.Len(t, xs, 5)
	param, test, inner, innerUse, ret := xs[0], xs[1], xs[2], xs[3], xs[4]

	assert.Same(t, param, scopes.Resolve(test))
	assert.Same(t, inner, scopes.Resolve(innerUse))
	assert.Same(t, param, scopes.Resolve(ret))

	_, isFn := scopes.Declarer(param).(*Function)
	assert.True(t, isFn)

	ys := identifiers(src, "y")
	require.Len(t, ys, 1)
	assert.Nil(t, scopes.Resolve(ys[0]))
}

func TestResolveHoistedVar(t *testing.T) {
	t.Parallel()
	src, err := ParseString("function f() {\n  use(v);\n  if (a) { var v = 1; }\n}\n")
	require.NoError(t, err)
	scopes := NewScopes(src.Parents)
	vs := identifiers(src, "v")
	require.Len(t, vs, 2)
	assert.Same(t, vs[1], scopes.Resolve(vs[0]))
}

func TestParents(t *testing.T) {
	t.Parallel()
	src, err := ParseString("foo(bar);")
	require.NoError(t, err)
	bars := identifiers(src, "bar")
	require.Len(t, bars, 1)
	anc := src.Parents.Ancestors(bars[0])
	require.Len(t, anc, 3)
	assert.IsType(t, &CallExpression{}, anc[0])
	assert.IsType(t, &ExpressionStatement{}, anc[1])
	assert.Same(t, Node(src.Program), anc[2])
	assert.Nil(t, src.Parents.Of(src.Program))
}
