package jsast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const navSource = "function f() {\n  return foo // trailing\n    .bar(1, 2);\n}\n"

func findMember(t *testing.T, src *SourceCode) *MemberExpression {
	t.Helper()
	var m *MemberExpression
	Inspect(src.Program, func(n Node) bool {
		if me, ok := n.(*MemberExpression); ok {
			m = me
		}
		return true
	})
	require.NotNil(t, m)
	return m
}

func TestTokenQueries(t *testing.T) {
	t.Parallel()
	src, err := ParseString(navSource)
	require.NoError(t, err)
	m := findMember(t, src)

	dot := src.TokenBefore(m.Property)
	require.NotNil(t, dot)
	assert.True(t, dot.IsPunctuator("."))

	prev := src.TokenBefore(dot)
	assert.Equal(t, "foo", prev.Value)

	comment := src.TokenBefore(dot, IncludeComments())
	require.NotNil(t, comment)
	assert.Equal(t, TokenLineComment, comment.Type)
	assert.Equal(t, " trailing", comment.Value)

	open := src.TokenAfter(m, Punctuator("("))
	require.NotNil(t, open)
	assert.Equal(t, 3, open.Loc().Start.Line)

	assert.Equal(t, "function", src.FirstToken(src.Program).Value)
	assert.Equal(t, "}", src.LastToken(src.Program).Value)
	assert.Nil(t, src.TokenBefore(src.FirstToken(src.Program)))
	assert.Len(t, src.Comments(), 1)
}

func TestNavigator(t *testing.T) {
	t.Parallel()
	src, err := ParseString(navSource)
	require.NoError(t, err)
	m := findMember(t, src)
	dot := src.TokenBefore(m.Property)

	assert.Equal(t, "return", src.FirstTokenOnLine(m).(*Token).Value)
	assert.Equal(t, 2, src.LeadingWhitespaceColumn(m))
	assert.Equal(t, 4, src.LeadingWhitespaceColumn(dot))
	assert.True(t, src.IsFirstOnLine(dot))
	assert.False(t, src.IsFirstOnLine(m.Property))
	assert.Equal(t, " // trailing\n    ", src.TextBetween(m.Object, dot))
	assert.Equal(t, "", src.TextBetween(dot, m.Object))

	first := src.FirstToken(src.Program)
	assert.Same(t, first, src.FirstTokenOnLine(first))
	assert.Equal(t, 0, src.LeadingWhitespaceColumn(first))
}

func TestPositions(t *testing.T) {
	t.Parallel()
	src, err := ParseString("a;\n  b;\n")
	require.NoError(t, err)
	assert.Equal(t, 3, src.LineStart(2))
	assert.Equal(t, Position{Line: 2, Column: 2}, src.PositionAt(5))
	assert.Equal(t, []string{"a;", "  b;", ""}, src.Lines())
	assert.False(t, src.CommentsIn(Range{Start: 0, End: len(src.Text)}))
}
