package jsast

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseImports(t *testing.T) {
	t.Parallel()
	src, err := ParseString("import React, { a, b as c } from 'react';\nimport * as ns from 'ns';\nimport 'side';\n")
	require.NoError(t, err)
	require.Len(t, src.Program.Body, 3)

	first, ok := src.Program.Body[0].(*ImportDeclaration)
	require.True(t, ok)
	require.Len(t, first.Specifiers, 3)
	assert.Equal(t, SpecifierDefault, first.Specifiers[0].SpecifierKind)
	assert.Equal(t, "React", first.Specifiers[0].Local.Name)
	assert.Equal(t, "c", first.Specifiers[2].Local.Name)
	assert.Len(t, first.Named(), 2)
	assert.Equal(t, "react", first.Source.Value)
	assert.Equal(t, "import React, { a, b as c } from 'react';", src.TextOf(first))

	ns := src.Program.Body[1].(*ImportDeclaration)
	require.Len(t, ns.Specifiers, 1)
	assert.Equal(t, SpecifierNamespace, ns.Specifiers[0].SpecifierKind)

	side := src.Program.Body[2].(*ImportDeclaration)
	assert.Empty(t, side.Specifiers)
}

func TestParseObjects(t *testing.T) {
	t.Parallel()
	src, err := ParseString("var o = { a, 'b': 1, [c]: 2, ...d, e() {} };")
	require.NoError(t, err)

	var obj *ObjectExpression
	Inspect(src.Program, func(n Node) bool {
		if o, ok := n.(*ObjectExpression); ok && obj == nil {
			obj = o
		}
		return true
	})
	require.NotNil(t, obj)
	require.Len(t, obj.Properties, 5)

	a := obj.Properties[0].(*Property)
	assert.True(t, a.Shorthand)
	b := obj.Properties[1].(*Property)
	assert.Equal(t, "b", b.Key.(*Literal).Value)
	c := obj.Properties[2].(*Property)
	assert.True(t, c.Computed)
	_, spread := obj.Properties[3].(*SpreadElement)
	assert.True(t, spread)
	assert.True(t, obj.Properties[4].(*Property).Method)
}

func TestParseUnwrapsParentheses(t *testing.T) {
	t.Parallel()
	src, err := ParseString("if (a === true) {}")
	require.NoError(t, err)
	stmt := src.Program.Body[0].(*IfStatement)
	bin, ok := stmt.Test.(*BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, "===", bin.Operator)
	assert.Equal(t, "a === true", src.TextOf(bin))
	assert.Equal(t, true, bin.Right.(*Literal).Value)
}

func TestParseSyntaxError(t *testing.T) {
	t.Parallel()
	_, err := Parse(context.Background(), "broken.js", []byte("var = ;"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSyntax)
	assert.Contains(t, err.Error(), "broken.js:1:")
}

func TestDialectFor(t *testing.T) {
	t.Parallel()
	assert.Equal(t, JavaScript, DialectFor("a.js"))
	assert.Equal(t, JavaScript, DialectFor("a.MJS"))
	assert.Equal(t, TypeScript, DialectFor("a.ts"))
	assert.Equal(t, TSX, DialectFor("a.tsx"))
	assert.True(t, Supported("x/y.cjs"))
	assert.False(t, Supported("main.go"))
}

func TestParseTypeScript(t *testing.T) {
	t.Parallel()
	src, err := Parse(context.Background(), "a.ts", []byte("function f(props: Props) { return props.x; }\n"))
	require.NoError(t, err)
	fn, ok := src.Program.Body[0].(*Function)
	require.True(t, ok)
	require.Len(t, fn.Params, 1)
	assert.Equal(t, "f", fn.ID.Name)
}
