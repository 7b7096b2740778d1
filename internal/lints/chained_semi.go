package lints

import (
	"strconv"

	"github.com/stylekit/jsstyle/internal/fix"
	"github.com/stylekit/jsstyle/internal/jsast"
)

// ChainedSemi places the semicolon ending a multi-line member chain on its
// own line, aligned with the line the chain starts on.
type ChainedSemi struct{}

func (ChainedSemi) Meta() Meta {
	return Meta{
		Name:        "chained-semi",
		Category:    "layout",
		Description: "Require the semicolon of a multi-line chain on its own line",
		Fixable:     true,
	}
}

func (ChainedSemi) Create(ctx *Context) Visitors {
	var guard fix.Guard
	return Visitors{
		On(jsast.KindMemberExpression): func(n jsast.Node) {
			checkChainSemi(ctx, &guard, n.(*jsast.MemberExpression))
		},
	}
}

func checkChainSemi(ctx *Context, guard *fix.Guard, member *jsast.MemberExpression) {
	src := ctx.Source
	top, ok := chainTop(ctx, member)
	if !ok || member.Loc().Start.Line == member.Loc().End.Line {
		return
	}
	access := src.TokenBefore(member.Property)
	if access == nil {
		return
	}
	if prev := src.TokenBefore(access); prev == nil || jsast.SameLine(prev, access) {
		return
	}
	semi := src.TokenAfter(top)
	if !semi.IsPunctuator(";") {
		return
	}
	last := src.TokenBefore(semi)

	expected := src.LeadingWhitespaceColumn(top)
	lastLine := src.LeadingWhitespaceColumn(last)
	ownLine := !jsast.SameLine(last, semi)

	switch {
	case lastLine > expected && !ownLine:
		ctx.Report(Report{
			Node:    semi,
			Message: "Expected the semicolon of a multi-line chain on its own line",
			Fix:     claim(guard, breakBetween(src, last, semi, expected)),
		})
	case lastLine > expected && semi.Loc().Start.Column != expected:
		ctx.Report(Report{
			Node:    semi,
			Message: "Expected semicolon indentation of {{expected}} but found {{actual}}",
			Data: map[string]string{
				"expected": strconv.Itoa(expected),
				"actual":   strconv.Itoa(semi.Loc().Start.Column),
			},
			Fix: claim(guard, breakBetween(src, last, semi, expected)),
		})
	case lastLine == expected && ownLine:
		ctx.Report(Report{
			Node:    semi,
			Message: "Unexpected line break before the semicolon of a chain",
			Fix:     claim(guard, replaceGap(src, last, semi, "")),
		})
	}
}

// chainTop climbs from member through the calls it is the callee of. It fails
// when the result is itself the object of another member access, i.e. member
// is not the outermost link of its chain.
func chainTop(ctx *Context, member *jsast.MemberExpression) (jsast.Node, bool) {
	var cur jsast.Node = member
	for {
		call, ok := ctx.Parent(cur).(*jsast.CallExpression)
		if !ok || call.Callee != cur {
			break
		}
		cur = call
	}
	if outer, ok := ctx.Parent(cur).(*jsast.MemberExpression); ok && outer.Object == cur {
		return nil, false
	}
	return cur, true
}
