package lints

import (
	"github.com/stylekit/jsstyle/internal/fix"
	"github.com/stylekit/jsstyle/internal/jsast"
)

// CallArgumentNewline requires a multi-line argument list to put every
// argument, and the closing parenthesis, on its own line.
type CallArgumentNewline struct{}

func (CallArgumentNewline) Meta() Meta {
	return Meta{
		Name:        "call-argument-newline",
		Category:    "layout",
		Description: "Require consistent line breaks between the arguments of multi-line calls",
		Fixable:     true,
	}
}

func (CallArgumentNewline) Create(ctx *Context) Visitors {
	var guard fix.Guard
	return Visitors{
		On(jsast.KindCallExpression): func(n jsast.Node) {
			checkArgumentBreaks(ctx, &guard, n.(*jsast.CallExpression))
		},
	}
}

func checkArgumentBreaks(ctx *Context, guard *fix.Guard, call *jsast.CallExpression) {
	args := call.Arguments
	if len(args) < 2 || call.Callee == nil {
		return
	}
	src := ctx.Source
	open := src.TokenAfter(call.Callee, jsast.Punctuator("("))
	closing := src.LastToken(call)
	if open == nil || !closing.IsPunctuator(")") || open.Range().Start > args[0].Range().Start {
		return
	}
	if jsast.SameLine(open, closing) {
		return
	}

	base := src.LeadingWhitespaceColumn(call)
	indent := base + 2

	if jsast.SameLine(open, args[0]) {
		ctx.Report(Report{
			Node:    args[0],
			Message: "Expected a line break after '('",
			Fix:     claim(guard, breakAfterGap(src, open, args[0], indent)),
		})
	}
	for i := 1; i < len(args); i++ {
		comma := src.TokenBefore(args[i], jsast.Punctuator(","))
		if comma == nil || !jsast.SameLine(comma, args[i]) {
			continue
		}
		ctx.Report(Report{
			Node:    args[i],
			Message: "Expected a line break between arguments",
			Fix:     claim(guard, breakAfterGap(src, comma, args[i], indent)),
		})
	}
	if tail := src.TokenBefore(closing); tail != nil && jsast.SameLine(tail, closing) {
		ctx.Report(Report{
			Node:    closing,
			Message: "Expected a line break before ')'",
			Fix:     claim(guard, breakAfterGap(src, tail, closing, base)),
		})
	}
}
