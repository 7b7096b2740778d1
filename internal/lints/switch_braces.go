package lints

import (
	"github.com/stylekit/jsstyle/internal/fix"
	"github.com/stylekit/jsstyle/internal/jsast"
)

// SwitchBraces requires the statements of every non-empty case clause to be
// wrapped in a block.
type SwitchBraces struct{}

func (SwitchBraces) Meta() Meta {
	return Meta{
		Name:        "switch-braces",
		Category:    "style",
		Description: "Require switch case bodies to be surrounded with curly brackets",
		Fixable:     true,
	}
}

func (SwitchBraces) Create(ctx *Context) Visitors {
	var guard fix.Guard
	return Visitors{
		On(jsast.KindSwitchCase): func(n jsast.Node) {
			sc := n.(*jsast.SwitchCase)
			if !needsBraces(sc) {
				return
			}
			ctx.Report(Report{
				Node:    sc,
				Message: "switch cases must be surrounded with curly brackets",
				Fix:     claim(&guard, wrapConsequent(ctx.Source, sc)),
			})
		},
	}
}

// needsBraces reports whether sc has statements that are not a lone block.
// Empty clauses fall through to the next one and are exempt.
func needsBraces(sc *jsast.SwitchCase) bool {
	switch len(sc.Consequent) {
	case 0:
		return false
	case 1:
		_, block := sc.Consequent[0].(*jsast.BlockStatement)
		return !block
	}
	return true
}

// wrapConsequent opens a block right after the clause's colon and closes it
// after the last statement. It declines when the colon is not on the first
// line of the clause.
func wrapConsequent(src *jsast.SourceCode, sc *jsast.SwitchCase) *fix.Edit {
	var colon *jsast.Token
	if sc.Test != nil {
		colon = src.TokenAfter(sc.Test, jsast.Punctuator(":"))
	} else if kw := src.FirstToken(sc); kw != nil {
		colon = src.TokenAfter(kw)
	}
	if !colon.IsPunctuator(":") || colon.Loc().Start.Line != sc.Loc().Start.Line {
		return nil
	}
	last := sc.Consequent[len(sc.Consequent)-1]
	return editPtr(fix.Merge(src.Text, fix.InsertAfter(colon, " {"), fix.InsertAfter(last, " }")))
}
