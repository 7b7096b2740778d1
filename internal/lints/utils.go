package lints

import (
	"strings"

	"github.com/stylekit/jsstyle/internal/fix"
	"github.com/stylekit/jsstyle/internal/jsast"
)

// breakBetween replaces the gap between a and b with a line break indented to
// column. It returns nil when a comment lives in the gap.
func breakBetween(src *jsast.SourceCode, a, b jsast.Located, column int) *fix.Edit {
	return replaceGap(src, a, b, fix.LineBreak(column))
}

// breakAfterGap puts b on a new line indented to column. Comments between a
// and b stay behind on a's line.
func breakAfterGap(src *jsast.SourceCode, a, b jsast.Located, column int) *fix.Edit {
	start, end := a.Range().End, b.Range().Start
	if start > end {
		return nil
	}
	gap := src.Text[start:end]
	kept := strings.TrimSpace(gap)
	if kept != "" {
		kept = gap[:len(gap)-len(strings.TrimLeft(gap, " \t"))] + kept
	}
	return editPtr(fix.ReplaceRange(start, end, kept+fix.LineBreak(column)))
}

// replaceGap replaces the text strictly between a and b unless it holds a
// comment.
func replaceGap(src *jsast.SourceCode, a, b jsast.Located, text string) *fix.Edit {
	gap := jsast.Range{Start: a.Range().End, End: b.Range().Start}
	if gap.Start > gap.End || src.CommentsIn(gap) {
		return nil
	}
	return editPtr(fix.ReplaceBetween(a, b, text))
}

// reindent replaces the whitespace before x on its line with column spaces.
// x must be the first token on its line.
func reindent(src *jsast.SourceCode, x jsast.Located, column int) fix.Edit {
	start := src.LineStart(x.Loc().Start.Line)
	return fix.ReplaceRange(start, x.Range().Start, strings.Repeat(" ", column))
}

// claim registers e with the guard and returns it, or nil when e is nil or
// overlaps an edit the rule already proposed.
func claim(g *fix.Guard, e *fix.Edit) *fix.Edit {
	if e == nil || !g.Claim(*e) {
		return nil
	}
	return e
}

// calleeName returns the dotted name of an identifier or non-computed member
// chain such as React.createClass, or "".
func calleeName(n jsast.Node) string {
	switch c := n.(type) {
	case *jsast.Identifier:
		return c.Name
	case *jsast.MemberExpression:
		if c.Computed {
			return ""
		}
		obj := calleeName(c.Object)
		prop, ok := c.Property.(*jsast.Identifier)
		if obj == "" || !ok {
			return ""
		}
		return obj + "." + prop.Name
	}
	return ""
}
