package lints

import (
	"github.com/stylekit/jsstyle/internal/fix"
	"github.com/stylekit/jsstyle/internal/jsast"
)

// Shortcut flags comparisons against boolean literals, and `.length` used as
// a truth value where an explicit comparison to zero is expected.
type Shortcut struct{}

func (Shortcut) Meta() Meta {
	return Meta{
		Name:        "shortcut",
		Category:    "style",
		Description: "Disallow comparing to true or false and require explicit length comparisons",
		Fixable:     true,
	}
}

func (Shortcut) Create(ctx *Context) Visitors {
	var guard fix.Guard
	return Visitors{
		On(jsast.KindBinaryExpression): func(n jsast.Node) {
			bin := n.(*jsast.BinaryExpression)
			negated, equality := equalityOperator(bin.Operator)
			if !equality {
				return
			}
			operand, lit := booleanOperand(bin)
			if lit == nil {
				return
			}

			// x === false and x !== true both mean !x.
			negate := negated == lit.Value.(bool)
			text := ctx.Source.TextOf(operand)
			if !simpleOperand(operand) && (negate || !statementTest(ctx, bin)) {
				text = "(" + text + ")"
			}
			if negate {
				text = "!" + text
			}
			ctx.Report(Report{
				Node:    bin,
				Message: "You must use a shortcut instead of comparing to '{{value}}'",
				Data:    map[string]string{"value": lit.Raw},
				Fix:     claim(&guard, editPtr(fix.Replace(bin, text))),
			})
		},
		On(jsast.KindMemberExpression): func(n jsast.Node) {
			member := n.(*jsast.MemberExpression)
			prop, ok := member.Property.(*jsast.Identifier)
			if !ok || member.Computed || prop.Name != "length" || optionalChain(member) {
				return
			}
			report := Report{
				Node:    member,
				Message: "'{{name}}.length' must use an explicit comparison, not a shortcut",
				Data:    map[string]string{"name": ctx.Source.TextOf(member.Object)},
			}

			if not, ok := ctx.Parent(member).(*jsast.UnaryExpression); ok && not.Operator == "!" {
				text := ctx.Source.TextOf(member) + "===0"
				if comparisonNeedsParens(ctx.Parent(not), not) && !parenthesized(ctx.Source, not) {
					text = "(" + text + ")"
				}
				report.Fix = claim(&guard, editPtr(fix.Replace(not, text)))
				ctx.Report(report)
				return
			}
			if !inCondition(ctx, member) {
				return
			}
			report.Fix = claim(&guard, editPtr(fix.InsertAfter(member, ">0")))
			ctx.Report(report)
		},
	}
}

func equalityOperator(op string) (negated, ok bool) {
	switch op {
	case "===", "==":
		return false, true
	case "!==", "!=":
		return true, true
	}
	return false, false
}

// booleanOperand splits a comparison into the compared value and the boolean
// literal it is compared to.
func booleanOperand(bin *jsast.BinaryExpression) (jsast.Node, *jsast.Literal) {
	if lit, ok := bin.Right.(*jsast.Literal); ok {
		if _, isBool := lit.Value.(bool); isBool {
			return bin.Left, lit
		}
	}
	if lit, ok := bin.Left.(*jsast.Literal); ok {
		if _, isBool := lit.Value.(bool); isBool {
			return bin.Right, lit
		}
	}
	return nil, nil
}

// statementTest reports whether n is the whole test of an if, while, do or
// for statement. The statement's own parentheses delimit it there.
func statementTest(ctx *Context, n jsast.Node) bool {
	switch p := ctx.Parent(n).(type) {
	case *jsast.IfStatement:
		return p.Test == n
	case *jsast.WhileStatement:
		return p.Test == n
	case *jsast.ForStatement:
		return p.Test == n
	}
	return false
}

// inCondition reports whether n is evaluated only for its truth value: the
// test of a statement or ternary, possibly through `&&` and `||`.
func inCondition(ctx *Context, n jsast.Node) bool {
	cur := n
	for {
		switch p := ctx.Parent(cur).(type) {
		case *jsast.BinaryExpression:
			if p.Operator != "&&" && p.Operator != "||" {
				return false
			}
			cur = p
		case *jsast.IfStatement:
			return p.Test == cur
		case *jsast.WhileStatement:
			return p.Test == cur
		case *jsast.ForStatement:
			return p.Test == cur
		case *jsast.ConditionalExpression:
			return p.Test == cur
		default:
			return false
		}
	}
}

// comparisonNeedsParens reports whether an equality expression replacing n
// under parent would bind differently without parentheses.
func comparisonNeedsParens(parent, n jsast.Node) bool {
	switch p := parent.(type) {
	case *jsast.MemberExpression:
		return p.Object == n
	case *jsast.CallExpression:
		return p.Callee == n
	case *jsast.BinaryExpression:
		return p.Operator != "&&" && p.Operator != "||" && p.Operator != "??"
	case *jsast.UnaryExpression:
		return true
	}
	return false
}

func parenthesized(src *jsast.SourceCode, n jsast.Located) bool {
	return src.TokenBefore(n).IsPunctuator("(") && src.TokenAfter(n).IsPunctuator(")")
}

// optionalChain reports whether n is part of an `a?.b` chain, where `!a?.b`
// and `a?.b===0` disagree on undefined.
func optionalChain(n jsast.Node) bool {
	for {
		switch v := n.(type) {
		case *jsast.MemberExpression:
			if v.Optional {
				return true
			}
			n = v.Object
		case *jsast.CallExpression:
			n = v.Callee
		default:
			return false
		}
	}
}

func simpleOperand(n jsast.Node) bool {
	switch v := n.(type) {
	case *jsast.Identifier, *jsast.MemberExpression, *jsast.CallExpression, *jsast.Literal, *jsast.UnaryExpression:
		return true
	case *jsast.Generic:
		return v.Type == "this"
	}
	return false
}
