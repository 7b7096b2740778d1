package lints

import (
	"strings"

	"github.com/stylekit/jsstyle/internal/fix"
	"github.com/stylekit/jsstyle/internal/jsast"
)

// legacyFactories are component factories whose object argument has a
// conventional, non-alphabetical member order.
var legacyFactories = map[string]bool{
	"React.createClass": true,
}

// Alphabetize requires the keys of object literals and patterns to be sorted.
type Alphabetize struct{}

func (Alphabetize) Meta() Meta {
	return Meta{
		Name:        "alphabetize",
		Category:    "style",
		Description: "Require object keys to be sorted alphabetically",
		Fixable:     true,
		Schema: []OptionSpec{
			{Name: "favorShorthand", Type: OptionBool, Default: true, Description: "shorthand properties sort before all others"},
			{Name: "ignoreAllCapitalized", Type: OptionBool, Default: false, Description: "skip objects whose keys are all upper case"},
		},
	}
}

func (Alphabetize) Create(ctx *Context) Visitors {
	favorShorthand := ctx.Options.Bool("favorShorthand")
	ignoreCaps := ctx.Options.Bool("ignoreAllCapitalized")
	var guard fix.Guard

	check := func(n jsast.Node) {
		obj := n.(*jsast.ObjectExpression)
		if len(obj.Properties) < 2 || !alphabetizable(ctx, obj, ignoreCaps) {
			return
		}
		for i := 1; i < len(obj.Properties); i++ {
			prev, cur := obj.Properties[i-1], obj.Properties[i]
			ordered, err := IsOrdered(favorShorthand, prev, cur)
			if err != nil || ordered {
				continue
			}
			ctx.Report(Report{
				Node:    cur,
				Message: "Property '{{current}}' should be before '{{previous}}'",
				Data: map[string]string{
					"current":  keyText(ctx.Source, cur),
					"previous": keyText(ctx.Source, prev),
				},
				Fix: claim(&guard, editPtr(fix.Swap(ctx.Source.Text, prev, cur))),
			})
		}
	}
	return Visitors{
		On(jsast.KindObjectExpression): check,
		On(jsast.KindObjectPattern):    check,
	}
}

// alphabetizable decides whether obj is in scope at all.
func alphabetizable(ctx *Context, obj *jsast.ObjectExpression, ignoreCaps bool) bool {
	allCaps := true
	for _, p := range obj.Properties {
		prop, ok := p.(*jsast.Property)
		if !ok || prop.Computed {
			return false
		}
		k, err := KeyOf(prop.Key, true)
		if err != nil {
			return false
		}
		if strings.ToUpper(k.Text) != k.Text {
			allCaps = false
		}
	}
	if ignoreCaps && allCaps {
		return false
	}
	if call, ok := ctx.Parent(obj).(*jsast.CallExpression); ok {
		if len(call.Arguments) == 1 && legacyFactories[calleeName(call.Callee)] {
			return false
		}
	}
	return true
}

func keyText(src *jsast.SourceCode, n jsast.Node) string {
	if p, ok := n.(*jsast.Property); ok && p.Key != nil {
		return src.TextOf(p.Key)
	}
	return src.TextOf(n)
}
