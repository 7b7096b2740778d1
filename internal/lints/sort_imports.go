package lints

import (
	"sort"
	"strings"

	"github.com/stylekit/jsstyle/internal/fix"
	"github.com/stylekit/jsstyle/internal/jsast"
)

// Member syntax groups of an import declaration.
const (
	syntaxNone    = "none"
	syntaxType    = "type"
	syntaxAll     = "all"
	syntaxNamed   = "named"
	syntaxDefault = "default"
)

// SortImports orders import declarations by member syntax, then by the first
// local name, and the named members within each declaration.
type SortImports struct{}

func (SortImports) Meta() Meta {
	return Meta{
		Name:        "sort-imports",
		Category:    "imports",
		Description: "Require import declarations and their members to be sorted",
		Fixable:     true,
		Schema: []OptionSpec{
			{Name: "ignoreCase", Type: OptionBool, Default: false, Description: "compare names case-insensitively"},
			{Name: "ignoreMemberSort", Type: OptionBool, Default: false, Description: "do not check member order within a declaration"},
			{
				Name:        "memberSyntaxSortOrder",
				Type:        OptionPermutation,
				Default:     []string{syntaxNone, syntaxType, syntaxAll, syntaxNamed, syntaxDefault},
				Values:      []string{syntaxNone, syntaxType, syntaxAll, syntaxNamed, syntaxDefault},
				Description: "order of member syntax groups",
			},
		},
	}
}

type importOrder struct {
	ctx        *Context
	guard      fix.Guard
	ignoreCase bool
	syntaxRank map[string]int
}

func (SortImports) Create(ctx *Context) Visitors {
	o := &importOrder{
		ctx:        ctx,
		ignoreCase: ctx.Options.Bool("ignoreCase"),
		syntaxRank: make(map[string]int),
	}
	for i, s := range ctx.Options.Strings("memberSyntaxSortOrder") {
		o.syntaxRank[s] = i
	}
	ignoreMembers := ctx.Options.Bool("ignoreMemberSort")

	return Visitors{
		On(jsast.KindProgram): func(n jsast.Node) {
			var prev *jsast.ImportDeclaration
			for _, stmt := range n.(*jsast.Program).Body {
				decl, ok := stmt.(*jsast.ImportDeclaration)
				if !ok {
					continue
				}
				if !ignoreMembers {
					o.checkMembers(decl)
				}
				prev = o.step(prev, decl)
			}
		},
	}
}

// step compares cur against the previous declaration and returns the new
// accumulator.
func (o *importOrder) step(prev, cur *jsast.ImportDeclaration) *jsast.ImportDeclaration {
	if prev == nil {
		return cur
	}
	src := o.ctx.Source
	prevSyntax, curSyntax := memberSyntax(prev), memberSyntax(cur)
	switch {
	case o.syntaxRank[curSyntax] < o.syntaxRank[prevSyntax]:
		o.ctx.Report(Report{
			Node:    cur,
			Message: "Expected '{{syntaxA}}' syntax before '{{syntaxB}}' syntax",
			Data:    map[string]string{"syntaxA": curSyntax, "syntaxB": prevSyntax},
			Fix:     claim(&o.guard, editPtr(fix.Swap(src.Text, prev, cur))),
		})
	case curSyntax == prevSyntax:
		a, aok := o.firstLocal(prev)
		b, bok := o.firstLocal(cur)
		if aok && bok && a > b {
			o.ctx.Report(Report{
				Node:    cur,
				Message: "Imports should be sorted alphabetically",
				Fix:     claim(&o.guard, editPtr(fix.Swap(src.Text, prev, cur))),
			})
		}
	}
	return cur
}

// checkMembers reports the first named member that is out of order.
func (o *importOrder) checkMembers(decl *jsast.ImportDeclaration) {
	named := decl.Named()
	for i := 1; i < len(named); i++ {
		if o.name(named[i-1]) <= o.name(named[i]) {
			continue
		}
		o.ctx.Report(Report{
			Node:    named[i],
			Message: "Member '{{memberName}}' of the import declaration should be sorted alphabetically",
			Data:    map[string]string{"memberName": named[i].Local.Name},
			Fix:     claim(&o.guard, o.sortMembers(named)),
		})
		return
	}
}

// sortMembers rewrites the members in sorted order, keeping the separators
// between them. It declines when comments sit between members.
func (o *importOrder) sortMembers(named []*jsast.ImportSpecifier) *fix.Edit {
	src := o.ctx.Source
	first, last := named[0], named[len(named)-1]
	if src.CommentsIn(jsast.Range{Start: first.Range().Start, End: last.Range().End}) {
		return nil
	}
	sorted := append([]*jsast.ImportSpecifier(nil), named...)
	sort.SliceStable(sorted, func(i, j int) bool { return o.name(sorted[i]) < o.name(sorted[j]) })

	var sb strings.Builder
	for i, spec := range sorted {
		if i > 0 {
			sb.WriteString(src.TextBetween(named[i-1], named[i]))
		}
		sb.WriteString(src.TextOf(spec))
	}
	return editPtr(fix.ReplaceRange(first.Range().Start, last.Range().End, sb.String()))
}

func (o *importOrder) name(spec *jsast.ImportSpecifier) string {
	if o.ignoreCase {
		return strings.ToLower(spec.Local.Name)
	}
	return spec.Local.Name
}

func (o *importOrder) firstLocal(decl *jsast.ImportDeclaration) (string, bool) {
	if len(decl.Specifiers) == 0 {
		return "", false
	}
	return o.name(decl.Specifiers[0]), true
}

// memberSyntax classifies how a declaration binds its members by its first
// specifier, so `import React, { useState }` counts as a default import.
func memberSyntax(decl *jsast.ImportDeclaration) string {
	switch {
	case len(decl.Specifiers) == 0:
		return syntaxNone
	case decl.ImportKind == jsast.ImportType:
		return syntaxType
	}
	switch decl.Specifiers[0].SpecifierKind {
	case jsast.SpecifierNamespace:
		return syntaxAll
	case jsast.SpecifierDefault:
		return syntaxDefault
	}
	return syntaxNamed
}
