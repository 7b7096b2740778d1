package lints

import (
	"strconv"
	"strings"

	"github.com/stylekit/jsstyle/internal/fix"
	"github.com/stylekit/jsstyle/internal/jsast"
)

// ImportSpacing lays out the braced specifier list of import declarations:
// one specifier per line once the list is long or already multi-line,
// otherwise optionally collapsed onto a single line.
type ImportSpacing struct{}

func (ImportSpacing) Meta() Meta {
	return Meta{
		Name:        "import-destructuring-spacing",
		Category:    "layout",
		Description: "Enforce line breaks and indentation inside import braces",
		Fixable:     true,
		Schema: []OptionSpec{
			{Name: "collapse", Type: OptionBool, Default: true, Description: "join short multi-line lists onto one line"},
			{Name: "multiline", Type: OptionBool, Default: false, Description: "a list spanning lines needs one specifier per line"},
			{Name: "maxProperties", Type: OptionInt, Default: 0, Min: 0, Description: "specifier count that requires one specifier per line, 0 for no limit"},
			{Name: "indent", Type: OptionInt, Default: 2, Min: 0, Description: "specifier indentation relative to the import keyword"},
			{Name: "enforceIndentation", Type: OptionBool, Default: true, Description: "check specifier indentation"},
		},
	}
}

type importLayout struct {
	collapse      bool
	multiline     bool
	maxProperties int
	indent        int
	enforceIndent bool
}

func (ImportSpacing) Create(ctx *Context) Visitors {
	cfg := importLayout{
		collapse:      ctx.Options.Bool("collapse"),
		multiline:     ctx.Options.Bool("multiline"),
		maxProperties: ctx.Options.Int("maxProperties"),
		indent:        ctx.Options.Int("indent"),
		enforceIndent: ctx.Options.Bool("enforceIndentation"),
	}
	var guard fix.Guard
	return Visitors{
		On(jsast.KindImportDeclaration): func(n jsast.Node) {
			checkImportLayout(ctx, &guard, cfg, n.(*jsast.ImportDeclaration))
		},
	}
}

func checkImportLayout(ctx *Context, guard *fix.Guard, cfg importLayout, decl *jsast.ImportDeclaration) {
	src := ctx.Source
	named := decl.Named()
	if len(named) == 0 {
		return
	}
	first, last := named[0], named[len(named)-1]
	open := src.TokenBefore(first, jsast.Punctuator("{"))
	closing := src.TokenAfter(last, jsast.Punctuator("}"))
	if open == nil || closing == nil {
		return
	}

	multiLine := open.Loc().Start.Line != closing.Loc().Start.Line
	overLimit := cfg.maxProperties > 0 && len(named) >= cfg.maxProperties
	needBreaks := overLimit || (cfg.multiline && multiLine)
	if !needBreaks {
		if multiLine && cfg.collapse {
			ctx.Report(Report{
				Node:    open,
				Message: "Import specifiers should be on a single line",
				Fix:     claim(guard, collapseSpecifiers(src, open, closing, named)),
			})
		}
		return
	}

	base := src.LeadingWhitespaceColumn(decl)
	column := base + cfg.indent

	if jsast.SameLine(open, first) {
		ctx.Report(Report{
			Node:    open,
			Message: "Expected a line break after '{'",
			Fix:     claim(guard, breakBetween(src, open, first, column)),
		})
	}
	for i := 1; i < len(named); i++ {
		comma := src.TokenAfter(named[i-1], jsast.Punctuator(","))
		if comma == nil || !jsast.SameLine(comma, named[i]) {
			continue
		}
		ctx.Report(Report{
			Node:    named[i],
			Message: "Expected a line break between '{{previous}}' and '{{current}}'",
			Data: map[string]string{
				"previous": src.TextOf(named[i-1]),
				"current":  src.TextOf(named[i]),
			},
			Fix: claim(guard, breakBetween(src, comma, named[i], column)),
		})
	}
	if tail := src.TokenBefore(closing); tail != nil && jsast.SameLine(tail, closing) {
		ctx.Report(Report{
			Node:    closing,
			Message: "Expected a line break before '}'",
			Fix:     claim(guard, breakBetween(src, tail, closing, base)),
		})
	}

	if !cfg.enforceIndent {
		return
	}
	// Specifiers sharing a line with a previous token get their indentation
	// from the break inserted above.
	for _, spec := range named {
		if !src.IsFirstOnLine(spec) {
			continue
		}
		actual := spec.Loc().Start.Column
		if actual == column {
			continue
		}
		ctx.Report(Report{
			Node:    spec,
			Message: "Expected indentation of {{expected}} spaces but found {{actual}}",
			Data: map[string]string{
				"expected": strconv.Itoa(column),
				"actual":   strconv.Itoa(actual),
			},
			Fix: claim(guard, editPtr(reindent(src, spec, column))),
		})
	}
}

// collapseSpecifiers rewrites the list as `{ a, b }`, dropping a trailing
// comma. It declines when the list holds comments.
func collapseSpecifiers(src *jsast.SourceCode, open, closing *jsast.Token, named []*jsast.ImportSpecifier) *fix.Edit {
	if src.CommentsIn(jsast.Range{Start: open.Range().End, End: closing.Range().Start}) {
		return nil
	}
	parts := make([]string, len(named))
	for i, spec := range named {
		parts[i] = src.TextOf(spec)
	}
	return editPtr(fix.ReplaceBetween(open, closing, " "+strings.Join(parts, ", ")+" "))
}
