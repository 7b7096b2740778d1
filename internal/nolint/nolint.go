package nolint

import (
	"fmt"
	"go/token"
	"strings"

	"github.com/stylekit/jsstyle/internal/jsast"
)

const nolintPrefix = "nolint"

// Manager manages nolint scopes of one file and checks if a position is nolinted.
type Manager struct {
	scopes []nolintScope
}

// nolintScope is an inclusive line range where nolint applies.
type nolintScope struct {
	rules map[string]struct{}
	start int
	end   int
}

// ParseComments collects the nolint comments of src. Both `// nolint` and
// `/* nolint:rule-a,rule-b */` forms are recognized.
func ParseComments(src *jsast.SourceCode) *Manager {
	manager := Manager{}
	stmtMap := indexStatementsByLine(src.Program)
	firstLine := firstStatementLine(src.Program)

	for _, comment := range src.Comments() {
		ns, err := parseComment(src, comment, stmtMap, firstLine)
		if err != nil {
			// ignore comments that are not nolint directives
			continue
		}
		manager.scopes = append(manager.scopes, ns)
	}
	return &manager
}

// parseComment parses a single nolint comment and determines its scope.
func parseComment(src *jsast.SourceCode, comment *jsast.Token, stmtMap map[int]jsast.Node, firstLine int) (nolintScope, error) {
	var ns nolintScope
	text := strings.TrimSpace(comment.Value)

	if !strings.HasPrefix(text, nolintPrefix) {
		return ns, fmt.Errorf("not a nolint comment")
	}
	rest := text[len(nolintPrefix):]

	// A nolint comment can either have a list of rules after a colon (:)
	// or if no rules are specified, it applies to all rules
	if len(rest) > 0 && rest[0] != ':' {
		return ns, fmt.Errorf("invalid nolint comment format")
	}
	if len(rest) > 0 {
		rest = strings.TrimSpace(rest[1:])
		if rest == "" {
			return ns, fmt.Errorf("invalid nolint comment: no rules specified after colon")
		}
	}
	ns.rules = parseIgnoreRuleNames(rest)
	line := comment.Loc().Start.Line

	// Before the first statement the comment covers the whole file.
	if firstLine == 0 || comment.Loc().End.Line < firstLine {
		ns.start, ns.end = 1, len(src.Lines())
		return ns, nil
	}

	// Inline comments cover their line and the statement starting on it.
	if !src.IsFirstOnLine(comment) {
		ns.start, ns.end = line, line
		if stmt, ok := stmtMap[line]; ok && stmt.Range().Start < comment.Range().Start {
			ns.start = stmt.Loc().Start.Line
			ns.end = max(line, stmt.Loc().End.Line)
		}
		return ns, nil
	}

	// Standalone comments cover the statement on the next line.
	endLine := comment.Loc().End.Line
	if stmt, ok := stmtMap[endLine+1]; ok {
		ns.start, ns.end = line, stmt.Loc().End.Line
		return ns, nil
	}

	ns.start, ns.end = line, endLine
	return ns, nil
}

// parseIgnoreRuleNames parses the rule list from the nolint comment.
func parseIgnoreRuleNames(text string) map[string]struct{} {
	rulesMap := make(map[string]struct{})
	if text == "" {
		return rulesMap
	}
	for _, rule := range strings.Split(text, ",") {
		rule = strings.TrimSpace(rule)
		if rule != "" {
			rulesMap[rule] = struct{}{}
		}
	}
	return rulesMap
}

// indexStatementsByLine maps each line to the outermost statement starting on it.
func indexStatementsByLine(program *jsast.Program) map[int]jsast.Node {
	stmtMap := make(map[int]jsast.Node)
	add := func(stmts []jsast.Node) {
		for _, stmt := range stmts {
			line := stmt.Loc().Start.Line
			if _, exists := stmtMap[line]; !exists {
				stmtMap[line] = stmt
			}
		}
	}
	jsast.Inspect(program, func(n jsast.Node) bool {
		switch s := n.(type) {
		case *jsast.Program:
			add(s.Body)
		case *jsast.BlockStatement:
			add(s.Body)
		case *jsast.SwitchCase:
			add(s.Consequent)
		}
		return true
	})
	return stmtMap
}

func firstStatementLine(program *jsast.Program) int {
	if len(program.Body) == 0 {
		return 0
	}
	return program.Body[0].Loc().Start.Line
}

// IsNolint checks if a given position and rule are nolinted.
func (m *Manager) IsNolint(pos token.Position, ruleName string) bool {
	for _, ns := range m.scopes {
		if pos.Line < ns.start || pos.Line > ns.end {
			continue
		}
		// If the rules list is empty, nolint applies to all rules
		if len(ns.rules) == 0 {
			return true
		}
		if _, exists := ns.rules[ruleName]; exists {
			return true
		}
	}
	return false
}
