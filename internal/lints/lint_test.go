package lints

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stylekit/jsstyle/internal/fix"
	"github.com/stylekit/jsstyle/internal/jsast"
)

// runRule parses code and runs a single rule over it.
func runRule(t *testing.T, rule Rule, raw map[string]any, code string) []Report {
	t.Helper()
	src, err := jsast.ParseString(code)
	require.NoError(t, err)
	opts, err := Normalize(rule.Meta().Schema, raw)
	require.NoError(t, err)

	var reports []Report
	ctx := NewContext(src, opts, func(r Report) { reports = append(reports, r) })
	visitors := rule.Create(ctx)
	jsast.Walk(src.Program, func(n jsast.Node, phase jsast.Phase) bool {
		if cb, ok := visitors[VisitKey{Kind: n.Kind(), Phase: phase}]; ok {
			cb(n)
		}
		return true
	})
	return reports
}

// fixRule applies the rule's fixes until none is left.
func fixRule(t *testing.T, rule Rule, raw map[string]any, code string) string {
	t.Helper()
	for pass := 0; pass < 10; pass++ {
		var edits []fix.Edit
		for _, r := range runRule(t, rule, raw, code) {
			if r.Fix != nil {
				edits = append(edits, *r.Fix)
			}
		}
		if len(edits) == 0 {
			return code
		}
		code, _ = fix.Apply(code, edits)
	}
	return code
}

func messages(reports []Report) []string {
	out := make([]string, len(reports))
	for i, r := range reports {
		out[i] = r.Text()
	}
	return out
}

type ruleCase struct {
	name     string
	code     string
	options  map[string]any
	messages []string
	fixed    string
}

// runRuleCases checks the reported messages of each case and, when fixed is
// set, the fixed output and that it is clean.
func runRuleCases(t *testing.T, rule Rule, tests []ruleCase) {
	t.Helper()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			reports := runRule(t, rule, tt.options, tt.code)
			if len(tt.messages) == 0 {
				require.Empty(t, messages(reports))
			} else {
				require.Equal(t, tt.messages, messages(reports))
			}
			if tt.fixed == "" {
				return
			}
			got := fixRule(t, rule, tt.options, tt.code)
			require.Equal(t, tt.fixed, got)
			require.Empty(t, messages(runRule(t, rule, tt.options, got)), "fixed output still has violations")
		})
	}
}
