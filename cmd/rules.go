package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/stylekit/jsstyle/internal/lints"
)

var (
	ruleNameStyle = color.New(color.FgYellow, color.Bold)
	fixableStyle  = color.New(color.FgGreen)
	optionStyle   = color.New(color.FgCyan)
)

var rulesCmd = &cobra.Command{
	Use:   "rules [names...]",
	Short: "List the available rules and their options",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printRules(cmd.OutOrStdout(), args)
	},
}

// printRules describes the named rules, or every rule when names is empty.
func printRules(w io.Writer, names []string) error {
	if len(names) == 0 {
		names = lints.Names()
	}
	for _, name := range names {
		rule, ok := lints.Lookup(name)
		if !ok {
			return fmt.Errorf("unknown rule %q", name)
		}
		meta := rule.Meta()

		fmt.Fprintf(w, "%s (%s)", ruleNameStyle.Sprint(meta.Name), meta.Category)
		if meta.Fixable {
			fmt.Fprint(w, " "+fixableStyle.Sprint("[fixable]"))
		}
		fmt.Fprintf(w, "\n    %s\n", meta.Description)

		for _, opt := range meta.Schema {
			fmt.Fprintf(w, "    %s %s = %s\n", optionStyle.Sprint(opt.Name), opt.Type, formatDefault(opt.Default))
			if opt.Description != "" {
				fmt.Fprintf(w, "        %s\n", opt.Description)
			}
		}
		fmt.Fprintln(w)
	}
	return nil
}

func formatDefault(v any) string {
	if list, ok := v.([]string); ok {
		return "[" + strings.Join(list, ", ") + "]"
	}
	return fmt.Sprint(v)
}
