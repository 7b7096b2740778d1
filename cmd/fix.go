package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stylekit/jsstyle/internal/fixer"
	tt "github.com/stylekit/jsstyle/internal/types"
	"github.com/stylekit/jsstyle/lint"
)

var dryRun bool

var fixCmd = &cobra.Command{
	Use:   "fix [paths...]",
	Short: "Automatically fix issues",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("please provide file or directory paths")
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		engine, err := newEngine()
		if err != nil {
			return err
		}

		return runAutoFix(ctx, logger, engine, args, cmd.OutOrStdout(), dryRun)
	},
}

func init() {
	fixCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run in dry-run mode (print a diff without applying fixes)")
	fixCmd.Flags().StringVar(&ignoreRules, "ignore", "", "Comma-separated list of lint rules to ignore")
	fixCmd.Flags().StringVar(&ignorePaths, "ignore-paths", "", "Comma-separated list of path globs to ignore")
}

// runAutoFix fixes every file under paths. Issues left after fixing are
// printed; in dry-run mode only their number is reported, since their
// positions refer to the unwritten text.
func runAutoFix(ctx context.Context, logger *zap.Logger, engine lint.LintEngine, paths []string, w io.Writer, dryRun bool) error {
	fix := fixer.New(engine, dryRun, w)
	processor := func(_ lint.LintEngine, path string) ([]tt.Issue, error) {
		return fix.Fix(path)
	}

	remaining, err := lint.ProcessFiles(ctx, logger, engine, paths, processor)
	if err != nil {
		logger.Error("error fixing files", zap.Error(err))
		return err
	}
	if len(remaining) == 0 {
		return nil
	}

	if dryRun {
		fmt.Fprintf(w, "%d issue(s) would remain after fixing\n", len(remaining))
		return errIssuesFound
	}
	if err := printIssues(logger, w, remaining, false, ""); err != nil {
		return err
	}
	return errIssuesFound
}
