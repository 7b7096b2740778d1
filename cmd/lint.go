package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stylekit/jsstyle/formatter"
	"github.com/stylekit/jsstyle/internal"
	tt "github.com/stylekit/jsstyle/internal/types"
	"github.com/stylekit/jsstyle/lint"
)

var (
	ignoreRules    string
	ignorePaths    string
	lintJsonOutput bool
	outPath        string
	cacheDir       string
)

var lintCmd = &cobra.Command{
	Use:   "lint [paths...]",
	Short: "Run the normal lint process",
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

		if cacheDir != "" {
			cache, err := internal.NewCache(cacheDir)
			if err != nil {
				return err
			}
			engine.SetCache(cache)
			defer func() {
				if err := cache.Flush(); err != nil {
					logger.Warn("Failed to write lint cache", zap.Error(err))
				}
			}()
		}

		return runNormalLintProcess(ctx, logger, engine, args, cmd.OutOrStdout(), lintJsonOutput, outPath)
	},
}

func init() {
	lintCmd.Flags().StringVar(&ignoreRules, "ignore", "", "Comma-separated list of lint rules to ignore")
	lintCmd.Flags().StringVar(&ignorePaths, "ignore-paths", "", "Comma-separated list of path globs to ignore")
	lintCmd.Flags().BoolVar(&lintJsonOutput, "json", false, "Output issues in JSON format")
	lintCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
	lintCmd.Flags().StringVar(&cacheDir, "cache", "", "Directory reusing results of unchanged files")
}

// newEngine builds an engine from the configuration file and the ignore flags.
func newEngine() (*internal.Engine, error) {
	engine, err := lint.New(logger, cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize lint engine: %w", err)
	}
	for _, rule := range splitList(ignoreRules) {
		engine.IgnoreRule(rule)
	}
	for _, path := range splitList(ignorePaths) {
		engine.IgnorePath(path)
	}
	return engine, nil
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func runNormalLintProcess(ctx context.Context, logger *zap.Logger, engine lint.LintEngine, paths []string, w io.Writer, isJson bool, jsonOutput string) error {
	issues, err := lint.ProcessFiles(ctx, logger, engine, paths, lint.ProcessFile)
	if err != nil {
		logger.Error("Error processing files", zap.Error(err))
		return err
	}

	if err := printIssues(logger, w, issues, isJson, jsonOutput); err != nil {
		return err
	}

	if len(issues) > 0 {
		return errIssuesFound
	}
	return nil
}

func groupByFile(issues []tt.Issue) (map[string][]tt.Issue, []string) {
	issuesByFile := make(map[string][]tt.Issue)
	for _, issue := range issues {
		issuesByFile[issue.Filename] = append(issuesByFile[issue.Filename], issue)
	}

	sortedFiles := make([]string, 0, len(issuesByFile))
	for filename := range issuesByFile {
		sortedFiles = append(sortedFiles, filename)
	}
	sort.Strings(sortedFiles)
	return issuesByFile, sortedFiles
}

func printIssues(logger *zap.Logger, w io.Writer, issues []tt.Issue, isJson bool, jsonOutput string) error {
	issuesByFile, sortedFiles := groupByFile(issues)

	if !isJson {
		// text output
		for _, filename := range sortedFiles {
			content, err := os.ReadFile(filename)
			if err != nil {
				logger.Error("Error reading source file", zap.String("file", filename), zap.Error(err))
				continue
			}
			lines := strings.Split(string(content), "\n")
			fmt.Fprintln(w, formatter.GenerateFormattedIssue(issuesByFile[filename], lines))
		}
		return nil
	}

	// JSON output
	d, err := json.MarshalIndent(issuesByFile, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshalling issues to JSON: %w", err)
	}
	if jsonOutput == "" {
		fmt.Fprintln(w, string(d))
		return nil
	}
	if err := os.WriteFile(jsonOutput, d, 0o644); err != nil {
		return fmt.Errorf("error writing JSON output file: %w", err)
	}
	return nil
}
