package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stylekit/jsstyle/internal"
	tt "github.com/stylekit/jsstyle/internal/types"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Re-lint files whenever they change",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			args = []string{"."}
		}

		engine, err := newEngine()
		if err != nil {
			return err
		}

		w, err := startWatcher(engine, args, cmd.OutOrStdout())
		if err != nil {
			return err
		}

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
		<-sigs
		return w.Stop()
	},
}

func init() {
	watchCmd.Flags().StringVar(&ignoreRules, "ignore", "", "Comma-separated list of lint rules to ignore")
	watchCmd.Flags().StringVar(&ignorePaths, "ignore-paths", "", "Comma-separated list of path globs to ignore")
}

func startWatcher(engine *internal.Engine, dirs []string, out io.Writer) (*internal.Watcher, error) {
	var mu sync.Mutex
	report := func(filename string, issues []tt.Issue, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", filename, err)
			return
		}
		if len(issues) == 0 {
			fmt.Fprintf(out, "no issues found in %s\n", filename)
			return
		}
		fmt.Fprintf(out, "found %d issue(s) in %s\n", len(issues), filename)
		if err := printIssues(logger, out, issues, false, ""); err != nil {
			logger.Error("Error printing issues", zap.Error(err))
		}
	}

	w, err := internal.NewWatcher(engine, logger, report)
	if err != nil {
		return nil, err
	}
	if err := w.Start(); err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Stop()
			return nil, err
		}
	}
	for _, dir := range dirs {
		fmt.Fprintf(out, "watching %s\n", dir)
	}
	return w, nil
}
