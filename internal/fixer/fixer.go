package fixer

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"

	godiffpatch "github.com/sourcegraph/go-diff-patch"

	tt "github.com/stylekit/jsstyle/internal/types"
)

// SourceFixer computes the fixed text of a file.
type SourceFixer interface {
	FixSource(filename string, source []byte) ([]byte, []tt.Issue, error)
}

// Fixer rewrites files with the fixes of an engine. It is safe for concurrent
// use; writes to Out are serialized.
type Fixer struct {
	DryRun bool
	Out    io.Writer
	engine SourceFixer
	mu     sync.Mutex
}

func New(engine SourceFixer, dryRun bool, out io.Writer) *Fixer {
	if out == nil {
		out = os.Stdout
	}
	return &Fixer{
		DryRun: dryRun,
		Out:    out,
		engine: engine,
	}
}

// Fix applies every available fix to filename and returns the issues left.
// In dry-run mode the file is untouched and a unified diff is written to Out.
func (f *Fixer) Fix(filename string) ([]tt.Issue, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	fixed, remaining, err := f.engine.FixSource(filename, content)
	if fixed == nil {
		return nil, err
	}
	if bytes.Equal(fixed, content) {
		return remaining, err
	}

	if f.DryRun {
		patch := godiffpatch.GeneratePatch(filename, string(content), string(fixed))
		f.print(patch)
		return remaining, err
	}

	info, statErr := os.Stat(filename)
	if statErr != nil {
		return nil, fmt.Errorf("failed to stat file: %w", statErr)
	}
	if writeErr := os.WriteFile(filename, fixed, info.Mode().Perm()); writeErr != nil {
		return nil, fmt.Errorf("failed to write file: %w", writeErr)
	}
	f.print(fmt.Sprintf("Fixed issues in %s\n", filename))
	return remaining, err
}

func (f *Fixer) print(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fmt.Fprint(f.Out, s)
}
