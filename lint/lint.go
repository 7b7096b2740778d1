package lint

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"runtime"
	"sort"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/stylekit/jsstyle/internal"
	"github.com/stylekit/jsstyle/internal/jsast"
	"github.com/stylekit/jsstyle/internal/lints"
	tt "github.com/stylekit/jsstyle/internal/types"
	"github.com/stylekit/jsstyle/scanner"
)

// DefaultConfigFile is the configuration file looked up by the CLI.
const DefaultConfigFile = ".jsstyle.yaml"

type LintEngine interface {
	Run(filename string) ([]tt.Issue, error)
	RunSource(filename string, source []byte) ([]tt.Issue, error)
	FixSource(filename string, source []byte) ([]byte, []tt.Issue, error)
	IgnoreRule(rule string)
	IgnorePath(pattern string)
}

// New creates an engine configured from configurationPath. An empty path, or
// a path that does not exist, leaves every rule at its defaults.
func New(logger *zap.Logger, configurationPath string) (*internal.Engine, error) {
	config, err := LoadConfig(configurationPath)
	if err != nil {
		return nil, err
	}
	return internal.NewEngine(logger, config.Rules)
}

// skippedDirs are never descended into while walking a directory.
var skippedDirs = []string{"node_modules", ".git"}

func ProcessSources(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	sources [][]byte,
	processor func(LintEngine, []byte) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	var allIssues []tt.Issue
	for i, source := range sources {
		if err := ctx.Err(); err != nil {
			return allIssues, err
		}
		issues, err := processor(engine, source)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing source", zap.Int("source", i), zap.Error(err))
			}
			return nil, err
		}
		allIssues = append(allIssues, issues...)
	}

	return allIssues, nil
}

func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	paths []string,
	processor func(LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	var allIssues []tt.Issue
	for _, path := range paths {
		issues, err := ProcessPath(ctx, logger, engine, path, processor)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return nil, err
		}
		allIssues = append(allIssues, issues...)
	}

	return allIssues, nil
}

// ProcessPath runs processor on path, or on every supported file below it
// when path is a directory. Files are handled by a pool of runtime.NumCPU
// workers. Per-file failures are joined into the returned error together with
// the issues of the files that succeeded. On cancellation the issues gathered
// so far are returned with ctx.Err().
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	path string,
	processor func(LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	issues := make([]tt.Issue, 0)
	if !info.IsDir() {
		if !jsast.Supported(path) {
			return issues, nil
		}
		fileIssues, err := processor(engine, path)
		if err != nil {
			return issues, err
		}
		return append(issues, fileIssues...), nil
	}

	files, err := collectFiles(path)
	if err != nil {
		return nil, err
	}

	bar := newProgressBar(len(files), path, os.Stderr)

	type fileResult struct {
		issues []tt.Issue
		err    error
	}
	results := make(chan fileResult, len(files))

	// limit the number of workers
	sem := make(chan struct{}, runtime.NumCPU())
	var wg sync.WaitGroup

	cancelled := false
dispatch:
	for _, filePath := range files {
		if ctx.Err() != nil {
			cancelled = true
			break
		}
		select {
		case <-ctx.Done():
			cancelled = true
			break dispatch
		case sem <- struct{}{}:
		}
		wg.Add(1)
		go func(fp string) {
			defer wg.Done()
			defer func() { <-sem }()

			fileIssues, err := processor(engine, fp)
			if err != nil {
				if logger != nil {
					logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
				}
				err = fmt.Errorf("%s: %w", fp, err)
			}
			results <- fileResult{issues: fileIssues, err: err}
			_ = bar.Add(1)
		}(filePath)
	}

	wg.Wait()
	close(results)

	var errs []error
	for r := range results {
		issues = append(issues, r.issues...)
		if r.err != nil {
			errs = append(errs, r.err)
		}
	}
	_ = bar.Finish()

	sortIssues(issues)
	if cancelled {
		return issues, ctx.Err()
	}
	return issues, errors.Join(errs...)
}

// collectFiles lists the supported source files under root in lexical order.
func collectFiles(root string) ([]string, error) {
	found, err := scanner.New(root, jsast.Extensions()...).SkipDirs(skippedDirs...).Scan()
	if err != nil {
		return nil, fmt.Errorf("error walking %s: %w", root, err)
	}
	files := make([]string, len(found))
	for i, f := range found {
		files[i] = f.Path
	}
	return files, nil
}

func newProgressBar(total int, description string, w io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}

// sortIssues orders issues by file and position so output does not depend on
// worker scheduling.
func sortIssues(issues []tt.Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		if a.Start.Offset != b.Start.Offset {
			return a.Start.Offset < b.Start.Offset
		}
		return a.Rule < b.Rule
	})
}

func ProcessFile(engine LintEngine, filePath string) ([]tt.Issue, error) {
	return engine.Run(filePath)
}

func ProcessSource(engine LintEngine, source []byte) ([]tt.Issue, error) {
	return engine.RunSource("<stdin>.js", source)
}

// Config represents the overall configuration with a name and a set of rules.
// Rules listed here override those of the preset named by Extends.
type Config struct {
	Name    string                   `yaml:"name"`
	Extends string                   `yaml:"extends,omitempty"`
	Rules   map[string]tt.ConfigRule `yaml:"rules"`
}

// Preset names accepted by Preset and the extends key.
const (
	PresetAll         = "all"
	PresetRecommended = "recommended"
)

// ErrUnknownPreset is returned for an extends value that names no preset.
var ErrUnknownPreset = errors.New("unknown preset")

// Preset returns the built-in configuration called name.
func Preset(name string) (Config, error) {
	switch name {
	case PresetAll:
		return DefaultConfig(), nil
	case PresetRecommended:
		return RecommendedConfig(), nil
	}
	return Config{}, fmt.Errorf("%q: %w", name, ErrUnknownPreset)
}

// LoadConfig reads a YAML configuration file. A missing file yields an empty
// configuration. When the file extends a preset, the result holds the preset's
// rules overlaid with the file's own.
func LoadConfig(configurationPath string) (Config, error) {
	var config Config
	if configurationPath == "" {
		return config, nil
	}

	f, err := os.Open(configurationPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return config, nil
		}
		return config, fmt.Errorf("error opening config: %w", err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("error parsing config %s: %w", configurationPath, err)
	}
	if config.Extends == "" {
		return config, nil
	}

	base, err := Preset(config.Extends)
	if err != nil {
		return config, fmt.Errorf("error parsing config %s: %w", configurationPath, err)
	}
	for name, rule := range config.Rules {
		base.Rules[name] = rule
	}
	config.Rules = base.Rules
	return config, nil
}

// DefaultConfig lists every registered rule at error severity with its
// default options.
func DefaultConfig() Config {
	config := Config{
		Name:  "jsstyle",
		Rules: make(map[string]tt.ConfigRule),
	}
	for _, r := range lints.All() {
		meta := r.Meta()
		rule := tt.ConfigRule{Severity: tt.SeverityError}
		if len(meta.Schema) > 0 {
			rule.Options = lints.Defaults(meta.Schema)
		}
		config.Rules[meta.Name] = rule
	}
	return config
}

// RecommendedConfig warns on the layout and ordering rules, with
// import-destructuring-spacing breaking lists of three or more specifiers.
// The remaining rules are off.
func RecommendedConfig() Config {
	config := Config{
		Name:  PresetRecommended,
		Rules: make(map[string]tt.ConfigRule),
	}
	warn := map[string]map[string]any{
		"alphabetize":                  nil,
		"chained-semi":                 nil,
		"sort-imports":                 nil,
		"import-destructuring-spacing": {"maxProperties": 3, "collapse": true},
	}
	for _, r := range lints.All() {
		meta := r.Meta()
		rule := tt.ConfigRule{Severity: tt.SeverityOff}
		overrides, ok := warn[meta.Name]
		if ok {
			rule.Severity = tt.SeverityWarning
		}
		if len(meta.Schema) > 0 {
			rule.Options = lints.Defaults(meta.Schema)
			for k, v := range overrides {
				rule.Options[k] = v
			}
		}
		config.Rules[meta.Name] = rule
	}
	return config
}

// WriteConfig writes config as YAML to path.
func WriteConfig(path string, config Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("error writing config: %w", err)
	}
	return nil
}
