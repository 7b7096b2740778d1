package internal

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/stylekit/jsstyle/internal/fix"
	"github.com/stylekit/jsstyle/internal/jsast"
	"github.com/stylekit/jsstyle/internal/lints"
	"github.com/stylekit/jsstyle/internal/nolint"
	tt "github.com/stylekit/jsstyle/internal/types"
)

// maxFixPasses bounds the lint-and-fix loop of FixSource.
const maxFixPasses = 10

// Engine manages the linting process.
type Engine struct {
	logger       *zap.Logger
	rules        map[string]*ruleEntry
	ignoredRules map[string]bool
	ignoredPaths []string
	cache        *Cache
}

type ruleEntry struct {
	rule     lints.Rule
	meta     lints.Meta
	severity tt.Severity
	options  lints.Options
}

// NewEngine creates a lint engine with every registered rule enabled at error
// severity. Entries of rules override the severity and options of a rule.
func NewEngine(logger *zap.Logger, rules map[string]tt.ConfigRule) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	engine := &Engine{logger: logger}
	if err := engine.applyRules(rules); err != nil {
		return nil, err
	}
	return engine, nil
}

func (e *Engine) applyRules(rules map[string]tt.ConfigRule) error {
	e.rules = make(map[string]*ruleEntry)
	for _, r := range lints.All() {
		meta := r.Meta()
		e.rules[meta.Name] = &ruleEntry{
			rule:     r,
			meta:     meta,
			severity: tt.SeverityError,
			options:  lints.Defaults(meta.Schema),
		}
	}

	// Iterate over the rules and apply severity
	for key, rule := range rules {
		entry, ok := e.rules[key]
		if !ok {
			e.logger.Warn("unknown rule in configuration", zap.String("rule", key))
			continue
		}
		opts, err := lints.Normalize(entry.meta.Schema, rule.Options)
		if err != nil {
			return fmt.Errorf("rule %s: %w", key, err)
		}
		entry.options = opts
		entry.severity = rule.Severity
		if rule.Severity == tt.SeverityOff {
			e.IgnoreRule(key)
		}
	}
	return nil
}

// IgnoreRule disables a rule by name.
func (e *Engine) IgnoreRule(rule string) {
	if e.ignoredRules == nil {
		e.ignoredRules = make(map[string]bool)
	}
	e.ignoredRules[rule] = true
}

// IgnorePath skips files matching the glob pattern. The pattern is matched
// against the whole path and against the file name.
func (e *Engine) IgnorePath(pattern string) {
	e.ignoredPaths = append(e.ignoredPaths, pattern)
}

// IsIgnoredPath reports whether filename matches an ignored pattern.
func (e *Engine) IsIgnoredPath(filename string) bool {
	clean := filepath.Clean(filename)
	for _, pattern := range e.ignoredPaths {
		if ok, _ := filepath.Match(pattern, clean); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, filepath.Base(clean)); ok {
			return true
		}
	}
	return false
}

// enabled returns the active rules ordered by name.
func (e *Engine) enabled() []*ruleEntry {
	out := make([]*ruleEntry, 0, len(e.rules))
	for name, entry := range e.rules {
		if e.ignoredRules[name] || entry.severity == tt.SeverityOff {
			continue
		}
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].meta.Name < out[j].meta.Name })
	return out
}

// Run applies all lint rules to the given file and returns a slice of Issues.
func (e *Engine) Run(filename string) ([]tt.Issue, error) {
	if e.IsIgnoredPath(filename) {
		return nil, nil
	}
	source, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	if e.cache == nil {
		return e.RunSource(filename, source)
	}

	configHash := e.configHash()
	if issues, ok := e.cache.Get(filename, source, configHash); ok {
		e.logger.Debug("cache hit", zap.String("file", filename))
		return issues, nil
	}
	issues, err := e.RunSource(filename, source)
	if err == nil {
		e.cache.Set(filename, source, configHash, issues)
	}
	return issues, err
}

// SetCache makes Run reuse the issues of unchanged files.
func (e *Engine) SetCache(c *Cache) {
	e.cache = c
}

// configHash identifies the active rule configuration.
func (e *Engine) configHash() string {
	var b strings.Builder
	for _, entry := range e.enabled() {
		fmt.Fprintf(&b, "%s|%d|%v\n", entry.meta.Name, entry.severity, entry.options)
	}
	return contentHash([]byte(b.String()))
}

// RunSource applies all lint rules to source. When rule callbacks panic, the
// issues of all other callbacks are still returned together with an error
// joining one *RuleError per failure.
func (e *Engine) RunSource(filename string, source []byte) ([]tt.Issue, error) {
	src, err := jsast.Parse(context.Background(), filename, source)
	if err != nil {
		return nil, fmt.Errorf("error parsing file: %w", err)
	}
	issues, ruleErrs := e.lint(filename, src)
	return issues, joinRuleErrors(ruleErrs)
}

// FixSource lints source and applies the non-overlapping fixes, repeating
// until no fix applies or the pass limit is reached. It returns the fixed
// text and the issues left in it.
func (e *Engine) FixSource(filename string, source []byte) ([]byte, []tt.Issue, error) {
	if e.IsIgnoredPath(filename) {
		return source, nil, nil
	}
	text := string(source)
	var ruleErrs []*RuleError
	for pass := 0; ; pass++ {
		src, err := jsast.Parse(context.Background(), filename, []byte(text))
		if err != nil {
			if pass == 0 {
				return nil, nil, fmt.Errorf("error parsing file: %w", err)
			}
			return nil, nil, fmt.Errorf("fixes left %s unparsable after pass %d: %w", filename, pass, err)
		}
		issues, errs := e.lint(filename, src)
		ruleErrs = append(ruleErrs, errs...)
		if pass == maxFixPasses {
			return []byte(text), issues, joinRuleErrors(ruleErrs)
		}

		var edits []fix.Edit
		for _, issue := range issues {
			if issue.Fix != nil {
				edits = append(edits, *issue.Fix)
			}
		}
		fixed, applied := fix.Apply(text, edits)
		if len(applied) == 0 {
			return []byte(text), issues, joinRuleErrors(ruleErrs)
		}
		e.logger.Debug("applied fixes",
			zap.String("file", filename),
			zap.Int("pass", pass+1),
			zap.Int("fixes", len(applied)),
		)
		text = fixed
	}
}

type binding struct {
	entry *ruleEntry
	fn    func(jsast.Node)
}

// lint runs every enabled rule over src in a single traversal.
func (e *Engine) lint(filename string, src *jsast.SourceCode) ([]tt.Issue, []*RuleError) {
	nolintMgr := nolint.ParseComments(src)

	var (
		issues   []tt.Issue
		ruleErrs []*RuleError
	)
	dispatch := make(map[lints.VisitKey][]binding)
	for _, entry := range e.enabled() {
		entry := entry
		ctx := lints.NewContext(src, entry.options, func(r lints.Report) {
			issue := e.toIssue(filename, src, entry, r)
			if nolintMgr.IsNolint(issue.Start, issue.Rule) {
				return
			}
			issues = append(issues, issue)
		})
		visitors, err := e.create(entry, ctx)
		if err != nil {
			err.Filename = filename
			ruleErrs = append(ruleErrs, err)
			continue
		}
		for key, fn := range visitors {
			dispatch[key] = append(dispatch[key], binding{entry: entry, fn: fn})
		}
	}

	jsast.Walk(src.Program, func(n jsast.Node, phase jsast.Phase) bool {
		for _, b := range dispatch[lints.VisitKey{Kind: n.Kind(), Phase: phase}] {
			if err := e.call(b, n); err != nil {
				err.Filename = filename
				err.Pos = position(filename, n.Loc().Start, n.Range().Start)
				ruleErrs = append(ruleErrs, err)
			}
		}
		return true
	})

	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Start.Offset != issues[j].Start.Offset {
			return issues[i].Start.Offset < issues[j].Start.Offset
		}
		return issues[i].Rule < issues[j].Rule
	})
	return issues, ruleErrs
}

func (e *Engine) create(entry *ruleEntry, ctx *lints.Context) (v lints.Visitors, rerr *RuleError) {
	defer func() {
		if p := recover(); p != nil {
			rerr = &RuleError{Rule: entry.meta.Name, Panic: p}
			e.logger.Error("rule setup panicked", zap.String("rule", entry.meta.Name), zap.Any("panic", p))
		}
	}()
	return entry.rule.Create(ctx), nil
}

// call runs one callback, turning a panic into a RuleError so that sibling
// nodes and other rules keep running.
func (e *Engine) call(b binding, n jsast.Node) (rerr *RuleError) {
	defer func() {
		if p := recover(); p != nil {
			rerr = &RuleError{Rule: b.entry.meta.Name, Panic: p}
			e.logger.Error("rule panicked",
				zap.String("rule", b.entry.meta.Name),
				zap.Stringer("node", n.Kind()),
				zap.Int("line", n.Loc().Start.Line),
				zap.Any("panic", p),
			)
		}
	}()
	b.fn(n)
	return nil
}

func (e *Engine) toIssue(filename string, src *jsast.SourceCode, entry *ruleEntry, r lints.Report) tt.Issue {
	loc, rng := r.Node.Loc(), r.Node.Range()
	issue := tt.Issue{
		Rule:     entry.meta.Name,
		Category: entry.meta.Category,
		Filename: filename,
		Message:  r.Text(),
		Start:    position(filename, loc.Start, rng.Start),
		End:      position(filename, loc.End, rng.End),
		Severity: entry.severity,
		Fix:      r.Fix,
	}
	if r.Fix != nil {
		issue.Suggestion = suggestion(src, *r.Fix)
	} else if entry.meta.Fixable {
		issue.Note = "This occurrence cannot be fixed automatically."
	}
	return issue
}

func position(filename string, p jsast.Position, offset int) token.Position {
	return token.Position{
		Filename: filename,
		Offset:   offset,
		Line:     p.Line,
		Column:   p.Column + 1,
	}
}

// suggestion returns the lines touched by edit as they read after applying it.
func suggestion(src *jsast.SourceCode, edit fix.Edit) string {
	start := src.LineStart(src.PositionAt(edit.Range.Start).Line)
	end := edit.Range.End
	for end < len(src.Text) && src.Text[end] != '\n' {
		end++
	}
	return src.Text[start:edit.Range.Start] + edit.Text + src.Text[edit.Range.End:end]
}

// RuleError is an internal failure of one rule callback.
type RuleError struct {
	Rule     string
	Filename string
	Pos      token.Position
	Panic    any
}

func (e *RuleError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: rule %s failed: %v", e.Pos, e.Rule, e.Panic)
	}
	return fmt.Sprintf("%s: rule %s failed: %v", e.Filename, e.Rule, e.Panic)
}

func joinRuleErrors(errs []*RuleError) error {
	if len(errs) == 0 {
		return nil
	}
	list := make([]error, len(errs))
	for i, err := range errs {
		list[i] = err
	}
	return errors.Join(list...)
}
