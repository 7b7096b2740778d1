package lints

import (
	"strings"

	"github.com/stylekit/jsstyle/internal/fix"
	"github.com/stylekit/jsstyle/internal/jsast"
)

// Meta describes a rule to the engine and to users.
type Meta struct {
	Name        string
	Category    string
	Description string
	Fixable     bool
	Schema      []OptionSpec
}

// Rule is one style check. Create is called once per file with the rule's
// normalized options and returns the callbacks to run during traversal.
type Rule interface {
	Meta() Meta
	Create(ctx *Context) Visitors
}

// VisitKey selects the node kind and traversal phase a callback runs on.
type VisitKey struct {
	Kind  jsast.Kind
	Phase jsast.Phase
}

// On is the key for entering nodes of kind k.
func On(k jsast.Kind) VisitKey { return VisitKey{Kind: k, Phase: jsast.Enter} }

// OnExit is the key for leaving nodes of kind k.
func OnExit(k jsast.Kind) VisitKey { return VisitKey{Kind: k, Phase: jsast.Exit} }

// Visitors maps traversal keys to callbacks.
type Visitors map[VisitKey]func(jsast.Node)

// Report is a detected violation. Message may reference Data entries as
// {{name}}. Fix is nil when no safe correction exists.
type Report struct {
	Node    jsast.Located
	Message string
	Data    map[string]string
	Fix     *fix.Edit
}

// Text returns the message with its placeholders substituted.
func (r Report) Text() string {
	if len(r.Data) == 0 {
		return r.Message
	}
	pairs := make([]string, 0, len(r.Data)*2)
	for k, v := range r.Data {
		pairs = append(pairs, "{{"+k+"}}", v)
	}
	return strings.NewReplacer(pairs...).Replace(r.Message)
}

// Context is what a rule sees of the file being checked.
type Context struct {
	Source  *jsast.SourceCode
	Options Options
	scopes  *jsast.Scopes
	report  func(Report)
}

// NewContext wires a rule to a file. report receives every violation.
func NewContext(src *jsast.SourceCode, opts Options, report func(Report)) *Context {
	return &Context{Source: src, Options: opts, report: report}
}

// Report forwards a violation to the host.
func (c *Context) Report(r Report) {
	c.report(r)
}

// Parent returns the parent of n.
func (c *Context) Parent(n jsast.Node) jsast.Node {
	return c.Source.Parents.Of(n)
}

// Scopes returns the lexical scope resolver of the file.
func (c *Context) Scopes() *jsast.Scopes {
	if c.scopes == nil {
		c.scopes = jsast.NewScopes(c.Source.Parents)
	}
	return c.scopes
}

func editPtr(e fix.Edit) *fix.Edit { return &e }
