package jsast

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// ErrSyntax is returned when the source does not parse cleanly.
var ErrSyntax = errors.New("syntax error")

// Dialect selects the grammar used to parse a file.
type Dialect int

const (
	JavaScript Dialect = iota
	TypeScript
	TSX
)

var extensions = map[string]Dialect{
	".js":  JavaScript,
	".jsx": JavaScript,
	".mjs": JavaScript,
	".cjs": JavaScript,
	".ts":  TypeScript,
	".mts": TypeScript,
	".cts": TypeScript,
	".tsx": TSX,
}

// DialectFor picks the grammar from the file extension. Unknown extensions
// parse as JavaScript.
func DialectFor(filename string) Dialect {
	return extensions[strings.ToLower(filepath.Ext(filename))]
}

// Supported reports whether filename has an extension the parser handles.
func Supported(filename string) bool {
	_, ok := extensions[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// Extensions lists the handled file extensions in sorted order.
func Extensions() []string {
	out := make([]string, 0, len(extensions))
	for ext := range extensions {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

func (d Dialect) language() *sitter.Language {
	switch d {
	case TypeScript:
		return typescript.GetLanguage()
	case TSX:
		return tsx.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}

// Parse builds the syntax tree and token stream of src.
func Parse(ctx context.Context, filename string, src []byte) (*SourceCode, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(DialectFor(filename).language())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	root := tree.RootNode()
	if root.HasError() {
		if bad := firstError(root); bad != nil {
			p := bad.StartPoint()
			return nil, fmt.Errorf("%s:%d:%d: %w", filename, p.Row+1, p.Column+1, ErrSyntax)
		}
		return nil, fmt.Errorf("%s: %w", filename, ErrSyntax)
	}

	c := &converter{src: src}
	program, ok := c.convert(root).(*Program)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected root node %q", filename, root.Type())
	}
	var stream []*Token
	c.collectTokens(root, &stream)
	return NewSourceCode(string(src), program, stream), nil
}

// ParseString is Parse for in-memory JavaScript, mostly useful in tests.
func ParseString(src string) (*SourceCode, error) {
	return Parse(context.Background(), "input.js", []byte(src))
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if !child.HasError() && !child.IsMissing() {
			continue
		}
		if bad := firstError(child); bad != nil {
			return bad
		}
	}
	return nil
}

type converter struct {
	src []byte
}

func (c *converter) span(n *sitter.Node) span {
	sp, ep := n.StartPoint(), n.EndPoint()
	return span{
		rng: Range{Start: int(n.StartByte()), End: int(n.EndByte())},
		loc: Loc{
			Start: Position{Line: int(sp.Row) + 1, Column: int(sp.Column)},
			End:   Position{Line: int(ep.Row) + 1, Column: int(ep.Column)},
		},
	}
}

// named returns the named children of n, skipping comments.
func named(n *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		out = append(out, child)
	}
	return out
}

func (c *converter) field(n *sitter.Node, name string) Node {
	child := n.ChildByFieldName(name)
	if child == nil {
		return nil
	}
	return c.convert(child)
}

func (c *converter) list(nodes []*sitter.Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if conv := c.convert(n); conv != nil {
			out = append(out, conv)
		}
	}
	return out
}

func (c *converter) identifier(n *sitter.Node) *Identifier {
	return &Identifier{span: c.span(n), Name: n.Content(c.src)}
}

func (c *converter) convert(n *sitter.Node) Node {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "program":
		return &Program{span: c.span(n), Body: c.list(statements(n))}
	case "import_statement":
		return c.importDeclaration(n)
	case "object", "object_pattern":
		return c.object(n)
	case "identifier", "property_identifier", "shorthand_property_identifier",
		"shorthand_property_identifier_pattern", "private_property_identifier",
		"statement_identifier", "type_identifier", "undefined":
		return c.identifier(n)
	case "string":
		raw := n.Content(c.src)
		return &Literal{span: c.span(n), Raw: raw, Value: unquote(raw)}
	case "number":
		raw := n.Content(c.src)
		return &Literal{span: c.span(n), Raw: raw, Value: parseNumber(raw)}
	case "true", "false":
		return &Literal{span: c.span(n), Raw: n.Type(), Value: n.Type() == "true"}
	case "null":
		return &Literal{span: c.span(n), Raw: "null"}
	case "regex":
		raw := n.Content(c.src)
		return &Literal{span: c.span(n), Raw: raw, Value: raw, Regex: true}
	case "member_expression":
		return &MemberExpression{
			span:     c.span(n),
			Object:   c.field(n, "object"),
			Property: c.field(n, "property"),
			Optional: hasChild(n, "optional_chain", "?."),
		}
	case "subscript_expression":
		return &MemberExpression{
			span:     c.span(n),
			Object:   c.field(n, "object"),
			Property: c.field(n, "index"),
			Computed: true,
			Optional: hasChild(n, "optional_chain", "?."),
		}
	case "call_expression":
		return &CallExpression{
			span:      c.span(n),
			Callee:    c.field(n, "function"),
			Arguments: c.arguments(n.ChildByFieldName("arguments")),
		}
	case "new_expression":
		return &CallExpression{
			span:      c.span(n),
			Callee:    c.field(n, "constructor"),
			Arguments: c.arguments(n.ChildByFieldName("arguments")),
			New:       true,
		}
	case "switch_statement":
		return c.switchStatement(n)
	case "switch_case", "switch_default":
		return c.switchCase(n)
	case "statement_block":
		return &BlockStatement{span: c.span(n), Body: c.list(named(n))}
	case "binary_expression":
		return &BinaryExpression{
			span:     c.span(n),
			Operator: operator(n),
			Left:     c.field(n, "left"),
			Right:    c.field(n, "right"),
		}
	case "unary_expression":
		return &UnaryExpression{
			span:     c.span(n),
			Operator: operator(n),
			Argument: c.field(n, "argument"),
		}
	case "parenthesized_expression":
		inner := named(n)
		if len(inner) == 1 {
			return c.convert(inner[0])
		}
		return c.generic(n)
	case "if_statement":
		stmt := &IfStatement{
			span:       c.span(n),
			Test:       c.field(n, "condition"),
			Consequent: c.field(n, "consequence"),
		}
		if alt := n.ChildByFieldName("alternative"); alt != nil {
			if body := named(alt); len(body) > 0 {
				stmt.Alternate = c.convert(body[0])
			}
		}
		return stmt
	case "while_statement":
		return &WhileStatement{span: c.span(n), Test: c.field(n, "condition"), Body: c.field(n, "body")}
	case "do_statement":
		return &WhileStatement{span: c.span(n), Do: true, Test: c.field(n, "condition"), Body: c.field(n, "body")}
	case "for_statement":
		return &ForStatement{
			span:   c.span(n),
			Init:   c.field(n, "initializer"),
			Test:   c.unwrapStatement(n.ChildByFieldName("condition")),
			Update: c.field(n, "increment"),
			Body:   c.field(n, "body"),
		}
	case "ternary_expression":
		return &ConditionalExpression{
			span:       c.span(n),
			Test:       c.field(n, "condition"),
			Consequent: c.field(n, "consequence"),
			Alternate:  c.field(n, "alternative"),
		}
	case "expression_statement":
		stmt := &ExpressionStatement{span: c.span(n)}
		if inner := named(n); len(inner) > 0 {
			stmt.Expression = c.convert(inner[0])
		}
		return stmt
	case "lexical_declaration", "variable_declaration":
		return c.variableDeclaration(n)
	case "variable_declarator":
		return &VariableDeclarator{span: c.span(n), ID: c.field(n, "name"), Init: c.field(n, "value")}
	case "return_statement":
		stmt := &ReturnStatement{span: c.span(n)}
		if inner := named(n); len(inner) > 0 {
			stmt.Argument = c.convert(inner[0])
		}
		return stmt
	case "function_declaration", "generator_function_declaration":
		fn := c.function(n)
		fn.Declaration = true
		return fn
	case "function_expression", "function", "generator_function", "arrow_function":
		return c.function(n)
	case "comment":
		return nil
	}
	return c.generic(n)
}

func (c *converter) generic(n *sitter.Node) Node {
	return &Generic{span: c.span(n), Type: n.Type(), Nodes: c.list(named(n))}
}

func (c *converter) unwrapStatement(n *sitter.Node) Node {
	if n == nil {
		return nil
	}
	if n.Type() == "expression_statement" {
		if inner := named(n); len(inner) > 0 {
			return c.convert(inner[0])
		}
		return nil
	}
	if n.Type() == "empty_statement" || n.Type() == ";" {
		return nil
	}
	return c.convert(n)
}

func statements(n *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for _, child := range named(n) {
		if child.Type() == "hash_bang_line" {
			continue
		}
		out = append(out, child)
	}
	return out
}

func (c *converter) importDeclaration(n *sitter.Node) Node {
	decl := &ImportDeclaration{span: c.span(n), ImportKind: ImportValue}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case "type", "typeof":
			if !child.IsNamed() {
				decl.ImportKind = ImportType
			}
		case "import_clause":
			decl.Specifiers = c.importClause(child)
		}
	}
	if src, ok := c.field(n, "source").(*Literal); ok {
		decl.Source = src
	}
	return decl
}

func (c *converter) importClause(n *sitter.Node) []*ImportSpecifier {
	var specs []*ImportSpecifier
	for _, child := range named(n) {
		switch child.Type() {
		case "identifier":
			specs = append(specs, &ImportSpecifier{
				span:          c.span(child),
				SpecifierKind: SpecifierDefault,
				Local:         c.identifier(child),
			})
		case "namespace_import":
			spec := &ImportSpecifier{span: c.span(child), SpecifierKind: SpecifierNamespace}
			for _, id := range named(child) {
				spec.Local = c.identifier(id)
			}
			if spec.Local != nil {
				specs = append(specs, spec)
			}
		case "named_imports":
			for _, s := range named(child) {
				if s.Type() != "import_specifier" {
					continue
				}
				specs = append(specs, c.importSpecifier(s))
			}
		}
	}
	return specs
}

func (c *converter) importSpecifier(n *sitter.Node) *ImportSpecifier {
	spec := &ImportSpecifier{span: c.span(n), SpecifierKind: SpecifierNamed}
	name := n.ChildByFieldName("name")
	alias := n.ChildByFieldName("alias")
	if name != nil {
		spec.Imported = c.convert(name)
	}
	switch {
	case alias != nil:
		spec.Local = c.identifier(alias)
	case name != nil:
		if id, ok := spec.Imported.(*Identifier); ok {
			spec.Local = id
		} else {
			spec.Local = c.identifier(name)
		}
	default:
		spec.Local = c.identifier(n)
	}
	return spec
}

func (c *converter) object(n *sitter.Node) Node {
	obj := &ObjectExpression{span: c.span(n), IsPattern: n.Type() == "object_pattern"}
	for _, child := range named(n) {
		switch child.Type() {
		case "pair", "pair_pattern":
			key := child.ChildByFieldName("key")
			obj.Properties = append(obj.Properties, &Property{
				span:     c.span(child),
				Key:      c.propertyKey(key),
				Value:    c.field(child, "value"),
				Computed: key != nil && key.Type() == "computed_property_name",
			})
		case "shorthand_property_identifier", "shorthand_property_identifier_pattern":
			id := c.identifier(child)
			obj.Properties = append(obj.Properties, &Property{
				span:      c.span(child),
				Key:       id,
				Value:     id,
				Shorthand: true,
			})
		case "object_assignment_pattern":
			left := child.ChildByFieldName("left")
			prop := &Property{span: c.span(child), Value: c.generic(child)}
			if left != nil && left.Type() == "shorthand_property_identifier_pattern" {
				prop.Key = c.identifier(left)
				prop.Shorthand = true
			} else {
				prop.Key = c.convert(left)
				prop.Computed = true
			}
			obj.Properties = append(obj.Properties, prop)
		case "spread_element", "rest_pattern":
			spread := &SpreadElement{span: c.span(child)}
			if inner := named(child); len(inner) > 0 {
				spread.Argument = c.convert(inner[0])
			}
			obj.Properties = append(obj.Properties, spread)
		case "method_definition":
			key := child.ChildByFieldName("name")
			obj.Properties = append(obj.Properties, &Property{
				span:     c.span(child),
				Key:      c.propertyKey(key),
				Value:    c.function(child),
				Method:   true,
				Computed: key != nil && key.Type() == "computed_property_name",
			})
		default:
			obj.Properties = append(obj.Properties, c.convert(child))
		}
	}
	return obj
}

func (c *converter) propertyKey(n *sitter.Node) Node {
	if n == nil {
		return nil
	}
	if n.Type() == "computed_property_name" {
		if inner := named(n); len(inner) > 0 {
			return c.convert(inner[0])
		}
		return c.generic(n)
	}
	return c.convert(n)
}

func (c *converter) arguments(n *sitter.Node) []Node {
	if n == nil {
		return nil
	}
	if n.Type() != "arguments" {
		return []Node{c.convert(n)}
	}
	return c.list(named(n))
}

func (c *converter) switchStatement(n *sitter.Node) Node {
	stmt := &SwitchStatement{span: c.span(n), Discriminant: c.field(n, "value")}
	if body := n.ChildByFieldName("body"); body != nil {
		for _, child := range named(body) {
			if sc, ok := c.convert(child).(*SwitchCase); ok {
				stmt.Cases = append(stmt.Cases, sc)
			}
		}
	}
	return stmt
}

func (c *converter) switchCase(n *sitter.Node) Node {
	sc := &SwitchCase{span: c.span(n), Test: c.field(n, "value")}
	afterColon := false
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if !afterColon {
			afterColon = !child.IsNamed() && child.Type() == ":"
			continue
		}
		if !child.IsNamed() || child.Type() == "comment" {
			continue
		}
		if conv := c.convert(child); conv != nil {
			sc.Consequent = append(sc.Consequent, conv)
		}
	}
	return sc
}

func (c *converter) variableDeclaration(n *sitter.Node) Node {
	decl := &VariableDeclaration{span: c.span(n), DeclKind: "var"}
	if kind := n.ChildByFieldName("kind"); kind != nil {
		decl.DeclKind = kind.Type()
	} else if n.ChildCount() > 0 {
		decl.DeclKind = n.Child(0).Type()
	}
	for _, child := range named(n) {
		if d, ok := c.convert(child).(*VariableDeclarator); ok {
			decl.Declarations = append(decl.Declarations, d)
		}
	}
	return decl
}

func (c *converter) function(n *sitter.Node) *Function {
	fn := &Function{span: c.span(n), Arrow: n.Type() == "arrow_function", Body: c.field(n, "body")}
	if name := n.ChildByFieldName("name"); name != nil && name.Type() == "identifier" {
		fn.ID = c.identifier(name)
	}
	if params := n.ChildByFieldName("parameters"); params != nil {
		fn.Params = c.list(named(params))
	} else if param := n.ChildByFieldName("parameter"); param != nil {
		fn.Params = []Node{c.convert(param)}
	}
	return fn
}

func operator(n *sitter.Node) string {
	if op := n.ChildByFieldName("operator"); op != nil {
		return op.Type()
	}
	return ""
}

func hasChild(n *sitter.Node, types ...string) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		t := n.Child(i).Type()
		for _, want := range types {
			if t == want {
				return true
			}
		}
	}
	return false
}

func unquote(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	body := raw[1 : len(raw)-1]
	if !strings.Contains(body, `\`) {
		return body
	}
	return strings.NewReplacer(`\'`, `'`, `\"`, `"`, `\\`, `\`, `\n`, "\n", `\t`, "\t").Replace(body)
}

// parseNumber returns the float64 value of a numeric literal, or the raw text
// for forms that do not fit (BigInt).
func parseNumber(raw string) any {
	clean := strings.ReplaceAll(raw, "_", "")
	if strings.HasSuffix(clean, "n") {
		return raw
	}
	if v, err := strconv.ParseFloat(clean, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseInt(clean, 0, 64); err == nil {
		return float64(v)
	}
	return raw
}

var atomicTokens = map[string]TokenType{
	"string":   TokenString,
	"number":   TokenNumeric,
	"regex":    TokenRegularExpression,
	"comment":  TokenBlockComment,
	"jsx_text": TokenJSX,
}

var contextualKeywords = map[string]bool{
	"from": true, "as": true, "of": true, "get": true, "set": true,
	"async": true, "static": true, "type": true, "target": true,
}

func (c *converter) collectTokens(n *sitter.Node, out *[]*Token) {
	if n.StartByte() == n.EndByte() {
		return
	}
	typ := n.Type()
	if tt, atomic := atomicTokens[typ]; atomic || n.ChildCount() == 0 {
		if !atomic {
			tt = classify(n)
		}
		tok := &Token{Type: tt, Value: n.Content(c.src)}
		s := c.span(n)
		tok.rng, tok.loc = s.rng, s.loc
		if typ == "comment" {
			tok.Type, tok.Value = commentValue(tok.Value)
		}
		*out = append(*out, tok)
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c.collectTokens(n.Child(i), out)
	}
}

func classify(n *sitter.Node) TokenType {
	typ := n.Type()
	switch typ {
	case "true", "false":
		return TokenBoolean
	case "null":
		return TokenNull
	case "string_fragment", "template_chars":
		return TokenTemplate
	case "this", "super":
		return TokenKeyword
	case "optional_chain", "empty_statement":
		return TokenPunctuator
	}
	if n.IsNamed() {
		return TokenIdentifier
	}
	if first := typ[0]; first == '_' || (first >= 'a' && first <= 'z') || (first >= 'A' && first <= 'Z') {
		if contextualKeywords[typ] {
			return TokenIdentifier
		}
		return TokenKeyword
	}
	return TokenPunctuator
}

func commentValue(text string) (TokenType, string) {
	if strings.HasPrefix(text, "//") {
		return TokenLineComment, text[2:]
	}
	if strings.HasPrefix(text, "/*") && strings.HasSuffix(text, "*/") && len(text) >= 4 {
		return TokenBlockComment, text[2 : len(text)-2]
	}
	return TokenBlockComment, text
}
