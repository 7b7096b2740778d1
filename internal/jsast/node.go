// Package jsast holds the syntax tree, token stream and lexical scopes the
// style rules operate on. Trees are produced by Parse and are immutable once
// built; upward navigation goes through a Parents index instead of pointers
// stored on the nodes.
package jsast

// Position is a location in a source file. Line is 1-based, Column is the
// 0-based byte offset within the line.
type Position struct {
	Line   int
	Column int
}

// Loc is the start and end position of a node or token.
type Loc struct {
	Start Position
	End   Position
}

// Range is a half-open byte range [Start, End) into the source buffer.
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by r.
func (r Range) Len() int { return r.End - r.Start }

// Located is anything with a source range: nodes and tokens.
type Located interface {
	Range() Range
	Loc() Loc
}

// Kind identifies the syntactic construct a node represents.
type Kind int

const (
	KindGeneric Kind = iota
	KindProgram
	KindImportDeclaration
	KindImportSpecifier
	KindObjectExpression
	KindObjectPattern
	KindProperty
	KindSpreadElement
	KindIdentifier
	KindLiteral
	KindMemberExpression
	KindCallExpression
	KindSwitchStatement
	KindSwitchCase
	KindBlockStatement
	KindBinaryExpression
	KindUnaryExpression
	KindIfStatement
	KindWhileStatement
	KindForStatement
	KindConditionalExpression
	KindExpressionStatement
	KindVariableDeclaration
	KindVariableDeclarator
	KindReturnStatement
	KindFunction
)

var kindNames = [...]string{
	KindGeneric:               "Generic",
	KindProgram:               "Program",
	KindImportDeclaration:     "ImportDeclaration",
	KindImportSpecifier:       "ImportSpecifier",
	KindObjectExpression:      "ObjectExpression",
	KindObjectPattern:         "ObjectPattern",
	KindProperty:              "Property",
	KindSpreadElement:         "SpreadElement",
	KindIdentifier:            "Identifier",
	KindLiteral:               "Literal",
	KindMemberExpression:      "MemberExpression",
	KindCallExpression:        "CallExpression",
	KindSwitchStatement:       "SwitchStatement",
	KindSwitchCase:            "SwitchCase",
	KindBlockStatement:        "BlockStatement",
	KindBinaryExpression:      "BinaryExpression",
	KindUnaryExpression:       "UnaryExpression",
	KindIfStatement:           "IfStatement",
	KindWhileStatement:        "WhileStatement",
	KindForStatement:          "ForStatement",
	KindConditionalExpression: "ConditionalExpression",
	KindExpressionStatement:   "ExpressionStatement",
	KindVariableDeclaration:   "VariableDeclaration",
	KindVariableDeclarator:    "VariableDeclarator",
	KindReturnStatement:       "ReturnStatement",
	KindFunction:              "Function",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Node is a syntax tree element.
type Node interface {
	Located
	Kind() Kind
	// Children returns the direct children in source order.
	Children() []Node
}

type span struct {
	rng Range
	loc Loc
}

func (s *span) Range() Range { return s.rng }
func (s *span) Loc() Loc     { return s.loc }

// Program is the root of a file.
type Program struct {
	span
	Body []Node
}

func (*Program) Kind() Kind         { return KindProgram }
func (n *Program) Children() []Node { return n.Body }

// ImportKind distinguishes value imports from type-only imports.
type ImportKind string

const (
	ImportValue ImportKind = "value"
	ImportType  ImportKind = "type"
)

// ImportDeclaration is `import ... from "source"`.
type ImportDeclaration struct {
	span
	ImportKind ImportKind
	Specifiers []*ImportSpecifier
	Source     *Literal
}

func (*ImportDeclaration) Kind() Kind { return KindImportDeclaration }

func (n *ImportDeclaration) Children() []Node {
	out := make([]Node, 0, len(n.Specifiers)+1)
	for _, s := range n.Specifiers {
		out = append(out, s)
	}
	if n.Source != nil {
		out = append(out, n.Source)
	}
	return out
}

// Named returns the brace-enclosed specifiers in source order.
func (n *ImportDeclaration) Named() []*ImportSpecifier {
	var out []*ImportSpecifier
	for _, s := range n.Specifiers {
		if s.SpecifierKind == SpecifierNamed {
			out = append(out, s)
		}
	}
	return out
}

// SpecifierKind is the syntactic form of an import specifier.
type SpecifierKind int

const (
	SpecifierDefault SpecifierKind = iota
	SpecifierNamespace
	SpecifierNamed
)

// ImportSpecifier is one binding of an import declaration. Imported is nil for
// default and namespace specifiers.
type ImportSpecifier struct {
	span
	SpecifierKind SpecifierKind
	Imported      Node
	Local         *Identifier
}

func (*ImportSpecifier) Kind() Kind { return KindImportSpecifier }

func (n *ImportSpecifier) Children() []Node {
	if n.Imported != nil && n.Imported.Range() != n.Local.Range() {
		return []Node{n.Imported, n.Local}
	}
	return []Node{n.Local}
}

// ObjectExpression is an object literal, or an object destructuring pattern
// when IsPattern is set.
type ObjectExpression struct {
	span
	IsPattern  bool
	Properties []Node
}

func (n *ObjectExpression) Kind() Kind {
	if n.IsPattern {
		return KindObjectPattern
	}
	return KindObjectExpression
}

func (n *ObjectExpression) Children() []Node { return n.Properties }

// Property is a key/value member of an object literal or pattern.
type Property struct {
	span
	Key       Node
	Value     Node
	Shorthand bool
	Computed  bool
	Method    bool
}

func (*Property) Kind() Kind { return KindProperty }

func (n *Property) Children() []Node {
	if n.Shorthand || n.Value == nil {
		return []Node{n.Key}
	}
	return []Node{n.Key, n.Value}
}

// SpreadElement is `...arg` in an object literal, or a rest element in a pattern.
type SpreadElement struct {
	span
	Argument Node
}

func (*SpreadElement) Kind() Kind         { return KindSpreadElement }
func (n *SpreadElement) Children() []Node { return nonNil(n.Argument) }

// Identifier is a name reference or binding.
type Identifier struct {
	span
	Name string
}

func (*Identifier) Kind() Kind       { return KindIdentifier }
func (*Identifier) Children() []Node { return nil }

// Literal is a string, number, boolean, null or regular expression literal.
// Value holds string, float64, bool or nil; Regex literals keep only Raw.
type Literal struct {
	span
	Raw   string
	Value any
	Regex bool
}

func (*Literal) Kind() Kind       { return KindLiteral }
func (*Literal) Children() []Node { return nil }

// MemberExpression is `object.property`, `object?.property` or `object[property]`.
type MemberExpression struct {
	span
	Object   Node
	Property Node
	Computed bool
	Optional bool
}

func (*MemberExpression) Kind() Kind         { return KindMemberExpression }
func (n *MemberExpression) Children() []Node { return nonNil(n.Object, n.Property) }

// CallExpression is `callee(arguments...)`, including `new` expressions.
type CallExpression struct {
	span
	Callee    Node
	Arguments []Node
	New       bool
}

func (*CallExpression) Kind() Kind { return KindCallExpression }

func (n *CallExpression) Children() []Node {
	return append(nonNil(n.Callee), n.Arguments...)
}

// SwitchStatement is `switch (discriminant) { cases }`.
type SwitchStatement struct {
	span
	Discriminant Node
	Cases        []*SwitchCase
}

func (*SwitchStatement) Kind() Kind { return KindSwitchStatement }

func (n *SwitchStatement) Children() []Node {
	out := nonNil(n.Discriminant)
	for _, c := range n.Cases {
		out = append(out, c)
	}
	return out
}

// SwitchCase is a `case test:` or `default:` clause. Test is nil for default.
type SwitchCase struct {
	span
	Test       Node
	Consequent []Node
}

func (*SwitchCase) Kind() Kind { return KindSwitchCase }

func (n *SwitchCase) Children() []Node {
	return append(nonNil(n.Test), n.Consequent...)
}

// BlockStatement is `{ body }`.
type BlockStatement struct {
	span
	Body []Node
}

func (*BlockStatement) Kind() Kind         { return KindBlockStatement }
func (n *BlockStatement) Children() []Node { return n.Body }

// BinaryExpression covers arithmetic, comparison and logical operators.
type BinaryExpression struct {
	span
	Operator string
	Left     Node
	Right    Node
}

func (*BinaryExpression) Kind() Kind         { return KindBinaryExpression }
func (n *BinaryExpression) Children() []Node { return nonNil(n.Left, n.Right) }

// UnaryExpression is a prefix operator applied to an argument.
type UnaryExpression struct {
	span
	Operator string
	Argument Node
}

func (*UnaryExpression) Kind() Kind         { return KindUnaryExpression }
func (n *UnaryExpression) Children() []Node { return nonNil(n.Argument) }

// IfStatement is `if (test) consequent else alternate`.
type IfStatement struct {
	span
	Test       Node
	Consequent Node
	Alternate  Node
}

func (*IfStatement) Kind() Kind { return KindIfStatement }

func (n *IfStatement) Children() []Node {
	return nonNil(n.Test, n.Consequent, n.Alternate)
}

// WhileStatement is a while loop, or a do-while loop when Do is set.
type WhileStatement struct {
	span
	Do   bool
	Test Node
	Body Node
}

func (*WhileStatement) Kind() Kind { return KindWhileStatement }

func (n *WhileStatement) Children() []Node {
	if n.Do {
		return nonNil(n.Body, n.Test)
	}
	return nonNil(n.Test, n.Body)
}

// ForStatement is a C-style for loop.
type ForStatement struct {
	span
	Init   Node
	Test   Node
	Update Node
	Body   Node
}

func (*ForStatement) Kind() Kind { return KindForStatement }

func (n *ForStatement) Children() []Node {
	return nonNil(n.Init, n.Test, n.Update, n.Body)
}

// ConditionalExpression is `test ? consequent : alternate`.
type ConditionalExpression struct {
	span
	Test       Node
	Consequent Node
	Alternate  Node
}

func (*ConditionalExpression) Kind() Kind { return KindConditionalExpression }

func (n *ConditionalExpression) Children() []Node {
	return nonNil(n.Test, n.Consequent, n.Alternate)
}

// ExpressionStatement is an expression followed by an optional semicolon.
type ExpressionStatement struct {
	span
	Expression Node
}

func (*ExpressionStatement) Kind() Kind         { return KindExpressionStatement }
func (n *ExpressionStatement) Children() []Node { return nonNil(n.Expression) }

// VariableDeclaration is a var, let or const statement.
type VariableDeclaration struct {
	span
	DeclKind     string
	Declarations []*VariableDeclarator
}

func (*VariableDeclaration) Kind() Kind { return KindVariableDeclaration }

func (n *VariableDeclaration) Children() []Node {
	out := make([]Node, 0, len(n.Declarations))
	for _, d := range n.Declarations {
		out = append(out, d)
	}
	return out
}

// VariableDeclarator is `id = init` inside a declaration.
type VariableDeclarator struct {
	span
	ID   Node
	Init Node
}

func (*VariableDeclarator) Kind() Kind         { return KindVariableDeclarator }
func (n *VariableDeclarator) Children() []Node { return nonNil(n.ID, n.Init) }

// ReturnStatement is `return argument`.
type ReturnStatement struct {
	span
	Argument Node
}

func (*ReturnStatement) Kind() Kind         { return KindReturnStatement }
func (n *ReturnStatement) Children() []Node { return nonNil(n.Argument) }

// Function covers declarations, expressions, arrows and methods.
type Function struct {
	span
	ID          *Identifier
	Params      []Node
	Body        Node
	Arrow       bool
	Declaration bool
}

func (*Function) Kind() Kind { return KindFunction }

func (n *Function) Children() []Node {
	var out []Node
	if n.ID != nil {
		out = append(out, n.ID)
	}
	out = append(out, n.Params...)
	return append(out, nonNil(n.Body)...)
}

// Generic is any construct the rules do not inspect directly. Type carries the
// parser's node type name.
type Generic struct {
	span
	Type  string
	Nodes []Node
}

func (*Generic) Kind() Kind         { return KindGeneric }
func (n *Generic) Children() []Node { return n.Nodes }

func nonNil(nodes ...Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}
