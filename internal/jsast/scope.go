package jsast

// Scopes resolves identifier references to the binding that declares them.
// Function, block, for and program nodes own scopes; var declarations are
// hoisted to the nearest function or program.
type Scopes struct {
	parents  *Parents
	bindings map[Node]map[string]*Identifier
}

// NewScopes prepares lazy scope analysis over the tree indexed by parents.
func NewScopes(parents *Parents) *Scopes {
	return &Scopes{parents: parents, bindings: make(map[Node]map[string]*Identifier)}
}

// Resolve returns the identifier that declares the name referenced by id, or
// nil when the name is global or undeclared.
func (s *Scopes) Resolve(id *Identifier) *Identifier {
	for cur := s.parents.Of(id); cur != nil; cur = s.parents.Of(cur) {
		if !ownsScope(cur) {
			continue
		}
		if b, ok := s.scopeOf(cur)[id.Name]; ok {
			return b
		}
	}
	return nil
}

// Declarer returns the node that owns the binding b: the function for a
// parameter, otherwise the enclosing declaration.
func (s *Scopes) Declarer(b *Identifier) Node {
	cur := Node(b)
	for p := s.parents.Of(cur); p != nil; p = s.parents.Of(p) {
		switch p.(type) {
		case *Function, *VariableDeclarator:
			return p
		}
		cur = p
	}
	return nil
}

func ownsScope(n Node) bool {
	switch n.(type) {
	case *Program, *Function, *BlockStatement, *ForStatement, *SwitchStatement:
		return true
	}
	return false
}

func (s *Scopes) scopeOf(owner Node) map[string]*Identifier {
	if b, ok := s.bindings[owner]; ok {
		return b
	}
	b := make(map[string]*Identifier)
	declare := func(id *Identifier) {
		if _, exists := b[id.Name]; !exists {
			b[id.Name] = id
		}
	}

	switch n := owner.(type) {
	case *Function:
		for _, p := range n.Params {
			BindingNames(p, declare)
		}
		if n.ID != nil && !n.Declaration {
			declare(n.ID)
		}
		if n.Body != nil {
			hoistVars(n.Body, declare)
			if blk, ok := n.Body.(*BlockStatement); ok {
				lexical(blk.Body, declare)
			}
		}
	case *Program:
		lexical(n.Body, declare)
		for _, stmt := range n.Body {
			hoistVars(stmt, declare)
		}
	case *BlockStatement:
		if _, fn := s.parents.Of(n).(*Function); !fn {
			lexical(n.Body, declare)
		}
	case *ForStatement:
		if decl, ok := n.Init.(*VariableDeclaration); ok && decl.DeclKind != "var" {
			for _, d := range decl.Declarations {
				BindingNames(d.ID, declare)
			}
		}
	case *SwitchStatement:
		for _, c := range n.Cases {
			lexical(c.Consequent, declare)
		}
	}

	s.bindings[owner] = b
	return b
}

// lexical declares let/const bindings and function declarations of a body.
func lexical(body []Node, declare func(*Identifier)) {
	for _, stmt := range body {
		switch d := stmt.(type) {
		case *VariableDeclaration:
			if d.DeclKind == "var" {
				continue
			}
			for _, v := range d.Declarations {
				BindingNames(v.ID, declare)
			}
		case *Function:
			if d.Declaration && d.ID != nil {
				declare(d.ID)
			}
		case *Generic:
			if d.Type == "class_declaration" {
				for _, c := range d.Nodes {
					if id, ok := c.(*Identifier); ok {
						declare(id)
						break
					}
				}
			}
		}
	}
}

// hoistVars declares every var binding under n without entering nested functions.
func hoistVars(n Node, declare func(*Identifier)) {
	Inspect(n, func(c Node) bool {
		switch d := c.(type) {
		case *Function:
			return c == n
		case *VariableDeclaration:
			if d.DeclKind == "var" {
				for _, v := range d.Declarations {
					BindingNames(v.ID, declare)
				}
			}
		}
		return true
	})
}

// BindingNames calls declare for every identifier bound by a parameter or
// declarator pattern.
func BindingNames(p Node, declare func(*Identifier)) {
	switch n := p.(type) {
	case nil:
	case *Identifier:
		declare(n)
	case *ObjectExpression:
		for _, prop := range n.Properties {
			BindingNames(prop, declare)
		}
	case *Property:
		if n.Shorthand {
			BindingNames(n.Key, declare)
		} else {
			BindingNames(n.Value, declare)
		}
	case *SpreadElement:
		BindingNames(n.Argument, declare)
	case *Generic:
		switch n.Type {
		case "array_pattern":
			for _, c := range n.Nodes {
				BindingNames(c, declare)
			}
		case "assignment_pattern", "object_assignment_pattern", "required_parameter", "optional_parameter":
			if len(n.Nodes) > 0 {
				BindingNames(n.Nodes[0], declare)
			}
		}
	}
}
