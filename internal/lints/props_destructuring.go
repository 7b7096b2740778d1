package lints

import "github.com/stylekit/jsstyle/internal/jsast"

// PropsDestructuring flags variables declared from `props` or `this.props`,
// as in `const { title } = props`. Values must be read from props directly.
type PropsDestructuring struct{}

func (PropsDestructuring) Meta() Meta {
	return Meta{
		Name:        "props-destructuring",
		Category:    "style",
		Description: "Disallow variables destructured or copied from props",
	}
}

func (PropsDestructuring) Create(ctx *Context) Visitors {
	return Visitors{
		OnExit(jsast.KindProgram): func(n jsast.Node) {
			var decls []*jsast.VariableDeclarator
			jsast.Inspect(n, func(c jsast.Node) bool {
				if d, ok := c.(*jsast.VariableDeclarator); ok && isPropsObject(d.Init) {
					decls = append(decls, d)
				}
				return true
			})
			if len(decls) == 0 {
				return
			}

			used := referencedBindings(ctx, n)
			for _, d := range decls {
				jsast.BindingNames(d.ID, func(b *jsast.Identifier) {
					if !used[b] {
						return
					}
					ctx.Report(Report{
						Node:    d.Init,
						Message: "'{{name}}' was referenced from illegal props destructuring",
						Data:    map[string]string{"name": b.Name},
					})
				})
			}
		},
	}
}

// isPropsObject matches `props` and `this.props`.
func isPropsObject(n jsast.Node) bool {
	switch v := n.(type) {
	case *jsast.Identifier:
		return v.Name == "props"
	case *jsast.MemberExpression:
		this, ok := v.Object.(*jsast.Generic)
		prop, named := v.Property.(*jsast.Identifier)
		return ok && this.Type == "this" && !v.Computed && named && prop.Name == "props"
	}
	return false
}

// referencedBindings resolves every identifier read under root and returns the
// set of bindings that are read at least once.
func referencedBindings(ctx *Context, root jsast.Node) map[*jsast.Identifier]bool {
	used := make(map[*jsast.Identifier]bool)
	jsast.Inspect(root, func(c jsast.Node) bool {
		id, ok := c.(*jsast.Identifier)
		if !ok || !isReference(ctx, id) {
			return true
		}
		if b := ctx.Scopes().Resolve(id); b != nil && b != id {
			used[b] = true
		}
		return true
	})
	return used
}

// isReference excludes property names such as `x.name` and `{ name: value }`,
// and the repeated name inside a `{ name = fallback }` pattern.
func isReference(ctx *Context, id *jsast.Identifier) bool {
	switch p := ctx.Parent(id).(type) {
	case *jsast.MemberExpression:
		return p.Computed || p.Property != id
	case *jsast.Property:
		return p.Computed || p.Shorthand || p.Key != id
	case *jsast.Generic:
		return p.Type != "object_assignment_pattern" || len(p.Nodes) == 0 || p.Nodes[0] != id
	}
	return true
}
