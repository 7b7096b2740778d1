package jsast

// Phase selects whether a visitor runs when a node is entered or exited.
type Phase int

const (
	Enter Phase = iota
	Exit
)

func (p Phase) String() string {
	if p == Exit {
		return "exit"
	}
	return "enter"
}

// Walk traverses the tree rooted at n in source order, calling fn on entry and
// exit of every node. Returning false from an Enter call skips the children.
func Walk(n Node, fn func(n Node, phase Phase) bool) {
	if n == nil {
		return
	}
	if fn(n, Enter) {
		for _, c := range n.Children() {
			Walk(c, fn)
		}
	}
	fn(n, Exit)
}

// Inspect calls fn for every node in pre-order.
func Inspect(n Node, fn func(Node) bool) {
	Walk(n, func(n Node, phase Phase) bool {
		if phase == Exit {
			return true
		}
		return fn(n)
	})
}

// Parents maps every node of a tree to its parent. It is built once per file.
type Parents struct {
	parent map[Node]Node
}

// BuildParents indexes the parent of every node under root.
func BuildParents(root Node) *Parents {
	p := &Parents{parent: make(map[Node]Node)}
	var stack []Node
	Walk(root, func(n Node, phase Phase) bool {
		if phase == Exit {
			stack = stack[:len(stack)-1]
			return true
		}
		if len(stack) > 0 {
			p.parent[n] = stack[len(stack)-1]
		}
		stack = append(stack, n)
		return true
	})
	return p
}

// Of returns the parent of n, or nil for the root.
func (p *Parents) Of(n Node) Node {
	if p == nil {
		return nil
	}
	return p.parent[n]
}

// Ancestors returns the ancestors of n from the nearest to the root.
func (p *Parents) Ancestors(n Node) []Node {
	var out []Node
	for cur := p.Of(n); cur != nil; cur = p.Of(cur) {
		out = append(out, cur)
	}
	return out
}
