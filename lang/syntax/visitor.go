package syntax

// VisitDirection indicates whether a call to Visit enters or exits a node.
type VisitDirection int

const (
	VisitEnter VisitDirection = iota
	VisitExit
)

// Visitor defines the method to implement to walk a syntax tree. A node's
// children can be skipped by returning a nil visitor from Visit.
type Visitor interface {
	Visit(n Node, dir VisitDirection) (w Visitor)
}

// VisitorFunc is a function that implements the Visitor interface.
type VisitorFunc func(n Node, dir VisitDirection) Visitor

func (f VisitorFunc) Visit(n Node, dir VisitDirection) Visitor {
	return f(n, dir)
}

// Walk visits node and its descendants with v, depth-first and in source
// order. It calls Visit in VisitEnter direction before descending into
// children, and in VisitExit direction after. If the VisitEnter call
// returns nil, children are not visited.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node, VisitEnter); v == nil {
		return
	}
	node.Walk(v)
	v.Visit(node, VisitExit)
}
