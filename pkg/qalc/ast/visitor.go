package ast

// WalkFunc is called for every node visited by Walk. Returning false skips
// the node's children.
type WalkFunc func(n Node, depth int) bool

// Walk traverses the tree rooted at root in depth-first order, parents before
// children.
func Walk(root Node, fn WalkFunc) {
	walk(root, 0, fn)
}

func walk(n Node, depth int, fn WalkFunc) {
	if n == nil {
		return
	}
	if !fn(n, depth) {
		return
	}
	for _, child := range n.Children() {
		walk(child, depth+1, fn)
	}
}

// Count returns the number of nodes in the tree rooted at root.
func Count(root Node) int {
	count := 0
	Walk(root, func(Node, int) bool {
		count++
		return true
	})
	return count
}
