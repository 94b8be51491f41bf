// Package tree defines the immutable file tree snapshot returned by the
// repository service and the changed-state resolution over it.
package tree

// Node is a single file or directory in a tree snapshot. Snapshots are
// immutable: a fresh tree replaces the previous one wholesale, nodes are
// never patched in place.
type Node struct {
	Name     string  // Base name component
	Path     string  // Workspace-relative slash path, "" for the root
	IsDir    bool    // True for directories
	Children []*Node // Child nodes, directories only (dirs first, then files, alphabetical)
}

// Walk calls fn for node and every descendant in depth-first order.
// Traversal stops early when fn returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, child := range n.Children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}

// FileCount returns the number of file nodes under n (1 for a file).
func (n *Node) FileCount() int {
	if !n.IsDir {
		return 1
	}
	count := 0
	for _, child := range n.Children {
		count += child.FileCount()
	}
	return count
}

// Find returns the node with the given path, or nil.
func (n *Node) Find(path string) *Node {
	var found *Node
	n.Walk(func(node *Node) bool {
		if node.Path == path {
			found = node
			return false
		}
		return true
	})
	return found
}
