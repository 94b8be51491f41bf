package tree

// ChangedSet is the set of workspace-relative paths currently differing from
// their baseline. It is owned by the session store and only read here.
type ChangedSet map[string]struct{}

// NewChangedSet builds a set from a list of paths.
func NewChangedSet(paths []string) ChangedSet {
	set := make(ChangedSet, len(paths))
	for _, p := range paths {
		set[p] = struct{}{}
	}
	return set
}

// Contains reports membership of a single path.
func (s ChangedSet) Contains(path string) bool {
	_, ok := s[path]
	return ok
}

// IsChanged reports whether a node should carry a changed marker.
// A file is changed iff its path is in the set. A directory is changed iff
// its own path is in the set or any descendant, at any depth, is changed.
// Short-circuits on the first match; an empty directory only reports changed
// via its own path.
func IsChanged(node *Node, changed ChangedSet) bool {
	if node == nil || len(changed) == 0 {
		return false
	}
	if changed.Contains(node.Path) {
		return true
	}
	if !node.IsDir {
		return false
	}
	for _, child := range node.Children {
		if IsChanged(child, changed) {
			return true
		}
	}
	return false
}
