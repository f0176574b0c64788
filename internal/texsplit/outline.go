package texsplit

// OutlineNode is a record placed in the document hierarchy.
type OutlineNode struct {
	Index    int            `json:"index"`
	Record   Record         `json:"record"`
	Children []*OutlineNode `json:"children,omitempty"`
}

// BuildOutline nests a flat record list by rank: each record becomes a child
// of the closest preceding record with a more significant rank. Records of
// equal rank are siblings.
func BuildOutline(records []Record) []*OutlineNode {
	if len(records) == 0 {
		return nil
	}

	var stack []*OutlineNode
	var roots []*OutlineNode

	for i, rec := range records {
		node := &OutlineNode{Index: i, Record: rec}
		rank := rec.Level.Rank()

		for len(stack) > 0 && stack[len(stack)-1].Record.Level.Rank() >= rank {
			stack = stack[:len(stack)-1]
		}

		if len(stack) == 0 {
			roots = append(roots, node)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)
		}

		stack = append(stack, node)
	}

	return roots
}

// Walk visits n and its descendants depth-first.
func (n *OutlineNode) Walk(fn func(*OutlineNode)) {
	if n == nil {
		return
	}
	fn(n)
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Files returns the distinct source files of n's subtree in visit order.
// More than one entry means the section spans files.
func (n *OutlineNode) Files() []string {
	seen := make(map[string]bool)
	var files []string
	n.Walk(func(node *OutlineNode) {
		f := node.Record.File
		if f == "" || seen[f] {
			return
		}
		seen[f] = true
		files = append(files, f)
	})
	return files
}
