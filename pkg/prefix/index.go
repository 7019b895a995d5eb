// Package prefix holds the title trie used for exact-prefix lookups and a small
// patricia backed cache for repeated queries.
package prefix

// nodeID indexes into Index.nodes. The root is always 0.
type nodeID int32

const rootID nodeID = 0

// trieNode is one byte position in the title set.
// The full title is kept on terminal nodes so traversal never has to rebuild it from the path.
type trieNode struct {
	children map[byte]nodeID
	terminal bool
	title    string
}

// Index is a byte trie over song titles.
// Nodes live in an arena owned by the Index and are only ever appended.
type Index struct {
	nodes  []trieNode
	titles int
}

// NewIndex creates an empty index holding just the root node.
func NewIndex() *Index {
	return &Index{
		nodes: []trieNode{{}},
	}
}

// Insert adds title to the index. Inserting the same title again is a no-op.
// The empty title marks the root terminal.
func (idx *Index) Insert(title string) {
	cur := rootID
	for i := 0; i < len(title); i++ {
		c := title[i]
		next, ok := idx.nodes[cur].children[c]
		if !ok {
			next = idx.newNode()
			if idx.nodes[cur].children == nil {
				idx.nodes[cur].children = make(map[byte]nodeID)
			}
			idx.nodes[cur].children[c] = next
		}
		cur = next
	}

	node := &idx.nodes[cur]
	if !node.terminal {
		idx.titles++
	}
	node.terminal = true
	node.title = title
}

// Query returns every inserted title starting with prefix.
// Order follows map iteration and must not be relied on. No match gives an empty slice.
func (idx *Index) Query(prefix string) []string {
	start, ok := idx.walk(prefix)
	if !ok {
		return []string{}
	}
	return idx.collect(start)
}

// Contains reports whether title was inserted as a complete title.
func (idx *Index) Contains(title string) bool {
	id, ok := idx.walk(title)
	return ok && idx.nodes[id].terminal
}

// Len returns the number of distinct titles.
func (idx *Index) Len() int {
	return idx.titles
}

// Nodes returns the arena size, root included.
func (idx *Index) Nodes() int {
	return len(idx.nodes)
}

// walk follows prefix from the root. It never creates nodes.
func (idx *Index) walk(prefix string) (nodeID, bool) {
	cur := rootID
	for i := 0; i < len(prefix); i++ {
		next, ok := idx.nodes[cur].children[prefix[i]]
		if !ok {
			return 0, false
		}
		cur = next
	}
	return cur, true
}

// collect does a depth-first pass over the subtree at start with an explicit stack.
func (idx *Index) collect(start nodeID) []string {
	results := []string{}
	stack := []nodeID{start}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := &idx.nodes[id]
		if node.terminal {
			results = append(results, node.title)
		}
		for _, child := range node.children {
			stack = append(stack, child)
		}
	}
	return results
}

func (idx *Index) newNode() nodeID {
	idx.nodes = append(idx.nodes, trieNode{})
	return nodeID(len(idx.nodes) - 1)
}
