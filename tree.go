package suffixidx

const noNode = -1

type treeNode struct {
	// edge label from the parent is text[start:end]
	start, end int
	// length of the path label from the root to this node
	depth    int
	children map[byte]int
	// leaf for the suffix that ends exactly at this node, hung on an empty
	// terminator edge since it is a prefix of every suffix below.
	terminal int
}

// Tree is a compacted suffix tree kept in a node table. The root is index 0,
// every other node is reached through an edge labelled with a substring of
// the text. Each suffix of the text ends at exactly one leaf.
type Tree struct {
	text      string
	nodes     []treeNode
	transform transform
}

// BuildTree inserts every suffix of text into an initially empty tree,
// splitting edges where suffixes diverge. There are no suffix links, so
// construction is quadratic in len(text).
func BuildTree(text string) *Tree {
	return newTree(text)
}

func newTree(text string) *Tree {
	t := &Tree{text: text}
	t.newNode(0, 0, 0)
	for i := range len(text) {
		t.insert(i)
	}
	return t
}

// insert adds text[i:]. Suffixes are inserted longest first, so the walk never
// runs off the end of a leaf edge: that would require an earlier, longer suffix
// to be a prefix of this one.
func (t *Tree) insert(i int) {
	n := len(t.text)
	node, pos := 0, i
	for {
		if pos == n {
			t.nodes[node].terminal = t.newNode(n, n, t.nodes[node].depth)
			return
		}
		c := t.text[pos]
		child, ok := t.nodes[node].children[c]
		if !ok {
			t.addChild(node, c, t.newNode(pos, n, n-i))
			return
		}
		start, end := t.nodes[child].start, t.nodes[child].end
		k := 0
		for k < end-start && pos+k < n && t.text[start+k] == t.text[pos+k] {
			k++
		}
		if k < end-start {
			child = t.split(node, child, k)
		}
		node, pos = child, pos+k
	}
}

// split breaks the edge into child after k characters and returns the new
// internal node.
func (t *Tree) split(parent, child, k int) int {
	start := t.nodes[child].start
	mid := t.newNode(start, start+k, t.nodes[parent].depth+k)
	t.nodes[child].start = start + k
	t.addChild(mid, t.text[start+k], child)
	t.nodes[parent].children[t.text[start]] = mid
	return mid
}

func (t *Tree) newNode(start, end, depth int) int {
	t.nodes = append(t.nodes, treeNode{start: start, end: end, depth: depth, terminal: noNode})
	return len(t.nodes) - 1
}

func (t *Tree) addChild(parent int, c byte, child int) {
	if t.nodes[parent].children == nil {
		t.nodes[parent].children = make(map[byte]int)
	}
	t.nodes[parent].children[c] = child
}

// Len returns the number of nodes in the table, root included.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Label returns the label of the edge leading into node i. Terminator leaves
// and the root have an empty label.
func (t *Tree) Label(i int) string {
	return t.text[t.nodes[i].start:t.nodes[i].end]
}

// Child returns the child of node i whose edge label starts with c.
func (t *Tree) Child(i int, c byte) (int, bool) {
	child, ok := t.nodes[i].children[c]
	return child, ok
}

// Terminal returns the leaf for the suffix that ends exactly at node i.
func (t *Tree) Terminal(i int) (int, bool) {
	return t.nodes[i].terminal, t.nodes[i].terminal != noNode
}

// IsLeaf reports whether node i has no outgoing edges. The root of the tree of
// an empty text is not a leaf: there is no suffix for it to stand for.
func (t *Tree) IsLeaf(i int) bool {
	return i != 0 && len(t.nodes[i].children) == 0 && t.nodes[i].terminal == noNode
}

// Offset returns the start of the suffix spelled by leaf i, or -1 when i is
// not a leaf.
func (t *Tree) Offset(i int) int {
	if !t.IsLeaf(i) {
		return -1
	}
	return len(t.text) - t.nodes[i].depth
}

// Leaves returns the suffix offset of every leaf in depth-first order. Children
// are visited in map order, so the order varies between calls.
func (t *Tree) Leaves() []int {
	offsets := make([]int, 0, len(t.text))
	stack := []int{0}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if t.IsLeaf(i) {
			offsets = append(offsets, len(t.text)-t.nodes[i].depth)
			continue
		}
		for _, child := range t.nodes[i].children {
			stack = append(stack, child)
		}
		if t.nodes[i].terminal != noNode {
			stack = append(stack, t.nodes[i].terminal)
		}
	}
	return offsets
}

// Search returns the length of the longest prefix of pattern spelled by a path
// from the root, the same value a suffix trie over the text reports.
func (t *Tree) Search(pattern string) int {
	if t == nil {
		panic("suffixidx: Search called on nil *Tree")
	}
	pattern = t.transform.apply(pattern)
	node, matched := 0, 0
	for matched < len(pattern) {
		child, ok := t.nodes[node].children[pattern[matched]]
		if !ok {
			break
		}
		for j := t.nodes[child].start; j < t.nodes[child].end && matched < len(pattern); j++ {
			if t.text[j] != pattern[matched] {
				return matched
			}
			matched++
		}
		node = child
	}
	return matched
}
