package suffixidx

type trieNode struct {
	children map[byte]int
	// a suffix of the text ends exactly at this node
	suffix bool
}

// Trie is an uncompacted suffix trie: one node per distinct substring of the
// text, addressed by index with the root (the empty prefix) at 0.
type Trie struct {
	nodes     []trieNode
	transform transform
}

// BuildTrie inserts every suffix of text, longest first. Construction is
// quadratic in len(text).
func BuildTrie(text string) *Trie {
	return newTrie(text)
}

func newTrie(text string) *Trie {
	t := &Trie{nodes: []trieNode{{}}}
	for i := range len(text) {
		node := 0
		for j := i; j < len(text); j++ {
			next, ok := t.nodes[node].children[text[j]]
			if !ok {
				next = t.newNode()
				if t.nodes[node].children == nil {
					t.nodes[node].children = make(map[byte]int)
				}
				t.nodes[node].children[text[j]] = next
			}
			node = next
		}
		t.nodes[node].suffix = true
	}
	return t
}

func (t *Trie) newNode() int {
	t.nodes = append(t.nodes, trieNode{})
	return len(t.nodes) - 1
}

// Len returns the number of nodes, root included.
func (t *Trie) Len() int {
	return len(t.nodes)
}

// Search returns how many leading characters of pattern can be read along a
// path from the root, that is the longest prefix of pattern that occurs in the text.
func (t *Trie) Search(pattern string) int {
	if t == nil {
		panic("suffixidx: Search called on nil *Trie")
	}
	_, matched := t.walk(t.transform.apply(pattern))
	return matched
}

// IsSuffix reports whether pattern is a non-empty suffix of the text.
func (t *Trie) IsSuffix(pattern string) bool {
	if t == nil {
		panic("suffixidx: IsSuffix called on nil *Trie")
	}
	pattern = t.transform.apply(pattern)
	node, matched := t.walk(pattern)
	return matched == len(pattern) && t.nodes[node].suffix
}

func (t *Trie) walk(pattern string) (node, matched int) {
	for matched < len(pattern) {
		next, ok := t.nodes[node].children[pattern[matched]]
		if !ok {
			break
		}
		node = next
		matched++
	}
	return node, matched
}
