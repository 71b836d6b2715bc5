package suffixidx

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/viniciusth/rmq"
)

// BuildArray returns the suffix array of text: the start offsets of its
// suffixes in lexicographic order. The offsets are collected from the leaves
// of the suffix tree and then sorted by comparing the suffixes themselves.
func BuildArray(text string) []int {
	return suffixArrayFromTree(newTree(text))
}

func suffixArrayFromTree(tree *Tree) []int {
	text := tree.text
	// Leaf order is irrelevant, the sort below fixes it.
	suffixArray := tree.Leaves()
	slices.SortFunc(suffixArray, func(a, b int) int {
		return strings.Compare(text[a:], text[b:])
	})
	if err := checkPermutation(suffixArray, len(text)); err != nil {
		panic(err)
	}
	return suffixArray
}

func checkPermutation(offsets []int, n int) error {
	if len(offsets) != n {
		return fmt.Errorf("suffixidx: suffix array has %d entries for a text of length %d", len(offsets), n)
	}
	seen := make([]bool, n)
	for _, o := range offsets {
		if o < 0 || o >= n || seen[o] {
			return fmt.Errorf("suffixidx: suffix array entry %d is out of range or repeated", o)
		}
		seen[o] = true
	}
	return nil
}

// SearchArray binary searches suffixArray, the suffix array of text, for a
// suffix starting with pattern. It returns len(pattern) when pattern occurs in
// text and 0 otherwise; unlike the trie and tree it never reports a partial
// match. An empty suffix array has no matches.
func SearchArray(text string, suffixArray []int, pattern string) int {
	if len(suffixArray) == 0 {
		return 0
	}
	lo, hi := 0, len(suffixArray)-1
	for lo <= hi {
		mid := int(uint(lo+hi) >> 1)
		suffix := text[suffixArray[mid]:]
		switch {
		case strings.HasPrefix(suffix, pattern):
			return len(pattern)
		case suffix < pattern:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	return 0
}

// SuffixArray bundles a text with its suffix array and, unless skipped, the
// LCP array with a range minimum structure over it for occurrence listing.
type SuffixArray struct {
	text        string
	suffixArray []int
	lcp         []int
	lcpRMQ      *rmq.RMQHybridNaive[int]
	transform   transform
}

func BuildSuffixArray(text string) *SuffixArray {
	return newSuffixArray(text, transform{}, true)
}

func newSuffixArray(text string, tr transform, useLCP bool) *SuffixArray {
	s := &SuffixArray{
		text:        text,
		suffixArray: BuildArray(text),
		transform:   tr,
	}
	if useLCP {
		s.lcp = BuildLCPArray(s.suffixArray, text)
		if s.lcp != nil {
			s.lcpRMQ = rmq.NewRMQHybridNaive(s.lcp)
		}
	}
	return s
}

// Offsets returns the suffix array. The slice is shared and must not be modified.
func (s *SuffixArray) Offsets() []int {
	return s.suffixArray
}

// LCP returns the LCP array, nil if it was skipped or the text is shorter than two.
func (s *SuffixArray) LCP() []int {
	return s.lcp
}

func (s *SuffixArray) Text() string {
	return s.text
}

// Search reports len(pattern) if pattern occurs in the text and 0 otherwise.
func (s *SuffixArray) Search(pattern string) int {
	if s == nil {
		panic("suffixidx: Search called on nil *SuffixArray")
	}
	return SearchArray(s.text, s.suffixArray, s.transform.apply(pattern))
}

// Occurrences returns every offset at which pattern occurs, in increasing order.
func (s *SuffixArray) Occurrences(pattern string) []int {
	if s == nil {
		panic("suffixidx: Occurrences called on nil *SuffixArray")
	}
	l, r := findBoundaries(s.transform.apply(pattern), s.text, s.suffixArray, s.lcp, s.lcpRMQ)
	if l == -1 {
		return nil
	}
	occurrences := slices.Clone(s.suffixArray[l : r+1])
	slices.Sort(occurrences)
	return occurrences
}

// Count returns the number of occurrences of pattern in the text.
func (s *SuffixArray) Count(pattern string) int {
	if s == nil {
		panic("suffixidx: Count called on nil *SuffixArray")
	}
	l, r := findBoundaries(s.transform.apply(pattern), s.text, s.suffixArray, s.lcp, s.lcpRMQ)
	if l == -1 {
		return 0
	}
	return r - l + 1
}

// findBoundaries returns the range [l, r] of ranks whose suffixes start with
// pattern, or -1, -1 if there is none.
func findBoundaries(pattern, text string, suffixArray, lcp []int, lcpRMQ *rmq.RMQHybridNaive[int]) (int, int) {
	n := len(suffixArray)

	// lcpBetween is the longest common prefix of the suffixes at ranks a < b.
	lcpBetween := func(a, b int) int {
		return lcp[lcpRMQ.Query(a, b-1)]
	}

	// best is the number of pattern characters matched against the suffix at
	// rank bestIdx.
	bestIdx, best := -1, 0
	expandBest := func(i int) bool {
		bestIdx = i
		pos := suffixArray[i]
		for best < len(pattern) && pos+best < len(text) && pattern[best] == text[pos+best] {
			best++
		}
		if best == len(pattern) {
			// p is a prefix of text[pos:]
			return true
		} else if pos+best == len(text) {
			// text[pos:] is a proper prefix of p
			return false
		}
		return pattern[best] < text[pos+best]
	}

	// first rank whose suffix is >= pattern
	l := sort.Search(n, func(i int) bool {
		if lcp == nil {
			return pattern <= text[suffixArray[i]:]
		}
		if bestIdx == -1 || bestIdx == i {
			return expandBest(i)
		}
		lcpLen := lcpBetween(min(bestIdx, i), max(bestIdx, i))
		if lcpLen < best {
			// i diverges from bestIdx before the pattern does, so it sits on the
			// same side of the pattern as it does of bestIdx.
			return i > bestIdx
		}
		return expandBest(i)
	})

	if l == n || !strings.HasPrefix(text[suffixArray[l]:], pattern) {
		return -1, -1
	}

	// Ranks after l look like T T T F F F for "starts with pattern"; search for
	// the first F, skipping l itself.
	r := sort.Search(n-l, func(i int) bool {
		if i == 0 {
			return false
		}
		if lcp != nil {
			return lcpBetween(l, l+i) < len(pattern)
		}
		return !strings.HasPrefix(text[suffixArray[l+i]:], pattern)
	})

	return l, l + r - 1
}
