package suffixidx

import (
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var (
	ErrInvalidUTF8 = errors.New("suffixidx: invalid UTF-8 encoding in input text")
)

// Builder configures how a text is prepared before one of the indexes is built.
// Patterns given to the resulting index go through the same transforms, so
// match lengths are counted in bytes of the transformed pattern.
type Builder struct {
	text      string
	foldCase  bool
	normalize bool
	useLCP    bool
}

func NewBuilder(text string) *Builder {
	return &Builder{
		text:   text,
		useLCP: true,
	}
}

// Folds text and patterns to lower case.
// Soft-masked regions of a FASTA reference are lower case, this lets them match
// patterns written in upper case.
func (b *Builder) FoldCase() *Builder {
	b.foldCase = true
	return b
}

// Normalizes text and patterns with NFC. The text must be valid UTF-8.
func (b *Builder) Normalize() *Builder {
	b.normalize = true
	return b
}

// Skips the LCP array construction for suffix arrays.
// Occurrences and Count then compare every probed suffix against the full pattern,
// O(|P| * log(|T|)) instead of O(|P| + log(|T|)), but saves 2*|T| ints of memory.
func (b *Builder) SkipLCP() *Builder {
	b.useLCP = false
	return b
}

func (b *Builder) prepare() (string, transform, error) {
	tr := transform{foldCase: b.foldCase, normalize: b.normalize}
	if tr.normalize && !utf8.ValidString(b.text) {
		return "", tr, ErrInvalidUTF8
	}
	return tr.apply(b.text), tr, nil
}

func (b *Builder) BuildTrie() (*Trie, error) {
	text, tr, err := b.prepare()
	if err != nil {
		return nil, err
	}
	t := newTrie(text)
	t.transform = tr
	return t, nil
}

func (b *Builder) BuildTree() (*Tree, error) {
	text, tr, err := b.prepare()
	if err != nil {
		return nil, err
	}
	t := newTree(text)
	t.transform = tr
	return t, nil
}

func (b *Builder) BuildSuffixArray() (*SuffixArray, error) {
	text, tr, err := b.prepare()
	if err != nil {
		return nil, err
	}
	return newSuffixArray(text, tr, b.useLCP), nil
}

type transform struct {
	foldCase  bool
	normalize bool
}

func (t transform) apply(s string) string {
	if t.foldCase {
		s = strings.ToLower(s)
	}
	if t.normalize {
		s = norm.NFC.String(s)
	}
	return s
}
