// Package seqgen produces random sequences and substrings for benchmarks and tests.
package seqgen

import (
	"math/rand"

	"github.com/pkg/errors"
)

// DNA is the nucleotide alphabet.
const DNA = "ACGT"

var ErrSubstringTooLong = errors.New("seqgen: substring is longer than the string")

// Generator draws characters uniformly from an alphabet. It is not safe for
// concurrent use.
type Generator struct {
	r        *rand.Rand
	alphabet string
}

func New(seed int64, alphabet string) *Generator {
	if alphabet == "" {
		panic("seqgen: empty alphabet")
	}
	return &Generator{
		r:        rand.New(rand.NewSource(seed)),
		alphabet: alphabet,
	}
}

// String returns a random string of length n.
func (g *Generator) String(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = g.alphabet[g.r.Intn(len(g.alphabet))]
	}
	return string(b)
}

// Substring returns a random substring of s of length n.
func (g *Generator) Substring(s string, n int) (string, error) {
	if n > len(s) {
		return "", errors.Wrapf(ErrSubstringTooLong, "length %d, string length %d", n, len(s))
	}
	start := g.r.Intn(len(s) - n + 1)
	return s[start : start+n], nil
}
