package seqgen

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	g := New(1, DNA)
	s := g.String(500)
	require.Len(t, s, 500)
	for i := range len(s) {
		assert.True(t, strings.IndexByte(DNA, s[i]) >= 0, "unexpected character %q", s[i])
	}
	assert.Empty(t, g.String(0))

	// same seed, same sequence
	assert.Equal(t, New(7, DNA).String(64), New(7, DNA).String(64))
}

func TestSubstring(t *testing.T) {
	g := New(2, DNA)
	s := g.String(100)
	for n := 0; n <= len(s); n += 10 {
		sub, err := g.Substring(s, n)
		require.NoError(t, err)
		assert.Len(t, sub, n)
		assert.Contains(t, s, sub)
	}

	_, err := g.Substring(s, 101)
	assert.Equal(t, ErrSubstringTooLong, errors.Cause(err))
}

func TestEmptyAlphabet(t *testing.T) {
	assert.Panics(t, func() { New(0, "") })
}
