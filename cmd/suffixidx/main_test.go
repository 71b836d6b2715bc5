package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunTrieAndTree(t *testing.T) {
	ta := TextArgs{String: "ACGTACGTACGT", Query: []string{"ACGT", "ACGA", "AAAAA"}}
	want := "ACGT : 4\nACGA : 3\nAAAAA : 1\n"

	var buf bytes.Buffer
	require.NoError(t, runTrie(&buf, ta))
	assert.Equal(t, want, buf.String())

	buf.Reset()
	require.NoError(t, runTree(&buf, ta))
	assert.Equal(t, want, buf.String())
}

func TestRunArray(t *testing.T) {
	var buf bytes.Buffer
	a := arrayArgs{TextArgs: TextArgs{String: "BANANA", Query: []string{"ANA", "ANB"}}}
	require.NoError(t, runArray(&buf, a))
	assert.Equal(t, "ANA : 3\nANB : 0\n", buf.String())

	buf.Reset()
	a.Occurrences = true
	require.NoError(t, runArray(&buf, a))
	assert.Equal(t, "ANA : 3 [1 3]\nANB : 0 []\n", buf.String())
}

func TestReference(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ref.fa")
	require.NoError(t, os.WriteFile(path, []byte(">chr1\nacgtACGT\n"), 0o644))

	var buf bytes.Buffer
	ta := TextArgs{Reference: path, Query: []string{"ACGTACGT"}, FoldCase: true}
	require.NoError(t, runTrie(&buf, ta))
	assert.Equal(t, "ACGTACGT : 8\n", buf.String())

	ta.String = "ACGT"
	assert.Error(t, runTrie(&buf, ta))
}
