package main

import (
	"fmt"
	"io"
	"os"

	arg "github.com/alexflint/go-arg"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/viniciusth/suffixidx"
	"github.com/viniciusth/suffixidx/internal/fasta"
)

type TextArgs struct {
	String    string   `arg:"--string" help:"reference sequence"`
	Reference string   `arg:"--reference" help:"reference FASTA file, its first record is indexed"`
	Query     []string `arg:"--query" help:"query sequences"`
	FoldCase  bool     `arg:"--fold-case" help:"ignore case in the reference and queries"`
}

type arrayArgs struct {
	TextArgs
	Occurrences bool `arg:"--occurrences" help:"also print the offsets of every occurrence"`
}

type args struct {
	Trie  *TextArgs  `arg:"subcommand:trie" help:"longest prefix match with a suffix trie"`
	Tree  *TextArgs  `arg:"subcommand:tree" help:"longest prefix match with a suffix tree"`
	Array *arrayArgs `arg:"subcommand:array" help:"exact match with a suffix array"`
}

func main() {
	var a args
	p := arg.MustParse(&a)
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	var err error
	switch {
	case a.Trie != nil:
		err = runTrie(os.Stdout, *a.Trie)
	case a.Tree != nil:
		err = runTree(os.Stdout, *a.Tree)
	case a.Array != nil:
		err = runArray(os.Stdout, *a.Array)
	default:
		p.Fail("missing subcommand: trie, tree or array")
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("query failed")
	}
}

func (t TextArgs) load() (string, error) {
	if t.String != "" && t.Reference != "" {
		return "", errors.New("--string and --reference are mutually exclusive")
	}
	if t.Reference != "" {
		rec, err := fasta.First(t.Reference)
		if err != nil {
			return "", err
		}
		return rec.Sequence, nil
	}
	return t.String, nil
}

func (t TextArgs) builder() (*suffixidx.Builder, error) {
	text, err := t.load()
	if err != nil {
		return nil, err
	}
	b := suffixidx.NewBuilder(text)
	if t.FoldCase {
		b = b.FoldCase()
	}
	return b, nil
}

func runTrie(w io.Writer, t TextArgs) error {
	b, err := t.builder()
	if err != nil {
		return err
	}
	trie, err := b.BuildTrie()
	if err != nil {
		return err
	}
	for _, q := range t.Query {
		fmt.Fprintf(w, "%s : %d\n", q, trie.Search(q))
	}
	return nil
}

func runTree(w io.Writer, t TextArgs) error {
	b, err := t.builder()
	if err != nil {
		return err
	}
	tree, err := b.BuildTree()
	if err != nil {
		return err
	}
	for _, q := range t.Query {
		fmt.Fprintf(w, "%s : %d\n", q, tree.Search(q))
	}
	return nil
}

func runArray(w io.Writer, a arrayArgs) error {
	b, err := a.builder()
	if err != nil {
		return err
	}
	if !a.Occurrences {
		b = b.SkipLCP()
	}
	sa, err := b.BuildSuffixArray()
	if err != nil {
		return err
	}
	for _, q := range a.Query {
		if a.Occurrences {
			fmt.Fprintf(w, "%s : %d %v\n", q, sa.Search(q), sa.Occurrences(q))
			continue
		}
		fmt.Fprintf(w, "%s : %d\n", q, sa.Search(q))
	}
	return nil
}
