// Package fasta reads reference sequences from FASTA files.
package fasta

import (
	"io"
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	biofasta "github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"github.com/pkg/errors"
)

// ErrNoRecords is returned by First when the input holds no sequence.
var ErrNoRecords = errors.New("fasta: no records")

// Record is one sequence of a FASTA file.
type Record struct {
	ID          string
	Description string
	Sequence    string
}

// Read parses every record in r. Sequence lines are joined without separators
// and letters are kept as written, soft-masked lower case included.
func Read(r io.Reader) ([]Record, error) {
	sc := seqio.NewScanner(biofasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNA)))

	var records []Record
	for sc.Next() {
		s, ok := sc.Seq().(*linear.Seq)
		if !ok {
			return nil, errors.Errorf("fasta: unexpected sequence type %T", sc.Seq())
		}
		records = append(records, Record{
			ID:          s.Name(),
			Description: s.Description(),
			Sequence:    lettersToString(s.Seq),
		})
	}
	if err := sc.Error(); err != nil {
		return nil, errors.Wrap(err, "fasta: error reading records")
	}
	return records, nil
}

// ReadFile parses every record in the file at path.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "fasta: error opening %s", path)
	}
	defer f.Close()

	records, err := Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "fasta: %s", path)
	}
	return records, nil
}

// First returns the first record of the file at path.
func First(path string) (Record, error) {
	records, err := ReadFile(path)
	if err != nil {
		return Record{}, err
	}
	if len(records) == 0 {
		return Record{}, errors.Wrapf(ErrNoRecords, "fasta: %s", path)
	}
	return records[0], nil
}

func lettersToString(letters alphabet.Letters) string {
	b := make([]byte, len(letters))
	for i, l := range letters {
		b[i] = byte(l)
	}
	return string(b)
}
