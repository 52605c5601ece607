// Package seqstats summarizes a protein FASTA file: record count and
// sequence length distribution. It is informational only, the
// pipeline does not gate on it.
package seqstats

import (
	"fmt"
	"io"
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// Summary describes the sequences of one FASTA file.
type Summary struct {
	Records  int
	Residues int
	Min      int
	Max      int
}

// Mean is the mean sequence length, 0 for an empty file.
func (s Summary) Mean() float64 {
	if s.Records == 0 {
		return 0
	}
	return float64(s.Residues) / float64(s.Records)
}

func (s Summary) String() string {
	return fmt.Sprintf("%d records, %d residues (min %d, max %d, mean %.1f)",
		s.Records, s.Residues, s.Min, s.Max, s.Mean())
}

// Summarize reads protein FASTA records from r and tallies them.
func Summarize(r io.Reader) (Summary, error) {
	var sum Summary

	reader := fasta.NewReader(r, linear.NewSeq("", nil, alphabet.Protein))
	for {
		s, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return sum, fmt.Errorf("read FASTA record: %w", err)
		}

		l := len(s.(*linear.Seq).Seq)
		sum.Records++
		sum.Residues += l
		if sum.Records == 1 || l < sum.Min {
			sum.Min = l
		}
		if l > sum.Max {
			sum.Max = l
		}
	}

	return sum, nil
}

// SummarizeFile is Summarize against a FASTA file on disk.
func SummarizeFile(path string) (Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Summary{}, fmt.Errorf("open FASTA file: %w", err)
	}
	defer f.Close()

	return Summarize(f)
}
