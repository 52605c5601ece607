// Package taxid derives an accession to NCBI taxon id mapping table
// from the headers of a UniProt-style FASTA file.
package taxid

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// NotAvailable is written in place of a field that could not be
// parsed out of a header line.
const NotAvailable = "N/A"

// Mapping is one row of the taxonomy table: the accession between the
// first two pipes of a header and the taxon id tagged with "OX=".
// Either field may be absent; absence is tracked explicitly so a
// sequence legitimately named "N/A" stays distinguishable until the
// table is serialized.
type Mapping struct {
	Accession    string
	HasAccession bool

	TaxonID    string
	HasTaxonID bool
}

// Row returns the two serialized fields of the mapping, substituting
// NotAvailable for absent ones.
func (m Mapping) Row() (accession, taxonID string) {
	accession, taxonID = NotAvailable, NotAvailable
	if m.HasAccession {
		accession = m.Accession
	}
	if m.HasTaxonID {
		taxonID = m.TaxonID
	}
	return
}

// Table is an ordered list of header mappings. Rows keep the order of
// the header lines they were parsed from and duplicates are retained.
type Table []Mapping

// ParseHeader extracts a Mapping from a single FASTA header line.
//
// The accession is the second pipe-delimited segment of the line, eg
// "P12345" in ">sp|P12345|NAME_HUMAN". The taxon id is the first
// whitespace-delimited token after the first occurrence of "OX=".
// A trailing "OX=" with no token after it counts as absent.
func ParseHeader(line string) (m Mapping) {
	parts := strings.Split(line, "|")
	if len(parts) > 1 {
		m.Accession = parts[1]
		m.HasAccession = true
	}

	if ox := strings.Index(line, "OX="); ox >= 0 {
		fields := strings.Fields(line[ox+len("OX="):])
		if len(fields) > 0 {
			m.TaxonID = fields[0]
			m.HasTaxonID = true
		}
	}

	return
}

// Extract scans FASTA data and returns one Mapping per header line,
// in file order. Sequence lines are ignored, not validated.
func Extract(r io.Reader) (Table, error) {
	var table Table

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, ">") {
			continue
		}
		table = append(table, ParseHeader(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan FASTA: %w", err)
	}

	return table, nil
}

// ExtractFile is Extract against a FASTA file on disk.
func ExtractFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open FASTA file: %w", err)
	}
	defer f.Close()

	return Extract(f)
}

// WriteTSV serializes the table as tab-separated rows, no header row,
// creating missing parent directories. The table is written to a
// temporary file next to path and renamed into place so a failure
// partway through never leaves a truncated table behind.
func (t Table) WriteTSV(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".taxid-*.tsv")
	if err != nil {
		return fmt.Errorf("create temp table: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	for _, m := range t {
		accession, taxonID := m.Row()
		if _, err := fmt.Fprintf(w, "%s\t%s\n", accession, taxonID); err != nil {
			tmp.Close()
			return fmt.Errorf("write table row: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush table: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp table: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename table into place: %w", err)
	}
	return nil
}
