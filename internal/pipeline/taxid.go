package pipeline

import (
	"github.com/charmbracelet/log"

	"github.com/agudeloromero/mmseq-viral-db/internal/taxid"
)

// extractTaxIDs derives the accession to taxon id table from the
// decompressed FASTA and writes it to the configured output path.
func (p *Pipeline) extractTaxIDs(fastaPath string) error {
	log.Info("parsing FASTA headers", "in", fastaPath)

	table, err := taxid.ExtractFile(fastaPath)
	if err != nil {
		return err
	}
	if err := table.WriteTSV(p.Config.Output); err != nil {
		return err
	}

	log.Info("taxid table written", "out", p.Config.Output, "rows", len(table))
	return nil
}
