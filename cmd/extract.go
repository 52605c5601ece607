package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/agudeloromero/mmseq-viral-db/internal/taxid"
)

// extractCmd derives the taxid table from an already-downloaded FASTA.
var extractCmd = &cobra.Command{
	Use:                        "extract",
	Short:                      "Parse FASTA headers into a taxid mapping table",
	Run:                        runExtract,
	SuggestionsMinimumDistance: 2,
	Long: `
Read a UniProt-style FASTA file and write one tab-separated row per
header: the accession between the first two pipes and the taxon id
tagged with "OX=". A field that cannot be parsed is written as "N/A".`,
	Example: "  viraldb extract --in swissprot/viral_proteomes_swissprot.fasta --out taxid_aa/taxid_aa.tsv",
}

func runExtract(cmd *cobra.Command, args []string) {
	in, _ := cmd.Flags().GetString("in")
	out, _ := cmd.Flags().GetString("out")

	table, err := taxid.ExtractFile(in)
	if err != nil {
		log.Fatal("failed to parse FASTA", "path", in, "err", err)
	}
	if err := table.WriteTSV(out); err != nil {
		log.Fatal("failed to write taxid table", "path", out, "err", err)
	}

	log.Info("taxid table written", "out", out, "rows", len(table))
}

// set flags
func init() {
	extractCmd.Flags().StringP("in", "i", "", "input FASTA file")
	extractCmd.Flags().StringP("out", "o", "taxid_aa/taxid_aa.tsv", "output table path")

	extractCmd.MarkFlagRequired("in")

	RootCmd.AddCommand(extractCmd)
}
