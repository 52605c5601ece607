package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/agudeloromero/mmseq-viral-db/internal/seqstats"
)

// statsCmd summarizes a protein FASTA file.
var statsCmd = &cobra.Command{
	Use:                        "stats",
	Short:                      "Summarize a protein FASTA file",
	Run:                        runStats,
	SuggestionsMinimumDistance: 2,
	Example:                    "  viraldb stats --in swissprot/viral_proteomes_swissprot.fasta",
}

func runStats(cmd *cobra.Command, args []string) {
	in, _ := cmd.Flags().GetString("in")

	sum, err := seqstats.SummarizeFile(in)
	if err != nil {
		log.Fatal("failed to summarize FASTA", "path", in, "err", err)
	}

	log.Info("proteome summary", "in", in, "stats", sum.String())
}

// set flags
func init() {
	statsCmd.Flags().StringP("in", "i", "", "input FASTA file")

	statsCmd.MarkFlagRequired("in")

	RootCmd.AddCommand(statsCmd)
}
