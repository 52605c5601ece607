package cmd

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agudeloromero/mmseq-viral-db/config"
	"github.com/agudeloromero/mmseq-viral-db/internal/pipeline"
)

// buildCmd runs the whole pipeline: download, decompress, taxid
// table, taxonomy dump, mmseqs database.
var buildCmd = &cobra.Command{
	Use:                        "build",
	Short:                      "Download viral proteomes and build the mmseqs taxonomy database",
	Run:                        runBuild,
	SuggestionsMinimumDistance: 2,
	Long: `
Download viral protein sequences from UniProt, derive an accession to
NCBI taxon id mapping table from the FASTA headers, fetch the NCBI
taxonomy dump, and build an mmseqs sequence database augmented with
taxonomy. Each optional stage can be skipped independently.`,
	Example: "  viraldb build --db swissprot",
}

func runBuild(cmd *cobra.Command, args []string) {
	if settings := viper.GetString("settings"); settings != "" {
		viper.SetConfigFile(settings)
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal("failed to read settings file", "path", settings, "err", err)
		}
	}

	conf := config.New()
	if err := pipeline.New(conf).Run(context.Background()); err != nil {
		log.Fatal("pipeline failed", "err", err)
	}

	log.Info("all steps completed successfully")
}

// set flags
func init() {
	buildCmd.Flags().StringP("db", "d", "", "source database, swissprot or trembl")
	buildCmd.Flags().StringP("output", "o", "taxid_aa/taxid_aa.tsv", "path of the output taxid mapping table")
	buildCmd.Flags().Bool("keep-intermediate", false, "keep the .fasta.gz file after decompression")
	buildCmd.Flags().Bool("skip-taxonomy", false, "skip downloading and extracting the taxonomy dump")
	buildCmd.Flags().Bool("skip-taxid", false, "skip parsing FASTA headers into the taxid table")
	buildCmd.Flags().Bool("skip-mmseqs", false, "skip building the mmseqs database")
	buildCmd.Flags().StringP("settings", "s", "", "optional settings file overriding the defaults")

	buildCmd.MarkFlagRequired("db")

	viper.BindPFlag("db", buildCmd.Flags().Lookup("db"))
	viper.BindPFlag("output", buildCmd.Flags().Lookup("output"))
	viper.BindPFlag("keep-intermediate", buildCmd.Flags().Lookup("keep-intermediate"))
	viper.BindPFlag("skip-taxonomy", buildCmd.Flags().Lookup("skip-taxonomy"))
	viper.BindPFlag("skip-taxid", buildCmd.Flags().Lookup("skip-taxid"))
	viper.BindPFlag("skip-mmseqs", buildCmd.Flags().Lookup("skip-mmseqs"))
	viper.BindPFlag("settings", buildCmd.Flags().Lookup("settings"))

	RootCmd.AddCommand(buildCmd)
}
