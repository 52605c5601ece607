package cmd

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/agudeloromero/mmseq-viral-db/config"
	"github.com/agudeloromero/mmseq-viral-db/internal/extern"
	"github.com/agudeloromero/mmseq-viral-db/internal/fetch"
)

// taxonomyCmd fetches and unpacks the NCBI taxonomy dump on its own.
var taxonomyCmd = &cobra.Command{
	Use:                        "taxonomy",
	Short:                      "Download and extract the NCBI taxonomy dump",
	Run:                        runTaxonomy,
	SuggestionsMinimumDistance: 2,
	Example:                    "  viraldb taxonomy --dir TAX",
}

func runTaxonomy(cmd *cobra.Command, args []string) {
	dir, _ := cmd.Flags().GetString("dir")
	conf := config.New()

	client := &fetch.Client{
		Runner:      &extern.CommandRunner{},
		Binary:      conf.Tools.Aria2,
		Tar:         conf.Tools.Tar,
		Connections: conf.Download.Connections,
	}
	if err := client.DownloadTaxonomy(context.Background(), conf.Download.TaxonomyURL, dir); err != nil {
		log.Fatal("taxonomy download failed", "err", err)
	}

	log.Info("taxonomy dump extracted", "dir", dir)
}

// set flags
func init() {
	taxonomyCmd.Flags().StringP("dir", "d", "TAX", "directory to extract the dump into")

	RootCmd.AddCommand(taxonomyCmd)
}
