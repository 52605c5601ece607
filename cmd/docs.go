package cmd

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// docsCmd writes Markdown documentation for the command tree.
var docsCmd = &cobra.Command{
	Use:    "docs",
	Short:  "Generate Markdown docs for the viraldb commands",
	Run:    runDocs,
	Hidden: true,
}

func runDocs(cmd *cobra.Command, args []string) {
	dir, _ := cmd.Flags().GetString("dir")

	if err := doc.GenMarkdownTreeCustom(RootCmd, dir, filePrepender, linkHandler); err != nil {
		log.Fatal("failed to generate docs", "err", err)
	}

	log.Info("docs written", "dir", dir)
}

// filePrepender adds a small YAML heading to each generated page.
func filePrepender(filename string) string {
	name := filepath.Base(filename)
	base := strings.TrimSuffix(name, path.Ext(name))

	title := strings.ReplaceAll(base, "_", " ")
	return "---\nlayout: default\ntitle: " + title + "\n---\n"
}

// linkHandler returns the URL to a documentation page.
func linkHandler(filename string) string {
	name := filepath.Base(filename)
	base := strings.TrimSuffix(name, path.Ext(name))

	if base == "viraldb" {
		return "/"
	}
	return base
}

// set flags
func init() {
	docsCmd.Flags().StringP("dir", "d", "./docs", "directory to write the docs into")

	RootCmd.AddCommand(docsCmd)
}
