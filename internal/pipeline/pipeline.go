// Package pipeline sequences the stages that turn a UniProt viral
// proteome download into an mmseqs taxonomy search database.
package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/agudeloromero/mmseq-viral-db/config"
	"github.com/agudeloromero/mmseq-viral-db/internal/extern"
	"github.com/agudeloromero/mmseq-viral-db/internal/fetch"
	"github.com/agudeloromero/mmseq-viral-db/internal/gz"
	"github.com/agudeloromero/mmseq-viral-db/internal/mmseqs"
	"github.com/agudeloromero/mmseq-viral-db/internal/seqstats"
)

// Pipeline runs the stages in order: download, decompress, taxid
// table, taxonomy dump, database build. Stages are sequential; the
// first error aborts the run.
type Pipeline struct {
	Config  *config.Config
	Fetcher *fetch.Client
	Builder *mmseqs.Builder
}

// New wires a Pipeline to the real external binaries named in conf.
func New(conf *config.Config) *Pipeline {
	runner := &extern.CommandRunner{}
	return &Pipeline{
		Config: conf,
		Fetcher: &fetch.Client{
			Runner:      runner,
			Binary:      conf.Tools.Aria2,
			Tar:         conf.Tools.Tar,
			Connections: conf.Download.Connections,
		},
		Builder: &mmseqs.Builder{
			Runner: runner,
			Binary: conf.Tools.MMseqs,
		},
	}
}

// Run executes the pipeline per the flags in Config.
func (p *Pipeline) Run(ctx context.Context) error {
	conf := p.Config

	url, err := conf.URL()
	if err != nil {
		return err
	}

	gzPath := conf.GzPath()
	fastaPath := conf.FastaPath()

	log.Info("starting download", "url", url, "out", gzPath)
	if err := p.Fetcher.Download(ctx, url, gzPath); err != nil {
		return err
	}
	log.Info("download completed", "out", gzPath)

	log.Info("decompressing", "in", gzPath, "out", fastaPath)
	if err := gz.Decompress(gzPath, fastaPath); err != nil {
		return err
	}
	log.Info("decompressed", "out", fastaPath)

	if sum, err := seqstats.SummarizeFile(fastaPath); err != nil {
		log.Warn("could not summarize FASTA", "err", err)
	} else {
		log.Info("proteome summary", "stats", sum.String())
	}

	if !conf.SkipTaxID {
		if err := p.extractTaxIDs(fastaPath); err != nil {
			return err
		}
	}

	if !conf.KeepIntermediate {
		if err := os.Remove(gzPath); err != nil {
			return fmt.Errorf("remove intermediate file: %w", err)
		}
		log.Info("removed intermediate file", "path", gzPath)
	}

	if !conf.SkipTaxonomy {
		log.Info("fetching taxonomy dump", "url", conf.Download.TaxonomyURL, "dir", conf.TaxDir)
		if err := p.Fetcher.DownloadTaxonomy(ctx, conf.Download.TaxonomyURL, conf.TaxDir); err != nil {
			return err
		}
		log.Info("taxonomy dump extracted", "dir", conf.TaxDir)
	}

	if !conf.SkipMMseqs {
		log.Info("building mmseqs database", "dir", conf.DBDir)
		if err := p.Builder.Build(ctx, fastaPath, conf.Output, conf.TaxDir, conf.DBDir); err != nil {
			return err
		}
		log.Info("mmseqs database created", "dir", conf.DBDir)
	}

	return nil
}
