// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// Named source databases. Each selects a fixed UniProt query URL for
// viral (taxonomy_id 10239) protein sequences.
const (
	SwissProt = "swissprot"
	Trembl    = "trembl"
)

// DownloadConfig is settings for the external download client.
type DownloadConfig struct {
	// the number of connections aria2c opens per download
	Connections int `mapstructure:"connections"`

	// query URL for reviewed viral proteins
	SwissProtURL string `mapstructure:"swissprot-url"`

	// query URL for unreviewed viral proteins
	TremblURL string `mapstructure:"trembl-url"`

	// URL of the NCBI taxonomy dump archive
	TaxonomyURL string `mapstructure:"taxonomy-url"`
}

// ToolsConfig names the external binaries the pipeline shells out to.
type ToolsConfig struct {
	Aria2  string `mapstructure:"aria2"`
	Tar    string `mapstructure:"tar"`
	MMseqs string `mapstructure:"mmseqs"`
}

// Config is the root-level settings struct and is a mix of settings
// available in an optional settings file and those from the command line.
type Config struct {
	// source database, swissprot or trembl
	DB string `mapstructure:"db"`

	// path of the output taxonomy mapping table
	Output string `mapstructure:"output"`

	// keep the compressed download after decompression
	KeepIntermediate bool `mapstructure:"keep-intermediate"`

	// skip downloading and unpacking the taxonomy dump
	SkipTaxonomy bool `mapstructure:"skip-taxonomy"`

	// skip deriving the taxonomy mapping table
	SkipTaxID bool `mapstructure:"skip-taxid"`

	// skip building the mmseqs database
	SkipMMseqs bool `mapstructure:"skip-mmseqs"`

	// directory the taxonomy dump is unpacked into
	TaxDir string `mapstructure:"tax-dir"`

	// directory the mmseqs database is written into
	DBDir string `mapstructure:"db-dir"`

	// download client settings
	Download DownloadConfig `mapstructure:"download"`

	// external binary names
	Tools ToolsConfig `mapstructure:"tools"`
}

func setDefaults() {
	viper.SetDefault("output", filepath.Join("taxid_aa", "taxid_aa.tsv"))
	viper.SetDefault("tax-dir", "TAX")
	viper.SetDefault("db-dir", "DB_MMSEQ2_aa")

	viper.SetDefault("download.connections", 10)
	viper.SetDefault("download.swissprot-url",
		"https://rest.uniprot.org/uniprotkb/stream?compressed=true&format=fasta&query=%28%28taxonomy_id%3A10239%29+AND+%28reviewed%3Atrue%29%29")
	viper.SetDefault("download.trembl-url",
		"https://rest.uniprot.org/uniprotkb/stream?compressed=true&format=fasta&query=%28%28taxonomy_id%3A10239%29+AND+%28reviewed%3Afalse%29%29")
	viper.SetDefault("download.taxonomy-url",
		"ftp://ftp.ncbi.nlm.nih.gov/pub/taxonomy/taxdump.tar.gz")

	viper.SetDefault("tools.aria2", "aria2c")
	viper.SetDefault("tools.tar", "tar")
	viper.SetDefault("tools.mmseqs", "mmseqs")
}

// New returns a new Config populated by Viper settings (from the
// optional settings file and/or command line arguments).
func New() *Config {
	setDefaults()

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		log.Fatal("unable to decode settings", "err", err)
	}

	return &c
}

// URL returns the download URL for the selected source database.
func (c *Config) URL() (string, error) {
	switch c.DB {
	case SwissProt:
		return c.Download.SwissProtURL, nil
	case Trembl:
		return c.Download.TremblURL, nil
	}
	return "", fmt.Errorf("unknown database %q: expected %q or %q", c.DB, SwissProt, Trembl)
}

// GzPath is where the compressed download is written, eg
// "swissprot/viral_proteomes_swissprot.fasta.gz".
func (c *Config) GzPath() string {
	return filepath.Join(c.DB, fmt.Sprintf("viral_proteomes_%s.fasta.gz", c.DB))
}

// FastaPath is the decompressed sibling of GzPath.
func (c *Config) FastaPath() string {
	return filepath.Join(c.DB, fmt.Sprintf("viral_proteomes_%s.fasta", c.DB))
}
