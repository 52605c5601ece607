package pipeline

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agudeloromero/mmseq-viral-db/config"
	"github.com/agudeloromero/mmseq-viral-db/internal/fetch"
	"github.com/agudeloromero/mmseq-viral-db/internal/mmseqs"
)

const testFasta = ">sp|P12345|NAME_HUMAN Desc OX=9606 GN=x\n" +
	"MSEQ\n" +
	">tr|Q99999|NAME2 Desc\n" +
	"SEQ\n"

// scriptRunner mimics the side effects of the external binaries: the
// download client writes files, tar unpacks nodes.dmp, mmseqs is a
// no-op. Every call is recorded.
type scriptRunner struct {
	calls [][]string
}

func (f *scriptRunner) Run(ctx context.Context, name string, args ...string) error {
	f.calls = append(f.calls, append([]string{name}, args...))

	switch name {
	case "aria2c":
		dir, base := "", ""
		for i := 0; i < len(args)-1; i++ {
			switch args[i] {
			case "-d":
				dir = args[i+1]
			case "-o":
				base = args[i+1]
			}
		}
		if base == "" {
			// taxonomy archive download keeps the URL's base name
			base = filepath.Base(args[len(args)-1])
		}
		if strings.HasSuffix(base, ".fasta.gz") {
			var buf bytes.Buffer
			zw := gzip.NewWriter(&buf)
			zw.Write([]byte(testFasta))
			zw.Close()
			return os.WriteFile(filepath.Join(dir, base), buf.Bytes(), 0644)
		}
		return os.WriteFile(filepath.Join(dir, base), []byte("archive"), 0644)
	case "tar":
		// -xzf <archive> -C <dir>
		dir := args[len(args)-1]
		return os.WriteFile(filepath.Join(dir, "nodes.dmp"), []byte("1\t|\t1\n"), 0644)
	}
	return nil
}

// testPipeline returns a Pipeline over a scripted runner, with all
// paths rooted in a fresh working directory.
func testPipeline(t *testing.T) (*Pipeline, *scriptRunner) {
	t.Helper()

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })

	conf := &config.Config{
		DB:     config.SwissProt,
		Output: filepath.Join("taxid_aa", "taxid_aa.tsv"),
		TaxDir: "TAX",
		DBDir:  "DB_MMSEQ2_aa",
		Download: config.DownloadConfig{
			Connections:  10,
			SwissProtURL: "https://example.org/swissprot.fasta.gz",
			TremblURL:    "https://example.org/trembl.fasta.gz",
			TaxonomyURL:  "ftp://example.org/taxdump.tar.gz",
		},
		Tools: config.ToolsConfig{Aria2: "aria2c", Tar: "tar", MMseqs: "mmseqs"},
	}

	runner := &scriptRunner{}
	return &Pipeline{
		Config:  conf,
		Fetcher: &fetch.Client{Runner: runner, Binary: "aria2c", Tar: "tar", Connections: 10},
		Builder: &mmseqs.Builder{Runner: runner, Binary: "mmseqs"},
	}, runner
}

func Test_Run(t *testing.T) {
	p, runner := testPipeline(t)

	if err := p.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(p.Config.Output)
	if err != nil {
		t.Fatal(err)
	}
	want := "P12345\t9606\nQ99999\tN/A\n"
	if string(data) != want {
		t.Errorf("taxid table = %q, want %q", string(data), want)
	}

	// intermediate download is removed by default
	if _, err := os.Stat(p.Config.GzPath()); !os.IsNotExist(err) {
		t.Errorf("intermediate %s still exists", p.Config.GzPath())
	}
	if _, err := os.Stat(p.Config.FastaPath()); err != nil {
		t.Errorf("decompressed FASTA missing: %v", err)
	}

	wantBins := []string{"aria2c", "aria2c", "tar", "mmseqs", "mmseqs"}
	if len(runner.calls) != len(wantBins) {
		t.Fatalf("ran %d commands, want %d: %v", len(runner.calls), len(wantBins), runner.calls)
	}
	for i, call := range runner.calls {
		if call[0] != wantBins[i] {
			t.Errorf("call %d ran %q, want %q", i, call[0], wantBins[i])
		}
	}
}

func Test_Run_skipsEverythingOptional(t *testing.T) {
	p, runner := testPipeline(t)
	p.Config.KeepIntermediate = true
	p.Config.SkipTaxID = true
	p.Config.SkipTaxonomy = true
	p.Config.SkipMMseqs = true

	if err := p.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	if len(runner.calls) != 1 || runner.calls[0][0] != "aria2c" {
		t.Errorf("ran %v, want just the proteome download", runner.calls)
	}
	if _, err := os.Stat(p.Config.GzPath()); err != nil {
		t.Errorf("intermediate was removed despite --keep-intermediate: %v", err)
	}
	if _, err := os.Stat(p.Config.Output); !os.IsNotExist(err) {
		t.Errorf("taxid table written despite --skip-taxid")
	}
}

func Test_Run_missingNodesDmp(t *testing.T) {
	// skipping the taxonomy stage leaves TAX/nodes.dmp absent, which
	// must fail the pre-build check before mmseqs is invoked
	p, runner := testPipeline(t)
	p.Config.SkipTaxonomy = true

	err := p.Run(context.Background())

	var merr *mmseqs.MissingFileError
	if !errors.As(err, &merr) {
		t.Fatalf("Run() error = %v, want *MissingFileError", err)
	}
	for _, call := range runner.calls {
		if call[0] == "mmseqs" {
			t.Errorf("mmseqs was invoked despite a missing input: %v", call)
		}
	}
}

func Test_Run_unknownDB(t *testing.T) {
	p, runner := testPipeline(t)
	p.Config.DB = "uniref50"

	if err := p.Run(context.Background()); err == nil {
		t.Fatal("Run() with an unknown db returned nil")
	}
	if len(runner.calls) != 0 {
		t.Errorf("ran %v before rejecting the unknown db", runner.calls)
	}
}

func Test_New(t *testing.T) {
	conf := &config.Config{
		Tools:    config.ToolsConfig{Aria2: "aria2c", Tar: "tar", MMseqs: "mmseqs"},
		Download: config.DownloadConfig{Connections: 10},
	}

	p := New(conf)
	if p.Fetcher.Binary != "aria2c" || p.Fetcher.Tar != "tar" || p.Fetcher.Connections != 10 {
		t.Errorf("New() fetcher = %+v", p.Fetcher)
	}
	if p.Builder.Binary != "mmseqs" {
		t.Errorf("New() builder = %+v", p.Builder)
	}
}
