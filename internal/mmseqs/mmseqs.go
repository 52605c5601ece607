// Package mmseqs drives the mmseqs toolkit to build a
// taxonomy-aware protein search database.
package mmseqs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/agudeloromero/mmseq-viral-db/internal/extern"
)

// DBName is the base name of the sequence database inside the output
// directory.
const DBName = "viral.aa.fnaDB"

// MissingFileError is a required input file that was absent before
// the build was attempted.
type MissingFileError struct {
	Path        string
	Description string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("required %s not found: %s", e.Description, e.Path)
}

// CheckFile returns a *MissingFileError if path is not a regular file.
func CheckFile(path, description string) error {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return &MissingFileError{Path: path, Description: description}
	}
	return nil
}

// Builder invokes the mmseqs binary.
type Builder struct {
	Runner extern.Runner
	Binary string
}

// Build creates the sequence database from fastaPath and augments it
// with taxonomy using the unpacked dump in taxDir and the mapping
// table at taxidPath. All three inputs are verified before mmseqs is
// invoked; a missing one is reported as a *MissingFileError.
func (b *Builder) Build(ctx context.Context, fastaPath, taxidPath, taxDir, outDir string) error {
	if err := CheckFile(fastaPath, "FASTA file"); err != nil {
		return err
	}
	if err := CheckFile(taxidPath, "taxid mapping file"); err != nil {
		return err
	}
	if err := CheckFile(filepath.Join(taxDir, "nodes.dmp"), "taxonomy nodes.dmp file"); err != nil {
		return err
	}

	tmpDir := filepath.Join(outDir, "tmp")
	if err := os.MkdirAll(tmpDir, 0755); err != nil {
		return fmt.Errorf("create database directory: %w", err)
	}

	db := filepath.Join(outDir, DBName)
	if err := b.Runner.Run(ctx, b.Binary, "createdb", fastaPath, db); err != nil {
		return fmt.Errorf("create sequence database: %w", err)
	}

	err := b.Runner.Run(ctx, b.Binary,
		"createtaxdb", db, tmpDir,
		"--ncbi-tax-dump", taxDir,
		"--tax-mapping-file", taxidPath,
	)
	if err != nil {
		return fmt.Errorf("create taxonomy database: %w", err)
	}
	return nil
}
