// Package samplesheet writes the CSV samplesheets consumed by the isoseq
// workflow. Two layouts exist: the isoseq samplesheet built from merged
// HiFi BAMs (Build, WriteSamplesheet) and the map-entrypoint samplesheet
// built from merged FASTA files (MapRows, WriteMapSamplesheets).
package samplesheet

import (
	"context"
	"io"
	"path/filepath"

	"github.com/csna/isoprep/shortread"
	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
)

// ErrNoFiles is returned when no input file is found.
var ErrNoFiles = errors.New("no input files found")

// HiFiSuffix ends every merged HiFi BAM.
const HiFiSuffix = ".hifi.merged.bam"

// Resolver finds short reads for a sample. *shortread.Resolver implements
// it.
type Resolver interface {
	Resolve(ctx context.Context, sampleID string) shortread.Result
}

// BuildOpts configures Build.
type BuildOpts struct {
	// Root is searched recursively for files ending in Suffix.
	Root   string
	Suffix string
	// Reference and GTF are copied into every row.
	Reference string
	GTF       string
}

// DefaultBuildOpts sets the default values to BuildOpts.
var DefaultBuildOpts = BuildOpts{
	Suffix: HiFiSuffix,
}

// Summary counts what Build produced.
type Summary struct {
	Rows       int
	ShortReads int
}

// Build returns one row per file under opts.Root ending in opts.Suffix, in
// path order. When resolver is non-nil every sample is resolved in turn and
// the row carries the FOFN path, or None when the sample has no short
// reads. A sample that fails to resolve never fails the build. Build
// returns ErrNoFiles when the tree has no matching file.
func Build(ctx context.Context, opts BuildOpts, resolver Resolver) ([]Row, Summary, error) {
	var s Summary
	paths, err := FindFiles(ctx, opts.Root, opts.Suffix, true)
	if err != nil {
		return nil, s, err
	}
	if len(paths) == 0 {
		return nil, s, errors.Wrapf(ErrNoFiles, "no *%s files under %s", opts.Suffix, opts.Root)
	}
	rows := make([]Row, 0, len(paths))
	for _, path := range paths {
		row := Row{
			SampleID:      TrimSuffixID(path, opts.Suffix),
			FlncBAM:       path,
			Reference:     opts.Reference,
			ReferenceGTF:  opts.GTF,
			ShortreadFOFN: None,
		}
		if resolver != nil {
			if res := resolver.Resolve(ctx, row.SampleID); res.Found() {
				row.ShortreadFOFN = res.Path
				s.ShortReads++
			}
		}
		rows = append(rows, row)
	}
	s.Rows = len(rows)
	return rows, s, nil
}

// FOFNDir returns the directory that receives short-read FOFNs for a
// samplesheet written to output.
func FOFNDir(output string) string {
	return filepath.Join(filepath.Dir(output), "shortread_fofn")
}

// WriteSamplesheet builds the samplesheet and writes it to output. The
// output is not touched when Build fails.
func WriteSamplesheet(ctx context.Context, output string, opts BuildOpts, resolver Resolver) (Summary, error) {
	rows, s, err := Build(ctx, opts, resolver)
	if err != nil {
		return s, err
	}
	if err := createCSV(ctx, output, func(w io.Writer) error { return WriteRows(w, rows) }); err != nil {
		return s, err
	}
	log.Printf("Samplesheet written to %s (%d samples, %d with short reads)", output, s.Rows, s.ShortReads)
	return s, nil
}
