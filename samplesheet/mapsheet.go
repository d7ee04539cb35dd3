package samplesheet

import (
	"context"
	"io"
	"path/filepath"

	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
)

// MergedFASTASuffix ends every merged FASTA produced by the read merger.
const MergedFASTASuffix = ".merged.fa.gz"

// MapRows returns one row per *.merged.fa.gz file directly inside dir, in
// name order. The sample is FirstFieldID of the file name and reads is the
// file's absolute path with symbolic links resolved. It returns ErrNoFiles
// when dir has no such file.
func MapRows(ctx context.Context, dir string) ([]MapRow, error) {
	paths, err := FindFiles(ctx, dir, MergedFASTASuffix, false)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, errors.Wrapf(ErrNoFiles, "no *%s files in %s", MergedFASTASuffix, dir)
	}
	rows := make([]MapRow, 0, len(paths))
	for _, path := range paths {
		reads, err := resolvePath(path)
		if err != nil {
			return nil, err
		}
		row := MapRow{Sample: FirstFieldID(path), Reads: reads}
		log.Debug.Printf("%s: sample %s, tokens %v", path, row.Sample, DashTokens(row.Sample))
		rows = append(rows, row)
	}
	return rows, nil
}

// resolvePath returns the absolute, link-free form of path.
func resolvePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(err, "resolve %s", path)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", errors.Wrapf(err, "resolve %s", path)
	}
	return resolved, nil
}

// SampleSheetPath returns the per-sample samplesheet path next to output.
func SampleSheetPath(output, sample string) string {
	return filepath.Join(filepath.Dir(output), sample+"_samplesheet.csv")
}

// WriteMapSamplesheets writes one single-row samplesheet per sample next to
// output, then the joint samplesheet to output. Nothing is written when dir
// has no merged FASTA.
func WriteMapSamplesheets(ctx context.Context, dir, output string) ([]MapRow, error) {
	rows, err := MapRows(ctx, dir)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		one := []MapRow{row}
		if err := createCSV(ctx, SampleSheetPath(output, row.Sample), func(w io.Writer) error {
			return WriteMapRows(w, one)
		}); err != nil {
			return nil, err
		}
	}
	if err := createCSV(ctx, output, func(w io.Writer) error { return WriteMapRows(w, rows) }); err != nil {
		return nil, err
	}
	log.Printf("Joint samplesheet created: %s (%d samples)", output, len(rows))
	log.Printf("Individual sample sheets saved to: %s", filepath.Dir(output))
	return rows, nil
}
