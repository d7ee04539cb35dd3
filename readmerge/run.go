package readmerge

import (
	"context"
	"os"
	"path/filepath"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
)

// Opts configures Run.
type Opts struct {
	// SampleID selects input files, see InputPattern.
	SampleID string
	// InputRoot is searched recursively for input FASTQ files.
	InputRoot string
	// FASTQDir receives <SampleID>.merged.bam.fastq.gz.
	FASTQDir string
	// FASTADir receives <SampleID>.merged.fa.gz.
	FASTADir string
	// BGZF writes the FASTA output block-gzipped.
	BGZF bool
}

// Summary describes the outputs of Run.
type Summary struct {
	Inputs      []string
	MergedFASTQ string
	FASTA       string
	Bytes       int64
	ConvertStats
}

// MergedFASTQPath returns the merged FASTQ path for opts.
func (o Opts) MergedFASTQPath() string {
	return filepath.Join(o.FASTQDir, o.SampleID+".merged"+inputSuffix)
}

// FASTAPath returns the FASTA output path for opts.
func (o Opts) FASTAPath() string {
	return filepath.Join(o.FASTADir, o.SampleID+".merged.fa.gz")
}

// Run merges the sample's FASTQ files and converts the result to FASTA.
// Inputs are located before anything is written, so a sample without
// inputs leaves no output behind.
func Run(ctx context.Context, opts Opts) (Summary, error) {
	s := Summary{MergedFASTQ: opts.MergedFASTQPath(), FASTA: opts.FASTAPath()}
	inputs, err := Find(ctx, opts.InputRoot, opts.SampleID)
	if err != nil {
		return s, err
	}
	s.Inputs = inputs
	for _, dir := range []string{opts.FASTQDir, opts.FASTADir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return s, errors.E(err, "create output directory", dir)
		}
	}

	log.Printf("Merging %d FASTQ files for sample %s...", len(inputs), opts.SampleID)
	if s.Bytes, err = Merge(ctx, inputs, s.MergedFASTQ); err != nil {
		return s, err
	}
	log.Printf("Merged FASTQ written to %s", s.MergedFASTQ)

	log.Printf("Converting merged FASTQ to FASTA...")
	if s.ConvertStats, err = ToFASTA(ctx, s.MergedFASTQ, s.FASTA, opts.BGZF); err != nil {
		return s, err
	}
	if s.Skipped > 0 || s.Truncated {
		log.Printf("%s: skipped %d empty records, truncated tail: %v", s.MergedFASTQ, s.Skipped, s.Truncated)
	}
	log.Printf("FASTA written to %s (%d records)", s.FASTA, s.Records)
	return s, nil
}
