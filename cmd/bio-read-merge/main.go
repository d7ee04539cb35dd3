package main

// bio-read-merge merges all per-run HiFi FASTQ files of one sample into
// <output_fastq_dir>/<sample_id>.merged.bam.fastq.gz and converts the result
// to <output_fasta_dir>/<sample_id>.merged.fa.gz.
//
// Input files are found recursively under <input_root> by the name pattern
// *.<sample_id>_*.bam.fastq.gz. Files whose name contains "unbarcoded" are
// ignored.

import (
	"flag"
	"os"

	"github.com/csna/isoprep/readmerge"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/pkg/errors"
)

var bgzfOutput = flag.Bool("bgzf", false, "Write the FASTA output block-gzipped so samtools faidx can index it")

func main() {
	log.SetFlags(log.Ldate | log.Ltime)
	flag.Usage = func() {
		os.Stderr.WriteString(`Usage: bio-read-merge [-bgzf] <sample_id> <input_root> <output_fastq_dir> <output_fasta_dir>

Example:
  bio-read-merge 55555 \
    /data/sequencing/isoseq/striatum \
    /data/sequencing/isoseq/striatum/merged/fastq \
    /data/sequencing/isoseq/striatum/merged/fasta
`)
		flag.PrintDefaults()
	}
	shutdown := grail.Init()
	defer shutdown()

	args := flag.Args()
	if len(args) != 4 {
		flag.Usage()
		os.Exit(1)
	}
	opts := readmerge.Opts{
		SampleID:  args[0],
		InputRoot: args[1],
		FASTQDir:  args[2],
		FASTADir:  args[3],
		BGZF:      *bgzfOutput,
	}
	ctx := vcontext.Background()
	if _, err := readmerge.Run(ctx, opts); err != nil {
		if errors.Cause(err) == readmerge.ErrNoInputs {
			log.Printf("No FASTQ files found for sample ID %s", opts.SampleID)
			os.Exit(1)
		}
		log.Fatalf("sample %s: %v", opts.SampleID, err)
	}
}
