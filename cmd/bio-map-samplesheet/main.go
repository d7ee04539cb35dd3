package main

// bio-map-samplesheet writes the map-entrypoint samplesheet for a directory
// of merged HiFi FASTA files (*.merged.fa.gz), plus one single-sample
// samplesheet per file next to the joint one. The sample name is the part
// of the file name before the first '_':
//
//   CAST-F-striatum_RNA_CCS.merged.fa.gz -> CAST-F-striatum
//
// Usage: bio-map-samplesheet -input-dir <fasta_dir> -output <samplesheet.csv>

import (
	"flag"
	"os"

	"github.com/csna/isoprep/samplesheet"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/pkg/errors"
)

var (
	inputDirFlag = flag.String("input-dir", "", "Directory of *.merged.fa.gz files")
	outputFlag   = flag.String("output", "", "Joint samplesheet CSV. Per-sample sheets are written to the same directory")
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime)
	shutdown := grail.Init()
	defer shutdown()

	if *inputDirFlag == "" || *outputFlag == "" {
		flag.Usage()
		log.Printf("-input-dir and -output are required")
		os.Exit(1)
	}
	ctx := vcontext.Background()
	if _, err := samplesheet.WriteMapSamplesheets(ctx, *inputDirFlag, *outputFlag); err != nil {
		if errors.Cause(err) == samplesheet.ErrNoFiles {
			log.Printf("No %s files found in %s", samplesheet.MergedFASTASuffix, *inputDirFlag)
			os.Exit(1)
		}
		log.Fatalf("write samplesheets %s: %v", *outputFlag, err)
	}
}
