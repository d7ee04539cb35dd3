package main

// bio-samplesheet writes the isoseq samplesheet for every *.hifi.merged.bam
// found under a directory tree, attaching a short-read FOFN to each sample
// whose matching Illumina data can be found.
//
// Usage: bio-samplesheet -d <root_dir> -o <output.csv> [-reference <path>] [-gtf <path>]

import (
	"flag"
	"os"

	"github.com/csna/isoprep/samplesheet"
	"github.com/csna/isoprep/shortread"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/pkg/errors"
)

var (
	rootFlag       string
	outputFlag     string
	referenceFlag  = flag.String("reference", "/projects/chesler-lab/csna/sv_ferraj/SVTD/data/ref/mm39/mm39.fa", "Reference genome FASTA")
	gtfFlag        = flag.String("gtf", "/projects/chesler-lab/csna/sv_ferraj/SVTD/data/ref/mm39/gencode.vM36.annotation.gtf", "Reference annotation GTF")
	suffixFlag     = flag.String("suffix", samplesheet.HiFiSuffix, "File name suffix of the merged HiFi BAMs")
	shortreadsFlag = flag.Bool("shortreads", true, "Resolve short-read FOFNs. If false, shortread_fofn is always None")
)

// Short-read inputs. The defaults are the CSNA founder strain locations.
var (
	keyFlag         = flag.String("key", "/projects/csna/sv_ferraj/SVTD/repo/isoSV/assets/sample_key_18-chesler-002.txt", "Tab-separated sample key with columns Strain, Sex, Injection, Comments, Name")
	associationFlag = flag.String("associations", "/projects/chesler-lab/csna/rnaseq/CCFounders_Sham_Cocaine/fastqs/18-chesler-002_Sample-Association_File.xlsx", "Spreadsheet mapping 'Sample Name' to 'fastq name'")
	fastqDirFlag    = flag.String("fastq-dir", "/projects/csna/rnaseq/CCFounders_Sham_Cocaine/fastqs", "Directory holding the short-read fastq files")
	injectionFlag   = flag.String("injection", shortread.DefaultOpts.Injection, "Required Injection value in the sample key")
	fofnDirFlag     = flag.String("fofn-dir", "", "Directory for the short-read FOFNs. Defaults to shortread_fofn next to the output")
)

func init() {
	flag.StringVar(&rootFlag, "d", "", "Root directory to search for merged HiFi BAMs")
	flag.StringVar(&rootFlag, "directory", "", "Same as -d")
	flag.StringVar(&outputFlag, "o", "", "Output CSV file path")
	flag.StringVar(&outputFlag, "output", "", "Same as -o")
}

func main() {
	log.SetFlags(log.Ldate | log.Ltime)
	shutdown := grail.Init()
	defer shutdown()

	if rootFlag == "" || outputFlag == "" {
		flag.Usage()
		log.Printf("-d and -o are required")
		os.Exit(1)
	}
	opts := samplesheet.DefaultBuildOpts
	opts.Root = rootFlag
	opts.Suffix = *suffixFlag
	opts.Reference = *referenceFlag
	opts.GTF = *gtfFlag

	var resolver samplesheet.Resolver
	if *shortreadsFlag {
		sopts := shortread.DefaultOpts
		sopts.KeyPath = *keyFlag
		sopts.AssociationPath = *associationFlag
		sopts.FastqDir = *fastqDirFlag
		sopts.Injection = *injectionFlag
		sopts.OutDir = *fofnDirFlag
		if sopts.OutDir == "" {
			sopts.OutDir = samplesheet.FOFNDir(outputFlag)
		}
		resolver = shortread.NewResolver(sopts)
	}

	ctx := vcontext.Background()
	if _, err := samplesheet.WriteSamplesheet(ctx, outputFlag, opts, resolver); err != nil {
		if errors.Cause(err) == samplesheet.ErrNoFiles {
			log.Printf("No %s files found under %s", opts.Suffix, opts.Root)
			os.Exit(1)
		}
		log.Fatalf("write samplesheet %s: %v", outputFlag, err)
	}
}
