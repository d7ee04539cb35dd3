// Package readmerge merges the per-run HiFi FASTQ files of one sample into a
// single gzip FASTQ and converts the merged file to gzip FASTA.
package readmerge

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/csna/isoprep/util"
	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
)

const (
	// inputSuffix ends every per-run FASTQ produced from a HiFi BAM.
	inputSuffix = ".bam.fastq.gz"
	// unbarcodedMarker marks reads the demultiplexer could not assign.
	unbarcodedMarker = "unbarcoded"
)

// ErrNoInputs is returned when no FASTQ file matches the sample ID.
var ErrNoInputs = errors.New("no matching FASTQ files")

// InputPattern returns the base-name glob that selects the FASTQ files of
// sampleID, e.g. "*.55555_*.bam.fastq.gz".
func InputPattern(sampleID string) string {
	return "*." + sampleID + "_*" + inputSuffix
}

// Find lists every file under root whose base name matches
// InputPattern(sampleID), skipping unbarcoded files. Paths are sorted and
// directory links are not followed. It returns ErrNoInputs if nothing
// matches.
func Find(ctx context.Context, root, sampleID string) ([]string, error) {
	pattern := InputPattern(sampleID)
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, errors.Wrapf(err, "sample ID %q", sampleID)
	}
	paths, err := util.ListFiles(ctx, root, true /*recursive*/, func(name string) bool {
		if ok, _ := filepath.Match(pattern, name); !ok {
			return false
		}
		if strings.Contains(name, unbarcodedMarker) {
			log.Debug.Printf("%s: skipping unbarcoded file", name)
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, errors.Wrapf(ErrNoInputs, "sample %s under %s", sampleID, root)
	}
	return paths, nil
}
