// Package shortread finds the Illumina short-read files that belong to a
// long-read sample and writes them as a file-of-filenames (FOFN), one line
// per read pair, for SQANTI3-style consumers.
//
// A sample ID such as "CAST_F_striatum" names a strain and a sex. The sample
// key lists the core's sample names for each strain, sex and treatment, and
// the association spreadsheet lists the fastq files of each sample name.
package shortread

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
)

// Result is the outcome of resolving one sample. Either Path is set and
// Reason is nil, or Reason explains why the sample has no short reads.
type Result struct {
	SampleID string
	// Path is the FOFN written for the sample.
	Path string
	// Entries are the FOFN lines, in file order.
	Entries []Entry
	// Unpaired lists files that were found on disk but matched neither the
	// R1 marker nor a derived R2 name. They are not written.
	Unpaired []string
	Reason   error
}

// Found reports whether a FOFN was written.
func (r Result) Found() bool { return r.Reason == nil && r.Path != "" }

func absent(sampleID string, err error) Result {
	return Result{SampleID: sampleID, Reason: err}
}

// Resolver resolves sample IDs to short-read FOFNs. The sample key and the
// association spreadsheet are read on first use and then reused. A
// Resolver is not safe for concurrent use.
type Resolver struct {
	opts   Opts
	loaded bool
	key    []KeyRow
	assoc  Associations
}

// NewResolver returns a Resolver for opts.
func NewResolver(opts Opts) *Resolver {
	return &Resolver{opts: opts}
}

// Resolve writes the FOFN for sampleID. It never fails the caller: every
// problem, including I/O errors, yields a Result without a path whose
// Reason is logged.
func (r *Resolver) Resolve(ctx context.Context, sampleID string) Result {
	log.Printf("Processing sample: %s", sampleID)
	res := r.resolve(ctx, sampleID)
	if res.Reason != nil {
		log.Error.Printf("%s: no short reads: %v", sampleID, res.Reason)
		return res
	}
	for _, p := range res.Unpaired {
		log.Error.Printf("%s: %s matches neither %q nor a derived %q mate; not written", sampleID, p, r.opts.R1Marker, r.opts.R2Marker)
	}
	log.Printf("%s: wrote FOFN with %d entries: %s", sampleID, len(res.Entries), res.Path)
	return res
}

func (r *Resolver) resolve(ctx context.Context, sampleID string) Result {
	strain, sex, err := ParseStrainSex(sampleID)
	if err != nil {
		return absent(sampleID, err)
	}
	mapped := MapStrain(strain)
	log.Debug.Printf("%s: strain=%s (%s) sex=%s", sampleID, strain, mapped, sex)

	if err := r.checkInputs(ctx); err != nil {
		return absent(sampleID, err)
	}
	if err := r.load(ctx); err != nil {
		return absent(sampleID, err)
	}

	matches := MatchKey(r.key, mapped, sex, r.opts.Injection)
	if len(matches) == 0 {
		return absent(sampleID, errors.E(errors.NotExist,
			fmt.Sprintf("no sample key entries for strain=%s, sex=%s, injection=%s", mapped, sex, r.opts.Injection)))
	}

	var found []string
	for _, m := range matches {
		names := r.assoc[m.Name]
		log.Debug.Printf("%s: sample name %s has %d fastq names", sampleID, m.Name, len(names))
		for _, name := range names {
			path := filepath.Join(r.opts.FastqDir, name)
			if !exists(ctx, path) {
				log.Debug.Printf("%s: not found: %s", sampleID, path)
				continue
			}
			found = append(found, path)
		}
	}
	if len(found) == 0 {
		return absent(sampleID, errors.E(errors.NotExist, "no fastq files found on disk"))
	}

	entries, unpaired := Pair(found, r.opts.R1Marker, r.opts.R2Marker, func(p string) bool {
		return exists(ctx, p)
	})
	path := filepath.Join(r.opts.OutDir, sampleID+r.opts.FOFNSuffix)
	if err := WriteFOFN(ctx, path, entries); err != nil {
		return absent(sampleID, err)
	}
	return Result{SampleID: sampleID, Path: path, Entries: entries, Unpaired: unpaired}
}

// checkInputs verifies that the three external inputs are present.
func (r *Resolver) checkInputs(ctx context.Context) error {
	if !exists(ctx, r.opts.KeyPath) {
		return errors.E(errors.NotExist, "sample key file not found:", r.opts.KeyPath)
	}
	if !exists(ctx, r.opts.AssociationPath) {
		return errors.E(errors.NotExist, "sample association file not found:", r.opts.AssociationPath)
	}
	if info, err := os.Stat(r.opts.FastqDir); err != nil || !info.IsDir() {
		return errors.E(errors.NotExist, "fastq directory not found:", r.opts.FastqDir)
	}
	return nil
}

func (r *Resolver) load(ctx context.Context) error {
	if r.loaded {
		return nil
	}
	key, err := ReadKeyFile(ctx, r.opts.KeyPath)
	if err != nil {
		return err
	}
	rows, err := ReadAssociations(ctx, r.opts.AssociationPath)
	if err != nil {
		return err
	}
	r.key, r.assoc, r.loaded = key, NewAssociations(rows), true
	log.Debug.Printf("loaded %d sample key rows, %d sample names", len(r.key), len(r.assoc))
	return nil
}

// WriteFOFN writes entries to path, one per line, replacing any existing
// file. Parent directories are created.
func WriteFOFN(ctx context.Context, path string, entries []Entry) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.E(err, "create FOFN directory", filepath.Dir(path))
	}
	out, err := file.Create(ctx, path)
	if err != nil {
		return errors.E(err, "create FOFN", path)
	}
	defer file.CloseAndReport(ctx, out, &err)
	w := bufio.NewWriter(out.Writer(ctx))
	once := errors.Once{}
	for _, e := range entries {
		_, err := fmt.Fprintln(w, e.String())
		once.Set(err)
	}
	once.Set(w.Flush())
	return once.Err()
}

func exists(ctx context.Context, path string) bool {
	if path == "" {
		return false
	}
	_, err := file.Stat(ctx, path)
	return err == nil
}
