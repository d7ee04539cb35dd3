package readmerge

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/csna/isoprep/encoding/bgzf"
	"github.com/csna/isoprep/encoding/fasta"
	"github.com/csna/isoprep/encoding/fastq"
	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/pgzip"
)

// ConvertStats summarizes one FASTQ to FASTA conversion.
type ConvertStats struct {
	// Records is the number of FASTA records written.
	Records int
	// Skipped counts four-line groups with an empty header or sequence.
	Skipped int
	// Truncated is set when the input ended inside a record. The partial
	// record is not written.
	Truncated bool
}

// FASTAName turns a FASTQ header line into a FASTA record name: the leading
// marker byte is dropped and surrounding whitespace trimmed.
func FASTAName(header string) string {
	if header == "" {
		return ""
	}
	return strings.TrimSpace(header[1:])
}

// Convert reads FASTQ records from r and writes them to w as FASTA.
func Convert(r io.Reader, w io.Writer) (ConvertStats, error) {
	var (
		stats ConvertStats
		sc    = fastq.NewScanner(r)
		fw    = fasta.NewWriter(w)
		read  fastq.Read
	)
	for sc.Scan(&read) {
		if err := fw.Write(FASTAName(read.ID), strings.TrimSpace(read.Seq)); err != nil {
			stats.Records = fw.N()
			return stats, err
		}
	}
	stats.Records, stats.Skipped, stats.Truncated = fw.N(), sc.Skipped(), sc.Truncated()
	return stats, sc.Err()
}

// ToFASTA converts the FASTQ file at src into a gzip FASTA file at dst.
// src is decompressed when its name carries a compression extension. With
// blocked set, dst is written in BGZF so that it can be indexed with
// samtools faidx.
func ToFASTA(ctx context.Context, src, dst string, blocked bool) (stats ConvertStats, err error) {
	in, err := file.Open(ctx, src)
	if err != nil {
		return stats, errors.E(err, "open", src)
	}
	defer file.CloseAndReport(ctx, in, &err)
	var r io.Reader = in.Reader(ctx)
	if u := compress.NewReaderPath(r, in.Name()); u != nil {
		defer func() {
			if cerr := u.Close(); cerr != nil && err == nil {
				err = errors.E(cerr, "close decompressor", src)
			}
		}()
		r = u
	}

	out, err := file.Create(ctx, dst)
	if err != nil {
		return stats, errors.E(err, "create", dst)
	}
	defer file.CloseAndReport(ctx, out, &err)
	var gz io.WriteCloser
	if blocked {
		if gz, err = bgzf.NewWriter(out.Writer(ctx), gzip.DefaultCompression); err != nil {
			return stats, err
		}
	} else {
		gz = pgzip.NewWriter(out.Writer(ctx))
	}
	bw := bufio.NewWriterSize(gz, 1<<20)

	once := errors.Once{}
	stats, err = Convert(r, bw)
	if err != nil {
		once.Set(errors.E(err, "convert", src))
	}
	once.Set(bw.Flush())
	once.Set(gz.Close())
	return stats, once.Err()
}
