package samplesheet

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
)

// None marks an absent value in a samplesheet.
const None = "None"

var (
	// Header is the first line of the isoseq samplesheet.
	Header = []string{"sampleID", "flnc_bam", "reference", "reference_gtf", "shortread_fofn"}
	// MapHeader is the first line of the map-entrypoint samplesheet.
	MapHeader = []string{"sample", "bam", "pbi", "reads"}
)

// Row is one isoseq samplesheet line.
type Row struct {
	SampleID     string
	FlncBAM      string
	Reference    string
	ReferenceGTF string
	// ShortreadFOFN is the FOFN path, or None.
	ShortreadFOFN string
}

// Record returns the row's fields in Header order.
func (r Row) Record() []string {
	return []string{r.SampleID, r.FlncBAM, r.Reference, r.ReferenceGTF, r.ShortreadFOFN}
}

// MapRow is one map-entrypoint samplesheet line. bam and pbi are always
// None.
type MapRow struct {
	Sample string
	Reads  string
}

// Record returns the row's fields in MapHeader order.
func (r MapRow) Record() []string {
	return []string{r.Sample, None, None, r.Reads}
}

// recorder is implemented by Row and MapRow.
type recorder interface {
	Record() []string
}

// writeCSV writes header and rows with CRLF line endings, matching the
// samplesheets the workflow has always been given.
func writeCSV(w io.Writer, header []string, rows []recorder) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.Record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteRows writes the header and rows as CSV.
func WriteRows(w io.Writer, rows []Row) error {
	recs := make([]recorder, len(rows))
	for i := range rows {
		recs[i] = rows[i]
	}
	return writeCSV(w, Header, recs)
}

// WriteMapRows writes the map header and rows as CSV.
func WriteMapRows(w io.Writer, rows []MapRow) error {
	recs := make([]recorder, len(rows))
	for i := range rows {
		recs[i] = rows[i]
	}
	return writeCSV(w, MapHeader, recs)
}

// createCSV replaces the file at path with the output of write.
func createCSV(ctx context.Context, path string, write func(io.Writer) error) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.E(err, "create directory", dir)
		}
	}
	out, err := file.Create(ctx, path)
	if err != nil {
		return errors.E(err, "create", path)
	}
	defer file.CloseAndReport(ctx, out, &err)
	if err := write(out.Writer(ctx)); err != nil {
		return errors.E(err, "write", path)
	}
	return nil
}
