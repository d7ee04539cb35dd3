package shortread

import (
	"context"
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	"github.com/xuri/excelize/v2"
)

const (
	sampleNameColumn = "Sample Name"
	fastqNameColumn  = "fastq name"
)

// AssociationRow maps a sequencing-core sample name to one fastq file name.
type AssociationRow struct {
	SampleName string `tsv:"Sample Name"`
	FastqName  string `tsv:"fastq name"`
}

// Associations indexes fastq file names by sample name. Names keep their
// spreadsheet order.
type Associations map[string][]string

// NewAssociations indexes rows. Rows with an empty fastq name are dropped.
func NewAssociations(rows []AssociationRow) Associations {
	a := Associations{}
	for _, row := range rows {
		if row.FastqName == "" {
			continue
		}
		a[row.SampleName] = append(a[row.SampleName], row.FastqName)
	}
	return a
}

// ReadAssociations reads the sample association spreadsheet at path. Files
// ending in .xlsx or .xlsm are read from their first sheet; .csv files are
// comma separated; anything else is read as tab separated text.
func ReadAssociations(ctx context.Context, path string) (rows []AssociationRow, err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(err, "open sample association file", path)
	}
	defer file.CloseAndReport(ctx, in, &err)
	r := in.Reader(ctx)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		rows, err = readWorkbook(r)
	case ".csv":
		rows, err = readDelimited(csv.NewReader(r))
	default:
		rows, err = readTSV(r)
	}
	if err != nil {
		return nil, errors.E(err, "read sample association file", path)
	}
	log.Debug.Printf("%s: %d sample associations", path, len(rows))
	return rows, nil
}

func readWorkbook(r io.Reader) ([]AssociationRow, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer wb.Close() // nolint: errcheck
	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.E(errors.Invalid, "workbook has no sheets")
	}
	cells, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	return associationRows(cells)
}

func readDelimited(r *csv.Reader) ([]AssociationRow, error) {
	r.FieldsPerRecord = -1
	cells, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	return associationRows(cells)
}

func readTSV(r io.Reader) ([]AssociationRow, error) {
	tr := tsv.NewReader(r)
	tr.HasHeaderRow = true
	tr.UseHeaderNames = true
	var rows []AssociationRow
	for {
		var row AssociationRow
		if err := tr.Read(&row); err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		row.SampleName = strings.TrimSpace(row.SampleName)
		row.FastqName = strings.TrimSpace(row.FastqName)
		rows = append(rows, row)
	}
	return rows, nil
}

// associationRows converts a header row plus data rows. Short rows are
// padded; the header must name both association columns.
func associationRows(cells [][]string) ([]AssociationRow, error) {
	if len(cells) == 0 {
		return nil, errors.E(errors.Invalid, "empty sample association table")
	}
	nameCol, fastqCol := -1, -1
	for i, h := range cells[0] {
		switch strings.TrimSpace(h) {
		case sampleNameColumn:
			nameCol = i
		case fastqNameColumn:
			fastqCol = i
		}
	}
	if nameCol < 0 || fastqCol < 0 {
		return nil, errors.E(errors.Invalid, "missing column", sampleNameColumn, "or", fastqNameColumn)
	}
	cell := func(row []string, i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	rows := make([]AssociationRow, 0, len(cells)-1)
	for _, row := range cells[1:] {
		rows = append(rows, AssociationRow{SampleName: cell(row, nameCol), FastqName: cell(row, fastqCol)})
	}
	return rows, nil
}
