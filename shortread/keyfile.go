package shortread

import (
	"context"
	"io"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/tsv"
)

// KeyRow is one row of the sample key.
type KeyRow struct {
	Strain    string `tsv:"Strain"`
	Sex       string `tsv:"Sex"`
	Injection string `tsv:"Injection"`
	Comments  string `tsv:"Comments"`
	Name      string `tsv:"Name"`
}

// ReadKey parses a sample key from r. The first row must be a header naming
// at least the KeyRow columns; other columns are ignored.
func ReadKey(r io.Reader) ([]KeyRow, error) {
	tr := tsv.NewReader(r)
	tr.HasHeaderRow = true
	tr.UseHeaderNames = true
	var rows []KeyRow
	for {
		var row KeyRow
		if err := tr.Read(&row); err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		row.Strain = strings.TrimSpace(row.Strain)
		row.Sex = strings.TrimSpace(row.Sex)
		row.Injection = strings.TrimSpace(row.Injection)
		row.Name = strings.TrimSpace(row.Name)
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadKeyFile parses the sample key at path.
func ReadKeyFile(ctx context.Context, path string) (rows []KeyRow, err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(err, "open sample key", path)
	}
	defer file.CloseAndReport(ctx, in, &err)
	if rows, err = ReadKey(in.Reader(ctx)); err != nil {
		return nil, errors.E(err, "read sample key", path)
	}
	return rows, nil
}

// MatchKey returns the rows for the given strain and sex whose Injection
// equals injection, in file order.
func MatchKey(rows []KeyRow, strain, sex, injection string) []KeyRow {
	var match []KeyRow
	for _, row := range rows {
		if row.Strain == strain && row.Sex == sex && row.Injection == injection {
			match = append(match, row)
		}
	}
	return match
}
