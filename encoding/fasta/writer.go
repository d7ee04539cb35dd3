// Package fasta writes FASTA records. Each record is written as a
// '>'-prefixed name line followed by the whole sequence on one line:
//
// >m84090_240501_021125_s2/17367489/ccs/fwd
// ACGTACGAGGAC
package fasta

import (
	"io"

	"github.com/pkg/errors"
)

// Writer is a FASTA file writer.
type Writer struct {
	w   io.Writer
	err error
	n   int
}

// NewWriter constructs a new FASTA writer that writes records to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write writes one record. The name must not carry the leading '>'.
func (w *Writer) Write(name, seq string) error {
	if w.err != nil {
		return w.err
	}
	for _, s := range []string{">", name, "\n", seq, "\n"} {
		if _, err := io.WriteString(w.w, s); err != nil {
			w.err = errors.Wrapf(err, "write FASTA record %d (%s)", w.n, name)
			return w.err
		}
	}
	w.n++
	return nil
}

// N returns the number of records written so far.
func (w *Writer) N() int { return w.n }
