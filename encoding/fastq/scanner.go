// Package fastq reads and writes FASTQ records as groups of four lines:
// header, sequence, separator and quality.
package fastq

import (
	"bufio"
	"io"
)

// maxLineSize bounds a single FASTQ line. HiFi reads are long, so this is
// well above bufio's default.
const maxLineSize = 64 << 20

// linesPerRead is the number of lines in one FASTQ record.
const linesPerRead = 4

// A Read is a FASTQ read, comprising an ID, sequence, line 3
// ("unknown"), and a quality string.
type Read struct {
	ID, Seq, Unk, Qual string
}

// Scanner reads FASTQ records in groups of four lines. Scanners are not
// threadsafe.
//
// Scanner does not validate record content. A group whose header or
// sequence line is empty is skipped and counted. A trailing group with
// fewer than four lines ends the scan without an error; Truncated reports
// it.
type Scanner struct {
	b         *bufio.Scanner
	err       error
	lines     [linesPerRead]string
	skipped   int
	truncated bool
}

// NewScanner constructs a new Scanner that reads raw FASTQ data from the
// provided reader.
func NewScanner(r io.Reader) *Scanner {
	b := bufio.NewScanner(r)
	b.Buffer(nil, maxLineSize)
	return &Scanner{b: b}
}

// Scan the next read into the provided read. Scan returns a boolean
// indicating whether the scan succeeded. Once Scan returns false, it
// never returns true again. Upon completion, the user should check
// the Err method to determine whether scanning stopped because of an
// error or because the end of the stream was reached.
func (f *Scanner) Scan(read *Read) bool {
	for {
		if f.err != nil {
			return false
		}
		n := f.group()
		if n == 0 {
			return false
		}
		if n < linesPerRead {
			f.truncated = true
			if f.err == nil {
				f.err = io.EOF
			}
			return false
		}
		if f.lines[0] == "" || f.lines[1] == "" {
			f.skipped++
			continue
		}
		read.ID, read.Seq, read.Unk, read.Qual = f.lines[0], f.lines[1], f.lines[2], f.lines[3]
		return true
	}
}

// group reads up to four lines and returns how many were read.
func (f *Scanner) group() int {
	for i := 0; i < linesPerRead; i++ {
		if !f.b.Scan() {
			if f.err = f.b.Err(); f.err == nil {
				f.err = io.EOF
			}
			return i
		}
		f.lines[i] = f.b.Text()
	}
	return linesPerRead
}

// Skipped returns the number of four-line groups dropped because the
// header or the sequence line was empty.
func (f *Scanner) Skipped() int { return f.skipped }

// Truncated reports whether the input ended inside a record.
func (f *Scanner) Truncated() bool { return f.truncated }

// Err returns the scanning error, if any.
func (f *Scanner) Err() error {
	if f.err == io.EOF {
		return nil
	}
	return f.err
}
