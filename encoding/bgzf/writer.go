// Package bgzf includes a Writer for the .bgzf (block gzipped) file
// format.  A .bgzf file consists of one or more complete gzip blocks
// concatenated together.  Each of the gzip blocks must represent at
// most 64KB of uncompressed data, and the compressed size of the
// block must be at most 64KB.  The payload of the .bgzf file is equal
// to the uncompressed content of each block, concatenated together in
// order.  A valid .bgzf file ends with the 28 byte .bgzf terminator;
// the terminator is a valid gzip block containing an empty payload.
//
// Any gzip reader can read a .bgzf file. Block compression also lets
// samtools faidx index a compressed FASTA.
//
// The format is described in https://samtools.github.io/hts-specs/SAMv1.pdf
//
//   w, err := bgzf.NewWriter(out, gzip.DefaultCompression)
//   _, err = w.Write([]byte(">read1\nACGT\n"))
//   err = w.Close()
package bgzf

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

const (
	// DefaultUncompressedBlockSize is the default bgzf
	// uncompressedBlockSize chosen by both sambamba and biogo.
	DefaultUncompressedBlockSize = 0x0ff00

	// MaxUncompressedBlockSize is the largest legal value for
	// uncompressedBlockSize.
	MaxUncompressedBlockSize = 0x10000

	// compressedBlockSize is the maximum size of the compressed data
	// for a bgzf block.
	compressedBlockSize = 0x10000

	// extraOffset is the offset of the Extra field in the gzip header.
	extraOffset = 12
)

var (
	// bgzfExtra goes into the gzip's Extra subfield, with subfield
	// ids: 66, 67, and length 2.
	bgzfExtra       = [...]byte{66, 67, 2, 0, 0, 0}
	bgzfExtraPrefix = [...]byte{66, 67, 2, 0}

	// terminator is the bgzf EOF marker.
	terminator = []byte{
		0x1f, 0x8b, 0x08, 0x04, 0x00, 0x00, 0x00, 0x00, 0x00, 0xff, 0x06, 0x00, 0x42, 0x43,
		0x02, 0x00, 0x1b, 0x00, 0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}
)

// Writer compresses data into .bgzf format. Each gzip block carries an
// Extra header field holding the compressed block size minus one.
type Writer struct {
	uncompressedSize int
	w                io.Writer
	gz               *gzip.Writer
	pending          bytes.Buffer
	compressed       bytes.Buffer
}

// NewWriter returns a new .bgzf writer with the given compression level and
// the default block size.
func NewWriter(w io.Writer, level int) (*Writer, error) {
	return NewWriterSize(w, level, DefaultUncompressedBlockSize)
}

// NewWriterSize returns a new .bgzf writer that puts at most
// uncompressedBlockSize bytes into each block.
func NewWriterSize(w io.Writer, level, uncompressedBlockSize int) (*Writer, error) {
	if uncompressedBlockSize <= 0 || uncompressedBlockSize > MaxUncompressedBlockSize {
		return nil, fmt.Errorf("uncompressedBlockSize %d out of range (0, %d]",
			uncompressedBlockSize, MaxUncompressedBlockSize)
	}
	bw := &Writer{uncompressedSize: uncompressedBlockSize, w: w}
	var err error
	if bw.gz, err = gzip.NewWriterLevel(&bw.compressed, level); err != nil {
		return nil, err
	}
	return bw, nil
}

// Write appends buf to the .bgzf payload.
func (w *Writer) Write(buf []byte) (int, error) {
	for i := 0; i < len(buf); {
		// Write one block at a time to avoid copying all of buf.
		end := len(buf)
		if limit := i + w.uncompressedSize - w.pending.Len(); limit < end {
			end = limit
		}
		n, _ := w.pending.Write(buf[i:end])
		i += n
		if err := w.tryCompress(false); err != nil {
			return i, err
		}
	}
	return len(buf), nil
}

// Close flushes the current block and appends the .bgzf terminator. It
// does not close the underlying writer.
func (w *Writer) Close() error {
	if err := w.tryCompress(true); err != nil {
		return err
	}
	_, err := w.w.Write(terminator)
	return err
}

// tryCompress compresses full blocks from w.pending, or everything left
// when compressRemainder is set, and writes them out.
func (w *Writer) tryCompress(compressRemainder bool) error {
	for w.pending.Len() >= w.uncompressedSize || (compressRemainder && w.pending.Len() > 0) {
		w.gz.Reset(&w.compressed)
		w.gz.Header.Extra = append([]byte(nil), bgzfExtra[:]...)
		w.gz.Header.OS = 0xff // Unknown OS value
		if _, err := w.gz.Write(w.pending.Next(w.uncompressedSize)); err != nil {
			return err
		}
		if err := w.gz.Close(); err != nil {
			return err
		}

		b := w.compressed.Bytes()
		bsize := len(b) - 1
		if bsize >= compressedBlockSize {
			return fmt.Errorf("bgzf compressed block is too big: %d > %d", bsize, compressedBlockSize)
		}
		if len(b) < extraOffset+len(bgzfExtra) ||
			!bytes.Equal(b[extraOffset:extraOffset+len(bgzfExtraPrefix)], bgzfExtraPrefix[:]) {
			return fmt.Errorf("bgzf: gzip header lacks the BC extra subfield")
		}
		b[extraOffset+4] = byte(bsize)
		b[extraOffset+5] = byte(bsize >> 8)

		if _, err := w.compressed.WriteTo(w.w); err != nil {
			return err
		}
	}
	return nil
}
