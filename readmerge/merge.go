package readmerge

import (
	"context"
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/pgzip"
)

// Merge decompresses each gzip file in paths, in order, and writes the
// concatenated payload to a single new gzip stream at dst. Existing contents
// of dst are replaced. It returns the number of uncompressed bytes written.
func Merge(ctx context.Context, paths []string, dst string) (n int64, err error) {
	out, err := file.Create(ctx, dst)
	if err != nil {
		return 0, errors.E(err, "create merged FASTQ", dst)
	}
	defer file.CloseAndReport(ctx, out, &err)

	gz := pgzip.NewWriter(out.Writer(ctx))
	for _, path := range paths {
		written, err := appendGzip(ctx, gz, path)
		n += written
		if err != nil {
			_ = gz.Close()
			return n, err
		}
		log.Debug.Printf("merged %s (%d bytes)", path, written)
	}
	if err := gz.Close(); err != nil {
		return n, errors.E(err, "finish gzip stream", dst)
	}
	return n, nil
}

// appendGzip copies the uncompressed contents of the gzip file at path to w.
func appendGzip(ctx context.Context, w io.Writer, path string) (int64, error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return 0, errors.E(err, "open", path)
	}
	gz, err := gzip.NewReader(in.Reader(ctx))
	if err != nil {
		_ = in.Close(ctx)
		return 0, errors.E(err, "read gzip header", path)
	}
	n, err := io.Copy(w, gz)
	once := errors.Once{}
	if err != nil {
		once.Set(errors.E(err, "copy", path))
	}
	once.Set(gz.Close())
	once.Set(in.Close(ctx))
	return n, once.Err()
}
