// Package util holds small file helpers shared by the isoprep tools.
package util

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
)

// ListFiles returns the regular files under root for which keep returns
// true, sorted by path. keep receives the file's base name. When recursive
// is false only root's direct children are listed.
//
// Symbolic links to directories are not descended into, so a link that
// points back up the tree cannot loop. Symbolic links to files are listed
// under their link path; dangling links are skipped. A root that is itself
// a symbolic link is followed.
func ListFiles(ctx context.Context, root string, recursive bool, keep func(name string) bool) ([]string, error) {
	start := filepath.Clean(root)
	if info, err := os.Lstat(start); err == nil && info.Mode()&os.ModeSymlink != 0 {
		// A trailing separator makes the walk resolve the root link.
		start += string(filepath.Separator)
	}
	var paths []string
	err := filepath.WalkDir(start, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			if !recursive && path != start {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type()&os.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil {
				log.Error.Printf("%s: skipping dangling link: %v", path, err)
				return nil
			}
			if info.IsDir() {
				log.Debug.Printf("%s: not following directory link", path)
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}
		if keep(d.Name()) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "list %s", root)
	}
	sort.Strings(paths)
	return paths, nil
}
