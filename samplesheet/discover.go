package samplesheet

import (
	"context"
	"strings"

	"github.com/csna/isoprep/util"
)

// FindFiles lists files under root whose base name ends with suffix. When
// recursive is false only root's direct children are considered. Paths are
// sorted so that repeated runs over the same tree agree. Directory links
// are not followed.
func FindFiles(ctx context.Context, root, suffix string, recursive bool) ([]string, error) {
	return util.ListFiles(ctx, root, recursive, func(name string) bool {
		return strings.HasSuffix(name, suffix)
	})
}
