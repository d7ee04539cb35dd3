package shortread

import (
	"sort"
	"strings"
)

// Entry is one FOFN line: a first-of-pair file and, for paired-end data,
// its mate.
type Entry struct {
	R1, R2 string
}

// Paired reports whether the entry has a mate.
func (e Entry) Paired() bool { return e.R2 != "" }

// String renders the entry as a FOFN line without the newline.
func (e Entry) String() string {
	if e.Paired() {
		return e.R1 + " " + e.R2
	}
	return e.R1
}

// Pair groups paths into FOFN entries. Paths are sorted first. Every path
// containing r1Marker starts an entry; its mate is the path with r1Marker
// replaced by r2Marker, kept when exists reports it present. Paths that
// neither start an entry nor serve as a mate are returned as unpaired and
// are not part of any entry.
func Pair(paths []string, r1Marker, r2Marker string, exists func(path string) bool) (entries []Entry, unpaired []string) {
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)
	used := map[string]bool{}
	for _, p := range sorted {
		if !strings.Contains(p, r1Marker) {
			continue
		}
		used[p] = true
		e := Entry{R1: p}
		if r2 := strings.Replace(p, r1Marker, r2Marker, -1); exists(r2) {
			e.R2 = r2
			used[r2] = true
		}
		entries = append(entries, e)
	}
	for _, p := range sorted {
		if !used[p] {
			unpaired = append(unpaired, p)
		}
	}
	return entries, unpaired
}
