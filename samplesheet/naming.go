package samplesheet

import (
	"path/filepath"
	"strings"
)

// The sample naming conventions of the two samplesheets differ and are kept
// as separate rules.

// TrimSuffixID derives a sample ID from a file name by removing suffix from
// its base name, e.g. "CAST_F_striatum.hifi.merged.bam" -> "CAST_F_striatum".
func TrimSuffixID(name, suffix string) string {
	return strings.TrimSuffix(filepath.Base(name), suffix)
}

// FirstFieldID derives a sample ID from the first '_'-separated field of a
// file's base name, e.g. "CAST-F-striatum_RNA_CCS.merged.fa.gz" ->
// "CAST-F-striatum".
func FirstFieldID(name string) string {
	return strings.SplitN(filepath.Base(name), "_", 2)[0]
}

// DashTokens splits an ID produced by FirstFieldID into its '-'-separated
// tokens in order, e.g. "CAST-F-striatum" -> [CAST F striatum]. The first
// token is the strain.
func DashTokens(id string) []string {
	return strings.Split(id, "-")
}
