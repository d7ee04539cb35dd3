package shortread

import (
	"strings"

	"github.com/grailbio/base/errors"
)

// strainSynonyms maps the strain token used in long-read sample IDs to the
// spelling used in the sample key. Read-only.
var strainSynonyms = map[string]string{
	"AJ":    "A/J",
	"129S1": "129",
	"B6":    "B6",
	"WSB":   "WSB",
	"NOD":   "NOD",
	"NZO":   "NZO",
	"CAST":  "CAST",
	"PWK":   "PWK",
}

// MapStrain returns the sample key spelling of a strain token. Unknown
// tokens are returned unchanged.
func MapStrain(token string) string {
	if s, ok := strainSynonyms[token]; ok {
		return s
	}
	return token
}

// ParseStrainSex splits a sample ID such as "CAST_F_striatum" into its
// strain and sex tokens, the first two '_'-separated fields.
func ParseStrainSex(sampleID string) (strain, sex string, err error) {
	parts := strings.Split(sampleID, "_")
	if len(parts) < 2 {
		return "", "", errors.E(errors.Invalid, "cannot parse sample ID", sampleID)
	}
	return parts[0], parts[1], nil
}
