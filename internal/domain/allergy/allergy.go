// Package allergy holds the allergy exclusion policy.
//
// Exclusion is a plain substring test against the row's allergy tags, not a token match:
// "nut" excludes a row tagged "peanuts" but also one tagged "nutmeg" or "coconut".
// This imprecision is kept on purpose so results stay identical to the published dataset
// behavior; callers wanting token semantics must pre-process the input.
package allergy

import "strings"

// Allergy is a normalized (trimmed, lower-cased) allergy description.
type Allergy string

// noAllergy holds the answers that mean the user has no allergy.
var noAllergy = map[string]struct{}{
	"none":         {},
	"no allergies": {},
	"no allergy":   {},
	"no":           {},
}

// Normalize trims and lower-cases a free-text allergy description.
func Normalize(s string) Allergy {
	return Allergy(strings.ToLower(strings.TrimSpace(s)))
}

// IsNone reports whether the allergy is one of the "no allergy" answers.
func (a Allergy) IsNone() bool {
	_, ok := noAllergy[string(a)]
	return ok
}

// Excludes reports whether a row carrying tags must be excluded for this allergy.
// Rows are never excluded when IsNone. An empty allergy is a substring of everything;
// input validation rejects it before matching.
func (a Allergy) Excludes(tags string) bool {
	if a.IsNone() {
		return false
	}
	return strings.Contains(strings.ToLower(tags), string(a))
}
