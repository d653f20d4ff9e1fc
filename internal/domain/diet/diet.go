// Package diet defines the dietary preference of a consultation and how it admits remedy rows.
package diet

import (
	"fmt"
	"strings"
)

// Preference is the user's dietary preference.
type Preference string

// Dietary preference constants.
const (
	Vegetarian    Preference = "vegetarian"
	NonVegetarian Preference = "non-vegetarian"
	Vegan         Preference = "vegan"
)

// All returns the selectable preferences in presentation order.
func All() []Preference {
	return []Preference{Vegetarian, NonVegetarian, Vegan}
}

// IsValid checks if the preference is one of the supported values.
func (p Preference) IsValid() bool {
	return p == Vegetarian || p == NonVegetarian || p == Vegan
}

// Parse normalizes s (trim, lower-case) into a Preference.
func Parse(s string) (Preference, error) {
	p := Preference(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", fmt.Errorf("unknown diet preference %q (want vegetarian, non-vegetarian or vegan)", s)
	}
	return p, nil
}

// Accepts reports whether a remedy row labelled rowDiet suits this preference.
// Vegan rows are acceptable to vegetarians; every other preference needs an exact
// case-insensitive match.
func (p Preference) Accepts(rowDiet string) bool {
	row := strings.ToLower(strings.TrimSpace(rowDiet))
	if p == Vegetarian {
		return row == string(Vegetarian) || row == string(Vegan)
	}
	return row == strings.ToLower(string(p))
}
