// Package query defines a validated consultation request.
package query

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/remedex/internal/domain"
	"github.com/kailas-cloud/remedex/internal/domain/allergy"
	"github.com/kailas-cloud/remedex/internal/domain/diet"
	"github.com/kailas-cloud/remedex/internal/domain/symptom"
)

// Age bounds accepted from the user.
const (
	MinAge = 1
	MaxAge = 120
)

// User-facing validation messages.
const (
	MsgNoSymptoms  = "Please select at least one symptom."
	MsgNoAllergy   = "Please enter allergy info (type 'none' if no allergies)."
	MsgAgeRange    = "Please enter an age between 1 and 120."
	MsgUnknownDiet = "Please choose a diet: vegetarian, non-vegetarian or vegan."
)

// Query is an ephemeral consultation request (immutable value object).
type Query struct {
	age           int
	preConditions string
	allergy       allergy.Allergy
	diet          diet.Preference
	symptoms      []symptom.Symptom
}

// New validates input and creates a Query.
// Symptoms are checked first, then allergy, age and diet.
func New(age int, preConditions, allergyText, dietText string, symptoms []string) (Query, error) {
	ss, err := ParseSymptoms(symptoms)
	if err != nil {
		return Query{}, err
	}
	if strings.TrimSpace(allergyText) == "" {
		return Query{}, domain.NewValidationError("allergy", MsgNoAllergy)
	}
	if err := CheckAge(age); err != nil {
		return Query{}, err
	}
	pref, err := diet.Parse(dietText)
	if err != nil {
		return Query{}, domain.NewValidationError("diet", MsgUnknownDiet)
	}

	return Query{
		age:           age,
		preConditions: strings.TrimSpace(preConditions),
		allergy:       allergy.Normalize(allergyText),
		diet:          pref,
		symptoms:      ss,
	}, nil
}

// CheckAge validates the applicant age.
func CheckAge(age int) error {
	if age < MinAge || age > MaxAge {
		return domain.NewValidationError("age", MsgAgeRange)
	}
	return nil
}

// ParseSymptoms resolves symptom labels against the catalog.
// At least one symptom is required; duplicates collapse to their first occurrence.
func ParseSymptoms(labels []string) ([]symptom.Symptom, error) {
	if len(labels) == 0 {
		return nil, domain.NewValidationError("symptoms", MsgNoSymptoms)
	}
	ss, err := symptom.ParseAll(labels)
	if err != nil {
		return nil, domain.NewValidationError("symptoms", fmt.Sprintf("Please select symptoms from the list (%v).", err))
	}
	if len(ss) == 0 {
		return nil, domain.NewValidationError("symptoms", MsgNoSymptoms)
	}
	return ss, nil
}

// Age returns the applicant age.
func (q Query) Age() int { return q.age }

// PreConditions returns the free-text pre-existing conditions.
func (q Query) PreConditions() string { return q.preConditions }

// Allergy returns the normalized allergy text.
func (q Query) Allergy() allergy.Allergy { return q.allergy }

// Diet returns the dietary preference.
func (q Query) Diet() diet.Preference { return q.diet }

// Symptoms returns a copy of the canonical symptoms.
func (q Query) Symptoms() []symptom.Symptom {
	out := make([]symptom.Symptom, len(q.symptoms))
	copy(out, q.symptoms)
	return out
}
