// Package filter implements the remedy qualification predicates.
package filter

import (
	"github.com/kailas-cloud/remedex/internal/domain/allergy"
	"github.com/kailas-cloud/remedex/internal/domain/diet"
	"github.com/kailas-cloud/remedex/internal/domain/disease"
	"github.com/kailas-cloud/remedex/internal/domain/remedy"
)

// Criteria is the set of constraints a remedy row must satisfy.
type Criteria struct {
	disease string
	age     int
	allergy allergy.Allergy
	diet    diet.Preference
}

// New builds Criteria. The allergy text is normalized here.
func New(diseaseName string, age int, allergyText string, pref diet.Preference) Criteria {
	return Criteria{
		disease: diseaseName,
		age:     age,
		allergy: allergy.Normalize(allergyText),
		diet:    pref,
	}
}

// Disease returns the disease the remedy must be for.
func (c Criteria) Disease() string { return c.disease }

// Age returns the applicant age.
func (c Criteria) Age() int { return c.age }

// Allergy returns the normalized allergy.
func (c Criteria) Allergy() allergy.Allergy { return c.allergy }

// Diet returns the dietary preference.
func (c Criteria) Diet() diet.Preference { return c.diet }

// MatchesDisease is predicate 1: case-insensitive disease equality.
func (c Criteria) MatchesDisease(r remedy.Record) bool {
	return disease.Equal(r.Disease(), c.disease)
}

// MatchesDiet is predicate 2.
func (c Criteria) MatchesDiet(r remedy.Record) bool {
	return c.diet.Accepts(r.Diet())
}

// MatchesAllergy is predicate 3: substring exclusion unless the user reported no allergy.
func (c Criteria) MatchesAllergy(r remedy.Record) bool {
	return !c.allergy.Excludes(r.Allergies())
}

// MatchesAge is predicate 4: fails closed on unparseable age groups.
func (c Criteria) MatchesAge(r remedy.Record) bool {
	return r.SuitableFor(c.age)
}

// Qualifies reports whether r passes all four predicates.
func (c Criteria) Qualifies(r remedy.Record) bool {
	return c.MatchesDisease(r) &&
		c.MatchesDiet(r) &&
		c.MatchesAllergy(r) &&
		c.MatchesAge(r)
}

// Apply returns the qualifying rows in table order.
func (c Criteria) Apply(rows []remedy.Record) []remedy.Record {
	var out []remedy.Record
	for _, r := range rows {
		if c.Qualifies(r) {
			out = append(out, r)
		}
	}
	return out
}
