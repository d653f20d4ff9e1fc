// Package remedy defines a row of the remedy table.
package remedy

import (
	"strconv"
)

// Record is one remedy row. Records are immutable after construction.
type Record struct {
	disease     string
	name        string
	ingredients string
	preparation string
	sideEffects string
	ageGroup    string
	diet        string
	allergies   string
}

// Fields holds the raw column values of a remedy row.
type Fields struct {
	Disease     string
	Name        string
	Ingredients string
	Preparation string
	SideEffects string
	AgeGroup    string
	Diet        string
	Allergies   string
}

// New creates a Record from raw column values.
func New(f Fields) Record {
	return Record{
		disease:     f.Disease,
		name:        f.Name,
		ingredients: f.Ingredients,
		preparation: f.Preparation,
		sideEffects: f.SideEffects,
		ageGroup:    f.AgeGroup,
		diet:        f.Diet,
		allergies:   f.Allergies,
	}
}

// Disease returns the disease the remedy is meant for.
func (r Record) Disease() string { return r.disease }

// Name returns the remedy name.
func (r Record) Name() string { return r.name }

// Ingredients returns the free-text ingredient list.
func (r Record) Ingredients() string { return r.ingredients }

// Preparation returns the free-text preparation method.
func (r Record) Preparation() string { return r.preparation }

// SideEffects returns the free-text side effects.
func (r Record) SideEffects() string { return r.sideEffects }

// AgeGroup returns the raw suitable-age-group value, e.g. "5+".
func (r Record) AgeGroup() string { return r.ageGroup }

// Diet returns the dietary label of the remedy.
func (r Record) Diet() string { return r.diet }

// Allergies returns the free-text allergy tags.
func (r Record) Allergies() string { return r.allergies }

// Fields returns the raw column values.
func (r Record) Fields() Fields {
	return Fields{
		Disease:     r.disease,
		Name:        r.name,
		Ingredients: r.ingredients,
		Preparation: r.preparation,
		SideEffects: r.sideEffects,
		AgeGroup:    r.ageGroup,
		Diet:        r.diet,
		Allergies:   r.allergies,
	}
}

// MinAge parses the leading run of decimal digits of the age group.
// ok is false when there are no leading digits or the number does not fit an int:
// such a row is suitable for nobody.
func (r Record) MinAge() (minAge int, ok bool) {
	return ParseMinAge(r.ageGroup)
}

// SuitableFor reports whether the remedy may be given at age. Fails closed on a
// malformed or empty age group.
func (r Record) SuitableFor(age int) bool {
	minAge, ok := r.MinAge()
	if !ok {
		return false
	}
	return age >= minAge
}

// ParseMinAge extracts the leading decimal digits of an age-group string.
func ParseMinAge(ageGroup string) (int, bool) {
	end := 0
	for end < len(ageGroup) && ageGroup[end] >= '0' && ageGroup[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(ageGroup[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
