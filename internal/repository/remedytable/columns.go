package remedytable

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/remedex/internal/domain"
	"github.com/kailas-cloud/remedex/internal/domain/remedy"
)

// Column names of the remedy table. Accessed by exact name.
const (
	ColDisease     = "Disease Name"
	ColName        = "Remedy Name"
	ColIngredients = "Ingredients"
	ColPreparation = "Preparation Method"
	ColSideEffects = "Side Effects"
	ColAgeGroup    = "Suitable Age Group"
	ColDiet        = "Dietary Preferences"
	ColAllergies   = "Allergies"
)

// Columns lists every required column in canonical order.
var Columns = []string{
	ColDisease, ColName, ColIngredients, ColPreparation,
	ColSideEffects, ColAgeGroup, ColDiet, ColAllergies,
}

// layout maps each required column to its position in the source.
type layout map[string]int

// resolveLayout locates every required column in header. Extra columns are ignored.
func resolveLayout(header []string) (layout, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}

	l := make(layout, len(Columns))
	var missing []string
	for _, c := range Columns {
		i, ok := pos[c]
		if !ok {
			missing = append(missing, c)
			continue
		}
		l[c] = i
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns %q: %w", missing, domain.ErrDatasetSchema)
	}
	return l, nil
}

// build turns one source row into a record. Cells beyond the row length read as empty.
// Diet and allergy values are lower-cased.
func (l layout) build(cells []string) remedy.Record {
	cell := func(col string) string {
		i := l[col]
		if i >= len(cells) {
			return ""
		}
		return strings.TrimSpace(cells[i])
	}
	return remedy.New(remedy.Fields{
		Disease:     cell(ColDisease),
		Name:        cell(ColName),
		Ingredients: cell(ColIngredients),
		Preparation: cell(ColPreparation),
		SideEffects: cell(ColSideEffects),
		AgeGroup:    cell(ColAgeGroup),
		Diet:        strings.ToLower(cell(ColDiet)),
		Allergies:   strings.ToLower(cell(ColAllergies)),
	})
}
