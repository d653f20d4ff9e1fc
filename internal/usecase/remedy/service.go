package remedy

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/remedex/internal/domain"
	"github.com/kailas-cloud/remedex/internal/domain/diet"
	domremedy "github.com/kailas-cloud/remedex/internal/domain/remedy"
	"github.com/kailas-cloud/remedex/internal/domain/remedy/filter"
	"github.com/kailas-cloud/remedex/internal/domain/query"
	"github.com/kailas-cloud/remedex/internal/metrics"
)

// Match filters rows by c and picks one qualifying row with p.
// ok is false when no row qualifies.
func Match(c filter.Criteria, rows []domremedy.Record, p Picker) (domremedy.Record, bool) {
	candidates := c.Apply(rows)
	metrics.RemedyCandidates.Observe(float64(len(candidates)))
	if len(candidates) == 0 {
		return domremedy.Record{}, false
	}
	n := len(candidates)
	i := p.Pick(n)
	if i < 0 || i >= n {
		panic(fmt.Sprintf("remedy: picker %T returned %d for %d candidates", p, i, n))
	}
	return candidates[i], true
}

// Service matches remedies against the loaded table.
type Service struct {
	table  Table
	picker Picker
}

// New creates a Service. A nil picker selects RandomPicker.
func New(table Table, picker Picker) *Service {
	if picker == nil {
		picker = RandomPicker{}
	}
	return &Service{table: table, picker: picker}
}

// Match returns one qualifying remedy chosen uniformly at random.
func (s *Service) Match(c filter.Criteria) (domremedy.Record, bool) {
	return Match(c, s.table.Records(), s.picker)
}

// Candidates returns every qualifying remedy in table order.
func (s *Service) Candidates(c filter.Criteria) []domremedy.Record {
	return c.Apply(s.table.Records())
}

// NewCriteria validates direct matcher input.
func NewCriteria(diseaseName string, age int, allergyText, dietText string) (filter.Criteria, error) {
	name := strings.TrimSpace(diseaseName)
	if name == "" {
		return filter.Criteria{}, domain.NewValidationError("disease", "Please enter a disease name.")
	}
	if err := query.CheckAge(age); err != nil {
		return filter.Criteria{}, err
	}
	if strings.TrimSpace(allergyText) == "" {
		return filter.Criteria{}, domain.NewValidationError("allergy", query.MsgNoAllergy)
	}
	pref, err := diet.Parse(dietText)
	if err != nil {
		return filter.Criteria{}, domain.NewValidationError("diet", query.MsgUnknownDiet)
	}
	return filter.New(name, age, allergyText, pref), nil
}
