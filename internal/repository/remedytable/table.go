// Package remedytable loads the remedy dataset into an immutable in-memory table.
package remedytable

import (
	"slices"

	"github.com/kailas-cloud/remedex/internal/domain/disease"
	"github.com/kailas-cloud/remedex/internal/domain/remedy"
)

// Table is the read-only remedy table. Safe for concurrent readers.
type Table struct {
	records []remedy.Record
	skipped int
}

// New builds a Table from records, dropping rows without a disease name.
func New(records []remedy.Record) *Table {
	t := &Table{records: make([]remedy.Record, 0, len(records))}
	for _, r := range records {
		if r.Disease() == "" {
			t.skipped++
			continue
		}
		t.records = append(t.records, r)
	}
	return t
}

// Records returns a copy of the rows in load order.
func (t *Table) Records() []remedy.Record {
	return slices.Clone(t.records)
}

// Len returns the number of loaded rows.
func (t *Table) Len() int { return len(t.records) }

// Skipped returns the number of rows dropped for an empty disease name.
func (t *Table) Skipped() int { return t.skipped }

// UncataloguedDiseases lists table diseases that no classifier answer can reach.
func (t *Table) UncataloguedDiseases() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range t.records {
		if _, ok := disease.Lookup(r.Disease()); ok {
			continue
		}
		if _, dup := seen[r.Disease()]; dup {
			continue
		}
		seen[r.Disease()] = struct{}{}
		out = append(out, r.Disease())
	}
	return out
}
