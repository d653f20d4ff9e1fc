package remedy

import (
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/remedex/internal/domain"
	"github.com/kailas-cloud/remedex/internal/domain/diet"
	domremedy "github.com/kailas-cloud/remedex/internal/domain/remedy"
	"github.com/kailas-cloud/remedex/internal/domain/remedy/filter"
)

// --- Helpers ---

type staticTable []domremedy.Record

func (t staticTable) Records() []domremedy.Record { return t }

func rec(name, diseaseName, dietLabel, allergies, ageGroup string) domremedy.Record {
	return domremedy.New(domremedy.Fields{
		Disease:   diseaseName,
		Name:      name,
		Diet:      dietLabel,
		Allergies: allergies,
		AgeGroup:  ageGroup,
	})
}

func first() Picker { return PickerFunc(func(int) int { return 0 }) }

// --- End-to-end scenarios ---

func TestMatch_Scenario_ExactRow(t *testing.T) {
	table := staticTable{rec("Ginger Tea", "Migraine", "vegetarian", "", "10+")}
	svc := New(table, first())

	got, ok := svc.Match(filter.New("migraine", 10, "none", diet.Vegetarian))
	if !ok {
		t.Fatal("expected a match")
	}
	if got.Name() != "Ginger Tea" {
		t.Errorf("got %q", got.Name())
	}
}

func TestMatch_Scenario_AgeBelowMinimum(t *testing.T) {
	table := staticTable{rec("Ginger Tea", "Migraine", "vegetarian", "", "10+")}
	svc := New(table, first())

	if _, ok := svc.Match(filter.New("migraine", 9, "none", diet.Vegetarian)); ok {
		t.Fatal("expected NoMatch for age below minimum")
	}
}

func TestMatch_Scenario_AllergySubstring(t *testing.T) {
	table := staticTable{rec("Peanut Paste", "Migraine", "vegetarian", "peanuts", "1+")}
	svc := New(table, first())

	if _, ok := svc.Match(filter.New("Migraine", 30, "nut", diet.Vegetarian)); ok {
		t.Fatal("nut must exclude a row tagged peanuts")
	}
}

// --- Properties ---

var mixed = staticTable{
	rec("A", "Migraine", "vegetarian", "", "5+"),
	rec("B", "Migraine", "vegan", "dairy", "3+"),
	rec("C", "Migraine", "non-vegetarian", "", "1+"),
	rec("D", "Asthma", "vegetarian", "", "1+"),
	rec("E", "Migraine", "vegetarian", "coconut", "6+"),
	rec("F", "Migraine", "vegetarian", "", ""),
	rec("G", "MIGRAINE", "Vegan", "", "0+"),
}

func TestMatch_NeverReturnsOtherDisease(t *testing.T) {
	svc := New(mixed, NewSeededPicker(1))
	for range 200 {
		r, ok := svc.Match(filter.New("migraine", 60, "none", diet.Vegetarian))
		if !ok {
			t.Fatal("expected a match")
		}
		if !strings.EqualFold(r.Disease(), "migraine") {
			t.Fatalf("returned disease %q", r.Disease())
		}
	}
}

func TestMatch_VegetarianNeverNonVegetarian(t *testing.T) {
	svc := New(mixed, nil)
	for _, r := range svc.Candidates(filter.New("Migraine", 60, "none", diet.Vegetarian)) {
		d := strings.ToLower(r.Diet())
		if d != "vegetarian" && d != "vegan" {
			t.Errorf("vegetarian query returned %q row %s", r.Diet(), r.Name())
		}
	}
}

func TestMatch_VeganAndNonVegetarianExact(t *testing.T) {
	svc := New(mixed, nil)

	vegan := svc.Candidates(filter.New("Migraine", 60, "none", diet.Vegan))
	if names(vegan) != "B,G" {
		t.Errorf("vegan candidates = %s", names(vegan))
	}
	nonveg := svc.Candidates(filter.New("Migraine", 60, "none", diet.NonVegetarian))
	if names(nonveg) != "C" {
		t.Errorf("non-vegetarian candidates = %s", names(nonveg))
	}
}

func TestMatch_AllergyNoneNeverExcludes(t *testing.T) {
	svc := New(mixed, nil)
	for _, none := range []string{"none", "No allergies", " no allergy ", "NO"} {
		got := svc.Candidates(filter.New("Migraine", 60, none, diet.Vegetarian))
		if names(got) != "A,B,E,G" {
			t.Errorf("allergy %q: candidates = %s", none, names(got))
		}
	}
}

func TestMatch_AllergySubstringSemantics(t *testing.T) {
	svc := New(mixed, nil)

	// "nut" is found inside "coconut" and excludes E.
	got := svc.Candidates(filter.New("Migraine", 60, "nut", diet.Vegetarian))
	if names(got) != "A,B,G" {
		t.Errorf("candidates = %s", names(got))
	}
}

func TestMatch_AgeFiveExcludesHigherAndUnparseable(t *testing.T) {
	svc := New(mixed, nil)

	got := svc.Candidates(filter.New("Migraine", 5, "none", diet.Vegetarian))
	if names(got) != "A,B,G" {
		t.Errorf("candidates = %s", names(got))
	}
}

func TestMatch_NoMatchOnEmptySet(t *testing.T) {
	svc := New(mixed, first())
	if _, ok := svc.Match(filter.New("Asthma", 60, "none", diet.Vegan)); ok {
		t.Fatal("expected NoMatch")
	}
	if _, ok := New(staticTable{}, first()).Match(filter.New("Migraine", 60, "none", diet.Vegan)); ok {
		t.Fatal("expected NoMatch on empty table")
	}
}

func TestMatch_RepeatedSamplingReachesEveryRow(t *testing.T) {
	svc := New(mixed, NewSeededPicker(42))
	c := filter.New("Migraine", 60, "none", diet.Vegetarian)

	seen := map[string]int{}
	for range 1000 {
		r, ok := svc.Match(c)
		if !ok {
			t.Fatal("expected a match")
		}
		seen[r.Name()]++
	}
	for _, want := range []string{"A", "B", "E", "G"} {
		if seen[want] == 0 {
			t.Errorf("row %s never selected in 1000 draws: %v", want, seen)
		}
	}
	if len(seen) != 4 {
		t.Errorf("unexpected rows selected: %v", seen)
	}
}

func TestMatch_DefaultPickerReachesEveryRow(t *testing.T) {
	svc := New(mixed, nil)
	c := filter.New("Migraine", 60, "none", diet.Vegetarian)

	seen := map[string]bool{}
	for range 1000 {
		r, _ := svc.Match(c)
		seen[r.Name()] = true
	}
	if len(seen) != 4 {
		t.Errorf("expected 4 distinct rows, got %v", seen)
	}
}

func TestMatch_PickerIndexIsRespected(t *testing.T) {
	var gotN int
	p := PickerFunc(func(n int) int {
		gotN = n
		return n - 1
	})
	r, ok := Match(filter.New("Migraine", 60, "none", diet.Vegetarian), mixed, p)
	if !ok || r.Name() != "G" {
		t.Errorf("Match() = %s, %v; want G", r.Name(), ok)
	}
	if gotN != 4 {
		t.Errorf("picker saw n=%d, want 4", gotN)
	}
}

func TestMatch_OutOfRangePickPanics(t *testing.T) {
	for _, idx := range []func(n int) int{
		func(n int) int { return n },
		func(n int) int { return n + 10 },
		func(int) int { return -1 },
	} {
		func() {
			defer func() {
				r := recover()
				if r == nil {
					t.Fatal("Match() with a broken picker did not panic")
				}
				if msg, _ := r.(string); !strings.Contains(msg, "4 candidates") {
					t.Errorf("panic = %v, want it to name the candidate count", r)
				}
			}()
			Match(filter.New("Migraine", 60, "none", diet.Vegetarian), mixed, PickerFunc(idx))
		}()
	}
}

func TestSeededPicker_Reproducible(t *testing.T) {
	a, b := NewSeededPicker(7), NewSeededPicker(7)
	for range 50 {
		if x, y := a.Pick(10), b.Pick(10); x != y {
			t.Fatalf("seeded pickers diverged: %d vs %d", x, y)
		}
	}
}

func TestNewCriteria(t *testing.T) {
	c, err := NewCriteria(" Migraine ", 30, "None", "VEGAN")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Disease() != "Migraine" || c.Diet() != diet.Vegan || !c.Allergy().IsNone() {
		t.Errorf("unexpected criteria: %+v", c)
	}

	bad := []struct {
		disease string
		age     int
		allergy string
		diet    string
	}{
		{"", 30, "none", "vegan"},
		{"Migraine", 0, "none", "vegan"},
		{"Migraine", 30, "", "vegan"},
		{"Migraine", 30, "none", "keto"},
	}
	for _, b := range bad {
		if _, err := NewCriteria(b.disease, b.age, b.allergy, b.diet); !errors.Is(err, domain.ErrInvalidQuery) {
			t.Errorf("NewCriteria(%+v) = %v, want ErrInvalidQuery", b, err)
		}
	}
}

func names(rs []domremedy.Record) string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Name()
	}
	return strings.Join(out, ",")
}
