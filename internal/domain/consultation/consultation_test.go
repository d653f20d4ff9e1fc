package consultation

import (
	"testing"

	"github.com/kailas-cloud/remedex/internal/domain/disease"
	"github.com/kailas-cloud/remedex/internal/domain/remedy"
)

func TestUnrecognized(t *testing.T) {
	o := Unrecognized()
	if o.Status() != StatusUnrecognized {
		t.Errorf("Status() = %q", o.Status())
	}
	if _, ok := o.Disease(); ok {
		t.Error("unrecognized outcome must carry no disease")
	}
	if _, ok := o.Remedy(); ok {
		t.Error("unrecognized outcome must carry no remedy")
	}
	if o.Message() != MsgUnrecognized {
		t.Errorf("Message() = %q", o.Message())
	}
}

func TestNoMatch(t *testing.T) {
	o := NoMatch("Migraine")
	if o.Status() != StatusNoMatch {
		t.Errorf("Status() = %q", o.Status())
	}
	d, ok := o.Disease()
	if !ok || d != "Migraine" {
		t.Errorf("Disease() = %q, %v", d, ok)
	}
	if _, ok := o.Remedy(); ok {
		t.Error("no-match outcome must carry no remedy")
	}
	if o.Message() != MsgNoMatch {
		t.Errorf("Message() = %q", o.Message())
	}
}

func TestRecommended(t *testing.T) {
	r := remedy.New(remedy.Fields{Disease: "Migraine", Name: "Ginger Tea"})
	o := Recommended(disease.Disease("Migraine"), r)
	if o.Status() != StatusRecommended {
		t.Errorf("Status() = %q", o.Status())
	}
	got, ok := o.Remedy()
	if !ok || got.Name() != "Ginger Tea" {
		t.Errorf("Remedy() = %+v, %v", got.Fields(), ok)
	}
	if !o.Prediction().IsRecognized() {
		t.Error("expected recognized prediction")
	}
	if o.Message() != "Most likely disease: Migraine." {
		t.Errorf("Message() = %q", o.Message())
	}
}
