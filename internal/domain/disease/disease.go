// Package disease defines the closed catalog of diseases the classifier may predict.
package disease

import (
	"strings"

	"golang.org/x/text/cases"
)

// Disease is a canonical disease name from the catalog.
type Disease string

// String returns the canonical name.
func (d Disease) String() string { return string(d) }

// catalog is the ordered list of diseases the classifier is allowed to answer with.
var catalog = []Disease{
	"Common Cold", "Influenza (Flu)", "Pneumonia", "Gastroenteritis", "Irritable Bowel Syndrome (IBS)",
	"Diabetes Mellitus", "UTI", "Hypertension", "Migraine", "Hypothyroidism", "Hyperthyroidism",
	"Anemia", "Heart Failure", "Asthma", "Allergic Rhinitis", "Sinusitis", "Appendicitis", "Peptic Ulcer",
	"Tuberculosis", "Liver Disease (Hepatitis)", "Kidney Disease", "Depression", "Anxiety Disorders",
	"Eczema/Dermatitis", "Lupus", "Rheumatoid Arthritis", "Chikungunya", "Dengue", "Malaria", "Sleep Apnea",
	"Sarcoidosis", "Carcinoid Syndrome", "Fibromyalgia", "Guillain-Barré Syndrome", "Multiple Sclerosis",
	"Hashimoto's Thyroiditis", "Chronic Fatigue Syndrome", "Lyme Disease", "Rocky Mountain Spotted Fever",
	"Chronic Hepatitis", "Cytomegalovirus Infection", "HIV/AIDS", "Mononucleosis", "Chronic Kidney Disease",
	"Systemic Lupus Erythematosus (Lupus)", "Vasculitis", "Myasthenia Gravis", "Pernicious Anemia",
	"Sjogren’s Syndrome", "Psoriasis", "PCOS", "Psoriatic Arthritis", "GERD", "Sciatica", "Gout",
	"Hepatitis B", "Shingles", "Bronchitis", "Insomnia", "Rheumatic Fever",
	"Chronic Obstructive Pulmonary Disease (COPD)", "Peptic Stricture", "Bell’s Palsy",
	"Tinnitus", "Meniere’s Disease", "Multiple Myeloma", "Celiac Disease", "Sickle Cell Disease",
	"Alzheimer’s Disease",
}

// index maps the folded name to its canonical form.
var index = buildIndex(catalog)

func buildIndex(ds []Disease) map[string]Disease {
	m := make(map[string]Disease, len(ds))
	for _, d := range ds {
		m[fold(string(d))] = d
	}
	return m
}

// fold is the case-insensitive comparison key. A Caser is not safe for concurrent use,
// so one is created per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

// All returns the catalog in its canonical order.
func All() []Disease {
	out := make([]Disease, len(catalog))
	copy(out, catalog)
	return out
}

// Names returns the catalog as plain strings.
func Names() []string {
	out := make([]string, len(catalog))
	for i, d := range catalog {
		out[i] = string(d)
	}
	return out
}

// Lookup resolves name to its canonical catalog entry (case-insensitive, surrounding
// whitespace ignored).
func Lookup(name string) (Disease, bool) {
	d, ok := index[fold(strings.TrimSpace(name))]
	return d, ok
}

// Equal reports whether two disease names are equal under case-insensitive comparison.
func Equal(a, b string) bool {
	return fold(a) == fold(b)
}

// Prediction is the decoded classifier answer: a catalog disease or Unrecognized.
type Prediction struct {
	disease    Disease
	recognized bool
}

// Unrecognized is the prediction for any answer outside the catalog.
var Unrecognized = Prediction{}

// Recognized wraps a catalog disease into a prediction.
func Recognized(d Disease) Prediction {
	return Prediction{disease: d, recognized: true}
}

// Decode parses a raw classifier answer. Only an exact (case-insensitive, trimmed)
// catalog match is recognized; there is no partial or fuzzy matching.
func Decode(raw string) Prediction {
	d, ok := Lookup(raw)
	if !ok {
		return Unrecognized
	}
	return Recognized(d)
}

// Disease returns the predicted disease and whether it was recognized.
func (p Prediction) Disease() (Disease, bool) { return p.disease, p.recognized }

// IsRecognized reports whether the prediction names a catalog disease.
func (p Prediction) IsRecognized() bool { return p.recognized }

// String returns the disease name or "unrecognized".
func (p Prediction) String() string {
	if !p.recognized {
		return "unrecognized"
	}
	return string(p.disease)
}
