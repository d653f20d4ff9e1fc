// Package symptom defines the catalog of selectable symptoms.
package symptom

import (
	"fmt"
	"strings"
)

// Symptom is a canonical symptom label.
type Symptom string

var catalog = []Symptom{
	"Fever", "Fatigue", "Weight loss", "Loss of appetite", "Cough (dry or wet)",
	"Shortness of breath", "Sore throat", "Runny nose", "Blocked nose", "Nausea",
	"Vomiting", "Diarrhea", "Constipation", "Stomach pain", "Chest pain", "Palpitations",
	"Swelling in legs/feet", "Headache", "Dizziness", "Numbness", "Tingling", "Itching",
	"Skin rashes", "Joint pain", "Frequent urination", "Muscle pain", "Chills",
	"Night sweats", "Blurred vision", "Difficulty sleeping", "Sneezing",
	"Loss of taste or smell", "Cramps", "Dry mouth",
}

var index = func() map[string]Symptom {
	m := make(map[string]Symptom, len(catalog))
	for _, s := range catalog {
		m[strings.ToLower(string(s))] = s
	}
	return m
}()

// All returns the catalog in presentation order.
func All() []Symptom {
	out := make([]Symptom, len(catalog))
	copy(out, catalog)
	return out
}

// Names returns the catalog as plain strings.
func Names() []string {
	out := make([]string, len(catalog))
	for i, s := range catalog {
		out[i] = string(s)
	}
	return out
}

// Parse resolves a label to its canonical catalog entry.
func Parse(label string) (Symptom, error) {
	s, ok := index[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return "", fmt.Errorf("unknown symptom %q", label)
	}
	return s, nil
}

// ParseAll resolves every label, dropping duplicates while keeping the first occurrence order.
func ParseAll(labels []string) ([]Symptom, error) {
	out := make([]Symptom, 0, len(labels))
	seen := make(map[Symptom]struct{}, len(labels))
	for _, l := range labels {
		s, err := Parse(l)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out, nil
}

// Join renders symptoms as the comma-separated phrase sent to the classifier.
func Join(ss []Symptom) string {
	parts := make([]string, len(ss))
	for i, s := range ss {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
