package classify

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/remedex/internal/domain/disease"
	"github.com/kailas-cloud/remedex/internal/domain/symptom"
)

const systemTemplate = `You are a smart medical assistant.
Only respond with one of the following disease names: %s.
Based on the user's age, symptoms, and pre-existing conditions, predict the most likely disease name.
Do NOT include any explanation or extra words, just the disease name exactly as in the list.`

const userTemplate = "Age: %d\nPre-conditions: %s\nSymptoms: %s\nWhat is the most likely disease?"

// SystemPrompt returns the instructions constraining the answer to the disease catalog.
func SystemPrompt() string {
	return fmt.Sprintf(systemTemplate, strings.Join(disease.Names(), ", "))
}

// UserPrompt renders the per-request query.
func UserPrompt(age int, preConditions string, symptoms []symptom.Symptom) string {
	return fmt.Sprintf(userTemplate, age, preConditions, symptom.Join(symptoms))
}
