// Package consultation defines the tri-state result of the consultation pipeline.
package consultation

import (
	"github.com/kailas-cloud/remedex/internal/domain/disease"
	"github.com/kailas-cloud/remedex/internal/domain/remedy"
)

// Status is the consultation outcome kind.
type Status string

// Outcome status values.
const (
	StatusRecommended  Status = "recommended"
	StatusNoMatch      Status = "no_match"
	StatusUnrecognized Status = "unrecognized"
)

// User-facing outcome messages.
const (
	MsgUnrecognized = "The predicted disease is not supported yet. Try different symptoms."
	MsgNoMatch      = "No suitable remedy found for your preferences. Try adjusting allergy, age, or diet filters."
)

// Outcome is the result of one consultation. Recoverable outcomes are values, not errors.
type Outcome struct {
	status     Status
	prediction disease.Prediction
	remedy     remedy.Record
}

// Unrecognized builds the outcome for a classifier answer outside the catalog.
func Unrecognized() Outcome {
	return Outcome{status: StatusUnrecognized, prediction: disease.Unrecognized}
}

// NoMatch builds the outcome for a recognized disease without a qualifying remedy.
func NoMatch(d disease.Disease) Outcome {
	return Outcome{status: StatusNoMatch, prediction: disease.Recognized(d)}
}

// Recommended builds the outcome for a selected remedy.
func Recommended(d disease.Disease, r remedy.Record) Outcome {
	return Outcome{status: StatusRecommended, prediction: disease.Recognized(d), remedy: r}
}

// Status returns the outcome kind.
func (o Outcome) Status() Status { return o.status }

// Prediction returns the classifier result.
func (o Outcome) Prediction() disease.Prediction { return o.prediction }

// Disease returns the recognized disease, if any.
func (o Outcome) Disease() (disease.Disease, bool) { return o.prediction.Disease() }

// Remedy returns the selected remedy; ok is false unless the status is recommended.
func (o Outcome) Remedy() (remedy.Record, bool) {
	return o.remedy, o.status == StatusRecommended
}

// Message returns the user-facing message for the outcome.
func (o Outcome) Message() string {
	switch o.status {
	case StatusRecommended:
		d, _ := o.prediction.Disease()
		return "Most likely disease: " + d.String() + "."
	case StatusNoMatch:
		return MsgNoMatch
	default:
		return MsgUnrecognized
	}
}
