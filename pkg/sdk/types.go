package remedex

import (
	"github.com/kailas-cloud/remedex/internal/domain/consultation"
	domremedy "github.com/kailas-cloud/remedex/internal/domain/remedy"
)

// Status is the outcome of a consultation.
type Status string

// Status constants.
const (
	StatusRecommended  Status = Status(consultation.StatusRecommended)
	StatusNoMatch      Status = Status(consultation.StatusNoMatch)
	StatusUnrecognized Status = Status(consultation.StatusUnrecognized)
)

// Remedy is one row of the remedy table.
type Remedy struct {
	Disease     string `json:"disease"`
	Name        string `json:"name"`
	Ingredients string `json:"ingredients"`
	Preparation string `json:"preparation_method"`
	SideEffects string `json:"side_effects"`
	AgeGroup    string `json:"suitable_age_group"`  // e.g. "5+"; rows without a leading number never match
	Diet        string `json:"dietary_preferences"` // vegetarian, non-vegetarian or vegan
	Allergies   string `json:"allergies"`           // free text, matched by substring
}

// ConsultRequest is the input of a full consultation.
type ConsultRequest struct {
	Age           int
	PreConditions string
	Allergy       string // "none" when the user has no allergies
	Diet          string
	Symptoms      []string // labels from Symptoms()
}

// Consultation is the outcome of Consult.
type Consultation struct {
	Status  Status  `json:"status"`
	Disease string  `json:"disease,omitempty"` // empty when unrecognized
	Remedy  *Remedy `json:"remedy,omitempty"`  // set only when recommended
	Message string  `json:"message"`
}

// ClassifyRequest is the input of Classify.
type ClassifyRequest struct {
	Age           int
	PreConditions string
	Symptoms      []string
}

// Classification is the decoded classifier answer.
type Classification struct {
	Recognized bool   `json:"recognized"`
	Disease    string `json:"disease,omitempty"`
}

// MatchRequest selects remedies without calling the classifier.
type MatchRequest struct {
	Disease string
	Age     int
	Allergy string
	Diet    string
}

func remedyFromDomain(r domremedy.Record) Remedy {
	return Remedy{
		Disease:     r.Disease(),
		Name:        r.Name(),
		Ingredients: r.Ingredients(),
		Preparation: r.Preparation(),
		SideEffects: r.SideEffects(),
		AgeGroup:    r.AgeGroup(),
		Diet:        r.Diet(),
		Allergies:   r.Allergies(),
	}
}

func remedyToDomain(r Remedy) domremedy.Record {
	return domremedy.New(domremedy.Fields{
		Disease:     r.Disease,
		Name:        r.Name,
		Ingredients: r.Ingredients,
		Preparation: r.Preparation,
		SideEffects: r.SideEffects,
		AgeGroup:    r.AgeGroup,
		Diet:        r.Diet,
		Allergies:   r.Allergies,
	})
}

func consultationFromDomain(o consultation.Outcome) Consultation {
	c := Consultation{
		Status:  Status(o.Status()),
		Message: o.Message(),
	}
	if d, ok := o.Disease(); ok {
		c.Disease = d.String()
	}
	if r, ok := o.Remedy(); ok {
		rem := remedyFromDomain(r)
		c.Remedy = &rem
	}
	return c
}
