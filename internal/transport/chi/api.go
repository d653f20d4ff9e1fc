package chi

import (
	"fmt"
	"net/http"
	"time"

	gochi "github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ErrorResponseCode is the machine-readable error code of an ErrorResponse.
type ErrorResponseCode string

// Error codes returned by the API.
const (
	ErrorResponseCodeBadRequest       ErrorResponseCode = "bad_request"
	ErrorResponseCodeValidationFailed ErrorResponseCode = "validation_failed"
	ErrorResponseCodeUnauthorized     ErrorResponseCode = "unauthorized"
	ErrorResponseCodeNotFound         ErrorResponseCode = "not_found"
	ErrorResponseCodeRateLimited      ErrorResponseCode = "rate_limited"
	ErrorResponseCodeQuotaExceeded    ErrorResponseCode = "quota_exceeded"
	ErrorResponseCodeProviderError    ErrorResponseCode = "provider_error"
	ErrorResponseCodeInternalError    ErrorResponseCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
	Field   *string           `json:"field,omitempty"`
}

// ConsultationRequest is the body of POST /v1/consultations.
type ConsultationRequest struct {
	Age           int      `json:"age"`
	PreConditions string   `json:"pre_conditions"`
	Allergy       string   `json:"allergy"`
	Diet          string   `json:"diet"`
	Symptoms      []string `json:"symptoms"`
}

// ConsultationResponse reports the outcome of a consultation.
type ConsultationResponse struct {
	Status  string          `json:"status"`
	Disease *string         `json:"disease,omitempty"`
	Remedy  *RemedyResponse `json:"remedy,omitempty"`
	Message string          `json:"message"`
}

// ClassificationRequest is the body of POST /v1/classifications.
type ClassificationRequest struct {
	Age           int      `json:"age"`
	PreConditions string   `json:"pre_conditions"`
	Symptoms      []string `json:"symptoms"`
}

// ClassificationResponse reports the decoded classifier answer.
type ClassificationResponse struct {
	Recognized bool    `json:"recognized"`
	Disease    *string `json:"disease,omitempty"`
}

// MatchRequest is the body of POST /v1/remedies/match.
type MatchRequest struct {
	Disease string `json:"disease"`
	Age     int    `json:"age"`
	Allergy string `json:"allergy"`
	Diet    string `json:"diet"`
}

// MatchResponse carries the randomly selected qualifying remedy.
type MatchResponse struct {
	Matched bool            `json:"matched"`
	Remedy  *RemedyResponse `json:"remedy,omitempty"`
	Message *string         `json:"message,omitempty"`
}

// RemedyResponse is one remedy table row.
type RemedyResponse struct {
	Disease            string `json:"disease"`
	Name               string `json:"name"`
	Ingredients        string `json:"ingredients"`
	PreparationMethod  string `json:"preparation_method"`
	SideEffects        string `json:"side_effects"`
	SuitableAgeGroup   string `json:"suitable_age_group"`
	DietaryPreferences string `json:"dietary_preferences"`
	Allergies          string `json:"allergies"`
}

// RemedyListResponse lists every qualifying remedy in table order.
type RemedyListResponse struct {
	Items []RemedyResponse `json:"items"`
	Total int              `json:"total"`
}

// CatalogResponse lists the values of a closed catalog.
type CatalogResponse struct {
	Items []string `json:"items"`
}

// UsageMetrics holds inference consumption for the period.
type UsageMetrics struct {
	InferenceRequests int `json:"inference_requests"`
	Tokens            int `json:"tokens"`
}

// BudgetStatus describes the token budget for the period.
type BudgetStatus struct {
	TokensLimit     int        `json:"tokens_limit"`
	TokensRemaining int        `json:"tokens_remaining"`
	IsExhausted     bool       `json:"is_exhausted"`
	ResetsAt        *time.Time `json:"resets_at,omitempty"`
}

// UsageResponse is the body of GET /usage.
type UsageResponse struct {
	Period        string       `json:"period"`
	PeriodStartAt *time.Time   `json:"period_start_at,omitempty"`
	PeriodEndAt   *time.Time   `json:"period_end_at,omitempty"`
	Model         string       `json:"model,omitempty"`
	Usage         UsageMetrics `json:"usage"`
	Budget        BudgetStatus `json:"budget"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// ListRemediesParams are the query parameters of GET /v1/remedies.
type ListRemediesParams struct {
	Disease string
	Age     int
	Allergy *string
	Diet    string
}

// GetUsageParams are the query parameters of GET /usage.
type GetUsageParams struct {
	Period *string
}

// ServerInterface is implemented by Server and mounted with HandlerWithOptions.
type ServerInterface interface {
	// POST /v1/consultations
	CreateConsultation(w http.ResponseWriter, r *http.Request)
	// POST /v1/classifications
	CreateClassification(w http.ResponseWriter, r *http.Request)
	// POST /v1/remedies/match
	MatchRemedy(w http.ResponseWriter, r *http.Request)
	// GET /v1/remedies
	ListRemedies(w http.ResponseWriter, r *http.Request, params ListRemediesParams)
	// GET /v1/catalog/diseases
	ListDiseases(w http.ResponseWriter, r *http.Request)
	// GET /v1/catalog/symptoms
	ListSymptoms(w http.ResponseWriter, r *http.Request)
	// GET /usage
	GetUsage(w http.ResponseWriter, r *http.Request, params GetUsageParams)
	// GET /health
	HealthCheck(w http.ResponseWriter, r *http.Request)
	// GET /metrics
	Metrics(w http.ResponseWriter, r *http.Request)
}

// ParamError reports a query parameter that is missing or cannot be bound.
type ParamError struct {
	Param string
	Err   error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid query parameter %q: %v", e.Param, e.Err)
}

func (e *ParamError) Unwrap() error { return e.Err }

// ServerOptions configures HandlerWithOptions.
type ServerOptions struct {
	BaseRouter gochi.Router
	// InferenceMiddlewares wrap only the routes that call the inference provider.
	InferenceMiddlewares []func(http.Handler) http.Handler
	ErrorHandlerFunc     func(w http.ResponseWriter, r *http.Request, err error)
}

// HandlerWithOptions mounts si on the base router and returns it.
func HandlerWithOptions(si ServerInterface, options ServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = gochi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, _ *http.Request, err error) {
			writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, err.Error())
		}
	}
	wrapper := &serverWrapper{handler: si, errorHandlerFunc: options.ErrorHandlerFunc}

	r.Group(func(r gochi.Router) {
		for _, mw := range options.InferenceMiddlewares {
			r.Use(mw)
		}
		r.Post("/v1/consultations", si.CreateConsultation)
		r.Post("/v1/classifications", si.CreateClassification)
	})
	r.Post("/v1/remedies/match", si.MatchRemedy)
	r.Get("/v1/remedies", wrapper.ListRemedies)
	r.Get("/v1/catalog/diseases", si.ListDiseases)
	r.Get("/v1/catalog/symptoms", si.ListSymptoms)
	r.Get("/usage", wrapper.GetUsage)
	r.Get("/health", si.HealthCheck)
	r.Get("/metrics", si.Metrics)

	return r
}

// serverWrapper binds query parameters before calling the handler.
type serverWrapper struct {
	handler          ServerInterface
	errorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

func (sw *serverWrapper) ListRemedies(w http.ResponseWriter, r *http.Request) {
	var params ListRemediesParams
	q := r.URL.Query()

	if err := runtime.BindQueryParameter("form", true, true, "disease", q, &params.Disease); err != nil {
		sw.errorHandlerFunc(w, r, &ParamError{Param: "disease", Err: err})
		return
	}
	if err := runtime.BindQueryParameter("form", true, true, "age", q, &params.Age); err != nil {
		sw.errorHandlerFunc(w, r, &ParamError{Param: "age", Err: err})
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "allergy", q, &params.Allergy); err != nil {
		sw.errorHandlerFunc(w, r, &ParamError{Param: "allergy", Err: err})
		return
	}
	if err := runtime.BindQueryParameter("form", true, true, "diet", q, &params.Diet); err != nil {
		sw.errorHandlerFunc(w, r, &ParamError{Param: "diet", Err: err})
		return
	}

	sw.handler.ListRemedies(w, r, params)
}

func (sw *serverWrapper) GetUsage(w http.ResponseWriter, r *http.Request) {
	var params GetUsageParams
	if err := runtime.BindQueryParameter("form", true, false, "period", r.URL.Query(), &params.Period); err != nil {
		sw.errorHandlerFunc(w, r, &ParamError{Param: "period", Err: err})
		return
	}
	sw.handler.GetUsage(w, r, params)
}
