package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/remedex/internal/domain"
	"github.com/kailas-cloud/remedex/internal/domain/consultation"
	"github.com/kailas-cloud/remedex/internal/domain/disease"
	"github.com/kailas-cloud/remedex/internal/domain/query"
	domremedy "github.com/kailas-cloud/remedex/internal/domain/remedy"
	"github.com/kailas-cloud/remedex/internal/domain/symptom"
	domusage "github.com/kailas-cloud/remedex/internal/domain/usage"
	"github.com/kailas-cloud/remedex/internal/metrics"
	classifyuc "github.com/kailas-cloud/remedex/internal/usecase/classify"
	consultuc "github.com/kailas-cloud/remedex/internal/usecase/consult"
	healthuc "github.com/kailas-cloud/remedex/internal/usecase/health"
	remedyuc "github.com/kailas-cloud/remedex/internal/usecase/remedy"
	usageuc "github.com/kailas-cloud/remedex/internal/usecase/usage"
)

// defaultAllergy is assumed by GET /v1/remedies when no allergy is given.
const defaultAllergy = "none"

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server implements ServerInterface on top of the use case services.
type Server struct {
	consult       *consultuc.Service
	classify      *classifyuc.Service
	remedies      *remedyuc.Service
	usage         *usageuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates an HTTP API server.
func NewServer(
	consult *consultuc.Service,
	classify *classifyuc.Service,
	remedies *remedyuc.Service,
	usage *usageuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		consult:  consult,
		classify: classify,
		remedies: remedies,
		usage:    usage,
		health:   health,
		logger:   logger,
	}
	// Order matters: quota errors are also wrapped as provider errors.
	s.errorHandlers = []errorHandler{
		validationHandler,
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, ErrorResponseCodeValidationFailed),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorResponseCodeNotFound),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, ErrorResponseCodeRateLimited),
		sentinelHandler(domain.ErrInferenceQuotaExceeded,
			http.StatusPaymentRequired, ErrorResponseCodeQuotaExceeded),
		sentinelHandler(domain.ErrMissingCredential, http.StatusBadGateway, ErrorResponseCodeProviderError),
		sentinelHandler(domain.ErrInferenceProvider, http.StatusBadGateway, ErrorResponseCodeProviderError),
	}
	return s
}

// CreateConsultation handles POST /v1/consultations.
func (s *Server) CreateConsultation(w http.ResponseWriter, r *http.Request) {
	var req ConsultationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	q, err := query.New(req.Age, req.PreConditions, req.Allergy, req.Diet, req.Symptoms)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	outcome, err := s.consult.Consult(ctx, q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	setInferenceHeaders(w, usage)
	writeJSON(w, http.StatusOK, consultationToResponse(outcome))
}

// CreateClassification handles POST /v1/classifications.
func (s *Server) CreateClassification(w http.ResponseWriter, r *http.Request) {
	var req ClassificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	symptoms, err := query.ParseSymptoms(req.Symptoms)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	prediction, err := s.classify.Classify(ctx, req.Age, req.PreConditions, symptoms)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	setInferenceHeaders(w, usage)
	writeJSON(w, http.StatusOK, predictionToResponse(prediction))
}

// MatchRemedy handles POST /v1/remedies/match.
func (s *Server) MatchRemedy(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	c, err := remedyuc.NewCriteria(req.Disease, req.Age, req.Allergy, req.Diet)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	rec, ok := s.remedies.Match(c)
	if !ok {
		msg := consultation.MsgNoMatch
		writeJSON(w, http.StatusOK, MatchResponse{Matched: false, Message: &msg})
		return
	}

	resp := remedyToResponse(rec)
	writeJSON(w, http.StatusOK, MatchResponse{Matched: true, Remedy: &resp})
}

// ListRemedies handles GET /v1/remedies.
func (s *Server) ListRemedies(w http.ResponseWriter, r *http.Request, params ListRemediesParams) {
	allergyText := defaultAllergy
	if params.Allergy != nil {
		allergyText = *params.Allergy
	}

	c, err := remedyuc.NewCriteria(params.Disease, params.Age, allergyText, params.Diet)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	rows := s.remedies.Candidates(c)
	items := make([]RemedyResponse, len(rows))
	for i, rec := range rows {
		items[i] = remedyToResponse(rec)
	}

	writeJSON(w, http.StatusOK, RemedyListResponse{Items: items, Total: len(items)})
}

// ListDiseases handles GET /v1/catalog/diseases.
func (s *Server) ListDiseases(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, CatalogResponse{Items: disease.Names()})
}

// ListSymptoms handles GET /v1/catalog/symptoms.
func (s *Server) ListSymptoms(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, CatalogResponse{Items: symptom.Names()})
}

// GetUsage handles GET /usage.
func (s *Server) GetUsage(w http.ResponseWriter, r *http.Request, params GetUsageParams) {
	raw := ""
	if params.Period != nil {
		raw = *params.Period
	}
	period, ok := domusage.ParsePeriod(raw)
	if !ok {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeValidationFailed,
			"period must be one of day, month, total")
		return
	}

	report := s.usage.GetReport(r.Context(), period)

	resp := UsageResponse{
		Period: string(report.Period()),
		Model:  report.Model(),
		Usage: UsageMetrics{
			InferenceRequests: report.Metrics().InferenceRequests(),
			Tokens:            report.Metrics().Tokens(),
		},
		Budget: BudgetStatus{
			TokensLimit:     report.Budget().TokensLimit(),
			TokensRemaining: report.Budget().TokensRemaining(),
			IsExhausted:     report.Budget().IsExhausted(),
		},
	}

	if report.PeriodStart() > 0 {
		start := time.UnixMilli(report.PeriodStart()).UTC()
		end := time.UnixMilli(report.PeriodEnd()).UTC()
		resp.PeriodStartAt = &start
		resp.PeriodEndAt = &end
	}

	if report.Budget().ResetsAt() > 0 {
		resetsAt := time.UnixMilli(report.Budget().ResetsAt()).UTC()
		resp.Budget.ResetsAt = &resetsAt
	}

	writeJSON(w, http.StatusOK, resp)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func setInferenceHeaders(w http.ResponseWriter, usage *domain.InferenceUsage) {
	if usage != nil && usage.Used {
		w.Header().Set(metrics.InferenceTokensHeader, strconv.Itoa(usage.TotalTokens))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorResponseCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidQuery,
		domain.ErrNotFound,
		domain.ErrRateLimited,
		domain.ErrInferenceQuotaExceeded,
		domain.ErrMissingCredential,
		domain.ErrInferenceProvider,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// validationHandler surfaces the user-facing message and field of a ValidationError.
func validationHandler(w http.ResponseWriter, err error, _ string) bool {
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		return false
	}
	field := ve.Field
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Code:    ErrorResponseCodeValidationFailed,
		Message: ve.Message,
		Field:   &field,
	})
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorResponseCodeInternalError, "internal error")
}

func consultationToResponse(o consultation.Outcome) ConsultationResponse {
	resp := ConsultationResponse{
		Status:  string(o.Status()),
		Message: o.Message(),
	}
	if d, ok := o.Disease(); ok {
		name := d.String()
		resp.Disease = &name
	}
	if rec, ok := o.Remedy(); ok {
		r := remedyToResponse(rec)
		resp.Remedy = &r
	}
	return resp
}

func predictionToResponse(p disease.Prediction) ClassificationResponse {
	d, ok := p.Disease()
	if !ok {
		return ClassificationResponse{Recognized: false}
	}
	name := d.String()
	return ClassificationResponse{Recognized: true, Disease: &name}
}

func remedyToResponse(r domremedy.Record) RemedyResponse {
	return RemedyResponse{
		Disease:            r.Disease(),
		Name:               r.Name(),
		Ingredients:        r.Ingredients(),
		PreparationMethod:  r.Preparation(),
		SideEffects:        r.SideEffects(),
		SuitableAgeGroup:   r.AgeGroup(),
		DietaryPreferences: r.Diet(),
		Allergies:          r.Allergies(),
	}
}
