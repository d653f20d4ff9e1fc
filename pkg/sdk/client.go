package remedex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/remedex/internal/db"
	dbRedis "github.com/kailas-cloud/remedex/internal/db/redis"
	"github.com/kailas-cloud/remedex/internal/domain"
	"github.com/kailas-cloud/remedex/internal/domain/consultation"
	"github.com/kailas-cloud/remedex/internal/domain/disease"
	"github.com/kailas-cloud/remedex/internal/domain/query"
	domremedy "github.com/kailas-cloud/remedex/internal/domain/remedy"
	"github.com/kailas-cloud/remedex/internal/domain/remedy/filter"
	"github.com/kailas-cloud/remedex/internal/domain/symptom"
	"github.com/kailas-cloud/remedex/internal/metrics"
	"github.com/kailas-cloud/remedex/internal/repository/predcache"
	"github.com/kailas-cloud/remedex/internal/repository/remedytable"
	openaiInf "github.com/kailas-cloud/remedex/internal/transport/openai"
	classifyuc "github.com/kailas-cloud/remedex/internal/usecase/classify"
	consultuc "github.com/kailas-cloud/remedex/internal/usecase/consult"
	healthuc "github.com/kailas-cloud/remedex/internal/usecase/health"
	inferenceuc "github.com/kailas-cloud/remedex/internal/usecase/inference"
	remedyuc "github.com/kailas-cloud/remedex/internal/usecase/remedy"
	usageuc "github.com/kailas-cloud/remedex/internal/usecase/usage"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultTimeout          = 30 * time.Second
	customProvider          = "custom"
	openAIProvider          = "openai"
)

// Internal interfaces, swapped for mocks in tests.
type consultUseCase interface {
	Consult(ctx context.Context, q query.Query) (consultation.Outcome, error)
}

type classifyUseCase interface {
	Classify(ctx context.Context, age int, preConditions string, symptoms []symptom.Symptom) (disease.Prediction, error)
}

type remedyUseCase interface {
	Match(c filter.Criteria) (domremedy.Record, bool)
	Candidates(c filter.Criteria) []domremedy.Record
}

// Client is the remedex SDK entry point.
type Client struct {
	store       db.Store
	consultSvc  consultUseCase
	classifySvc classifyUseCase
	remedySvc   remedyUseCase
	healthSvc   healthUseCase
	usageSvc    usageUseCase
	obs         *observer
}

// New loads the remedy table and assembles the pipeline.
// The provided context is used for loading and the cache readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{timeout: defaultTimeout}
	for _, o := range opts {
		o.apply(cfg)
	}

	table, err := loadTable(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var store db.Store
	if cfg.cacheAddr != "" {
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    []string{cfg.cacheAddr},
			Password: cfg.cachePassword,
		})
		if err != nil {
			return nil, fmt.Errorf("remedex: create cache store: %w", err)
		}
		if err := s.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			s.Close()
			return nil, fmt.Errorf("remedex: cache not ready: %w", err)
		}
		store = s
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, err
	}

	c, err := wireClient(table, store, cfg, obs)
	if err != nil && store != nil {
		store.Close()
	}
	return c, err
}

func loadTable(ctx context.Context, cfg *clientConfig) (*remedytable.Table, error) {
	if cfg.remedies != nil {
		rows := make([]domremedy.Record, len(cfg.remedies))
		for i, r := range cfg.remedies {
			rows[i] = remedyToDomain(r)
		}
		return remedytable.New(rows), nil
	}
	if cfg.datasetPath == "" {
		return nil, errors.New("remedex: remedy table required (use WithDataset or WithRemedies)")
	}
	t, err := remedytable.Load(ctx, remedytable.Source{
		Path:    cfg.datasetPath,
		Format:  cfg.datasetFormat,
		Charset: cfg.datasetCharset,
	})
	if err != nil {
		return nil, fmt.Errorf("remedex: %w", err)
	}
	return t, nil
}

func wireClient(table *remedytable.Table, store db.Store, cfg *clientConfig, obs *observer) (*Client, error) {
	inferer, provider, model, err := baseInferer(cfg)
	if err != nil {
		return nil, err
	}
	inferer = domain.NewTimeoutInferer(inferer, cfg.timeout)

	var budgetChecker inferenceuc.BudgetChecker
	var budgetReader usageuc.BudgetReader
	if cfg.dailyTokens > 0 || cfg.monthlyTokens > 0 {
		action := inferenceuc.BudgetActionWarn
		if cfg.rejectOverRun {
			action = inferenceuc.BudgetActionReject
		}
		budget := inferenceuc.NewBudgetTracker(provider, cfg.dailyTokens, cfg.monthlyTokens, action, zap.NewNop())
		budgetChecker = budget
		budgetReader = budget
	}
	inferer = inferenceuc.NewInstrumentedInferer(inferer, provider, model, budgetChecker, zap.NewNop())

	if store != nil {
		inferer = predcache.New(inferer, store, model, cfg.cacheTTL, metrics.PredictionCacheTotal, zap.NewNop())
	}

	classifySvc := classifyuc.New(inferer)
	var picker remedyuc.Picker
	if cfg.picker != nil {
		picker = cfg.picker
	}
	remedySvc := remedyuc.New(table, picker)

	var pinger healthuc.StorePinger
	if store != nil {
		pinger = store
	}

	return &Client{
		store:       store,
		consultSvc:  consultuc.New(classifySvc, remedySvc),
		classifySvc: classifySvc,
		remedySvc:   remedySvc,
		healthSvc:   healthuc.New(table, pinger, nil),
		usageSvc:    usageuc.New(budgetReader, model),
		obs:         obs,
	}, nil
}

// baseInferer picks the custom inferer, the OpenAI-compatible one, or a failing stub.
func baseInferer(cfg *clientConfig) (domain.Inferer, string, string, error) {
	switch {
	case cfg.inferer != nil:
		return &infererAdapter{inner: cfg.inferer}, customProvider, cfg.model, nil
	case cfg.apiKey != "":
		inf, err := openaiInf.NewInferer(&openaiInf.Config{
			APIKey:   cfg.apiKey,
			BaseURL:  cfg.baseURL,
			Model:    cfg.model,
			Provider: openAIProvider,
			Logger:   zap.NewNop(),
		})
		if err != nil {
			return nil, "", "", fmt.Errorf("remedex: %w", err)
		}
		return inf, openAIProvider, inf.Model(), nil
	default:
		return noopInferer{}, customProvider, "", nil
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Consult classifies the symptoms and picks a remedy for the predicted disease.
// Unrecognized and no-match results are outcomes, not errors.
func (c *Client) Consult(ctx context.Context, req ConsultRequest) (res Consultation, err error) {
	start := time.Now()
	defer func() { c.obs.observe("consult", start, err) }()

	q, err := query.New(req.Age, req.PreConditions, req.Allergy, req.Diet, req.Symptoms)
	if err != nil {
		return Consultation{}, fmt.Errorf("consult: %w", err)
	}

	o, err := c.consultSvc.Consult(ctx, q)
	if err != nil {
		return Consultation{}, fmt.Errorf("consult: %w", err)
	}
	res = consultationFromDomain(o)
	c.obs.outcome(res.Status)
	return res, nil
}

// Classify maps symptoms onto the disease catalog.
func (c *Client) Classify(ctx context.Context, req ClassifyRequest) (res Classification, err error) {
	start := time.Now()
	defer func() { c.obs.observe("classify", start, err) }()

	symptoms, err := query.ParseSymptoms(req.Symptoms)
	if err != nil {
		return Classification{}, fmt.Errorf("classify: %w", err)
	}

	p, err := c.classifySvc.Classify(ctx, req.Age, req.PreConditions, symptoms)
	if err != nil {
		return Classification{}, fmt.Errorf("classify: %w", err)
	}

	d, ok := p.Disease()
	return Classification{Recognized: ok, Disease: d.String()}, nil
}

// Match picks one qualifying remedy. ok is false when none qualifies.
func (c *Client) Match(_ context.Context, req MatchRequest) (res Remedy, ok bool, err error) {
	start := time.Now()
	defer func() { c.obs.observe("match", start, err) }()

	crit, err := remedyuc.NewCriteria(req.Disease, req.Age, req.Allergy, req.Diet)
	if err != nil {
		return Remedy{}, false, fmt.Errorf("match: %w", err)
	}

	r, ok := c.remedySvc.Match(crit)
	if !ok {
		return Remedy{}, false, nil
	}
	return remedyFromDomain(r), true, nil
}

// Remedies lists every qualifying remedy in table order.
func (c *Client) Remedies(_ context.Context, req MatchRequest) (res []Remedy, err error) {
	start := time.Now()
	defer func() { c.obs.observe("remedies", start, err) }()

	crit, err := remedyuc.NewCriteria(req.Disease, req.Age, req.Allergy, req.Diet)
	if err != nil {
		return nil, fmt.Errorf("remedies: %w", err)
	}

	rows := c.remedySvc.Candidates(crit)
	out := make([]Remedy, len(rows))
	for i, r := range rows {
		out[i] = remedyFromDomain(r)
	}
	return out, nil
}

// Diseases returns the disease catalog the classifier may answer with.
func (c *Client) Diseases() []string { return disease.Names() }

// Symptoms returns the selectable symptom labels.
func (c *Client) Symptoms() []string { return symptom.Names() }
