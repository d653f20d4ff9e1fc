package remedex

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	datasetPath    string
	datasetFormat  string
	datasetCharset string
	remedies       []Remedy

	apiKey  string
	baseURL string
	model   string
	inferer Inferer
	timeout time.Duration

	picker Picker

	dailyTokens   int64
	monthlyTokens int64
	rejectOverRun bool

	cacheAddr     string
	cachePassword string
	cacheTTL      time.Duration

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithDataset loads the remedy table from a CSV or Parquet file (detected by extension).
func WithDataset(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.datasetPath = path
	})
}

// WithDatasetEncoding sets the file format ("csv", "parquet") and CSV charset
// ("utf-8", "windows-1252", "iso-8859-1"). Empty values keep the defaults.
func WithDatasetEncoding(format, charset string) Option {
	return optionFunc(func(c *clientConfig) {
		c.datasetFormat = format
		c.datasetCharset = charset
	})
}

// WithRemedies uses an in-memory remedy table instead of a file.
func WithRemedies(rows []Remedy) Option {
	return optionFunc(func(c *clientConfig) {
		c.remedies = rows
	})
}

// WithOpenAI configures an OpenAI-compatible chat provider.
// Empty baseURL and model default to Groq and llama3-70b-8192.
func WithOpenAI(apiKey, baseURL, model string) Option {
	return optionFunc(func(c *clientConfig) {
		c.apiKey = apiKey
		c.baseURL = baseURL
		c.model = model
	})
}

// WithInferer sets a custom text-generation backend. Takes precedence over WithOpenAI.
func WithInferer(inf Inferer) Option {
	return optionFunc(func(c *clientConfig) {
		c.inferer = inf
	})
}

// WithTimeout bounds every classifier call. Default: 30s.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithPicker replaces the uniform random choice among qualifying remedies.
func WithPicker(p Picker) Option {
	return optionFunc(func(c *clientConfig) {
		c.picker = p
	})
}

// WithBudget enables token budget tracking. Zero means unlimited.
// With reject set, calls over budget fail with ErrInferenceQuotaExceeded; otherwise they are logged.
func WithBudget(dailyTokens, monthlyTokens int64, reject bool) Option {
	return optionFunc(func(c *clientConfig) {
		c.dailyTokens = dailyTokens
		c.monthlyTokens = monthlyTokens
		c.rejectOverRun = reject
	})
}

// WithCache caches classifier answers in Redis or Valkey. ttl <= 0 keeps entries forever.
func WithCache(addr, password string, ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheAddr = addr
		c.cachePassword = password
		c.cacheTTL = ttl
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
