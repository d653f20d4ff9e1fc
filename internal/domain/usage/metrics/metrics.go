package metrics

// Metrics holds classifier inference usage for a time period.
type Metrics struct {
	inferenceRequests int
	tokens            int
}

// New creates a Metrics snapshot.
func New(requests, tokens int) Metrics {
	return Metrics{inferenceRequests: requests, tokens: tokens}
}

// InferenceRequests returns the number of billed inference calls.
func (m Metrics) InferenceRequests() int { return m.inferenceRequests }

// Tokens returns the total tokens consumed.
func (m Metrics) Tokens() int { return m.tokens }
