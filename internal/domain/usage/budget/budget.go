// Package budget is the token quota snapshot shown in usage reports.
package budget

// Budget is derived from a limit and the tokens spent in the current window.
// A zero limit means unlimited: nothing is remaining and nothing is exhausted.
type Budget struct {
	limit    int
	used     int
	resetsAt int64 // unix millis, rendered as RFC 3339 by the transport layer
}

// New builds a snapshot. used may exceed limit when over-budget calls are only logged.
func New(limit, used int, resetsAt int64) Budget {
	if limit < 0 {
		limit = 0
	}
	return Budget{limit: limit, used: used, resetsAt: resetsAt}
}

// TokensLimit returns the token cap, 0 when unlimited.
func (b Budget) TokensLimit() int { return b.limit }

// TokensUsed returns tokens spent in the window.
func (b Budget) TokensUsed() int { return b.used }

// TokensRemaining returns tokens left, never negative.
func (b Budget) TokensRemaining() int {
	if b.IsUnlimited() || b.used >= b.limit {
		return 0
	}
	return b.limit - b.used
}

// IsExhausted reports whether a capped budget is spent.
func (b Budget) IsExhausted() bool { return !b.IsUnlimited() && b.used >= b.limit }

// ResetsAt returns when the window rolls over (unix millis), 0 for no window.
func (b Budget) ResetsAt() int64 { return b.resetsAt }

// IsUnlimited reports whether no token cap is configured.
func (b Budget) IsUnlimited() bool { return b.limit == 0 }
