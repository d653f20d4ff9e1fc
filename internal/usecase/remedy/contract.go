package remedy

import (
	domremedy "github.com/kailas-cloud/remedex/internal/domain/remedy"
)

// Table exposes the read-only remedy rows in load order.
type Table interface {
	Records() []domremedy.Record
}

// Picker selects an index in [0, n). n is always positive. Returning an
// index outside [0, n) is a programming error and makes Match panic.
type Picker interface {
	Pick(n int) int
}
