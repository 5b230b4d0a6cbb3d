package discovery

import (
	"context"

	"github.com/spindleapp/spindle/internal/catalog"
)

// SearchProbe is one randomized search attempt: a query term plus a result
// offset.
type SearchProbe struct {
	Term   string
	Offset int
}

// ProbeGenerator yields the next probe to try. Implementations decide the
// term pool and offset range; the policy only bounds the attempt count.
type ProbeGenerator func() SearchProbe

// RetryPolicy runs bounded randomized search attempts. It is decoupled from
// any specific term list so the policy itself is testable in isolation.
type RetryPolicy struct {
	MaxAttempts int
	Next        ProbeGenerator
}

// Run invokes attempt with generated probes until one reports acceptance,
// the attempt budget is spent, or the context is cancelled. A non-accepted
// attempt's result is discarded.
func (p RetryPolicy) Run(ctx context.Context, attempt func(context.Context, SearchProbe) ([]catalog.Album, bool)) ([]catalog.Album, error) {
	for i := 0; i < p.MaxAttempts; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if albums, ok := attempt(ctx, p.Next()); ok {
			return albums, nil
		}
	}
	return nil, nil
}
