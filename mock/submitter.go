// Package mock provides test doubles for the feedback interfaces.
package mock

import (
	"context"
	"sync"

	"github.com/fwojciec/feedback"
)

// Interface compliance check.
var _ feedback.Submitter = (*Submitter)(nil)

// Submitter is a test double for feedback.Submitter.
// Set SubmitFn before calling Submit.
type Submitter struct {
	SubmitFn func(ctx context.Context, req feedback.Request) (*feedback.Outcome, error)

	mu    sync.Mutex
	calls []feedback.Request
}

// Submit records the request and delegates to SubmitFn.
func (s *Submitter) Submit(ctx context.Context, req feedback.Request) (*feedback.Outcome, error) {
	s.mu.Lock()
	s.calls = append(s.calls, req)
	s.mu.Unlock()
	return s.SubmitFn(ctx, req)
}

// Calls returns the requests passed to Submit so far.
func (s *Submitter) Calls() []feedback.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]feedback.Request(nil), s.calls...)
}
