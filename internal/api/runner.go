package api

import (
	"sync"

	apierrors "github.com/spuoss/aichat/internal/errors"
	"github.com/spuoss/aichat/internal/models"
	"github.com/spuoss/aichat/internal/providers"
)

// Outcome is the terminal result of one submitted request: a reply on
// success, an error on failure. Exactly one Outcome is produced per
// accepted submission.
type Outcome struct {
	Reply string
	Err   error
}

// Runner executes at most one outstanding request at a time on a worker
// goroutine. Submit hands back a channel on which exactly one Outcome is
// delivered; the caller receives it on whatever context it can safely
// mutate state from (the bubbletea Update loop in the TUI). A second
// Submit while one is in flight is rejected with ErrRequestInFlight rather
// than queued or cancelled.
type Runner struct {
	client *Client

	mu   sync.Mutex
	busy bool
}

// NewRunner creates a runner backed by the given client.
func NewRunner(client *Client) *Runner {
	return &Runner{client: client}
}

// Registry returns the provider registry of the backing client.
func (r *Runner) Registry() *providers.Registry {
	return r.client.Registry()
}

// Busy reports whether a request is currently in flight.
func (r *Runner) Busy() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.busy
}

// Submit starts a request on a worker goroutine. The returned channel is
// buffered, so the worker never blocks on delivery and the Outcome arrives
// even if the receiver is late. The worker only reads the transcript
// snapshot passed here; it never touches live session state.
func (r *Runner) Submit(providerID, apiKey string, transcript []models.Message) (<-chan Outcome, error) {
	r.mu.Lock()
	if r.busy {
		r.mu.Unlock()
		return nil, apierrors.ErrRequestInFlight
	}
	r.busy = true
	r.mu.Unlock()

	ch := make(chan Outcome, 1)
	go func() {
		reply, err := r.client.Send(providerID, apiKey, transcript)

		// Free the runner before delivery so the receiver can submit
		// again from the same event that consumed the outcome.
		r.mu.Lock()
		r.busy = false
		r.mu.Unlock()

		ch <- Outcome{Reply: reply, Err: err}
	}()

	return ch, nil
}
