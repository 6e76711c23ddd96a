package ui

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/bornholm/feedsearch/pkg/search"
	"github.com/bornholm/feedsearch/pkg/search/api"
	"github.com/pkg/errors"
)

const DefaultSeed = "中国"

type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeHTTPError
	OutcomeTransportError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeHTTPError:
		return "http_error"
	default:
		return "transport_error"
	}
}

// Outcome is the terminal result of one search.
type Outcome struct {
	Kind    OutcomeKind
	Term    string
	Results []search.Result
	Err     error
}

// Task tracks one in-flight search.
type Task struct {
	done    chan struct{}
	outcome Outcome
}

func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Outcome returns the outcome of the search. It must only be called once
// Done is closed.
func (t *Task) Outcome() Outcome {
	return t.outcome
}

func (t *Task) Wait(ctx context.Context) (Outcome, error) {
	select {
	case <-t.done:
		return t.outcome, nil
	case <-ctx.Done():
		return Outcome{}, errors.WithStack(ctx.Err())
	}
}

type ControllerOptions struct {
	Seed string
}

type ControllerOptionFunc func(opts *ControllerOptions)

func WithSeed(seed string) ControllerOptionFunc {
	return func(opts *ControllerOptions) {
		opts.Seed = seed
	}
}

// Controller owns the search state of one client and performs its
// searches. Overlapping searches are neither cancelled nor merged: the last
// one to complete determines the state.
type Controller struct {
	client search.Client
	seed   string

	mu    sync.Mutex
	state atomic.Pointer[State]

	mount sync.Once
}

func (c *Controller) State() State {
	return *c.state.Load()
}

func (c *Controller) Seed() string {
	return c.seed
}

// Mount performs the initial search with the seed term. Only the first call
// starts a search, later ones return nil.
func (c *Controller) Mount(ctx context.Context) *Task {
	var task *Task
	c.mount.Do(func() {
		task = c.Search(ctx, c.seed)
	})

	return task
}

// Search switches the state to loading and runs the search in the
// background. The search is detached from ctx cancellation and has no
// timeout of its own.
func (c *Controller) Search(ctx context.Context, term string) *Task {
	task := &Task{
		done: make(chan struct{}),
	}

	c.apply(func(s State) State { return s.begin() })

	ctx = context.WithoutCancel(ctx)

	go func() {
		defer close(task.done)

		results, err := c.client.Search(ctx, term)

		task.outcome = classify(term, results, err)

		if task.outcome.Kind != OutcomeSuccess {
			slog.ErrorContext(ctx, "search failed",
				slog.String("term", term),
				slog.String("outcome", task.outcome.Kind.String()),
				slog.Any("error", err),
			)

			message := ErrorMessage(err)
			c.apply(func(s State) State { return s.fail(message) })
			return
		}

		numbered := task.outcome.Results

		slog.DebugContext(ctx, "search completed", slog.String("term", term), slog.Int("results", len(numbered)))

		c.apply(func(s State) State { return s.succeed(numbered) })
	}()

	return task
}

func (c *Controller) apply(transition func(s State) State) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := transition(*c.state.Load())
	c.state.Store(&next)
}

func classify(term string, results []search.Result, err error) Outcome {
	if err == nil {
		return Outcome{Kind: OutcomeSuccess, Term: term, Results: search.Number(results)}
	}

	var httpErr *api.HTTPError
	if errors.As(err, &httpErr) {
		return Outcome{Kind: OutcomeHTTPError, Term: term, Err: err}
	}

	return Outcome{Kind: OutcomeTransportError, Term: term, Err: err}
}

// ErrorMessage returns the message shown to the user for a failed search.
func ErrorMessage(err error) string {
	var httpErr *api.HTTPError
	if errors.As(err, &httpErr) {
		return fmt.Sprintf("%s: %d %s", messageSearchFailed, httpErr.StatusCode, httpErr.StatusText)
	}

	if err == nil || err.Error() == "" {
		return messageSearchFailedFallback
	}

	return err.Error()
}

func NewController(client search.Client, funcs ...ControllerOptionFunc) *Controller {
	opts := &ControllerOptions{
		Seed: DefaultSeed,
	}
	for _, fn := range funcs {
		fn(opts)
	}

	c := &Controller{
		client: client,
		seed:   opts.Seed,
	}

	initial := InitialState()
	c.state.Store(&initial)

	return c
}
