package pipeline

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/studiowebux/openapi-tui/internal/logging"
	"github.com/studiowebux/openapi-tui/internal/types"
)

// Executor performs one HTTP call
type Executor interface {
	Execute(ctx context.Context, req *types.HttpRequest) (*types.ResponseRecord, error)
}

// ExecutorFunc adapts a function to Executor
type ExecutorFunc func(ctx context.Context, req *types.HttpRequest) (*types.ResponseRecord, error)

func (f ExecutorFunc) Execute(ctx context.Context, req *types.HttpRequest) (*types.ResponseRecord, error) {
	return f(ctx, req)
}

type call struct {
	id  uint64
	ctx context.Context
	types.Call
}

type flight struct {
	id     uint64
	cancel context.CancelFunc
}

// Pipeline decouples dialing from network execution. Dial and Drain are
// called from the UI loop; Run owns the workers.
type Pipeline struct {
	exec    Executor
	workers int

	calls   *Mailbox[call]
	results *Mailbox[types.Result]

	ctx  context.Context
	stop context.CancelFunc

	mu       sync.Mutex
	seq      uint64
	inflight map[string]flight
}

// New creates a pipeline running at most workers calls at once
func New(exec Executor, workers int) *Pipeline {
	if workers <= 0 {
		workers = 1
	}
	ctx, stop := context.WithCancel(context.Background())
	return &Pipeline{
		exec:     exec,
		workers:  workers,
		calls:    NewMailbox[call](),
		results:  NewMailbox[types.Result](),
		ctx:      ctx,
		stop:     stop,
		inflight: make(map[string]flight),
	}
}

// Run executes dialed calls until ctx ends, then cancels what is in flight
// and waits for the workers to return.
func (p *Pipeline) Run(ctx context.Context) error {
	var g errgroup.Group
	g.SetLimit(p.workers)

	// a saturated pool blocks in g.Go, so in-flight calls must see ctx end
	defer context.AfterFunc(ctx, p.stop)()
	defer func() {
		p.stop()
		_ = g.Wait()
	}()

	for p.calls.Wait(ctx) {
		for _, c := range p.calls.Drain() {
			c := c
			g.Go(func() error {
				p.execute(c)
				return nil
			})
		}
	}
	return nil
}

// Dial queues a call and returns at once. A call already in flight for the
// same key is cancelled; only the newest one is delivered.
func (p *Pipeline) Dial(key string, req *types.HttpRequest) {
	p.mu.Lock()
	if f, ok := p.inflight[key]; ok {
		f.cancel()
	}
	p.seq++
	ctx, cancel := context.WithCancel(p.ctx)
	p.inflight[key] = flight{id: p.seq, cancel: cancel}
	c := call{id: p.seq, ctx: ctx, Call: types.Call{Key: key, Request: req}}
	p.mu.Unlock()

	logging.Trace("pipeline.dial", "key", key, "method", req.Method, "url", req.URL)
	p.calls.Push(c)
}

// Cancel aborts the in-flight call for key; its result is dropped
func (p *Pipeline) Cancel(key string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	f, ok := p.inflight[key]
	if !ok {
		return false
	}
	f.cancel()
	delete(p.inflight, key)
	logging.Trace("pipeline.cancel", "key", key)
	return true
}

// Pending reports whether key has a call in flight
func (p *Pipeline) Pending(key string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.inflight[key]
	return ok
}

// Drain returns every result completed since the last Drain
func (p *Pipeline) Drain() []types.Result {
	return p.results.Drain()
}

func (p *Pipeline) execute(c call) {
	start := time.Now()
	rec, err := p.exec.Execute(c.ctx, c.Request)
	if err != nil {
		rec = &types.ResponseRecord{
			State:      types.ResponseFailed,
			Error:      err.Error(),
			Duration:   time.Since(start).Milliseconds(),
			ReceivedAt: time.Now(),
		}
	}
	if rec == nil {
		rec = &types.ResponseRecord{State: types.ResponseFailed, Error: "no response", ReceivedAt: time.Now()}
	}

	p.mu.Lock()
	f, current := p.inflight[c.Key]
	current = current && f.id == c.id
	if current {
		delete(p.inflight, c.Key)
	}
	p.mu.Unlock()

	if !current || errors.Is(c.ctx.Err(), context.Canceled) {
		logging.Trace("pipeline.drop", "key", c.Key, "id", c.id)
		return
	}
	f.cancel()

	logging.Trace("pipeline.done", "key", c.Key, "state", rec.State.String(), "status", rec.Status)
	p.results.Push(types.Result{Key: c.Key, Response: rec})
}
