package worker

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-autoeq/eq/autoeq"
	"github.com/cwbudde/algo-autoeq/eq/curve"
	"github.com/cwbudde/algo-autoeq/eq/peq"
)

// ErrClosed is returned for requests submitted after Close.
var ErrClosed = errors.New("worker: pool closed")

// Request is one AutoEQ job. A zero ID is replaced by a random one.
type Request struct {
	ID     uuid.UUID
	Source curve.Curve
	Target curve.Curve
	Config autoeq.Config
}

// Response carries the result of the request with the same ID. Set holds a
// best-effort result even when Err is a context error.
type Response struct {
	ID  uuid.UUID
	Set peq.Set
	Err error
}

type job struct {
	ctx context.Context
	req Request
	out chan<- Response
}

type options struct {
	workers int
	logger  log.FieldLogger
}

// Option configures a Pool.
type Option func(*options)

// WithWorkers sets the number of goroutines. Values below 1 select
// runtime.NumCPU.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithLogger sets the logger for pool and engine debug output.
func WithLogger(l log.FieldLogger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Pool dispatches requests to its workers. It is safe for concurrent use.
type Pool struct {
	jobs chan job
	log  log.FieldLogger
	wg   sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewPool starts a pool.
func NewPool(opts ...Option) *Pool {
	o := options{logger: log.StandardLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = runtime.NumCPU()
	}

	p := &Pool{
		jobs: make(chan job),
		log:  o.logger,
	}
	p.wg.Add(o.workers)
	for i := range o.workers {
		go p.work(i)
	}

	return p
}

// Submit queues req and returns a channel that receives exactly one
// Response. If ctx is done before a worker picks the request up, the
// response carries ctx.Err() and an empty set.
func (p *Pool) Submit(ctx context.Context, req Request) <-chan Response {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	out := make(chan Response, 1)

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		out <- Response{ID: req.ID, Err: ErrClosed}
		return out
	}

	if err := ctx.Err(); err != nil {
		out <- Response{ID: req.ID, Err: err}
		return out
	}
	select {
	case p.jobs <- job{ctx: ctx, req: req, out: out}:
	case <-ctx.Done():
		out <- Response{ID: req.ID, Err: ctx.Err()}
	}

	return out
}

// Run submits req and waits for its response.
func (p *Pool) Run(ctx context.Context, req Request) Response {
	return <-p.Submit(ctx, req)
}

// Close stops accepting requests and waits for running jobs to finish.
func (p *Pool) Close() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.jobs)
	}
	p.mu.Unlock()
	p.wg.Wait()
}

func (p *Pool) work(id int) {
	defer p.wg.Done()
	for j := range p.jobs {
		l := p.log.WithFields(log.Fields{"worker": id, "request": j.req.ID})
		start := time.Now()

		set, err := autoeq.Run(j.ctx, j.req.Source, j.req.Target, j.req.Config, autoeq.WithLogger(l))

		l.WithFields(log.Fields{
			"filters":  len(set.Filters),
			"duration": time.Since(start),
			"error":    err,
		}).Debug("worker: request done")
		j.out <- Response{ID: j.req.ID, Set: set, Err: err}
	}
}
