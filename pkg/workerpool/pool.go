// Package workerpool runs submitted jobs on a fixed number of goroutines.
// Package workerpool 固定数量 worker 的任务池
package workerpool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	// ErrWorkerPoolFull 当任务队列已满时返回
	ErrWorkerPoolFull = errors.New("worker pool queue is full")
	// ErrWorkerPoolClosed 当 Worker Pool 已关闭时返回
	ErrWorkerPoolClosed = errors.New("worker pool is closed")
	// ErrTaskCancelled 当任务在执行前被取消时返回
	ErrTaskCancelled = errors.New("task was cancelled")
)

// Config Worker Pool 配置
type Config struct {
	// MaxWorkers 最大并发 worker 数量
	MaxWorkers int
	// QueueSize 任务队列大小
	QueueSize int
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{MaxWorkers: 8, QueueSize: 256}
}

type job struct {
	ctx  context.Context
	fn   func(context.Context) error
	done chan error
}

// Pool 管理 goroutine 生命周期的 Worker Pool
type Pool struct {
	config Config
	logger *zap.Logger

	jobs     chan job
	workerWg sync.WaitGroup

	active    atomic.Int64
	completed atomic.Int64
	failed    atomic.Int64

	mu     sync.RWMutex
	closed bool
}

// New starts cfg.MaxWorkers workers. A nil cfg uses DefaultConfig.
func New(cfg *Config, logger *zap.Logger) *Pool {
	c := DefaultConfig()
	if cfg != nil {
		if cfg.MaxWorkers > 0 {
			c.MaxWorkers = cfg.MaxWorkers
		}
		if cfg.QueueSize > 0 {
			c.QueueSize = cfg.QueueSize
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Pool{config: c, logger: logger, jobs: make(chan job, c.QueueSize)}
	for i := 0; i < c.MaxWorkers; i++ {
		p.workerWg.Add(1)
		go p.worker()
	}
	p.logger.Info("worker pool started", zap.Int("maxWorkers", c.MaxWorkers), zap.Int("queueSize", c.QueueSize))
	return p
}

func (p *Pool) worker() {
	defer p.workerWg.Done()
	for j := range p.jobs {
		p.run(j)
	}
}

func (p *Pool) run(j job) {
	p.active.Add(1)
	defer p.active.Add(-1)

	var err error
	if j.ctx.Err() != nil {
		err = ErrTaskCancelled
	} else {
		err = p.safeCall(j)
	}
	if err != nil {
		p.failed.Add(1)
	} else {
		p.completed.Add(1)
	}
	if j.done != nil {
		j.done <- err
	}
}

func (p *Pool) safeCall(j job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("worker pool task panic", zap.Any("panic", r), zap.Stack("stack"))
			err = errors.New("worker pool task panicked")
		}
	}()
	return j.fn(j.ctx)
}

// enqueue blocks until the job is queued, ctx ends, or the pool closes.
func (p *Pool) enqueue(ctx context.Context, j job, wait bool) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrWorkerPoolClosed
	}
	if !wait {
		select {
		case p.jobs <- j:
			return nil
		default:
			return ErrWorkerPoolFull
		}
	}
	select {
	case p.jobs <- j:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Submit queues fn, waiting for room, and returns once fn finished.
func (p *Pool) Submit(ctx context.Context, fn func(context.Context) error) error {
	done := make(chan error, 1)
	if err := p.enqueue(ctx, job{ctx: ctx, fn: fn, done: done}, true); err != nil {
		return err
	}
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SubmitAsync queues fn without waiting. The returned channel yields fn's
// result; ErrWorkerPoolFull is returned when the queue has no room.
func (p *Pool) SubmitAsync(ctx context.Context, fn func(context.Context) error) (<-chan error, error) {
	done := make(chan error, 1)
	if err := p.enqueue(ctx, job{ctx: ctx, fn: fn, done: done}, false); err != nil {
		return nil, err
	}
	return done, nil
}

// Shutdown stops accepting jobs and waits for queued ones to finish.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.workerWg.Wait()
		close(done)
	}()
	select {
	case <-done:
		p.logger.Info("worker pool shutdown completed")
		return nil
	case <-ctx.Done():
		p.logger.Warn("worker pool shutdown timeout", zap.Int64("activeCount", p.active.Load()))
		return ctx.Err()
	}
}

// Metrics 返回 Worker Pool 的指标
type Metrics struct {
	MaxWorkers    int   `json:"maxWorkers"`
	ActiveCount   int64 `json:"activeCount"`
	QueuedCount   int   `json:"queuedCount"`
	QueueCapacity int   `json:"queueCapacity"`
	Completed     int64 `json:"completed"`
	Failed        int64 `json:"failed"`
	IsClosed      bool  `json:"isClosed"`
}

// GetMetrics 获取当前指标
func (p *Pool) GetMetrics() Metrics {
	p.mu.RLock()
	closed := p.closed
	p.mu.RUnlock()

	return Metrics{
		MaxWorkers:    p.config.MaxWorkers,
		ActiveCount:   p.active.Load(),
		QueuedCount:   len(p.jobs),
		QueueCapacity: p.config.QueueSize,
		Completed:     p.completed.Load(),
		Failed:        p.failed.Load(),
		IsClosed:      closed,
	}
}
