package engine

import (
	"context"
	"errors"
	"sync"

	"github.com/Elliott-ab/Battlemap-sub000/pkg/api"
	"github.com/Elliott-ab/Battlemap-sub000/pkg/logger"
	"github.com/sirupsen/logrus"
)

var (
	ErrQueueFull   = errors.New("worker queue is full")
	ErrPoolStopped = errors.New("worker pool is stopped")
)

// Task - один запрос, посчитанный в фоне.
type Task struct {
	SessionID string
	Request   api.Request
	Tracker   *GenerationTracker
	// Deliver вызывается только для актуальных результатов
	Deliver func(api.Response)
}

// Pool - пул горутин, разгружающий обработчик сокета на больших картах.
// Устаревшие запросы пропускаются до и после вычисления.
type Pool struct {
	dispatcher *Dispatcher
	tasks      chan Task
	workers    int
	wg         sync.WaitGroup

	mu      sync.RWMutex
	stopped bool
}

func NewPool(d *Dispatcher, cfg Config) *Pool {
	return &Pool{
		dispatcher: d,
		tasks:      make(chan Task, cfg.QueueSize),
		workers:    cfg.Workers,
	}
}

// Start запускает воркеры. Они завершаются по отмене ctx.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.loop(ctx, i)
	}
	go func() {
		<-ctx.Done()
		p.mu.Lock()
		p.stopped = true
		p.mu.Unlock()
	}()
}

// Wait блокируется до выхода всех воркеров.
func (p *Pool) Wait() {
	p.wg.Wait()
}

// Submit ставит задачу в очередь не блокируясь.
func (p *Pool) Submit(t Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return ErrPoolStopped
	}
	select {
	case p.tasks <- t:
		return nil
	default:
		return ErrQueueFull
	}
}

// Pending - сколько задач ждет в очереди
func (p *Pool) Pending() int {
	return len(p.tasks)
}

func (p *Pool) loop(ctx context.Context, n int) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-p.tasks:
			p.run(t, n)
		}
	}
}

func (p *Pool) run(t Task, worker int) {
	req := t.Request
	taskLogger := logger.Log.WithFields(logrus.Fields{
		"component":  "worker_pool",
		"worker":     worker,
		"session":    t.SessionID,
		"op":         req.Op,
		"generation": req.Generation,
	})

	if t.Tracker != nil && t.Tracker.IsStale(req.Op, req.Generation) {
		taskLogger.Debug("Skipping stale request.")
		return
	}

	resp := p.dispatcher.Handle(req)

	if t.Tracker != nil && t.Tracker.IsStale(req.Op, req.Generation) {
		taskLogger.Debug("Dropping stale result.")
		return
	}
	if t.Deliver != nil {
		t.Deliver(resp)
	}
}
