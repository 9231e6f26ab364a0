// Package worker runs background work off the request path:
// - a bounded pool that refreshes player histories, shedding load when full
// - a batched recorder that writes predictions to ClickHouse
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/courtside/tennis-stats-api/internal/models"
)

// Prometheus metrics
var (
	refreshesQueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tennis_refresh_jobs_queued_total",
		Help: "Total number of refresh jobs accepted",
	})

	refreshesProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tennis_refresh_jobs_processed_total",
		Help: "Total number of refresh jobs completed",
	})

	refreshesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tennis_refresh_jobs_failed_total",
		Help: "Total number of refresh jobs that failed",
	})

	refreshesShed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tennis_refresh_jobs_load_shed_total",
		Help: "Total number of refresh jobs dropped due to load shedding",
	})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tennis_refresh_queue_depth",
		Help: "Current depth of the refresh queue",
	})

	refreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tennis_refresh_job_duration_seconds",
		Help:    "Duration of a single refresh job",
		Buckets: prometheus.DefBuckets,
	})
)

// Refresher refetches and stores a player's history.
type Refresher interface {
	Refresh(ctx context.Context, name string) (*models.PlayerProfile, error)
}

// Job is one player to refresh.
type Job struct {
	Player    string
	Timestamp time.Time
}

// PoolConfig configures the worker pool
type PoolConfig struct {
	WorkerCount int
	QueueSize   int
	JobTimeout  time.Duration
	Refresher   Refresher
	Logger      *zap.Logger
}

// Pool refreshes player histories in the background. A player already
// queued or in flight is not queued again.
type Pool struct {
	config   PoolConfig
	jobQueue chan Job
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *zap.SugaredLogger

	mu      sync.Mutex
	pending map[string]bool
	stopped bool
}

// NewPool creates a new worker pool
func NewPool(cfg PoolConfig) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = 30 * time.Second
	}

	return &Pool{
		config:   cfg,
		jobQueue: make(chan Job, cfg.QueueSize),
		logger:   cfg.Logger.Sugar(),
		pending:  make(map[string]bool),
	}
}

// Start launches the worker goroutines
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	go p.reportQueueDepth()

	p.logger.Infow("Refresh pool started",
		"workers", p.config.WorkerCount,
		"queueSize", p.config.QueueSize,
	)
}

// Stop lets the workers drain the queue and waits for them.
func (p *Pool) Stop() {
	p.logger.Info("Stopping refresh pool...")

	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobQueue)
	p.mu.Unlock()

	p.wg.Wait()
	if p.cancel != nil {
		p.cancel()
	}
	p.logger.Info("Refresh pool stopped")
}

// Enqueue schedules a refresh. It never blocks: when the queue is full or
// the pool is stopped the job is dropped and false is returned.
func (p *Pool) Enqueue(player string) bool {
	key := models.NormalizeName(player)
	if key == "" {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		refreshesShed.Inc()
		return false
	}
	if p.pending[key] {
		return true
	}

	select {
	case p.jobQueue <- Job{Player: player, Timestamp: time.Now()}:
		p.pending[key] = true
		refreshesQueued.Inc()
		return true
	default:
		p.logger.Warnw("Refresh queue full, dropping job", "player", player)
		refreshesShed.Inc()
		return false
	}
}

// WarmToday queues both players of every pairing and returns how many
// jobs were accepted.
func (p *Pool) WarmToday(pairings []models.MatchPairing) int {
	accepted := 0
	for _, m := range pairings {
		for _, name := range []string{m.Player1, m.Player2} {
			if p.Enqueue(name) {
				accepted++
			}
		}
	}
	return accepted
}

// QueueDepth returns current queue size
func (p *Pool) QueueDepth() int {
	return len(p.jobQueue)
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for job := range p.jobQueue {
		p.process(id, job)
	}
}

func (p *Pool) process(id int, job Job) {
	defer func() {
		p.mu.Lock()
		delete(p.pending, models.NormalizeName(job.Player))
		p.mu.Unlock()
	}()
	defer func() {
		if r := recover(); r != nil {
			p.logger.Errorw("Refresh job panic", "worker", id, "player", job.Player, "error", r)
			refreshesFailed.Inc()
		}
	}()

	ctx, cancel := context.WithTimeout(p.ctx, p.config.JobTimeout)
	defer cancel()

	start := time.Now()
	profile, err := p.config.Refresher.Refresh(ctx, job.Player)
	refreshDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		p.logger.Warnw("Refresh job failed", "worker", id, "player", job.Player, "error", err)
		refreshesFailed.Inc()
		return
	}
	p.logger.Debugw("Refresh job done", "worker", id, "player", job.Player,
		"matches", len(profile.Matches), "waited", start.Sub(job.Timestamp))
	refreshesProcessed.Inc()
}

func (p *Pool) reportQueueDepth() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			queueDepth.Set(float64(len(p.jobQueue)))
		case <-p.ctx.Done():
			return
		}
	}
}
