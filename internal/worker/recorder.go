package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/courtside/tennis-stats-api/internal/models"
)

var (
	predictionsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tennis_predictions_recorded_total",
		Help: "Total number of predictions written to ClickHouse",
	})

	predictionsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tennis_predictions_dropped_total",
		Help: "Total number of predictions dropped because the recorder queue was full",
	})

	recorderBatchErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tennis_prediction_batch_errors_total",
		Help: "Total number of prediction batches that failed to send",
	})
)

const predictionsSchema = `
CREATE TABLE IF NOT EXISTS predictions (
	generated_at       DateTime64(3),
	player1            String,
	player2            String,
	surface            LowCardinality(String),
	favorite           String,
	win_probability_p1 Float64,
	win_probability_p2 Float64,
	confidence         Float64,
	player1_scope      LowCardinality(String),
	player2_scope      LowCardinality(String)
) ENGINE = MergeTree()
ORDER BY (generated_at, player1, player2)`

const insertPredictions = `INSERT INTO predictions (
	generated_at, player1, player2, surface, favorite,
	win_probability_p1, win_probability_p2, confidence,
	player1_scope, player2_scope
)`

// RecorderConfig configures the prediction recorder
type RecorderConfig struct {
	Conn          driver.Conn
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
	Logger        *zap.Logger
}

// PredictionRecorder writes predictions to ClickHouse in batches. Record
// never blocks the caller; predictions are dropped when the queue is full.
type PredictionRecorder struct {
	config RecorderConfig
	queue  chan *models.Prediction
	wg     sync.WaitGroup
	logger *zap.SugaredLogger

	mu      sync.RWMutex
	stopped bool
}

// NewPredictionRecorder creates a recorder. Call Start before recording.
func NewPredictionRecorder(cfg RecorderConfig) *PredictionRecorder {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1000
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = 5 * time.Second
	}
	return &PredictionRecorder{
		config: cfg,
		queue:  make(chan *models.Prediction, cfg.QueueSize),
		logger: cfg.Logger.Sugar(),
	}
}

// EnsureSchema creates the predictions table if needed.
func (r *PredictionRecorder) EnsureSchema(ctx context.Context) error {
	if err := r.config.Conn.Exec(ctx, predictionsSchema); err != nil {
		return fmt.Errorf("create predictions table: %w", err)
	}
	return nil
}

// Start launches the flushing goroutine.
func (r *PredictionRecorder) Start() {
	r.wg.Add(1)
	go r.run()
}

// Stop flushes anything queued and waits for the flusher to exit.
func (r *PredictionRecorder) Stop() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	close(r.queue)
	r.mu.Unlock()

	r.wg.Wait()
}

// Record queues a prediction for writing.
func (r *PredictionRecorder) Record(p *models.Prediction) {
	if p == nil {
		return
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.stopped {
		predictionsDropped.Inc()
		return
	}

	select {
	case r.queue <- p:
	default:
		predictionsDropped.Inc()
		r.logger.Warnw("Prediction queue full, dropping", "player1", p.Player1, "player2", p.Player2)
	}
}

func (r *PredictionRecorder) run() {
	defer r.wg.Done()

	batch := make([]*models.Prediction, 0, r.config.BatchSize)
	ticker := time.NewTicker(r.config.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case p, ok := <-r.queue:
			if !ok {
				if len(batch) > 0 {
					r.flush(batch)
				}
				return
			}
			batch = append(batch, p)
			if len(batch) >= r.config.BatchSize {
				r.flush(batch)
				batch = batch[:0]
			}

		case <-ticker.C:
			if len(batch) > 0 {
				r.flush(batch)
				batch = batch[:0]
			}
		}
	}
}

func (r *PredictionRecorder) flush(preds []*models.Prediction) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	b, err := r.config.Conn.PrepareBatch(ctx, insertPredictions)
	if err != nil {
		r.logger.Errorw("Failed to prepare prediction batch", "error", err)
		recorderBatchErrors.Inc()
		return
	}

	for _, p := range preds {
		surface := ""
		if p.Surface != nil {
			surface = string(*p.Surface)
		}
		if err := b.Append(
			p.GeneratedAt,
			p.Player1,
			p.Player2,
			surface,
			p.Favorite,
			p.WinProbabilityP1,
			p.WinProbabilityP2,
			p.Confidence,
			string(p.Player1Scope),
			string(p.Player2Scope),
		); err != nil {
			r.logger.Warnw("Failed to append prediction", "error", err)
		}
	}

	if err := b.Send(); err != nil {
		r.logger.Errorw("Failed to send prediction batch", "error", err, "size", len(preds))
		recorderBatchErrors.Inc()
		return
	}

	predictionsRecorded.Add(float64(len(preds)))
	r.logger.Debugw("Flushed predictions", "count", len(preds))
}
