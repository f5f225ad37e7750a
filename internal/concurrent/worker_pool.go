package concurrent

import (
	"context"
	"sync"
	"time"

	"fitplan/internal/domain"
	"fitplan/pkg/logger"
	"fitplan/pkg/metrics"
)

type AuditProcessor = func(entry *domain.AuditLog) error

// WorkerPool, denetim kayıtlarını istek yolundan ayırıp sınırlı sayıda
// işçiyle asenkron yazar. Kuyruk doluyken Submit bloklamaz, işi reddeder.
type WorkerPool struct {
	numWorkers     int
	jobQueue       chan *domain.AuditLog
	processor      AuditProcessor
	wg             sync.WaitGroup
	ctx            context.Context
	cancel         context.CancelFunc
	logger         logger.Logger
	started        bool
	mutex          sync.Mutex
	statsCollector *StatsCollector
}

func NewWorkerPool(numWorkers int, queueSize int, processor AuditProcessor, logger logger.Logger) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())

	return &WorkerPool{
		numWorkers:     numWorkers,
		jobQueue:       make(chan *domain.AuditLog, queueSize),
		processor:      processor,
		ctx:            ctx,
		cancel:         cancel,
		logger:         logger,
		started:        false,
		statsCollector: NewStatsCollector(),
	}
}

func (wp *WorkerPool) Start() {
	wp.mutex.Lock()
	defer wp.mutex.Unlock()

	if wp.started {
		return
	}

	wp.logger.Info("Denetim işçi havuzu başlatılıyor", map[string]interface{}{
		"num_workers": wp.numWorkers,
		"queue_size":  cap(wp.jobQueue),
	})

	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		workerID := i
		go func() {
			defer wp.wg.Done()
			wp.worker(workerID)
		}()
	}

	wp.started = true
	metrics.UpdateAuditQueueStats(len(wp.jobQueue), wp.numWorkers)
}

func (wp *WorkerPool) Stop() {
	wp.mutex.Lock()
	if !wp.started {
		wp.mutex.Unlock()
		return
	}
	wp.started = false
	wp.mutex.Unlock()

	wp.logger.Info("Denetim işçi havuzu durduruluyor", map[string]interface{}{})
	close(wp.jobQueue)
	wp.wg.Wait()
	wp.cancel()
	metrics.UpdateAuditQueueStats(0, 0)
}

func (wp *WorkerPool) Submit(entry *domain.AuditLog) bool {
	wp.mutex.Lock()
	if !wp.started {
		wp.mutex.Unlock()
		return false
	}
	wp.mutex.Unlock()

	// Non-blocking send
	select {
	case wp.jobQueue <- entry:
		wp.statsCollector.IncrementSubmitted()
		metrics.UpdateAuditQueueStats(len(wp.jobQueue), wp.numWorkers)
		return true
	default:
		wp.statsCollector.IncrementRejected()
		wp.logger.Warn("Denetim kuyruğu dolu, kayıt reddedildi", map[string]interface{}{
			"entity_id": entry.EntityID,
			"action":    entry.Action,
		})
		return false
	}
}

func (wp *WorkerPool) worker(id int) {
	wp.logger.Debug("Denetim işçisi başlatıldı", map[string]interface{}{"worker_id": id})

	for entry := range wp.jobQueue {
		startTime := time.Now()

		err := wp.processor(entry)

		processingTime := time.Since(startTime)
		metrics.UpdateAuditQueueStats(len(wp.jobQueue), wp.numWorkers)

		if err != nil {
			wp.statsCollector.IncrementFailed()
			wp.logger.Error("Denetim kaydı yazılamadı", map[string]interface{}{
				"worker_id":       id,
				"entity_id":       entry.EntityID,
				"action":          entry.Action,
				"error":           err.Error(),
				"processing_time": processingTime.String(),
			})
		} else {
			wp.statsCollector.IncrementCompleted()
			wp.statsCollector.RecordProcessingTime(processingTime)
		}
	}

	wp.logger.Debug("Denetim işçisi durduruldu", map[string]interface{}{"worker_id": id})
}

func (wp *WorkerPool) GetStats() Stats {
	return wp.statsCollector.GetStats()
}

func (wp *WorkerPool) QueueLength() int {
	return len(wp.jobQueue)
}

func (wp *WorkerPool) QueueCapacity() int {
	return cap(wp.jobQueue)
}
