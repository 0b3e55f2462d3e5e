package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"adlytics/domain/model"
	"adlytics/domain/repository"
	"adlytics/infrastructure/logger"
	"adlytics/infrastructure/realtime"
)

// IQueuePoller keeps a snapshot of the backend's analysis queue
// fresh on a fixed cadence while at least one watcher is attached.
type IQueuePoller interface {
	Run(ctx context.Context) error
	RefreshNow(ctx context.Context)
	Snapshot() model.QueueSnapshot
	Watch() func()
}

type queuePoller struct {
	uploadAPI repository.IUploadAPI
	hub       *realtime.Hub
	interval  time.Duration

	inFlight atomic.Bool
	watchers atomic.Int64

	mu       sync.RWMutex
	snapshot model.QueueSnapshot
}

func NewQueuePoller(uploadAPI repository.IUploadAPI, hub *realtime.Hub, interval time.Duration) IQueuePoller {
	return &queuePoller{uploadAPI: uploadAPI, hub: hub, interval: interval}
}

// Run ticks until the context is cancelled. Each tick fetches in its
// own goroutine; a tick that fires while the previous fetch is still
// in flight is skipped so slow backends never stack requests.
func (p *queuePoller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	logger.GetLogger().WithField("interval", p.interval.String()).Info("Queue poller started")
	for {
		select {
		case <-ctx.Done():
			logger.GetLogger().Info("Queue poller stopped")
			return ctx.Err()
		case <-ticker.C:
			if p.watchers.Load() == 0 {
				continue
			}
			if !p.inFlight.CompareAndSwap(false, true) {
				logger.GetLogger().Debug("Skipping poll tick, previous fetch still in flight")
				continue
			}
			go func() {
				defer p.inFlight.Store(false)
				p.fetch(ctx)
			}()
		}
	}
}

// RefreshNow fetches immediately, outside the ticker cadence. Used
// right after an upload is accepted so the queue reflects it without
// waiting a full interval.
func (p *queuePoller) RefreshNow(ctx context.Context) {
	if !p.inFlight.CompareAndSwap(false, true) {
		return
	}
	defer p.inFlight.Store(false)
	p.fetch(ctx)
}

// fetch replaces the snapshot wholesale; a failed fetch leaves the
// previous snapshot in place and is only logged.
func (p *queuePoller) fetch(ctx context.Context) {
	status, err := p.uploadAPI.QueueStatus(ctx)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Queue status fetch failed")
		return
	}

	jobs := make([]model.AnalysisJob, 0, len(status.Analyses))
	for _, a := range status.Analyses {
		jobs = append(jobs, model.AnalysisJob{
			ID:          a.ID,
			Filename:    a.Name(),
			Status:      model.JobStatus(a.Status),
			CreatedAt:   a.CreatedAt,
			CompletedAt: a.CompletedAt,
		})
	}
	snap := model.QueueSnapshot{
		QueueCount: status.QueueCount,
		Jobs:       jobs,
		FetchedAt:  time.Now(),
	}

	p.mu.Lock()
	p.snapshot = snap
	p.mu.Unlock()
	p.hub.BroadcastQueue(snap)
}

func (p *queuePoller) Snapshot() model.QueueSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot
}

// Watch registers a consumer; polling is paused while nobody
// watches. The returned func releases the registration.
func (p *queuePoller) Watch() func() {
	p.watchers.Add(1)
	var once sync.Once
	return func() {
		once.Do(func() { p.watchers.Add(-1) })
	}
}
