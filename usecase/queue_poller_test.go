package usecase_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"adlytics/domain/dto"
	"adlytics/domain/model"
	"adlytics/infrastructure/realtime"
	"adlytics/usecase"
)

func TestQueuePoller_RefreshNow(t *testing.T) {
	mockUploadAPI := new(MockUploadAPI)

	mockUploadAPI.On("QueueStatus", mock.Anything).
		Return(&dto.QueueStatusResponse{
			QueueCount: 2,
			Analyses: []dto.AnalysisDTO{
				{ID: 1, Filename: "jan.csv", Status: "processing"},
				{ID: 2, CSVFilename: "feb.csv", Status: "pending"},
			},
		}, nil).
		Once()

	poller := usecase.NewQueuePoller(mockUploadAPI, realtime.NewHub(), time.Second)
	poller.RefreshNow(context.Background())

	snap := poller.Snapshot()
	assert.Equal(t, 2, snap.QueueCount)
	require.Len(t, snap.Jobs, 2)
	assert.Equal(t, "jan.csv", snap.Jobs[0].Filename)
	assert.Equal(t, "feb.csv", snap.Jobs[1].Filename)
	assert.Equal(t, model.JobPending, snap.Jobs[1].Status)
	assert.False(t, snap.FetchedAt.IsZero())
	mockUploadAPI.AssertExpectations(t)
}

func TestQueuePoller_FailedFetchKeepsSnapshot(t *testing.T) {
	mockUploadAPI := new(MockUploadAPI)

	mockUploadAPI.On("QueueStatus", mock.Anything).
		Return(&dto.QueueStatusResponse{
			QueueCount: 1,
			Analyses:   []dto.AnalysisDTO{{ID: 1, Filename: "jan.csv", Status: "processing"}},
		}, nil).
		Once()
	mockUploadAPI.On("QueueStatus", mock.Anything).
		Return(nil, model.NetworkError(assert.AnError)).
		Once()

	poller := usecase.NewQueuePoller(mockUploadAPI, realtime.NewHub(), time.Second)
	poller.RefreshNow(context.Background())
	before := poller.Snapshot()

	poller.RefreshNow(context.Background())
	after := poller.Snapshot()

	assert.Equal(t, before, after)
	mockUploadAPI.AssertExpectations(t)
}

func TestQueuePoller_SkipsOverlappingTicks(t *testing.T) {
	mockUploadAPI := new(MockUploadAPI)

	var calls atomic.Int64
	release := make(chan struct{})
	mockUploadAPI.On("QueueStatus", mock.Anything).
		Run(func(args mock.Arguments) {
			calls.Add(1)
			<-release
		}).
		Return(&dto.QueueStatusResponse{}, nil)

	poller := usecase.NewQueuePoller(mockUploadAPI, realtime.NewHub(), 10*time.Millisecond)
	unwatch := poller.Watch()
	defer unwatch()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = poller.Run(ctx)
		close(done)
	}()

	// Many ticks fire while the first fetch is stuck; none may stack.
	time.Sleep(120 * time.Millisecond)
	assert.Equal(t, int64(1), calls.Load())

	close(release)
	cancel()
	<-done
}

func TestQueuePoller_IdlesWithoutWatchers(t *testing.T) {
	mockUploadAPI := new(MockUploadAPI)

	poller := usecase.NewQueuePoller(mockUploadAPI, realtime.NewHub(), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = poller.Run(ctx)
		close(done)
	}()

	time.Sleep(60 * time.Millisecond)
	cancel()
	<-done

	mockUploadAPI.AssertNotCalled(t, "QueueStatus", mock.Anything)
}
