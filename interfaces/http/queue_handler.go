package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"adlytics/infrastructure/realtime"
	"adlytics/usecase"
)

type IQueueHandler interface {
	Status(c *gin.Context)
	Stream(c *gin.Context)
}

type QueueHandler struct {
	poller usecase.IQueuePoller
	hub    *realtime.Hub
}

func NewQueueHandler(poller usecase.IQueuePoller, hub *realtime.Hub) IQueueHandler {
	return &QueueHandler{poller: poller, hub: hub}
}

// Status serves the last snapshot without touching the backend; the
// poller keeps it fresh on its own cadence.
func (queueHandler *QueueHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, queueHandler.poller.Snapshot())
}

// Stream is the SSE feed of queue, upload and connect events. Holding
// the stream open counts as watching the queue, which keeps the
// poller active; closing the last stream lets it idle.
func (queueHandler *QueueHandler) Stream(c *gin.Context) {
	unwatch := queueHandler.poller.Watch()
	defer unwatch()
	queueHandler.hub.Serve(c)
}
