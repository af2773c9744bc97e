package handler

import (
	"encoding/json"
	"time"

	"schoolcash/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	streamBufferSize  = 8
	heartbeatInterval = 25 * time.Second
)

type StreamHandler struct {
	register service.RegisterService
}

func NewStreamHandler(register service.RegisterService) *StreamHandler {
	return &StreamHandler{register: register}
}

// Register godoc
// @Summary      Live register snapshots over Server-Sent Events
// @Description  Sends the current snapshot immediately, then one event per
// @Description  recomputation. Heartbeat comments keep proxies from closing
// @Description  the connection.
// @Tags         register
// @Security     BearerAuth
// @Produce      text/event-stream
// @Router       /v1/register/stream [get]
func (h *StreamHandler) Register(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	id, snapshots := h.register.SubscribeSnapshots(streamBufferSize)
	defer h.register.UnsubscribeSnapshots(id)

	// Initial state so the client never renders an empty dashboard.
	h.writeSnapshot(c, h.register.Snapshot(c.Request.Context()))
	c.Writer.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case snapshot, ok := <-snapshots:
			if !ok {
				return
			}
			h.writeSnapshot(c, snapshot)
			c.Writer.Flush()
		case <-heartbeat.C:
			c.Writer.WriteString(": heartbeat\n\n")
			c.Writer.Flush()
		}
	}
}

func (h *StreamHandler) writeSnapshot(c *gin.Context, snapshot interface{}) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		log.Error().Err(err).Msg("marshaling register snapshot for stream")
		return
	}
	c.Writer.WriteString("event: register\ndata: ")
	c.Writer.Write(payload)
	c.Writer.WriteString("\n\n")
}
