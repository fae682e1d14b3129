package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"carenow/services/dashboard"
	"carenow/utils"
)

// DashboardHandler serves the combined partner dashboard and its live stream.
type DashboardHandler struct {
	Dashboard dashboard.DashboardService
	Logger    *zap.Logger
	upgrader  websocket.Upgrader
}

func NewDashboardHandler(dash dashboard.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		Dashboard: dash,
		Logger:    logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin is enforced by the CORS layer; the socket itself is
			// guarded by the partner auth middleware.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *DashboardHandler) GetDashboardHandler(c *gin.Context) {
	state, err := h.Dashboard.Load(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Logger.Error("dashboard load failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load dashboard", err.Error())
		return
	}
	c.JSON(http.StatusOK, state)
}

// streamEnvelope tags each live update with its variant so clients can
// dispatch without sniffing fields.
type streamEnvelope struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

func envelope(u dashboard.Update) streamEnvelope {
	switch v := u.(type) {
	case dashboard.JobUpdate:
		return streamEnvelope{Type: "job", Payload: v.Job}
	case dashboard.EarningsUpdate:
		return streamEnvelope{Type: "earnings", Payload: v.Earnings}
	case dashboard.AvailabilityUpdate:
		return streamEnvelope{Type: "availability", Payload: v.Availability}
	default:
		return streamEnvelope{Type: "unknown", Payload: u}
	}
}

// StreamDashboardHandler upgrades to a WebSocket and pushes the initial
// dashboard state followed by live updates until the client disconnects.
func (h *DashboardHandler) StreamDashboardHandler(c *gin.Context) {
	partnerID := c.Param("id")

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	// Cancelled when the client goes away so the change streams behind Watch
	// are torn down instead of outliving the connection.
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	state, err := h.Dashboard.Load(ctx, partnerID)
	if err != nil {
		h.Logger.Error("dashboard load failed", zap.Error(err))
		conn.WriteJSON(streamEnvelope{Type: "error", Payload: "failed to load dashboard"})
		return
	}
	if err := conn.WriteJSON(streamEnvelope{Type: "snapshot", Payload: state}); err != nil {
		return
	}

	updates, err := h.Dashboard.Watch(ctx, partnerID)
	if err != nil {
		h.Logger.Error("dashboard watch failed", zap.Error(err))
		conn.WriteJSON(streamEnvelope{Type: "error", Payload: "failed to open live stream"})
		return
	}

	// Drain reads so pings and the close handshake are processed. A read error
	// means the client is gone; cancelling unblocks the update loop below.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for u := range updates {
		conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteJSON(envelope(u)); err != nil {
			h.Logger.Debug("dashboard stream closed", zap.String("partnerId", partnerID), zap.Error(err))
			return
		}
	}
}
