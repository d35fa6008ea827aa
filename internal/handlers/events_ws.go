package handlers

import (
	"net/http"
	"time"

	"github.com/AnshRaj112/mindcare-backend/internal/middleware"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	eventsBuffer     = 32
	wsWriteWait      = 10 * time.Second
	wsPongWait       = 90 * time.Second
	wsPingPeriod     = 30 * time.Second
	wsReadLimitBytes = 4 * 1024
)

var eventsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origins are already filtered by the CORS layer for browser clients.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// EventsWebSocket handles GET /ws/events. It streams change notifications as
// JSON to any signed-in user. Events a slow client cannot take are dropped;
// the client re-fetches on the next event.
func (h *Handler) EventsWebSocket(w http.ResponseWriter, r *http.Request) {
	user, err := h.identity.Authenticate(r.Context(), middleware.BearerToken(r))
	if err != nil {
		http.Error(w, "invalid session token", http.StatusUnauthorized)
		return
	}

	conn, err := eventsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	sub := h.bus.Subscribe(eventsBuffer)
	defer sub.Close()
	h.log.Debug("events stream opened", zap.String("user_id", user.ID))

	// Reader: only pongs and close frames are expected.
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadLimit(wsReadLimitBytes)
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(wsPongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()
	for {
		select {
		case ev, ok := <-sub.C:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return
			}
		case <-done:
			return
		case <-r.Context().Done():
			return
		}
	}
}
