package handler

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"wearable-server/internal/auth"
	"wearable-server/internal/hub"
)

// WebSocketHandler upgrades requests on the shared listening port into live
// observer connections. By default the endpoint is open: any party that can
// reach it joins the shared telemetry stream. RequireToken gates the
// handshake behind a valid token for deployments that want it closed.
type WebSocketHandler struct {
	Hub          *hub.Hub
	TokenConfig  auth.TokenConfig
	RequireToken bool
	Logger       *zap.Logger
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsWriter serializes writes to one connection: gorilla supports a single
// concurrent writer, and concurrent publishes may target the same observer.
type wsWriter struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (w *wsWriter) Write(message []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return w.conn.WriteMessage(websocket.TextMessage, message)
}

func (w *wsWriter) Close() error {
	return w.conn.Close()
}

func (h *WebSocketHandler) Serve(c *gin.Context) {
	if h.RequireToken {
		tokenString := c.Query("token")
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Unauthorized: No token provided"})
			return
		}
		if _, err := auth.VerifyToken(tokenString, h.TokenConfig); err != nil {
			c.JSON(http.StatusForbidden, gin.H{"status": "error", "message": "Forbidden: Invalid or expired token"})
			return
		}
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Logger.Warn("websocket: upgrade failed", zap.Error(err))
		return
	}

	conn := &hub.Connection{Writer: &wsWriter{conn: ws}}
	h.Hub.Register(conn)
	defer func() {
		h.Hub.Unregister(conn)
		_ = ws.Close()
	}()

	const pongWait = 60 * time.Second
	const writeWait = 10 * time.Second
	pingPeriod := (pongWait * 9) / 10

	ws.SetReadLimit(4096)
	ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	done := make(chan struct{})
	defer close(done)

	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				deadline := time.Now().Add(writeWait)
				if err := ws.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
					_ = ws.Close()
					return
				}
			}
		}
	}()

	// Observers only receive. The read loop exists to notice the close.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			return
		}
	}
}
