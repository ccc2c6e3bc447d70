package web

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/KirkDiggler/pokedex-api/internal/errors"
	"github.com/KirkDiggler/pokedex-api/internal/orchestrators/lookup"
)

// ws streams session events until the client disconnects. The current
// snapshot is sent first. The hub owns every write to the connection.
func (h *Handler) ws(c *gin.Context) {
	sessionID := strings.TrimSpace(c.Query("session"))
	if sessionID == "" {
		if cookie, err := c.Cookie(SessionCookie); err == nil {
			sessionID = cookie
		}
	}
	if sessionID == "" {
		h.writeError(c, errors.InvalidArgument("session is required"))
		return
	}

	out, err := h.service.GetSession(c.Request.Context(), &lookup.GetSessionInput{SessionID: sessionID})
	if err != nil {
		h.writeError(c, err)
		return
	}

	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	if err := h.hub.Subscribe(sessionID, ws, out.Session); err != nil {
		h.logger.Warn("websocket subscribe failed", "session_id", sessionID, "error", err)
		_ = ws.Close()
		return
	}
	defer h.hub.Unsubscribe(sessionID, ws)

	// Clients only listen; reading detects the close
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}
}
