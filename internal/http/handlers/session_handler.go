// README: Session history handler.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"atlas/internal/modules/conversation"
)

type SessionHandler struct {
	turns conversation.Log
}

func NewSessionHandler(turns conversation.Log) *SessionHandler {
	return &SessionHandler{turns: turns}
}

// History handles GET /api/sessions/:id/history.
func (h *SessionHandler) History(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing session id")
		return
	}

	n := 0
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			writeError(c, http.StatusBadRequest, "invalid limit")
			return
		}
		n = v
	}

	turns, err := h.turns.Recent(c.Request.Context(), id, n)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if turns == nil {
		turns = []conversation.Turn{}
	}
	writeJSON(c, http.StatusOK, map[string]any{"session_id": id, "turns": turns})
}
