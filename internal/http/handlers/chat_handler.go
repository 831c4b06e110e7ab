// README: Chat handler; one conversational turn per request.
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"atlas/internal/modules/search"
	"atlas/internal/service"
)

// chatTimeout bounds one turn including the model call and any provider
// search.
const chatTimeout = 30 * time.Second

type ChatHandler struct {
	chat *service.ChatService
}

func NewChatHandler(chat *service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

type chatReq struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
	Message   string `json:"message"`
	Currency  string `json:"currency"`
}

type chatResp struct {
	Reply    string          `json:"reply"`
	Intent   string          `json:"intent"`
	Outcome  string          `json:"outcome"`
	Results  *search.Results `json:"results,omitempty"`
	Degraded bool            `json:"degraded,omitempty"`
}

// Handle handles POST /api/chat.
func (h *ChatHandler) Handle(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	req.SessionID = strings.TrimSpace(req.SessionID)
	req.Message = strings.TrimSpace(req.Message)
	if req.SessionID == "" || req.Message == "" {
		writeError(c, http.StatusBadRequest, "missing session_id or message")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), chatTimeout)
	defer cancel()

	res, err := h.chat.Chat(ctx, service.ChatRequest{
		SessionID: req.SessionID,
		UserID:    strings.TrimSpace(req.UserID),
		Message:   req.Message,
		Currency:  strings.ToUpper(strings.TrimSpace(req.Currency)),
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	writeJSON(c, http.StatusOK, chatResp{
		Reply:    res.Reply,
		Intent:   res.Intent,
		Outcome:  res.Outcome,
		Results:  res.Results,
		Degraded: res.Degraded,
	})
}
