package handlers

import (
	"net/http"

	"clinichub/models"
	"clinichub/services/chat"
	"clinichub/utils"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	Chat chat.ChatService
}

func NewChatHandler(cs chat.ChatService) *ChatHandler {
	return &ChatHandler{Chat: cs}
}

// TokenHandler handles GET /api/chat/token.
func (h *ChatHandler) TokenHandler(c *gin.Context) {
	tok, err := h.Chat.Token(c.Request.Context(), actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, tok)
}

// EnsureChannelHandler handles POST /api/chat/channels.
func (h *ChatHandler) EnsureChannelHandler(c *gin.Context) {
	var req models.ChannelRequest
	if !bindJSON(c, &req) {
		return
	}
	ch, err := h.Chat.EnsureChannel(c.Request.Context(), actor(c), req.AppointmentID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, ch)
}

// ChannelsHandler handles GET /api/chat/channels.
func (h *ChatHandler) ChannelsHandler(c *gin.Context) {
	list, err := h.Chat.Channels(c.Request.Context(), actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}
