package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dj-idk/gym-backend/internal/services"
)

// MessageHandlers handles the direct messaging endpoints.
type MessageHandlers struct {
	messageSvc *services.MessageService
}

func NewMessageHandlers(messageSvc *services.MessageService) *MessageHandlers {
	return &MessageHandlers{messageSvc: messageSvc}
}

type MessageRequest struct {
	RecipientID uuid.UUID  `json:"recipient_id" binding:"required"`
	ParentID    *uuid.UUID `json:"parent_id"`
	Subject     string     `json:"subject"`
	Body        string     `json:"body" binding:"required"`
}

// Send delivers a direct message
func (h *MessageHandlers) Send(c *gin.Context) {
	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	msg, err := h.messageSvc.Send(c.Request.Context(), currentUserID(c), req.RecipientID, req.ParentID, req.Subject, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": msg})
}

// Inbox pages over received messages
func (h *MessageHandlers) Inbox(c *gin.Context) {
	limit, skip := pageParams(c)
	unreadOnly := c.Query("unread") == "true"
	msgs, total, err := h.messageSvc.Inbox(c.Request.Context(), currentUserID(c), unreadOnly, limit, skip)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listEnvelope(msgs, total, limit, skip))
}

// Sent pages over sent messages
func (h *MessageHandlers) Sent(c *gin.Context) {
	limit, skip := pageParams(c)
	msgs, total, err := h.messageSvc.Sent(c.Request.Context(), currentUserID(c), limit, skip)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listEnvelope(msgs, total, limit, skip))
}

// Thread returns one conversation
func (h *MessageHandlers) Thread(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	msgs, err := h.messageSvc.Thread(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": msgs})
}

// MarkRead flags a received message as read
func (h *MessageHandlers) MarkRead(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.messageSvc.MarkRead(c.Request.Context(), id, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Marked as read."}})
}

// UnreadCount returns the caller's unread total
func (h *MessageHandlers) UnreadCount(c *gin.Context) {
	count, err := h.messageSvc.UnreadCount(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"unread": count}})
}
