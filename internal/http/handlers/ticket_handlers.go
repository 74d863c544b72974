package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dj-idk/gym-backend/domain"
	"github.com/dj-idk/gym-backend/internal/services"
)

// TicketHandlers handles the support ticket endpoints.
type TicketHandlers struct {
	ticketSvc *services.TicketService
}

func NewTicketHandlers(ticketSvc *services.TicketService) *TicketHandlers {
	return &TicketHandlers{ticketSvc: ticketSvc}
}

type TicketRequest struct {
	Subject  string                `json:"subject" binding:"required"`
	Body     string                `json:"body"`
	Category string                `json:"category"`
	Priority domain.TicketPriority `json:"priority"`
}

type TicketUpdateRequest struct {
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body"`
}

type TicketResponseRequest struct {
	Body string `json:"body" binding:"required"`
}

type TicketAssignRequest struct {
	AssigneeID uuid.UUID `json:"assignee_id" binding:"required"`
}

// Open files a new ticket
func (h *TicketHandlers) Open(c *gin.Context) {
	var req TicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	ticket, err := h.ticketSvc.Open(c.Request.Context(), currentUserID(c), req.Subject, req.Body, req.Category, req.Priority)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": ticket})
}

// Update edits a ticket that is not closed yet. Owner only.
func (h *TicketHandlers) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req TicketUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	ticket, err := h.ticketSvc.Update(c.Request.Context(), id, currentUserID(c), req.Subject, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ticket})
}

// Get returns a ticket with its thread
func (h *TicketHandlers) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ticket, err := h.ticketSvc.Get(c.Request.Context(), id, currentUserID(c), isStaff(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ticket})
}

// Respond appends to a ticket thread
func (h *TicketHandlers) Respond(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req TicketResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	response, err := h.ticketSvc.Respond(c.Request.Context(), id, currentUserID(c), req.Body, isStaff(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": response})
}

// Assign hands a ticket to a support account. Staff only.
func (h *TicketHandlers) Assign(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req TicketAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	ticket, err := h.ticketSvc.Assign(c.Request.Context(), id, req.AssigneeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ticket})
}

// Close ends a ticket
func (h *TicketHandlers) Close(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ticket, err := h.ticketSvc.Close(c.Request.Context(), id, currentUserID(c), isStaff(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ticket})
}

// Reopen puts a closed ticket back into the queue
func (h *TicketHandlers) Reopen(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ticket, err := h.ticketSvc.Reopen(c.Request.Context(), id, currentUserID(c), isStaff(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ticket})
}

// Escalate bumps a ticket's priority. Staff only.
func (h *TicketHandlers) Escalate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ticket, err := h.ticketSvc.Escalate(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ticket})
}

// ListMine pages over the caller's tickets
func (h *TicketHandlers) ListMine(c *gin.Context) {
	limit, skip := pageParams(c)
	status := domain.TicketStatus(c.Query("status"))
	tickets, total, err := h.ticketSvc.ListMine(c.Request.Context(), currentUserID(c), status, limit, skip)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listEnvelope(tickets, total, limit, skip))
}

// ListAll pages over every ticket. Staff only.
func (h *TicketHandlers) ListAll(c *gin.Context) {
	limit, skip := pageParams(c)
	status := domain.TicketStatus(c.Query("status"))

	var assigneeID *uuid.UUID
	if raw := c.Query("assignee_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "malformed assignee_id"})
			return
		}
		assigneeID = &id
	}

	tickets, total, err := h.ticketSvc.ListAll(c.Request.Context(), status, assigneeID, limit, skip)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listEnvelope(tickets, total, limit, skip))
}
