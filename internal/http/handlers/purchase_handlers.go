package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dj-idk/gym-backend/domain"
	"github.com/dj-idk/gym-backend/internal/services"
)

// PurchaseHandlers handles purchase endpoints.
type PurchaseHandlers struct {
	purchaseSvc *services.PurchaseService
}

func NewPurchaseHandlers(purchaseSvc *services.PurchaseService) *PurchaseHandlers {
	return &PurchaseHandlers{purchaseSvc: purchaseSvc}
}

type PurchaseRequest struct {
	ServiceID uuid.UUID `json:"service_id" binding:"required"`
}

// Create opens a pending purchase
func (h *PurchaseHandlers) Create(c *gin.Context) {
	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	purchase, err := h.purchaseSvc.Create(c.Request.Context(), currentUserID(c), req.ServiceID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": purchase})
}

// Pay settles a pending purchase
func (h *PurchaseHandlers) Pay(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	purchase, err := h.purchaseSvc.Pay(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": purchase})
}

// Cancel aborts a pending purchase
func (h *PurchaseHandlers) Cancel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	purchase, err := h.purchaseSvc.Cancel(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": purchase})
}

// Refund reverses a paid purchase. Staff only.
func (h *PurchaseHandlers) Refund(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	purchase, err := h.purchaseSvc.Refund(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": purchase})
}

// Get returns one purchase
func (h *PurchaseHandlers) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	purchase, err := h.purchaseSvc.Get(c.Request.Context(), id, currentUserID(c), isStaff(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": purchase})
}

// ListMine pages over the caller's purchases
func (h *PurchaseHandlers) ListMine(c *gin.Context) {
	limit, skip := pageParams(c)
	status := domain.PurchaseStatus(c.Query("status"))
	purchases, total, err := h.purchaseSvc.ListMine(c.Request.Context(), currentUserID(c), status, limit, skip)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listEnvelope(purchases, total, limit, skip))
}

// ListAll pages over every purchase. Staff only.
func (h *PurchaseHandlers) ListAll(c *gin.Context) {
	limit, skip := pageParams(c)
	status := domain.PurchaseStatus(c.Query("status"))
	purchases, total, err := h.purchaseSvc.ListAll(c.Request.Context(), status, limit, skip)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listEnvelope(purchases, total, limit, skip))
}
