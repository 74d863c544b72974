package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dj-idk/gym-backend/internal/services"
)

// CatalogHandlers handles the service catalog endpoints.
type CatalogHandlers struct {
	catalogSvc *services.CatalogService
}

func NewCatalogHandlers(catalogSvc *services.CatalogService) *CatalogHandlers {
	return &CatalogHandlers{catalogSvc: catalogSvc}
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type ServiceRequest struct {
	CategoryID   uuid.UUID `json:"category_id" binding:"required"`
	Name         string    `json:"name" binding:"required"`
	Description  string    `json:"description"`
	Price        int64     `json:"price"`
	DurationDays int       `json:"duration_days"`
	Capacity     int       `json:"capacity"`
}

type ServiceUpdateRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Price        *int64  `json:"price"`
	DurationDays *int    `json:"duration_days"`
	Capacity     *int    `json:"capacity"`
	IsActive     *bool   `json:"is_active"`
}

// CreateCategory adds a catalog category. Admin only.
func (h *CatalogHandlers) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	category, err := h.catalogSvc.CreateCategory(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": category})
}

// ListCategories returns all categories
func (h *CatalogHandlers) ListCategories(c *gin.Context) {
	categories, err := h.catalogSvc.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": categories})
}

// UpdateCategory edits a category. Admin only.
func (h *CatalogHandlers) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	category, err := h.catalogSvc.UpdateCategory(c.Request.Context(), id, req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": category})
}

// DeleteCategory removes an empty category. Admin only.
func (h *CatalogHandlers) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.catalogSvc.DeleteCategory(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Category deleted."}})
}

// CreateService adds an offering. Admin only.
func (h *CatalogHandlers) CreateService(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	service, err := h.catalogSvc.CreateService(c.Request.Context(), req.CategoryID,
		req.Name, req.Description, req.Price, req.DurationDays, req.Capacity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": service})
}

// ListServices returns offerings, active only for members
func (h *CatalogHandlers) ListServices(c *gin.Context) {
	limit, skip := pageParams(c)

	var categoryID *uuid.UUID
	if raw := c.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "malformed category_id"})
			return
		}
		categoryID = &id
	}

	includeInactive := isStaff(c) && c.Query("include_inactive") == "true"
	services, total, err := h.catalogSvc.ListServices(c.Request.Context(), categoryID, includeInactive, limit, skip)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listEnvelope(services, total, limit, skip))
}

// GetService returns one offering
func (h *CatalogHandlers) GetService(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	service, err := h.catalogSvc.GetService(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": service})
}

// UpdateService edits an offering. Admin only.
func (h *CatalogHandlers) UpdateService(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req ServiceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	service, err := h.catalogSvc.UpdateService(c.Request.Context(), id, services.ServiceUpdate{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		DurationDays: req.DurationDays,
		Capacity:     req.Capacity,
		IsActive:     req.IsActive,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": service})
}

// DeleteService removes an offering. Admin only.
func (h *CatalogHandlers) DeleteService(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.catalogSvc.DeleteService(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Service deleted."}})
}
