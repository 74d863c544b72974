package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dj-idk/gym-backend/domain"
	"github.com/dj-idk/gym-backend/internal/services"
)

// ProfileHandlers handles member profile endpoints.
type ProfileHandlers struct {
	profileSvc *services.ProfileService
}

func NewProfileHandlers(profileSvc *services.ProfileService) *ProfileHandlers {
	return &ProfileHandlers{profileSvc: profileSvc}
}

type ProfileUpdateRequest struct {
	FirstName   *string        `json:"first_name"`
	LastName    *string        `json:"last_name"`
	DateOfBirth *string        `json:"date_of_birth"`
	Gender      *domain.Gender `json:"gender"`
	Bio         *string        `json:"bio"`
	Height      *float64       `json:"height"`
	Weight      *float64       `json:"weight"`
	City        *string        `json:"city"`
	Province    *string        `json:"province"`
	Address     *string        `json:"address"`
	PostalCode  *string        `json:"postal_code"`
}

// Get returns the caller's profile, creating it on first access
func (h *ProfileHandlers) Get(c *gin.Context) {
	profile, err := h.profileSvc.Get(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": profile})
}

// Update applies a partial profile edit
func (h *ProfileHandlers) Update(c *gin.Context) {
	var req ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	profile, err := h.profileSvc.Update(c.Request.Context(), currentUserID(c), services.ProfileUpdate{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
		Bio:         req.Bio,
		Height:      req.Height,
		Weight:      req.Weight,
		City:        req.City,
		Province:    req.Province,
		Address:     req.Address,
		PostalCode:  req.PostalCode,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": profile})
}

// UploadPhoto accepts a multipart photo upload
func (h *ProfileHandlers) UploadPhoto(c *gin.Context) {
	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "photo file is required"})
		return
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer src.Close()

	photo, err := h.profileSvc.UploadPhoto(c.Request.Context(), currentUserID(c),
		file.Filename, file.Header.Get("Content-Type"), src, file.Size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": photo})
}

// DeletePhoto removes the caller's profile photo
func (h *ProfileHandlers) DeletePhoto(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.profileSvc.DeletePhoto(c.Request.Context(), currentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Photo deleted."}})
}
