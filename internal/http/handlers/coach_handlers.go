package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dj-idk/gym-backend/internal/services"
)

// CoachHandlers handles coaching endpoints.
type CoachHandlers struct {
	coachSvc *services.CoachService
}

func NewCoachHandlers(coachSvc *services.CoachService) *CoachHandlers {
	return &CoachHandlers{coachSvc: coachSvc}
}

type PromoteCoachRequest struct {
	UserID          uuid.UUID `json:"user_id" binding:"required"`
	Specialization  string    `json:"specialization"`
	Bio             string    `json:"bio"`
	ExperienceYears int       `json:"experience_years"`
}

type CoachProfileRequest struct {
	Specialization  string `json:"specialization"`
	Bio             string `json:"bio"`
	ExperienceYears int    `json:"experience_years"`
}

type EngageRequest struct {
	ClientID uuid.UUID `json:"client_id" binding:"required"`
	Days     int       `json:"days" binding:"required"`
}

type ExtendRequest struct {
	Days int `json:"days" binding:"required"`
}

type ProgramUpdateRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type ProgramRequest struct {
	ClientID    *uuid.UUID `json:"client_id"`
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
}

// Promote turns an account into a coach. Admin only.
func (h *CoachHandlers) Promote(c *gin.Context) {
	var req PromoteCoachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	coach, err := h.coachSvc.Promote(c.Request.Context(), req.UserID, req.Specialization, req.Bio, req.ExperienceYears)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": coach})
}

// List returns active coaches
func (h *CoachHandlers) List(c *gin.Context) {
	limit, skip := pageParams(c)
	coaches, total, err := h.coachSvc.List(c.Request.Context(), c.Query("specialization"), limit, skip)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listEnvelope(coaches, total, limit, skip))
}

// Get returns one coach card
func (h *CoachHandlers) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	coach, err := h.coachSvc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": coach})
}

// UpdateProfile edits the caller's coach card. Coach only.
func (h *CoachHandlers) UpdateProfile(c *gin.Context) {
	var req CoachProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	coach, err := h.coachSvc.UpdateProfile(c.Request.Context(), currentUserID(c), req.Specialization, req.Bio, req.ExperienceYears)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": coach})
}

// Engage opens an engagement with a client. Coach only.
func (h *CoachHandlers) Engage(c *gin.Context) {
	var req EngageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	coach, err := h.coachSvc.GetByUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	rel, err := h.coachSvc.Engage(c.Request.Context(), coach.ID, req.ClientID, req.Days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": rel})
}

// Terminate ends an engagement early
func (h *CoachHandlers) Terminate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.coachSvc.Terminate(c.Request.Context(), id, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Engagement terminated."}})
}

// Extend pushes an engagement's end date out
func (h *CoachHandlers) Extend(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req ExtendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	rel, err := h.coachSvc.Extend(c.Request.Context(), id, currentUserID(c), req.Days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rel})
}

// Clients lists the caller's client engagements. Coach only.
func (h *CoachHandlers) Clients(c *gin.Context) {
	coach, err := h.coachSvc.GetByUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	limit, skip := pageParams(c)
	rels, total, err := h.coachSvc.ClientsOf(c.Request.Context(), coach.ID, limit, skip)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listEnvelope(rels, total, limit, skip))
}

// MyCoaches lists the caller's coach engagements
func (h *CoachHandlers) MyCoaches(c *gin.Context) {
	limit, skip := pageParams(c)
	rels, total, err := h.coachSvc.CoachesOf(c.Request.Context(), currentUserID(c), limit, skip)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listEnvelope(rels, total, limit, skip))
}

// CreateProgram authors a training plan. Coach only.
func (h *CoachHandlers) CreateProgram(c *gin.Context) {
	var req ProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	program, err := h.coachSvc.CreateProgram(c.Request.Context(), currentUserID(c), req.ClientID, req.Title, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": program})
}

// UpdateProgram edits a plan's text. Its author only.
func (h *CoachHandlers) UpdateProgram(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req ProgramUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	program, err := h.coachSvc.UpdateProgram(c.Request.Context(), id, currentUserID(c), req.Title, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": program})
}

// ArchiveProgram retires a plan. Its author only.
func (h *CoachHandlers) ArchiveProgram(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.coachSvc.ArchiveProgram(c.Request.Context(), id, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Program archived."}})
}

// MyPrograms lists plans authored by the caller. Coach only.
func (h *CoachHandlers) MyPrograms(c *gin.Context) {
	coach, err := h.coachSvc.GetByUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	limit, skip := pageParams(c)
	programs, total, err := h.coachSvc.ProgramsOfCoach(c.Request.Context(), coach.ID, limit, skip)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listEnvelope(programs, total, limit, skip))
}

// AssignedPrograms lists plans assigned to the caller
func (h *CoachHandlers) AssignedPrograms(c *gin.Context) {
	limit, skip := pageParams(c)
	programs, total, err := h.coachSvc.ProgramsOfClient(c.Request.Context(), currentUserID(c), limit, skip)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listEnvelope(programs, total, limit, skip))
}
