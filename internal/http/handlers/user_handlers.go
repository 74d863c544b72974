package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dj-idk/gym-backend/domain"
	"github.com/dj-idk/gym-backend/internal/services"
)

// UserHandlers handles account management endpoints.
type UserHandlers struct {
	userSvc *services.UserService
}

func NewUserHandlers(userSvc *services.UserService) *UserHandlers {
	return &UserHandlers{userSvc: userSvc}
}

type SetUsernameRequest struct {
	Username string `json:"username" binding:"required"`
}

type EmailChangeRequest struct {
	Email string `json:"email" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

type AssignRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// SetUsername claims a username for the caller
func (h *UserHandlers) SetUsername(c *gin.Context) {
	var req SetUsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	user, err := h.userSvc.SetUsername(c.Request.Context(), currentUserID(c), req.Username)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": userView(user)})
}

// RequestEmailChange mails a confirmation token to the new address
func (h *UserHandlers) RequestEmailChange(c *gin.Context) {
	var req EmailChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := h.userSvc.RequestEmailChange(c.Request.Context(), currentUserID(c), req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Confirmation email sent."}})
}

// ConfirmEmailChange completes a pending email change
func (h *UserHandlers) ConfirmEmailChange(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "token is required"})
		return
	}

	user, err := h.userSvc.ConfirmEmailChange(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": userView(user)})
}

// ChangePassword rotates the caller's password
func (h *UserHandlers) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := h.userSvc.ChangePassword(c.Request.Context(), currentUserID(c), req.CurrentPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Password updated."}})
}

// List pages over accounts. Admin only.
func (h *UserHandlers) List(c *gin.Context) {
	limit, skip := pageParams(c)

	if query := c.Query("q"); query != "" {
		users, total, err := h.userSvc.Search(c.Request.Context(), query, limit, skip)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, usersEnvelope(users, total, limit, skip))
		return
	}

	users, total, err := h.userSvc.List(c.Request.Context(), limit, skip)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, usersEnvelope(users, total, limit, skip))
}

// Get returns one account. Admin only.
func (h *UserHandlers) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, err := h.userSvc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": userView(user)})
}

// Activate reinstates an account. Admin only.
func (h *UserHandlers) Activate(c *gin.Context) {
	h.setActive(c, true, "Account activated.")
}

// Deactivate suspends an account. Admin only.
func (h *UserHandlers) Deactivate(c *gin.Context) {
	h.setActive(c, false, "Account deactivated.")
}

func (h *UserHandlers) setActive(c *gin.Context, active bool, message string) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.userSvc.SetActive(c.Request.Context(), id, active); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": message}})
}

// AssignRole grants a role to an account. Admin only.
func (h *UserHandlers) AssignRole(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := h.userSvc.AssignRole(c.Request.Context(), id, req.Role); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Role assigned."}})
}

// Delete soft-deletes an account. Admin only.
func (h *UserHandlers) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.userSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Account deleted."}})
}

func usersEnvelope(users []domain.User, total int64, limit, skip int) gin.H {
	views := make([]gin.H, 0, len(users))
	for i := range users {
		views = append(views, userView(&users[i]))
	}
	return listEnvelope(views, total, limit, skip)
}
