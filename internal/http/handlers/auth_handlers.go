package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dj-idk/gym-backend/domain"
)

// AuthHandlers handles the authentication endpoints.
type AuthHandlers struct {
	authSvc   domain.AuthService
	exposeOTP bool
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, exposeOTP bool) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc, exposeOTP: exposeOTP}
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// VerifyPhoneRequest represents phone verification request
type VerifyPhoneRequest struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// LoginRequest represents login request. Identifier may be an email,
// username or phone number.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// ResetRequest starts a password reset for the phone.
type ResetRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// ResetConfirmRequest completes a password reset.
type ResetConfirmRequest struct {
	Phone       string `json:"phone" binding:"required"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// Register handles account creation
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	user, code, err := h.authSvc.Register(c.Request.Context(), req.Phone, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	data := gin.H{
		"message": "Account created. Verify your phone number to continue.",
		"user_id": user.ID,
	}
	if h.exposeOTP {
		data["code"] = code
	}
	c.JSON(http.StatusCreated, gin.H{"data": data})
}

// VerifyPhone handles OTP confirmation and first login
func (h *AuthHandlers) VerifyPhone(c *gin.Context) {
	var req VerifyPhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	result, err := h.authSvc.VerifyPhone(c.Request.Context(), req.Phone, req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": authView(result)})
}

// Login handles credential login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": authView(result)})
}

// RequestPasswordReset handles the first half of a reset. The response
// does not reveal whether the phone is registered.
func (h *AuthHandlers) RequestPasswordReset(c *gin.Context) {
	var req ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	code, err := h.authSvc.RequestPasswordReset(c.Request.Context(), req.Phone)
	if err != nil {
		respondError(c, err)
		return
	}

	data := gin.H{"message": "If the phone number is registered, a code has been sent."}
	if h.exposeOTP && code != "" {
		data["code"] = code
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// ConfirmPasswordReset handles the second half of a reset
func (h *AuthHandlers) ConfirmPasswordReset(c *gin.Context) {
	var req ResetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := h.authSvc.ConfirmPasswordReset(c.Request.Context(), req.Phone, req.Code, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Password updated."}})
}

// Refresh exchanges a valid token for a fresh one and revokes the old
func (h *AuthHandlers) Refresh(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		return
	}

	result, err := h.authSvc.Refresh(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": authView(result)})
}

// Logout revokes the presented token
func (h *AuthHandlers) Logout(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), token); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Logged out."}})
}

// Me returns the authenticated account
func (h *AuthHandlers) Me(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "authentication required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": userView(user)})
}

func authView(result *domain.AuthResult) gin.H {
	return gin.H{
		"access_token": result.AccessToken,
		"token_type":   "Bearer",
		"expires_at":   result.ExpiresAt,
		"user":         userView(result.User),
	}
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "missing bearer token"})
		return "", false
	}
	return strings.TrimPrefix(header, "Bearer "), true
}
