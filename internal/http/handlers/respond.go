package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dj-idk/gym-backend/domain"
)

// respondError maps domain sentinel errors onto the wire envelope
// {"error": <code>, "message": <text>}. Unrecognized errors become an
// opaque 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidPhone),
		errors.Is(err, domain.ErrWeakPassword):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": err.Error()})
	case errors.Is(err, domain.ErrOTPInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_code", "message": err.Error()})
	case errors.Is(err, domain.ErrEmailTokenBad):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_token", "message": err.Error()})
	case errors.Is(err, domain.ErrOTPResendLimit),
		errors.Is(err, domain.ErrOTPMaxAttempts):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too_many_requests", "message": err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenRevoked),
		errors.Is(err, domain.ErrTokenMalformed):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": err.Error()})
	case errors.Is(err, domain.ErrUserInactive),
		errors.Is(err, domain.ErrUserNotVerified),
		errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden", "message": err.Error()})
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrOTPNotFound),
		errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": err.Error()})
	case errors.Is(err, domain.ErrUserAlreadyExists),
		errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrAlreadyVerified),
		errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "conflict", "message": err.Error()})
	case errors.Is(err, domain.ErrTokenNotTracked):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service_unavailable", "message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": "internal server error"})
	}
}

func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": err.Error()})
}

// currentUserID reads the account id stored by the auth middleware.
func currentUserID(c *gin.Context) uuid.UUID {
	id, _ := c.Get("user_id")
	uid, _ := id.(uuid.UUID)
	return uid
}

// currentUser reads the account stored by the auth middleware.
func currentUser(c *gin.Context) *domain.User {
	v, _ := c.Get("user")
	user, _ := v.(*domain.User)
	return user
}

// isStaff reports whether the authenticated account carries a staff role.
func isStaff(c *gin.Context) bool {
	user := currentUser(c)
	if user == nil {
		return false
	}
	return user.HasRole("admin") || user.HasRole("support")
}

// pageParams parses limit/skip query values with sane bounds.
func pageParams(c *gin.Context) (limit, skip int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	skip, _ = strconv.Atoi(c.DefaultQuery("skip", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if skip < 0 {
		skip = 0
	}
	return limit, skip
}

// pathID parses a uuid path parameter.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "malformed id"})
		return uuid.Nil, false
	}
	return id, true
}

// userView is the wire shape of an account.
func userView(u *domain.User) gin.H {
	return gin.H{
		"id":                u.ID,
		"phone":             u.Phone,
		"email":             u.Email,
		"username":          u.Username,
		"is_active":         u.IsActive,
		"is_verified":       u.IsVerified,
		"is_email_verified": u.IsEmailVerified,
		"status":            u.Status,
		"roles":             u.RoleNames(),
		"last_login":        u.LastLogin,
		"created_at":        u.CreatedAt,
	}
}

// listEnvelope wraps a page of results with its pagination block.
func listEnvelope(items any, total int64, limit, skip int) gin.H {
	return gin.H{
		"data":       items,
		"pagination": domain.NewPagination(total, limit, skip),
	}
}
