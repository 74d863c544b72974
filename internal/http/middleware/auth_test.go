package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dj-idk/gym-backend/domain"
	"github.com/dj-idk/gym-backend/internal/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func protectedRouter(tokenSvc domain.TokenService, userRepo domain.UserRepository) *gin.Engine {
	r := gin.New()
	r.GET("/protected", AuthMiddleware(tokenSvc, userRepo), func(c *gin.Context) {
		id, _ := c.Get("user_id")
		roles, _ := c.Get("roles")
		c.JSON(http.StatusOK, gin.H{"user_id": id, "roles": roles})
	})
	return r
}

func doGet(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()

	validTokenSvc := func() *mocks.MockTokenService {
		svc := mocks.NewMockTokenService()
		svc.ValidateFunc = func(ctx context.Context, token string) (*domain.TokenClaims, error) {
			return &domain.TokenClaims{Subject: userID, TokenID: "jti-1"}, nil
		}
		return svc
	}
	activeUserRepo := func() *mocks.MockUserRepository {
		repo := mocks.NewMockUserRepository()
		repo.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			return &domain.User{
				ID:       id,
				Phone:    "09123456789",
				IsActive: true,
				Roles:    []domain.Role{{Name: "member"}},
			}, nil
		}
		return repo
	}

	t.Run("loads the account into the context", func(t *testing.T) {
		r := protectedRouter(validTokenSvc(), activeUserRepo())

		w := doGet(r, "Bearer good-token")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var body struct {
			UserID string   `json:"user_id"`
			Roles  []string `json:"roles"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if body.UserID != userID.String() {
			t.Errorf("expected user id %s, got %s", userID, body.UserID)
		}
		if len(body.Roles) != 1 || body.Roles[0] != "member" {
			t.Errorf("expected member role, got %v", body.Roles)
		}
	})

	t.Run("missing header", func(t *testing.T) {
		r := protectedRouter(validTokenSvc(), activeUserRepo())

		if w := doGet(r, ""); w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("malformed header", func(t *testing.T) {
		r := protectedRouter(validTokenSvc(), activeUserRepo())

		if w := doGet(r, "Basic abc"); w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		svc := mocks.NewMockTokenService()
		svc.ValidateFunc = func(ctx context.Context, token string) (*domain.TokenClaims, error) {
			return nil, domain.ErrTokenExpired
		}
		r := protectedRouter(svc, activeUserRepo())

		w := doGet(r, "Bearer stale")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
		var body map[string]string
		json.Unmarshal(w.Body.Bytes(), &body)
		if body["message"] != "token expired" {
			t.Errorf("expected expiry message, got %q", body["message"])
		}
	})

	t.Run("revoked token", func(t *testing.T) {
		svc := mocks.NewMockTokenService()
		svc.ValidateFunc = func(ctx context.Context, token string) (*domain.TokenClaims, error) {
			return nil, domain.ErrTokenRevoked
		}
		r := protectedRouter(svc, activeUserRepo())

		w := doGet(r, "Bearer revoked")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
		var body map[string]string
		json.Unmarshal(w.Body.Bytes(), &body)
		if body["message"] != "token revoked" {
			t.Errorf("expected revocation message, got %q", body["message"])
		}
	})

	t.Run("inactive account", func(t *testing.T) {
		repo := mocks.NewMockUserRepository()
		repo.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			return &domain.User{ID: id, IsActive: false}, nil
		}
		r := protectedRouter(validTokenSvc(), repo)

		if w := doGet(r, "Bearer good-token"); w.Code != http.StatusForbidden {
			t.Errorf("expected 403, got %d", w.Code)
		}
	})

	t.Run("deleted account", func(t *testing.T) {
		r := protectedRouter(validTokenSvc(), mocks.NewMockUserRepository())

		if w := doGet(r, "Bearer good-token"); w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})
}
