package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestEnforcer creates a Casbin enforcer with the route model
func createTestEnforcer(t *testing.T) *casbin.Enforcer {
	t.Helper()

	modelText := `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && keyMatch(r.obj, p.obj) && regexMatch(r.act, p.act)
`
	m, err := model.NewModelFromString(modelText)
	require.NoError(t, err)
	e, err := casbin.NewEnforcer(m)
	require.NoError(t, err)
	return e
}

func casbinRouter(e *casbin.Enforcer, roles []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	mw := NewCasbinMW(e)

	r := gin.New()
	setRoles := func(c *gin.Context) {
		if roles != nil {
			c.Set("roles", roles)
		}
	}
	grp := r.Group("/api/v1", setRoles, mw.Enforce())
	grp.GET("/admin/users", func(c *gin.Context) { c.Status(http.StatusOK) })
	grp.DELETE("/admin/users/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	grp.GET("/support/tickets", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func serveCasbin(r *gin.Engine, method, path string) int {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w.Code
}

func TestCasbinMW_Enforce(t *testing.T) {
	t.Run("prefix policy covers nested routes", func(t *testing.T) {
		e := createTestEnforcer(t)
		_, err := e.AddPolicy("role_admin", "/api/v1/admin/*", "(GET|POST|PUT|DELETE)")
		require.NoError(t, err)

		r := casbinRouter(e, []string{"admin"})
		assert.Equal(t, http.StatusOK, serveCasbin(r, http.MethodGet, "/api/v1/admin/users"))
		assert.Equal(t, http.StatusOK, serveCasbin(r, http.MethodDelete, "/api/v1/admin/users/42"))
	})

	t.Run("no matching policy is denied", func(t *testing.T) {
		e := createTestEnforcer(t)
		_, err := e.AddPolicy("role_admin", "/api/v1/admin/*", "(GET|POST|PUT|DELETE)")
		require.NoError(t, err)

		r := casbinRouter(e, []string{"member"})
		assert.Equal(t, http.StatusForbidden, serveCasbin(r, http.MethodGet, "/api/v1/admin/users"))
	})

	t.Run("any allowed role passes", func(t *testing.T) {
		e := createTestEnforcer(t)
		_, err := e.AddPolicy("role_support", "/api/v1/support/*", "(GET|POST)")
		require.NoError(t, err)

		r := casbinRouter(e, []string{"member", "support"})
		assert.Equal(t, http.StatusOK, serveCasbin(r, http.MethodGet, "/api/v1/support/tickets"))
	})

	t.Run("method outside the pattern is denied", func(t *testing.T) {
		e := createTestEnforcer(t)
		_, err := e.AddPolicy("role_support", "/api/v1/admin/*", "(GET|POST)")
		require.NoError(t, err)

		r := casbinRouter(e, []string{"support"})
		assert.Equal(t, http.StatusForbidden, serveCasbin(r, http.MethodDelete, "/api/v1/admin/users/42"))
	})

	t.Run("missing roles in context", func(t *testing.T) {
		e := createTestEnforcer(t)
		r := casbinRouter(e, nil)
		assert.Equal(t, http.StatusUnauthorized, serveCasbin(r, http.MethodGet, "/api/v1/admin/users"))
	})
}
