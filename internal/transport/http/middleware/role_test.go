package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	jwtinfra "github.com/go-cms-api/internal/infrastructure/jwt"
	"github.com/stretchr/testify/assert"
)

func TestRequireRole_NoClaimsInContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	RequireRole("admin")(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRequireRole_WrongRole(t *testing.T) {
	claims := &jwtinfra.Claims{Roles: []string{"viewer"}}
	req := httptest.NewRequest(http.MethodGet, "/", nil).
		WithContext(ContextWithClaims(context.Background(), claims))
	rr := httptest.NewRecorder()
	RequireRole("admin")(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestRequireRole_CorrectRole(t *testing.T) {
	claims := &jwtinfra.Claims{Roles: []string{"admin"}}
	req := httptest.NewRequest(http.MethodGet, "/", nil).
		WithContext(ContextWithClaims(context.Background(), claims))
	rr := httptest.NewRecorder()
	RequireRole("admin")(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRequireRole_AnyOfMultipleRoles(t *testing.T) {
	claims := &jwtinfra.Claims{Roles: []string{"viewer", "editor"}}
	req := httptest.NewRequest(http.MethodGet, "/", nil).
		WithContext(ContextWithClaims(context.Background(), claims))
	rr := httptest.NewRecorder()
	RequireRole("admin", "editor")(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}
