package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domainerrors "agenda/internal/domain/errors"
	"agenda/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTokenService returns fixed claims for a single known token.
type stubTokenService struct {
	token  string
	claims *service.Claims
}

func (s *stubTokenService) GenerateTokens(uuid.UUID, []string) (string, string, error) {
	return s.token, s.token, nil
}

func (s *stubTokenService) ValidateToken(tokenString, tokenType string) (*service.Claims, error) {
	if tokenString != s.token || s.claims.Type != tokenType {
		return nil, domainerrors.ErrUnauthenticated
	}

	return s.claims, nil
}

func (s *stubTokenService) RefreshTokenDuration() time.Duration { return time.Hour }

func newAuthTestContext(authorization string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestAuthenticate_StoresIdentityAndRoles(t *testing.T) {
	userID := uuid.New()
	m := NewAuthMiddleware(&stubTokenService{
		token:  "valid-token",
		claims: &service.Claims{UserID: userID, Roles: []string{"user", "staff"}, Type: service.TokenTypeAccess},
	})

	c, _ := newAuthTestContext("Bearer valid-token")
	err := m.Authenticate(okHandler)(c)

	require.NoError(t, err)
	assert.Equal(t, userID, c.Get(ContextKeyUserID))
	assert.Equal(t, []string{"user", "staff"}, c.Get(ContextKeyRoles))
}

func TestAuthenticate_MissingOrMalformedHeader(t *testing.T) {
	m := NewAuthMiddleware(&stubTokenService{token: "valid-token"})

	c, _ := newAuthTestContext("")
	assert.ErrorIs(t, m.Authenticate(okHandler)(c), domainerrors.ErrUnauthenticated)

	c, _ = newAuthTestContext("Basic dXNlcg==")
	assert.ErrorIs(t, m.Authenticate(okHandler)(c), domainerrors.ErrUnauthenticated)
}

func TestRequireRole_StaffTokenReachesStaffRoutes(t *testing.T) {
	m := NewAuthMiddleware(&stubTokenService{
		token:  "staff-token",
		claims: &service.Claims{UserID: uuid.New(), Roles: []string{"user", "staff"}, Type: service.TokenTypeAccess},
	})

	c, rec := newAuthTestContext("Bearer staff-token")
	err := m.Authenticate(m.RequireRole("staff")(okHandler))(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_RejectsNonStaff(t *testing.T) {
	m := NewAuthMiddleware(&stubTokenService{
		token:  "user-token",
		claims: &service.Claims{UserID: uuid.New(), Roles: []string{"user"}, Type: service.TokenTypeAccess},
	})

	c, _ := newAuthTestContext("Bearer user-token")
	err := m.Authenticate(m.RequireRole("staff")(okHandler))(c)

	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}
