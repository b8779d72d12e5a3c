package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"nicbank/internal/auth"
	"nicbank/internal/model"
	"nicbank/internal/repository"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, filter repository.ListFilter) ([]model.User, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) Stats(ctx context.Context) (*repository.UserStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.UserStats), args.Error(1)
}

// guardedEcho wires the guard chain in front of a handler that echoes the
// resolved user's email, the way the router does for /api routes.
func guardedEcho(g *Guard, extra ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	handler := func(c echo.Context) error {
		user := CurrentUser(c)
		return c.JSON(http.StatusOK, map[string]string{"email": user.Email})
	}
	mw := append([]echo.MiddlewareFunc{g.VerifyToken(), g.LoadUser}, extra...)
	e.GET("/protected", handler, mw...)
	return e
}

func doRequest(e *echo.Echo, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGuard_ValidToken(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", 30*time.Minute)
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, uint(7)).
		Return(&model.User{ID: 7, Email: "ann@x.com", Role: model.RoleUser, IsActive: true}, nil)

	token, err := tokens.Issue(7, "ann@x.com")
	require.NoError(t, err)

	rec := doRequest(guardedEcho(NewGuard(tokens, mockRepo)), token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ann@x.com")
	mockRepo.AssertExpectations(t)
}

func TestGuard_RejectsBadTokens(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", 30*time.Minute)
	otherSecret := auth.NewTokenService("other-secret", 30*time.Minute)

	wrongSecretToken, err := otherSecret.Issue(7, "ann@x.com")
	require.NoError(t, err)

	expiredToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "7",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"missing header", ""},
		{"garbage token", "not-a-jwt"},
		{"wrong secret", wrongSecretToken},
		{"expired", expiredToken},
	}

	mockRepo := new(MockUserRepository)
	e := guardedEcho(NewGuard(tokens, mockRepo))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(e, tt.token)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "Could not validate credentials")
		})
	}
	mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestGuard_DeletedUser(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", 30*time.Minute)
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, uint(7)).Return(nil, gorm.ErrRecordNotFound)

	token, err := tokens.Issue(7, "gone@x.com")
	require.NoError(t, err)

	rec := doRequest(guardedEcho(NewGuard(tokens, mockRepo)), token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGuard_DeactivatedUser(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", 30*time.Minute)
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, uint(7)).
		Return(&model.User{ID: 7, Email: "off@x.com", IsActive: false}, nil)

	token, err := tokens.Issue(7, "off@x.com")
	require.NoError(t, err)

	rec := doRequest(guardedEcho(NewGuard(tokens, mockRepo)), token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "deactivated")
}

func TestRequireRoles(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", 30*time.Minute)

	tests := []struct {
		name     string
		role     model.Role
		allowed  []model.Role
		wantCode int
	}{
		{"admin on admin-only", model.RoleAdmin, []model.Role{model.RoleAdmin}, http.StatusOK},
		{"staff on admin-only", model.RoleStaff, []model.Role{model.RoleAdmin}, http.StatusForbidden},
		{"manager on admin-or-manager", model.RoleManager, []model.Role{model.RoleAdmin, model.RoleManager}, http.StatusOK},
		{"user on admin-or-manager", model.RoleUser, []model.Role{model.RoleAdmin, model.RoleManager}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockRepo.On("FindByID", mock.Anything, uint(7)).
				Return(&model.User{ID: 7, Email: "x@x.com", Role: tt.role, IsActive: true}, nil)

			token, err := tokens.Issue(7, "x@x.com")
			require.NoError(t, err)

			e := guardedEcho(NewGuard(tokens, mockRepo), RequireRoles(tt.allowed...))
			rec := doRequest(e, token)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
