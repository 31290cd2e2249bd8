package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"taskhub/internal/auth"
	apperrors "taskhub/internal/errors"
	"taskhub/internal/model"
)

// testValidator mirrors the router's echo.Validator wiring.
type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	return e
}

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, email, username, password, name string) (*model.User, error) {
	args := m.Called(ctx, email, username, password, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*model.User), args.Error(2)
}

func sessionCookie(t *testing.T, res *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range res.Cookies() {
		if c.Name == auth.SessionCookieName {
			return c
		}
	}
	return nil
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		setupMock    func(*MockAuthService)
		expectedCode int
	}{
		{
			name: "successful registration",
			body: `{"name":"A","username":"a","email":"a@x.com","password":"secret123"}`,
			setupMock: func(m *MockAuthService) {
				m.On("Register", mock.Anything, "a@x.com", "a", "secret123", "A").
					Return(&model.User{ID: 1, Name: "A", Username: "a", Email: "a@x.com"}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "missing fields rejected by validator",
			body:         `{"email":"a@x.com"}`,
			setupMock:    func(m *MockAuthService) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "duplicate email",
			body: `{"name":"A","username":"a","email":"a@x.com","password":"secret123"}`,
			setupMock: func(m *MockAuthService) {
				m.On("Register", mock.Anything, "a@x.com", "a", "secret123", "A").
					Return(nil, apperrors.ErrEmailTaken)
			},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockAuthService)
			tt.setupMock(mockSvc)

			e := newTestEcho()
			h := NewAuthHandler(mockSvc, true)
			e.POST("/api/auth/register", h.Register)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.expectedCode == http.StatusCreated {
				assert.Contains(t, rec.Body.String(), `"username":"a"`)
				assert.NotContains(t, rec.Body.String(), "password")
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_LoginSetsSessionCookie(t *testing.T) {
	mockSvc := new(MockAuthService)
	mockSvc.On("Login", mock.Anything, "a@x.com", "secret123").
		Return("signed-token", &model.User{ID: 1, Email: "a@x.com", Username: "a"}, nil)

	e := newTestEcho()
	h := NewAuthHandler(mockSvc, true)
	e.POST("/api/auth/login", h.Login)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"a@x.com","password":"secret123"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookie(t, rec.Result())
	assert.NotNil(t, cookie)
	assert.Equal(t, "signed-token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, "/", cookie.Path)
	assert.Positive(t, cookie.MaxAge)
	mockSvc.AssertExpectations(t)
}

func TestAuthHandler_LoginRejectsBadCredentials(t *testing.T) {
	mockSvc := new(MockAuthService)
	mockSvc.On("Login", mock.Anything, "a@x.com", "wrong").
		Return("", nil, apperrors.ErrInvalidCredentials)

	e := newTestEcho()
	h := NewAuthHandler(mockSvc, true)
	e.POST("/api/auth/login", h.Login)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"a@x.com","password":"wrong"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, sessionCookie(t, rec.Result()))
	mockSvc.AssertExpectations(t)
}

func TestAuthHandler_LogoutClearsCookie(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(new(MockAuthService), true)
	e.POST("/api/auth/logout", h.Logout)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookie(t, rec.Result())
	assert.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}
