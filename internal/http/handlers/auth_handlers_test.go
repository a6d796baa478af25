package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keaton678/research-hub/domain"
	"github.com/keaton678/research-hub/internal/http/middleware"
	"github.com/keaton678/research-hub/internal/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func authRouter(svc domain.AuthService) *gin.Engine {
	h := NewAuthHandlers(svc)
	router := gin.New()
	router.POST("/api/auth/register", h.Register)
	router.POST("/api/auth/login", h.Login)
	router.POST("/api/auth/forgot-password", h.ForgotPassword)
	router.POST("/api/auth/reset-password", h.ResetPassword)
	router.POST("/api/auth/verify-email", h.VerifyEmail)
	return router
}

func TestAuthHandlers_Register(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &mocks.MockAuthService{
			RegisterFunc: func(_ context.Context, input domain.RegisterInput) (*domain.RegisterResult, error) {
				assert.Equal(t, "new@example.com", input.Email)
				return &domain.RegisterResult{UserID: 3}, nil
			},
		}
		w := postJSON(t, authRouter(svc), "/api/auth/register", gin.H{
			"email": "new@example.com", "password": "longenough1", "fullName": "New User",
		})

		require.Equal(t, http.StatusCreated, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, float64(3), body["userId"])
		assert.Equal(t, false, body["emailVerificationRequired"])
	})

	t.Run("email conflict", func(t *testing.T) {
		svc := &mocks.MockAuthService{
			RegisterFunc: func(context.Context, domain.RegisterInput) (*domain.RegisterResult, error) {
				return nil, domain.ErrEmailTaken
			},
		}
		w := postJSON(t, authRouter(svc), "/api/auth/register", gin.H{
			"email": "dup@example.com", "password": "longenough1", "fullName": "Dup",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("validation failures", func(t *testing.T) {
		tests := []struct {
			name string
			body gin.H
		}{
			{"missing email", gin.H{"password": "longenough1", "fullName": "A B"}},
			{"bad email", gin.H{"email": "not-an-email", "password": "longenough1", "fullName": "A B"}},
			{"short password", gin.H{"email": "a@b.com", "password": "short", "fullName": "A B"}},
			{"short name", gin.H{"email": "a@b.com", "password": "longenough1", "fullName": "A"}},
		}
		svc := &mocks.MockAuthService{
			RegisterFunc: func(context.Context, domain.RegisterInput) (*domain.RegisterResult, error) {
				t.Error("service reached despite invalid payload")
				return nil, nil
			},
		}
		router := authRouter(svc)
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				w := postJSON(t, router, "/api/auth/register", tt.body)
				assert.Equal(t, http.StatusBadRequest, w.Code)
			})
		}
	})
}

func TestAuthHandlers_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		expiresAt := time.Now().Add(7 * 24 * time.Hour)
		svc := &mocks.MockAuthService{
			LoginFunc: func(_ context.Context, email, password string, meta domain.SessionMeta) (*domain.AuthResult, error) {
				assert.True(t, meta.Remember)
				return &domain.AuthResult{
					User: &domain.User{
						ID:           7,
						Email:        email,
						FullName:     "Test User",
						PasswordHash: "secret-hash",
						IsActive:     true,
					},
					Token:        "jwt-token",
					SessionToken: "session-token",
					ExpiresAt:    expiresAt,
				}, nil
			},
		}
		w := postJSON(t, authRouter(svc), "/api/auth/login", gin.H{
			"email": "user@example.com", "password": "longenough1", "remember": true,
		})

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "jwt-token", body["token"])
		assert.Equal(t, "session-token", body["sessionToken"])
		// The password hash must never appear in a response.
		assert.NotContains(t, w.Body.String(), "secret-hash")
		user, ok := body["user"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, float64(7), user["id"])
	})

	t.Run("credential failures are all 401", func(t *testing.T) {
		for name, serviceErr := range map[string]error{
			"invalid credentials": domain.ErrInvalidCredentials,
			"deactivated account": domain.ErrUserInactive,
			"unverified email":    domain.ErrEmailNotVerified,
		} {
			t.Run(name, func(t *testing.T) {
				svc := &mocks.MockAuthService{
					LoginFunc: func(context.Context, string, string, domain.SessionMeta) (*domain.AuthResult, error) {
						return nil, serviceErr
					},
				}
				w := postJSON(t, authRouter(svc), "/api/auth/login", gin.H{
					"email": "user@example.com", "password": "longenough1",
				})
				assert.Equal(t, http.StatusUnauthorized, w.Code)
			})
		}
	})
}

func TestAuthHandlers_ForgotPassword(t *testing.T) {
	// The handler answers identically for known and unknown accounts.
	svc := &mocks.MockAuthService{}
	w := postJSON(t, authRouter(svc), "/api/auth/forgot-password", gin.H{"email": "anyone@example.com"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "If an account exists")
}

func TestAuthHandlers_ResetPassword(t *testing.T) {
	t.Run("invalid token", func(t *testing.T) {
		svc := &mocks.MockAuthService{
			ResetPasswordFunc: func(context.Context, string, string) error {
				return domain.ErrResetTokenInvalid
			},
		}
		w := postJSON(t, authRouter(svc), "/api/auth/reset-password", gin.H{
			"token": "stale", "password": "longenough1",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("success", func(t *testing.T) {
		svc := &mocks.MockAuthService{}
		w := postJSON(t, authRouter(svc), "/api/auth/reset-password", gin.H{
			"token": "good", "password": "longenough1",
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAuthHandlers_VerifyEmail(t *testing.T) {
	svc := &mocks.MockAuthService{
		VerifyEmailFunc: func(context.Context, string) error {
			return domain.ErrVerificationTokenInvalid
		},
	}
	w := postJSON(t, authRouter(svc), "/api/auth/verify-email", gin.H{"token": "bogus"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandlers_Logout(t *testing.T) {
	var gotToken string
	svc := &mocks.MockAuthService{
		LogoutFunc: func(_ context.Context, userID uint, sessionToken string) error {
			gotToken = sessionToken
			return nil
		},
	}
	h := NewAuthHandlers(svc)
	router := gin.New()
	router.POST("/api/auth/logout", func(c *gin.Context) {
		c.Set(middleware.CtxUserID, uint(7))
		c.Set(middleware.CtxSessionToken, "tok-123")
	}, h.Logout)

	w := postJSON(t, router, "/api/auth/logout", gin.H{})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tok-123", gotToken)
}

func TestAuthHandlers_Refresh(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &mocks.MockAuthService{}
		h := NewAuthHandlers(svc)
		router := gin.New()
		router.POST("/api/auth/refresh", func(c *gin.Context) {
			c.Set(middleware.CtxUserID, uint(7))
			c.Set(middleware.CtxUserEmail, "user@example.com")
		}, h.Refresh)

		w := postJSON(t, router, "/api/auth/refresh", gin.H{})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "refreshed-token", decodeBody(t, w)["token"])
	})

	t.Run("deactivated since login", func(t *testing.T) {
		svc := &mocks.MockAuthService{
			RefreshFunc: func(context.Context, uint, string) (string, time.Time, error) {
				return "", time.Time{}, domain.ErrUserInactive
			},
		}
		h := NewAuthHandlers(svc)
		router := gin.New()
		router.POST("/api/auth/refresh", func(c *gin.Context) {
			c.Set(middleware.CtxUserID, uint(7))
		}, h.Refresh)

		w := postJSON(t, router, "/api/auth/refresh", gin.H{})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
