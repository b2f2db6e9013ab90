package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, userID, secret string) string {
	t.Helper()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestValidateJWT(t *testing.T) {
	token := signToken(t, "user-42", testSecret)

	claims, err := ValidateJWT(token, testSecret)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != "user-42" {
		t.Errorf("unexpected user id %q", claims.UserID)
	}
}

func TestValidateJWTRejects(t *testing.T) {
	testCases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.token"},
		{"wrong secret", signToken(t, "user-42", "other-secret")},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ValidateJWT(tc.token, testSecret); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func authedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", RequireUser(testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString(UserIDKey)})
	})
	return r
}

func TestRequireUser(t *testing.T) {
	r := authedRouter()

	testCases := []struct {
		name     string
		headers  map[string]string
		wantCode int
		wantBody string
	}{
		{
			name:     "bearer token",
			headers:  map[string]string{"Authorization": "Bearer " + signToken(t, "user-42", testSecret)},
			wantCode: http.StatusOK,
			wantBody: "user-42",
		},
		{
			name:     "gateway header fallback",
			headers:  map[string]string{"X-User-ID": "gateway-user"},
			wantCode: http.StatusOK,
			wantBody: "gateway-user",
		},
		{
			name:     "invalid token",
			headers:  map[string]string{"Authorization": "Bearer bad-token"},
			wantCode: http.StatusUnauthorized,
			wantBody: "INVALID_TOKEN",
		},
		{
			name:     "no identity",
			headers:  map[string]string{},
			wantCode: http.StatusUnauthorized,
			wantBody: "MISSING_USER_ID",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.wantCode {
				t.Errorf("expected %d, got %d: %s", tc.wantCode, w.Code, w.Body.String())
			}
			if tc.wantBody != "" && !strings.Contains(w.Body.String(), tc.wantBody) {
				t.Errorf("expected body to contain %q, got %q", tc.wantBody, w.Body.String())
			}
		})
	}
}

func TestRequireUserUnwrapsObjectID(t *testing.T) {
	r := authedRouter()

	token := signToken(t, `ObjectID("507f1f77bcf86cd799439011")`, testSecret)
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "507f1f77bcf86cd799439011") {
		t.Errorf("expected unwrapped id, got %q", w.Body.String())
	}
	if strings.Contains(w.Body.String(), "ObjectID(") {
		t.Errorf("raw Mongo wrapper must be stripped, got %q", w.Body.String())
	}
}
