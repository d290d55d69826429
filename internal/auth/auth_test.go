package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"school_achievements/internal/config"
	"school_achievements/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

func newTestTokens() *TokenManager {
	return NewTokenManager(config.JWTConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    24 * time.Hour,
	})
}

func TestIssueAndParsePair(t *testing.T) {
	tm := newTestTokens()

	pair, err := tm.IssuePair(7, "ivanov@school.ru")
	require.NoError(t, err)

	claims, err := tm.ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "ivanov@school.ru", claims.Subject)
	assert.Equal(t, TokenTypeAccess, claims.Type)

	claims, err = tm.ParseRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.Type)
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	tm := newTestTokens()
	pair, err := tm.IssuePair(1, "a@b.ru")
	require.NoError(t, err)

	_, err = tm.ParseAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = tm.ParseRefresh(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredAccessToken(t *testing.T) {
	tm := newTestTokens()
	issued := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	tm.NowFunc = func() time.Time { return issued }

	pair, err := tm.IssuePair(1, "a@b.ru")
	require.NoError(t, err)

	tm.NowFunc = func() time.Time { return issued.Add(16 * time.Minute) }
	_, err = tm.ParseAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tm.ParseRefresh(pair.RefreshToken)
	assert.NoError(t, err)
}

func TestPasswordHelpers(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)

	assert.True(t, CheckPassword(&hash, "s3cret-pass"))
	assert.False(t, CheckPassword(&hash, "wrong"))
	assert.False(t, CheckPassword(nil, "s3cret-pass"))

	pw, err := GeneratePassword(12)
	require.NoError(t, err)
	assert.Len(t, pw, 12)
	for _, ch := range pw {
		assert.Contains(t, passwordAlphabet, string(ch))
	}

	tok1, err := GenerateVerificationToken()
	require.NoError(t, err)
	tok2, err := GenerateVerificationToken()
	require.NoError(t, err)
	assert.Len(t, tok1, 43)
	assert.NotEqual(t, tok1, tok2)
}

func setupMiddlewareRouter(tm *TokenManager, guards ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware(tm)}, guards...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": CurrentUser(c).ID})
	})
	r.GET("/protected", handlers...)
	return r
}

func stubLoadUser(t *testing.T, user *models.User) {
	orig := LoadUser
	LoadUser = func(userID uint, email string) (*models.User, error) {
		if user == nil || user.ID != userID || user.Email != email {
			return nil, errors.New("not found")
		}
		return user, nil
	}
	t.Cleanup(func() { LoadUser = orig })
}

func doRequest(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["code"]
}

func TestAuthMiddleware(t *testing.T) {
	tm := newTestTokens()
	user := &models.User{ID: 3, Email: "t@school.ru", IsActive: true}
	stubLoadUser(t, user)
	r := setupMiddlewareRouter(tm)

	w := doRequest(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "NO_AUTH_HEADER", errorCode(t, w))

	w = doRequest(r, "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, w))

	pair, err := tm.IssuePair(3, "t@school.ru")
	require.NoError(t, err)
	w = doRequest(r, "Bearer "+pair.AccessToken)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, "Bearer "+pair.RefreshToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	other, err := tm.IssuePair(4, "ghost@school.ru")
	require.NoError(t, err)
	w = doRequest(r, "Bearer "+other.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "USER_NOT_FOUND", errorCode(t, w))
}

func TestRequireActiveAndRole(t *testing.T) {
	tm := newTestTokens()
	user := &models.User{ID: 5, Email: "s@school.ru", Roles: []models.Role{{Name: models.RoleStudent}}}
	stubLoadUser(t, user)
	pair, err := tm.IssuePair(5, "s@school.ru")
	require.NoError(t, err)

	active := setupMiddlewareRouter(tm, RequireActive())
	w := doRequest(active, "Bearer "+pair.AccessToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "USER_INACTIVE", errorCode(t, w))

	user.IsActive = true
	w = doRequest(active, "Bearer "+pair.AccessToken)
	assert.Equal(t, http.StatusOK, w.Code)

	teacherOnly := setupMiddlewareRouter(tm, RequireRole(models.RoleTeacher))
	w = doRequest(teacherOnly, "Bearer "+pair.AccessToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN_ROLE", errorCode(t, w))

	studentOrAdmin := setupMiddlewareRouter(tm, RequireRole(models.RoleAdmin, models.RoleStudent))
	w = doRequest(studentOrAdmin, "Bearer "+pair.AccessToken)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGoogleVerifierIDToken(t *testing.T) {
	v := NewGoogleVerifier("client-id")
	v.validateIDToken = func(ctx context.Context, token, audience string) (*idtoken.Payload, error) {
		assert.Equal(t, "client-id", audience)
		return &idtoken.Payload{Claims: map[string]interface{}{
			"email":          "user@school.ru",
			"name":           "Иван Иванов",
			"email_verified": true,
		}}, nil
	}

	user, err := v.Verify(context.Background(), "id-token")
	require.NoError(t, err)
	assert.Equal(t, "user@school.ru", user.Email)
	assert.Equal(t, "Иван Иванов", user.Name)
	assert.True(t, user.EmailVerified)
}

func TestGoogleVerifierAccessTokenFallback(t *testing.T) {
	audience := "client-id"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/tokeninfo":
			assert.Equal(t, "access-token", r.URL.Query().Get("access_token"))
			_ = json.NewEncoder(w).Encode(map[string]string{"audience": audience})
		case "/userinfo":
			assert.Equal(t, "Bearer access-token", r.Header.Get("Authorization"))
			_ = json.NewEncoder(w).Encode(map[string]any{"email": "user@school.ru", "name": "Иван"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	v := NewGoogleVerifier("client-id")
	v.TokenInfoURL = srv.URL + "/tokeninfo"
	v.UserInfoURL = srv.URL + "/userinfo"
	v.validateIDToken = func(ctx context.Context, token, audience string) (*idtoken.Payload, error) {
		return nil, errors.New("not an id token")
	}

	user, err := v.Verify(context.Background(), "access-token")
	require.NoError(t, err)
	assert.Equal(t, "user@school.ru", user.Email)

	audience = "someone-else"
	_, err = v.Verify(context.Background(), "access-token")
	assert.ErrorIs(t, err, ErrGoogleToken)
}
