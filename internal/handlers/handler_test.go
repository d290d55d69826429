package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"school_achievements/internal/account"
	"school_achievements/internal/auth"
	"school_achievements/internal/config"
	"school_achievements/internal/models"
	"school_achievements/internal/response"
	"school_achievements/internal/roster"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSyncer struct {
	stats roster.Stats
	err   error
	calls []string
}

func (f *fakeSyncer) SyncTeachers(context.Context) (roster.Stats, error) {
	f.calls = append(f.calls, models.RoleTeacher)
	return f.stats, f.err
}

func (f *fakeSyncer) SyncStudents(context.Context) (roster.Stats, error) {
	f.calls = append(f.calls, models.RoleStudent)
	return f.stats, f.err
}

func testTokens() *auth.TokenManager {
	return auth.NewTokenManager(config.JWTConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
	})
}

func bearer(t *testing.T, tokens *auth.TokenManager, u *models.User) string {
	t.Helper()
	pair, err := tokens.IssuePair(u.ID, u.Email)
	require.NoError(t, err)
	return "Bearer " + pair.AccessToken
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) response.ErrorResponse {
	t.Helper()
	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSplitGroupName(t *testing.T) {
	grade, letter := splitGroupName("11-Т")
	assert.Equal(t, 11, grade)
	assert.Equal(t, "Т", letter)

	grade, letter = splitGroupName("Выпуск")
	assert.Equal(t, 0, grade)
	assert.Equal(t, "", letter)
}

func TestAccountErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &Handler{Logger: zerolog.Nop()}

	cases := []struct {
		err    error
		status int
		code   string
	}{
		{account.ErrNotInRoster, http.StatusBadRequest, "USER_NOT_IN_SCHOOL_DB"},
		{account.ErrAlreadyRegistered, http.StatusBadRequest, "USER_EXISTS"},
		{account.ErrVerificationExpired, http.StatusBadRequest, "VERIFICATION_EXPIRED"},
		{account.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{account.ErrRegistrationRequired, http.StatusUnauthorized, "REGISTRATION_REQUIRED"},
		{fmt.Errorf("refresh: %w", auth.ErrInvalidToken), http.StatusUnauthorized, "INVALID_TOKEN"},
		{fmt.Errorf("%w: aud", auth.ErrGoogleToken), http.StatusUnauthorized, "INVALID_GOOGLE_TOKEN"},
		{account.ErrNotVerified, http.StatusForbidden, "EMAIL_NOT_VERIFIED"},
		{account.ErrInactive, http.StatusForbidden, "USER_INACTIVE"},
		{account.ErrResetUnavailableToday, http.StatusBadRequest, "RESET_UNAVAILABLE_TODAY"},
		{errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

		h.accountError(c, tc.err)
		assert.Equal(t, tc.status, w.Code, tc.err.Error())
		assert.Equal(t, tc.code, decodeError(t, w).Code, tc.err.Error())
	}
}

func TestIDParamRejectsGarbage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x/:id", func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if ok {
			c.JSON(http.StatusOK, gin.H{"id": id})
		}
	})

	for path, want := range map[string]int{"/x/5": http.StatusOK, "/x/0": http.StatusBadRequest, "/x/abc": http.StatusBadRequest} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, w.Code, path)
	}
}

func TestRunSyncResponses(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
	}{
		{nil, http.StatusOK},
		{roster.ErrEmptyRoster, http.StatusBadGateway},
		{roster.ErrSourceUnavailable, http.StatusServiceUnavailable},
		{fmt.Errorf("%w: dial tcp: connection refused", roster.ErrSourceUnavailable), http.StatusServiceUnavailable},
		{errors.New("feed status 500"), http.StatusBadGateway},
	}
	for _, tc := range cases {
		syncer := &fakeSyncer{stats: roster.Stats{Added: 2, Errors: []string{}, TotalExternal: 2}, err: tc.err}
		h := &Handler{Roster: syncer, Logger: zerolog.Nop()}

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
		h.SyncStudents(c)

		assert.Equal(t, tc.status, w.Code)
		assert.Equal(t, []string{models.RoleStudent}, syncer.calls)
		if tc.err == nil {
			var stats roster.Stats
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
			assert.Equal(t, 2, stats.Added)
		}
	}
}
