package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arashi20/Workout-Logging-App/internal/auth"
)

func TestAuthCheck(t *testing.T) {
	loginChecker := auth.NewLoginTestChecker()
	loginChecker.LoggedSessions["valid_token"] = 42
	authMiddleware := NewAuthMiddlewareHandler(loginChecker)

	var seenUserID int
	var seenUserOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID, seenUserOK = auth.UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := authMiddleware.AuthCheck()(next)

	// no token
	rec := httptest.NewRecorder()
	req, err := http.NewRequest("GET", "/gym/sessions", nil)
	require.NoError(t, err)
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// invalid token
	rec = httptest.NewRecorder()
	req, err = http.NewRequest("GET", "/gym/sessions", nil)
	require.NoError(t, err)
	req.Header.Set(auth.AuthTokenHeader, "bogus")
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// valid token, user id lands in the context
	rec = httptest.NewRecorder()
	req, err = http.NewRequest("GET", "/gym/sessions", nil)
	require.NoError(t, err)
	req.Header.Set(auth.AuthTokenHeader, "valid_token")
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, seenUserOK)
	assert.Equal(t, 42, seenUserID)

	// open paths skip the check
	for _, path := range []string{"/", "/version", "/a/login"} {
		rec = httptest.NewRecorder()
		req, err = http.NewRequest("GET", path, nil)
		require.NoError(t, err)
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "path: %s", path)
	}

	// OPTIONS preflight passes without a token
	rec = httptest.NewRecorder()
	req, err = http.NewRequest("OPTIONS", "/gym/sessions", nil)
	require.NoError(t, err)
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
