package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rihla/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func sign(t *testing.T, key string, method jwt.SigningMethod, claims Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return "Bearer " + s
}

func validClaims(userID string) Claims {
	return Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func echoUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(utils.GetUserIDFromRequest(r)))
}

func call(h httprouter.Handle, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	h(rec, req, nil)
	return rec
}

func TestAuthenticate(t *testing.T) {
	a := NewAuth(secret)
	h := a.Authenticate(echoUser)

	expired := validClaims("u1")
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	cases := []struct {
		name string
		auth string
		code int
		body string
	}{
		{"valid", sign(t, secret, jwt.SigningMethodHS256, validClaims("u1")), http.StatusOK, "u1"},
		{"missing", "", http.StatusUnauthorized, ""},
		{"no bearer prefix", "Token abc", http.StatusUnauthorized, ""},
		{"wrong secret", sign(t, "other", jwt.SigningMethodHS256, validClaims("u1")), http.StatusUnauthorized, ""},
		{"wrong algorithm", sign(t, secret, jwt.SigningMethodHS512, validClaims("u1")), http.StatusUnauthorized, ""},
		{"expired", sign(t, secret, jwt.SigningMethodHS256, expired), http.StatusUnauthorized, ""},
		{"no user", sign(t, secret, jwt.SigningMethodHS256, validClaims("")), http.StatusUnauthorized, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := call(h, tc.auth)
			assert.Equal(t, tc.code, rec.Code)
			if tc.code == http.StatusOK {
				assert.Equal(t, tc.body, rec.Body.String())
			} else {
				assert.Contains(t, rec.Body.String(), `"error"`)
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	h := NewAuth(secret).OptionalAuth(echoUser)

	rec := call(h, sign(t, secret, jwt.SigningMethodHS256, validClaims("u7")))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u7", rec.Body.String())

	for _, auth := range []string{"", "Bearer garbage", sign(t, "other", jwt.SigningMethodHS256, validClaims("u7"))} {
		rec := call(h, auth)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.String())
	}
}

func TestNoSecretRejectsEverything(t *testing.T) {
	a := NewAuth("")
	token := sign(t, "anything", jwt.SigningMethodHS256, validClaims("u1"))

	_, err := a.ValidateJWT(token)
	require.ErrorIs(t, err, errNoSecret)
	assert.Equal(t, http.StatusUnauthorized, call(a.Authenticate(echoUser), token).Code)
}
