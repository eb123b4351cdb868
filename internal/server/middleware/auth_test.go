package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testValidator struct {
	tokens map[string]string
}

func (v *testValidator) ValidateToken(tokenString string) (SubjectGetter, error) {
	subject, ok := v.tokens[tokenString]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return testClaims(subject), nil
}

type testClaims string

func (c testClaims) GetSubject() (string, error) { return string(c), nil }

func protected(t *testing.T) (http.Handler, *string) {
	t.Helper()
	var seen string
	v := &testValidator{tokens: map[string]string{
		"good-token":  "recruiting-ui",
		"empty-token": "",
	}}
	h := AuthMiddleware(v)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, err := GetSubject(r)
		require.NoError(t, err)
		seen = subject
		w.WriteHeader(http.StatusNoContent)
	}))
	return h, &seen
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	h, seen := protected(t)

	for _, header := range []string{"Bearer good-token", "bearer good-token", "BEARER   good-token"} {
		req := httptest.NewRequest(http.MethodGet, "/rankings", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()

		h.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code, header)
		assert.Equal(t, "recruiting-ui", *seen)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic good-token"},
		{"no token", "Bearer"},
		{"extra parts", "Bearer good-token extra"},
		{"unknown token", "Bearer nope"},
		{"empty subject", "Bearer empty-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, seen := protected(t)
			req := httptest.NewRequest(http.MethodGet, "/rankings", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			h.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
			assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String())
			assert.Empty(t, *seen)
		})
	}
}

func TestGetSubject(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := GetSubject(req)
	assert.Error(t, err)

	req = req.WithContext(context.WithValue(req.Context(), SubjectKey(), "batch-runner"))
	subject, err := GetSubject(req)
	require.NoError(t, err)
	assert.Equal(t, "batch-runner", subject)
}
