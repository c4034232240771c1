package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"tripvault/pkg/testutil"
)

type stubValidator struct {
	subject string
	err     error
}

func (v stubValidator) ValidateToken(string) (string, error) {
	return v.subject, v.err
}

func callWithAuth(t *testing.T, validator TokenValidator, header string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	var gotSubject string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSubject = GetSubject(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/itineraries", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	RequireAuth(validator, testutil.Logger())(next).ServeHTTP(rec, req)
	return rec, gotSubject
}

func TestRequireAuthValidToken(t *testing.T) {
	rec, subject := callWithAuth(t, stubValidator{subject: "traveler"}, "Bearer good-token")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "traveler", subject)
}

func TestRequireAuthMissingHeader(t *testing.T) {
	rec, _ := callWithAuth(t, stubValidator{subject: "traveler"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthInvalidToken(t *testing.T) {
	rec, _ := callWithAuth(t, stubValidator{err: errors.New("bad signature")}, "Bearer tampered")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "unauthorized")
}
