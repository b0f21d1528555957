package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type stubRevoker struct {
	tokenID string
	err     error
}

func (s *stubRevoker) Revoke(_ context.Context, tokenID string, _ time.Time) error {
	s.tokenID = tokenID
	return s.err
}

func TestAuthLogoutRevokesToken(t *testing.T) {
	revoker := &stubRevoker{}
	resp := httptest.NewRecorder()
	AuthLogout(revoker, nil).ServeHTTP(resp, newRequest(http.MethodPost, "/api/v1/auth/logout", "", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if revoker.tokenID != testPrincipal.TokenID {
		t.Fatalf("expected %s revoked got %s", testPrincipal.TokenID, revoker.tokenID)
	}
}

func TestAuthLogoutStoreFailure(t *testing.T) {
	resp := httptest.NewRecorder()
	AuthLogout(&stubRevoker{err: errors.New("redis down")}, nil).ServeHTTP(resp, newRequest(http.MethodPost, "/api/v1/auth/logout", "", nil))
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}
