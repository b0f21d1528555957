package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/mantomate/storefront-backend/api/middleware"
	"github.com/mantomate/storefront-backend/pkg/auth"
	"github.com/mantomate/storefront-backend/pkg/db/models"
	pkgerrors "github.com/mantomate/storefront-backend/pkg/errors"
)

var testPrincipal = auth.Principal{Subject: "user-1", Email: "ana@example.com", TokenID: "jti-1"}

func newRequest(method, target, body string, params map[string]string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rc := chi.NewRouteContext()
	for k, v := range params {
		rc.URLParams.Add(k, v)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rc)
	ctx = middleware.WithPrincipal(ctx, testPrincipal)
	return req.WithContext(ctx)
}

func decodeData(t *testing.T, resp *httptest.ResponseRecorder, dest any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, resp.Body.String())
	}
	if err := json.Unmarshal(envelope.Data, dest); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func decodeEnvelope(t *testing.T, resp *httptest.ResponseRecorder, dest any) {
	t.Helper()
	if err := json.Unmarshal(resp.Body.Bytes(), dest); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
}

func errorMessage(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	return envelope.Error.Message
}

type stubResolver struct {
	customer *models.Customer
	err      error
}

func (s stubResolver) Resolve(_ context.Context, principal auth.Principal) (*models.Customer, error) {
	if principal.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "No autenticado")
	}
	return s.customer, s.err
}
