package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mantomate/storefront-backend/internal/checkout"
	"github.com/mantomate/storefront-backend/pkg/auth"
	pkgerrors "github.com/mantomate/storefront-backend/pkg/errors"
)

type stubCheckout struct {
	result    *checkout.Result
	err       error
	principal auth.Principal
	input     checkout.Input
}

func (s *stubCheckout) Execute(_ context.Context, principal auth.Principal, input checkout.Input) (*checkout.Result, error) {
	s.principal, s.input = principal, input
	return s.result, s.err
}

const checkoutBody = `{
	"items":[{"id":1,"quantity":2,"price":1500}],
	"total":3000,
	"address":{"street":"Av. Corrientes","number":"1234","postalCode":"1043","city":"CABA","province":"Buenos Aires"},
	"saveAddress":true,
	"paymentMethodId":null
}`

func TestCheckoutCreatesOrder(t *testing.T) {
	svc := &stubCheckout{result: &checkout.Result{Success: true, OrderID: 42}}
	resp := httptest.NewRecorder()
	Checkout(svc, nil).ServeHTTP(resp, newRequest(http.MethodPost, "/api/v1/checkout", checkoutBody, nil))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d (%s)", resp.Code, resp.Body.String())
	}
	var result checkout.Result
	decodeData(t, resp, &result)
	if !result.Success || result.OrderID != 42 {
		t.Fatalf("unexpected result %+v", result)
	}
	if svc.principal.Subject != testPrincipal.Subject {
		t.Fatalf("principal not forwarded")
	}
	if len(svc.input.Items) != 1 || !svc.input.SaveAddress || svc.input.Total.IntPart() != 3000 {
		t.Fatalf("unexpected input %+v", svc.input)
	}
}

func TestCheckoutRejectsIncompleteAddress(t *testing.T) {
	svc := &stubCheckout{}
	body := `{"items":[{"id":1,"quantity":1,"price":10}],"total":10,"address":{"street":"","number":"1","postalCode":"1","city":"x","province":"y"}}`
	resp := httptest.NewRecorder()
	Checkout(svc, nil).ServeHTTP(resp, newRequest(http.MethodPost, "/api/v1/checkout", body, nil))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCheckoutSurfacesWorkflowMessage(t *testing.T) {
	svc := &stubCheckout{err: pkgerrors.Wrap(pkgerrors.CodeDependency, errors.New("fk"), checkout.MsgItemsFailed).
		WithDetails(map[string]any{"step": checkout.StepOrderItems})}
	resp := httptest.NewRecorder()
	Checkout(svc, nil).ServeHTTP(resp, newRequest(http.MethodPost, "/api/v1/checkout", checkoutBody, nil))

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
	if msg := errorMessage(t, resp); msg != checkout.MsgItemsFailed {
		t.Fatalf("expected %q got %q", checkout.MsgItemsFailed, msg)
	}
}
