package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{code: CodeUnauthorized, status: http.StatusUnauthorized, publicMsg: "authentication required"},
		{code: CodeForbidden, status: http.StatusForbidden, publicMsg: "access denied"},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeConflict, status: http.StatusConflict, publicMsg: "conflict detected"},
		{code: CodeIdempotency, status: http.StatusConflict, publicMsg: "idempotency key reused", detailsOK: true},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "dependency unavailable", retryable: true, detailsOK: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("insert failed")
	err := Wrap(CodeDependency, cause, "Error al crear el pedido").
		WithDetails(map[string]any{"step": "order"})

	if !stdErrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable")
	}
	if err.Message() != "Error al crear el pedido" {
		t.Fatalf("unexpected message %q", err.Message())
	}
	if !strings.Contains(err.Error(), "insert failed") {
		t.Fatalf("expected cause in error string, got %q", err.Error())
	}

	outer := fmt.Errorf("checkout: %w", err)
	if !IsCode(outer, CodeDependency) {
		t.Fatal("expected IsCode to find typed error through wrapping")
	}
	if IsCode(outer, CodeValidation) {
		t.Fatal("IsCode matched the wrong code")
	}
	if IsCode(stdErrors.New("plain"), CodeInternal) {
		t.Fatal("plain errors carry no code")
	}
}

func TestNilErrorAccessors(t *testing.T) {
	var e *Error
	if e.Code() != CodeInternal {
		t.Fatalf("nil error should report internal, got %s", e.Code())
	}
	if e.Message() != "" || e.Details() != nil || e.Unwrap() != nil {
		t.Fatal("nil error accessors should be zero")
	}
}

func TestDumpExtractsPostgresDiagnostics(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "ux_direccion_cliente_principal",
		TableName:      "direccion_cliente",
		Message:        "duplicate key value violates unique constraint",
	}
	err := Wrap(CodeDependency, pgErr, "Error al guardar la dirección")

	d := Dump(err)
	if d.Code != CodeDependency {
		t.Fatalf("expected dependency code, got %s", d.Code)
	}
	if d.PGCode != "23505" || d.PGConstraint != "ux_direccion_cliente_principal" || d.PGTable != "direccion_cliente" {
		t.Fatalf("unexpected pg fields: %+v", d)
	}
	if len(d.Chain) != 2 {
		t.Fatalf("expected chain of 2, got %v", d.Chain)
	}

	pqErr := &pq.Error{Code: "23503", Table: "pedido_item", Message: "fk violation"}
	d = Dump(fmt.Errorf("insert items: %w", pqErr))
	if d.PGCode != "23503" || d.PGTable != "pedido_item" {
		t.Fatalf("unexpected pq fields: %+v", d)
	}

	if Dump(nil).TopMessage != "" {
		t.Fatal("nil dump should be empty")
	}
}
