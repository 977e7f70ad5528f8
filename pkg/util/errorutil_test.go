package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestToDomainErrorPassesThrough(t *testing.T) {
	original := NewNotFound("ticket", nil)
	mapped := ToDomainError(original)
	if mapped.Code != "NOT_FOUND" || mapped.HTTPStatus != http.StatusNotFound {
		t.Fatalf("mapped = %+v", mapped)
	}
}

func TestToDomainErrorMapsNoRows(t *testing.T) {
	mapped := ToDomainError(pgx.ErrNoRows)
	if mapped.HTTPStatus != http.StatusNotFound {
		t.Fatalf("HTTPStatus = %d, want 404", mapped.HTTPStatus)
	}
}

func TestToDomainErrorHidesUnknownErrors(t *testing.T) {
	mapped := ToDomainError(errors.New("pq: connection refused"))
	if mapped.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("HTTPStatus = %d, want 500", mapped.HTTPStatus)
	}
	if mapped.Message != "internal server error" {
		t.Fatalf("Message = %q, internals must not leak", mapped.Message)
	}
}

func TestToDomainErrorNil(t *testing.T) {
	if ToDomainError(nil) != nil {
		t.Fatal("nil error mapped to non-nil")
	}
}

func TestDomainErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := NewInternalError(inner)
	if !errors.Is(err, inner) {
		t.Fatal("wrapped error not reachable via errors.Is")
	}
}
