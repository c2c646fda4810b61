package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		err  *Error
		want int
	}{
		{NewNotFound("gone", nil), http.StatusNotFound},
		{NewInvalidTrip("bad window"), http.StatusUnprocessableEntity},
		{NewConflict("dup", nil), http.StatusConflict},
		{NewAuth("nope"), http.StatusUnauthorized},
		{NewValidation("bad input", nil), http.StatusBadRequest},
		{NewDatabase("db down", nil), http.StatusInternalServerError},
		{NewInternal("boom", nil), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := c.err.StatusCode(); got != c.want {
			t.Fatalf("%v: expected status %d, got %d", c.err, c.want, got)
		}
	}
}

func TestFrom(t *testing.T) {
	ae := From(NewNotFound("gone", nil))
	if ae.Type != NotFound {
		t.Fatalf("expected NotFound passthrough, got %v", ae.Type)
	}

	ae = From(errors.New("plain"))
	if ae.Type != Internal || ae.StatusCode() != http.StatusInternalServerError {
		t.Fatalf("unknown errors must collapse to Internal, got %v", ae.Type)
	}
}

func TestPredicatesThroughWrap(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewInvalidTrip("bad window"))
	if !IsInvalidTrip(err) {
		t.Fatalf("predicate must see through %%w wrapping")
	}
	if IsNotFound(err) {
		t.Fatalf("wrong predicate matched")
	}
}

func TestErrorString(t *testing.T) {
	e := NewDatabase("query failed", errors.New("conn reset"))
	if e.Error() != "query failed: conn reset" {
		t.Fatalf("unexpected message: %q", e.Error())
	}
	if e.Unwrap() == nil {
		t.Fatalf("wrapped error lost")
	}
}
