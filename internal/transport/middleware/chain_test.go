package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/heartmarshall/postcards-home/pkg/ctxutil"
)

// orderedIdentity records when the identity lookup happens.
type orderedIdentity struct {
	name  string
	trace *[]string
}

func (o orderedIdentity) Get(ctx context.Context) string {
	*o.trace = append(*o.trace, "identity:"+ctxutil.RequestIDFromCtx(ctx))
	return o.name
}

func TestChain_RequestIDThenIdentity(t *testing.T) {
	var trace []string
	var gotID, gotName string

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = ctxutil.RequestIDFromCtx(r.Context())
		gotName, _ = ctxutil.IdentityFromCtx(r.Context())
		trace = append(trace, "handler")
	})

	chained := Chain(
		RequestID(),
		Identity(orderedIdentity{name: "Tracey", trace: &trace}),
	)(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/widget?recipient=Lucy", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	chained.ServeHTTP(rec, req)

	if gotID != "req-42" {
		t.Errorf("request id = %q, want %q", gotID, "req-42")
	}
	if gotName != "Tracey" {
		t.Errorf("identity = %q, want %q", gotName, "Tracey")
	}
	// The identity lookup already sees the request id set by the outer layer.
	want := []string{"identity:req-42", "handler"}
	if !slices.Equal(trace, want) {
		t.Errorf("trace = %v, want %v", trace, want)
	}
	if got := rec.Header().Get(RequestIDHeader); got != "req-42" {
		t.Errorf("response %s = %q", RequestIDHeader, got)
	}
}

func TestChain_ReversedOrderHidesRequestID(t *testing.T) {
	var trace []string

	chained := Chain(
		Identity(orderedIdentity{name: "Julian", trace: &trace}),
		RequestID(),
	)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-7")
	chained.ServeHTTP(httptest.NewRecorder(), req)

	if want := []string{"identity:"}; !slices.Equal(trace, want) {
		t.Errorf("trace = %v, want %v", trace, want)
	}
}

func TestChain_RecoveryOutermostCatchesInnerPanic(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	chained := Chain(
		Recovery(logger),
		RequestID(),
		Identity(fixedIdentity("Lucy")),
	)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("widget exploded")
	}))

	rec := httptest.NewRecorder()
	chained.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/postcards", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("expected request id header to survive the panic")
	}
}

func TestChain_NoMiddleware(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ctxutil.IdentityFromCtx(r.Context()); ok {
			t.Error("identity set without Identity middleware")
		}
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	Chain()(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
}
