package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/KarpelesLab/dnsresolver/dnsmsg"
)

func TestRetrySucceedsAfterFailures(t *testing.T) {
	attempts := 0
	inner := &fakeExecutor{fn: func(ctx context.Context, q Query) (*dnsmsg.Message, error) {
		attempts++
		if attempts < 3 {
			return nil, &QueryFailed{Op: "mock", Cause: errors.New("boom")}
		}
		return okMessage(q.Name, q.Type, 60, nil), nil
	}}

	r := NewRetryExecutor(inner, 2)
	_, err := r.Exec(context.Background(), Query{Name: "example.com", Type: dnsmsg.A, Class: dnsmsg.IN})
	if err != nil {
		t.Fatalf("expected success on the final retry, got %s", err)
	}
	if inner.Calls() != 3 {
		t.Fatalf("calls: got %d want 3", inner.Calls())
	}
}

func TestRetrySurfacesLastError(t *testing.T) {
	inner := &fakeExecutor{fn: func(ctx context.Context, q Query) (*dnsmsg.Message, error) {
		return nil, &QueryFailed{Op: "mock", Cause: errors.New("attempt failed")}
	}}

	r := NewRetryExecutor(inner, 2)
	_, err := r.Exec(context.Background(), Query{Name: "example.com", Type: dnsmsg.A, Class: dnsmsg.IN})
	if err == nil {
		t.Fatal("expected an error")
	}
	if inner.Calls() != 3 {
		t.Fatalf("calls: got %d want 3 (1 + 2 retries)", inner.Calls())
	}
}

func TestRetryZeroDisablesRetry(t *testing.T) {
	inner := &fakeExecutor{fn: func(ctx context.Context, q Query) (*dnsmsg.Message, error) {
		return nil, &QueryFailed{Op: "mock", Cause: errors.New("fail")}
	}}

	r := NewRetryExecutor(inner, 0)
	_, err := r.Exec(context.Background(), Query{Name: "example.com", Type: dnsmsg.A, Class: dnsmsg.IN})
	if err == nil {
		t.Fatal("expected an error")
	}
	if inner.Calls() != 1 {
		t.Fatalf("calls: got %d want 1", inner.Calls())
	}
}
