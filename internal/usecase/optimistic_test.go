package usecase

import (
	"context"
	"errors"
	"testing"
)

func TestOptimistic_ReconcileOnSuccess(t *testing.T) {
	state := []string{"a"}

	txn := Optimistic[[]string, string]{
		Apply: func() []string {
			snap := append([]string(nil), state...)
			state = append([]string{"pending"}, state...)
			return snap
		},
		Attempt: func(context.Context) (string, error) {
			return "b", nil
		},
		Reconcile: func(res string) {
			state[0] = res
		},
	}

	if err := txn.Run(context.Background()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(state) != 2 || state[0] != "b" {
		t.Fatalf("reconcile should replace the placeholder: %v", state)
	}
}

func TestOptimistic_RevertOnFailure(t *testing.T) {
	state := []string{"a"}
	boom := errors.New("boom")

	txn := Optimistic[[]string, string]{
		Apply: func() []string {
			snap := append([]string(nil), state...)
			state = append([]string{"pending"}, state...)
			return snap
		},
		Attempt: func(context.Context) (string, error) {
			return "", boom
		},
		Reconcile: func(string) {
			t.Fatalf("reconcile must not run on failure")
		},
		Revert: func(snap []string) {
			state = snap
		},
	}

	if err := txn.Run(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected the attempt error, got %v", err)
	}
	if len(state) != 1 || state[0] != "a" {
		t.Fatalf("revert should restore the snapshot: %v", state)
	}
}

func TestOptimistic_NilReconcile(t *testing.T) {
	applied := false
	txn := Optimistic[struct{}, struct{}]{
		Apply:   func() struct{} { applied = true; return struct{}{} },
		Attempt: func(context.Context) (struct{}, error) { return struct{}{}, nil },
	}
	if err := txn.Run(context.Background()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !applied {
		t.Fatalf("apply must run")
	}
}
