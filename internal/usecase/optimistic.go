package usecase

import "context"

// Optimistic is the shape every optimistic mutation follows: take a
// snapshot while applying the local change, attempt the remote call,
// then reconcile the local state with the remote result or restore the
// snapshot. The snapshot is explicit so rollback can never drift from
// the inverse of the local change.
type Optimistic[Snap, Result any] struct {
	// Apply performs the local mutation and returns the pre-mutation
	// snapshot used for rollback.
	Apply func() Snap
	// Attempt issues the remote call.
	Attempt func(ctx context.Context) (Result, error)
	// Reconcile folds the remote result back into local state. May be
	// nil when the optimistic state is already correct.
	Reconcile func(Result)
	// Revert restores the snapshot after a failed attempt.
	Revert func(Snap)
}

func (o Optimistic[Snap, Result]) Run(ctx context.Context) error {
	snap := o.Apply()
	res, err := o.Attempt(ctx)
	if err != nil {
		if o.Revert != nil {
			o.Revert(snap)
		}
		return err
	}
	if o.Reconcile != nil {
		o.Reconcile(res)
	}
	return nil
}
