package team

import (
	"context"

	"github.com/cenkalti/backoff/v4"

	"github.com/DoyleJ11/team-builder-backend/internal/errs"
)

// MaxSaveAttempts bounds how many generated ids a single save may try.
const MaxSaveAttempts = 5

// retryOnConflict runs attempt up to maxAttempts times, immediately retrying
// while it fails with an errs.Conflict error. Any other error stops the loop
// and is returned as is. When every attempt conflicts the last conflict is
// returned.
func retryOnConflict(ctx context.Context, maxAttempts int, attempt func(n int) error) error {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	n := 0
	operation := func() error {
		n++
		err := attempt(n)
		if err == nil || errs.KindIs(errs.Conflict, err) {
			return err
		}
		return backoff.Permanent(err)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(&backoff.ZeroBackOff{}, uint64(maxAttempts-1)),
		ctx,
	)

	return backoff.Retry(operation, policy)
}
