package saga_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/MrJamesThe3rd/cagnotte/internal/saga"
)

func recorder(log *[]string, name string, err error) func(context.Context) error {
	return func(context.Context) error {
		*log = append(*log, name)
		return err
	}
}

func TestRun_AllStepsSucceed(t *testing.T) {
	var log []string

	err := saga.Run(context.Background(),
		saga.Step{Name: "a", Do: recorder(&log, "do a", nil), Compensate: recorder(&log, "undo a", nil)},
		saga.Step{Name: "b", Do: recorder(&log, "do b", nil), Compensate: recorder(&log, "undo b", nil)},
	)

	require.NoError(t, err)
	assert.Equal(t, []string{"do a", "do b"}, log)
}

func TestRun_CompensatesInReverseOrder(t *testing.T) {
	var log []string

	boom := errors.New("boom")

	err := saga.Run(context.Background(),
		saga.Step{Name: "a", Do: recorder(&log, "do a", nil), Compensate: recorder(&log, "undo a", nil)},
		saga.Step{Name: "b", Do: recorder(&log, "do b", nil), Compensate: recorder(&log, "undo b", nil)},
		saga.Step{Name: "c", Do: recorder(&log, "do c", boom), Compensate: recorder(&log, "undo c", nil)},
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"do a", "do b", "do c", "undo b", "undo a"}, log)

	var stepErr *saga.StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "c", stepErr.Step)
	assert.NoError(t, stepErr.Compensation)
}

func TestRun_SkipsNilCompensation(t *testing.T) {
	var log []string

	err := saga.Run(context.Background(),
		saga.Step{Name: "a", Do: recorder(&log, "do a", nil)},
		saga.Step{Name: "b", Do: recorder(&log, "do b", errors.New("fail"))},
	)

	require.Error(t, err)
	assert.Equal(t, []string{"do a", "do b"}, log)
}

func TestRun_CollectsCompensationFailures(t *testing.T) {
	var log []string

	undoA := errors.New("undo a failed")
	undoB := errors.New("undo b failed")

	err := saga.Run(context.Background(),
		saga.Step{Name: "a", Do: recorder(&log, "do a", nil), Compensate: recorder(&log, "undo a", undoA)},
		saga.Step{Name: "b", Do: recorder(&log, "do b", nil), Compensate: recorder(&log, "undo b", undoB)},
		saga.Step{Name: "c", Do: recorder(&log, "do c", errors.New("fail"))},
	)

	var stepErr *saga.StepError
	require.ErrorAs(t, err, &stepErr)
	require.Error(t, stepErr.Compensation)
	assert.Len(t, multierr.Errors(stepErr.Compensation), 2)
	assert.ErrorIs(t, stepErr.Compensation, undoA)
	assert.ErrorIs(t, stepErr.Compensation, undoB)
	// Every compensation is attempted even after one fails.
	assert.Equal(t, []string{"do a", "do b", "do c", "undo b", "undo a"}, log)
}

func TestRun_CompensationIgnoresCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var compCtxErr error

	err := saga.Run(ctx,
		saga.Step{
			Name: "a",
			Do:   func(context.Context) error { return nil },
			Compensate: func(c context.Context) error {
				compCtxErr = c.Err()
				return nil
			},
		},
		saga.Step{
			Name: "b",
			Do: func(context.Context) error {
				cancel()
				return context.Canceled
			},
		},
	)

	require.ErrorIs(t, err, context.Canceled)
	assert.NoError(t, compCtxErr)
}

var errConflict = errors.New("conflict")

func TestRetry_RetriesConflicts(t *testing.T) {
	calls := 0

	got, err := saga.Retry(context.Background(), saga.RetryPolicy{MaxAttempts: 3, Base: time.Millisecond},
		func(context.Context) (int, error) {
			calls++
			if calls < 3 {
				return 0, fmt.Errorf("writing balance: %w", errConflict)
			}

			return 42, nil
		}, errConflict)

	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 3, calls)
}

func TestRetry_GivesUp(t *testing.T) {
	calls := 0

	_, err := saga.Retry(context.Background(), saga.RetryPolicy{MaxAttempts: 2, Base: time.Millisecond},
		func(context.Context) (struct{}, error) {
			calls++
			return struct{}{}, errConflict
		}, errConflict)

	assert.ErrorIs(t, err, errConflict)
	assert.Equal(t, 2, calls)
}

func TestRetry_OtherErrorsReturnImmediately(t *testing.T) {
	calls := 0
	boom := errors.New("boom")

	_, err := saga.Retry(context.Background(), saga.RetryPolicy{MaxAttempts: 5, Base: time.Millisecond},
		func(context.Context) (struct{}, error) {
			calls++
			return struct{}{}, boom
		}, errConflict)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}
