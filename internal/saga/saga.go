// Package saga runs multi-step mutations that span independent writes.
//
// Each Step pairs a forward action with the action that undoes it. When a
// forward action fails, the compensations of the steps that already succeeded
// run in reverse order, so a failed transfer never leaves one side applied.
package saga

import (
	"context"
	"fmt"
	"log/slog"

	"go.uber.org/multierr"
)

type Step struct {
	Name string
	Do   func(ctx context.Context) error
	// Compensate may be nil for steps with nothing to undo (typically the last one).
	Compensate func(ctx context.Context) error
}

// StepError reports which step failed and whether the rollback was clean.
type StepError struct {
	Step string
	Err  error
	// Compensation holds the combined errors of compensations that failed.
	// A non-nil value means the ledger may need manual reconciliation.
	Compensation error
}

func (e *StepError) Error() string {
	if e.Compensation != nil {
		return fmt.Sprintf("step %q: %v (compensation failed: %v)", e.Step, e.Err, e.Compensation)
	}

	return fmt.Sprintf("step %q: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Run executes the steps in order.
func Run(ctx context.Context, steps ...Step) error {
	for i, step := range steps {
		if err := step.Do(ctx); err != nil {
			compErr := compensate(context.WithoutCancel(ctx), steps[:i])

			if compErr != nil {
				slog.Error("saga compensation failed", "step", step.Name, "error", compErr)
			}

			return &StepError{Step: step.Name, Err: err, Compensation: compErr}
		}
	}

	return nil
}

func compensate(ctx context.Context, done []Step) error {
	var errs error

	for i := len(done) - 1; i >= 0; i-- {
		if done[i].Compensate == nil {
			continue
		}

		if err := done[i].Compensate(ctx); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("compensating %q: %w", done[i].Name, err))
		}
	}

	return errs
}
