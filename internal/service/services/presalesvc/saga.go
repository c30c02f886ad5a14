package presalesvc

import (
	"context"
	"fmt"
	"log/slog"
)

// sagaStep is one platform mutation with its recorded compensation. Steps
// with a nil undo have nothing to compensate.
type sagaStep struct {
	name string
	run  func(ctx context.Context) error
	undo func(ctx context.Context) error
}

// runSaga executes the steps in order. When a step fails, the undos recorded
// by the steps completed so far run in reverse order. Compensation is
// best-effort: an undo failure is logged and the remaining undos still run.
func runSaga(ctx context.Context, steps []sagaStep) error {
	completed := make([]sagaStep, 0, len(steps))

	for _, step := range steps {
		if err := step.run(ctx); err != nil {
			for i := len(completed) - 1; i >= 0; i-- {
				prev := completed[i]
				if prev.undo == nil {
					continue
				}
				if undoErr := prev.undo(ctx); undoErr != nil {
					slog.Error("Saga compensation failed",
						"step", prev.name,
						"failed_step", step.name,
						"error", undoErr,
					)
				}
			}

			return fmt.Errorf("step %s failed: %w", step.name, err)
		}
		completed = append(completed, step)
	}

	return nil
}
