package presalesvc

import (
	"context"
	"errors"
	"testing"
)

func TestRunSaga(t *testing.T) {
	t.Parallel()

	t.Run("runs steps in order", func(t *testing.T) {
		var ran []string
		step := func(name string) sagaStep {
			return sagaStep{
				name: name,
				run: func(context.Context) error {
					ran = append(ran, name)
					return nil
				},
			}
		}

		if err := runSaga(context.Background(), []sagaStep{step("a"), step("b"), step("c")}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(ran) != 3 || ran[0] != "a" || ran[2] != "c" {
			t.Fatalf("unexpected run order %v", ran)
		}
	})

	t.Run("failure runs recorded undos in reverse", func(t *testing.T) {
		var events []string
		boom := errors.New("boom")

		steps := []sagaStep{
			{
				name: "first",
				run:  func(context.Context) error { events = append(events, "run first"); return nil },
				undo: func(context.Context) error { events = append(events, "undo first"); return nil },
			},
			{
				name: "second",
				run:  func(context.Context) error { events = append(events, "run second"); return nil },
				undo: func(context.Context) error { events = append(events, "undo second"); return nil },
			},
			{
				name: "third",
				run:  func(context.Context) error { return boom },
			},
		}

		err := runSaga(context.Background(), steps)
		if !errors.Is(err, boom) {
			t.Fatalf("expected wrapped step error, got %v", err)
		}

		want := []string{"run first", "run second", "undo second", "undo first"}
		if len(events) != len(want) {
			t.Fatalf("expected events %v, got %v", want, events)
		}
		for i := range want {
			if events[i] != want[i] {
				t.Fatalf("expected events %v, got %v", want, events)
			}
		}
	})

	t.Run("undo failure does not stop remaining undos", func(t *testing.T) {
		var events []string

		steps := []sagaStep{
			{
				name: "first",
				run:  func(context.Context) error { return nil },
				undo: func(context.Context) error { events = append(events, "undo first"); return nil },
			},
			{
				name: "second",
				run:  func(context.Context) error { return nil },
				undo: func(context.Context) error { return errors.New("undo failed") },
			},
			{
				name: "third",
				run:  func(context.Context) error { return errors.New("boom") },
			},
		}

		if err := runSaga(context.Background(), steps); err == nil {
			t.Fatalf("expected step error")
		}
		if len(events) != 1 || events[0] != "undo first" {
			t.Fatalf("expected undo first to run, got %v", events)
		}
	})
}
