package auditlog

import (
	"errors"
	"testing"
)

func TestParseAction(t *testing.T) {
	t.Parallel()

	for _, action := range []Action{ActionSettings, ActionRelease, ActionSplitRelease} {
		parsed, err := ParseAction(action.String())
		if err != nil {
			t.Fatalf("expected %s to parse, got %v", action, err)
		}
		if parsed != action {
			t.Fatalf("expected %s, got %s", action, parsed)
		}
	}

	if _, err := ParseAction("RESTOCK"); !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("expected ErrInvalidAction, got %v", err)
	}
}
