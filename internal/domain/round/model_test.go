package round

import (
	"errors"
	"testing"
	"time"
)

func TestValidateTransition_Chain(t *testing.T) {
	t.Parallel()

	deadline := time.Now().Add(time.Hour)

	cases := []struct {
		name     string
		round    Round
		target   string
		expectOK bool
	}{
		{"setup to open with deadline", Round{ID: "r1", Status: StatusSetup, Deadline: &deadline}, StatusOpen, true},
		{"setup to open without deadline", Round{ID: "r1", Status: StatusSetup}, StatusOpen, false},
		{"open to closed", Round{ID: "r1", Status: StatusOpen, Deadline: &deadline}, StatusClosed, true},
		{"closed to completed", Round{ID: "r1", Status: StatusClosed, Deadline: &deadline}, StatusCompleted, true},
		{"setup skips to closed", Round{ID: "r1", Status: StatusSetup, Deadline: &deadline}, StatusClosed, false},
		{"open skips to completed", Round{ID: "r1", Status: StatusOpen, Deadline: &deadline}, StatusCompleted, false},
		{"closed back to open", Round{ID: "r1", Status: StatusClosed, Deadline: &deadline}, StatusOpen, false},
		{"completed is terminal", Round{ID: "r1", Status: StatusCompleted, Deadline: &deadline}, StatusCompleted, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateTransition(tc.round, tc.target)
			if tc.expectOK && err != nil {
				t.Fatalf("expected transition to be allowed, got %v", err)
			}
			if !tc.expectOK {
				if err == nil {
					t.Fatal("expected transition to be rejected")
				}
				if !errors.Is(err, ErrInvalidTransition) {
					t.Fatalf("expected ErrInvalidTransition, got %v", err)
				}
			}
		})
	}
}

func TestIsTerminalStatus(t *testing.T) {
	t.Parallel()

	if !IsTerminalStatus("completed") {
		t.Fatal("COMPLETED must be terminal")
	}
	if IsTerminalStatus(StatusClosed) {
		t.Fatal("CLOSED must not be terminal")
	}
}
