package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestAppError_IsMatchesCode(t *testing.T) {
	err := NewAppError(ErrNotYetStarted, "meeting has not started yet", nil)
	wrapped := fmt.Errorf("mark attendance: %w", err)

	if !stderrors.Is(wrapped, ErrNotYetStarted) {
		t.Fatalf("expected wrapped error to match ErrNotYetStarted")
	}
	if stderrors.Is(wrapped, ErrAlreadyEnded) {
		t.Fatalf("did not expect wrapped error to match ErrAlreadyEnded")
	}
	if !stderrors.Is(wrapped, NewAppError(ErrNotYetStarted, "other message", nil)) {
		t.Fatalf("expected match against another AppError with same code")
	}
}

func TestAppError_UnwrapKeepsCause(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := NewAppError(ErrInternalServer, "failed to load meeting", cause)

	if !stderrors.Is(err, cause) {
		t.Fatalf("expected cause to be reachable through Unwrap")
	}
	if got := err.Error(); got != "INTERNAL_SERVER_ERROR: failed to load meeting: connection reset" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestErrorCode_Classes(t *testing.T) {
	cases := []struct {
		code       ErrorCode
		notFound   bool
		conflict   bool
		markingErr bool
	}{
		{ErrMeetingNotFound, true, false, false},
		{ErrBeaconNotFound, true, false, false},
		{ErrBeaconOverlap, false, true, false},
		{ErrLocationOverlap, false, true, false},
		{ErrNotYetStarted, false, false, true},
		{ErrWindowNotConfigured, false, false, true},
		{ErrInvalidWindow, false, false, false},
	}
	for _, tc := range cases {
		if tc.code.IsNotFound() != tc.notFound {
			t.Errorf("%s: IsNotFound = %v", tc.code, !tc.notFound)
		}
		if tc.code.IsConflict() != tc.conflict {
			t.Errorf("%s: IsConflict = %v", tc.code, !tc.conflict)
		}
		if tc.code.IsMarkingRejected() != tc.markingErr {
			t.Errorf("%s: IsMarkingRejected = %v", tc.code, !tc.markingErr)
		}
	}
}

func TestCodeOf(t *testing.T) {
	if _, ok := CodeOf(stderrors.New("plain")); ok {
		t.Fatalf("expected plain error to have no code")
	}
	code, ok := CodeOf(fmt.Errorf("wrap: %w", NewAppError(ErrLocationOverlap, "room busy", nil)))
	if !ok || code != ErrLocationOverlap {
		t.Fatalf("expected LOCATION_OVERLAP, got %q (ok=%v)", code, ok)
	}
}
