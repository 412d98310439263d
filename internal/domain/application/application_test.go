package application

import (
	"errors"
	"testing"
)

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("interviewing")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if s != StatusInterviewing {
		t.Fatalf("expected interviewing, got %s", s)
	}

	if _, err := ParseStatus("ghosted"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestStatusProgression(t *testing.T) {
	allowed := []struct {
		from, to Status
	}{
		{StatusApplied, StatusViewed},
		{StatusViewed, StatusInterviewing},
		{StatusInterviewing, StatusOffered},
		{StatusInterviewing, StatusRejected},
		{StatusApplied, StatusWithdrawn},
		{StatusViewed, StatusWithdrawn},
		{StatusInterviewing, StatusWithdrawn},
	}
	for _, c := range allowed {
		if !c.from.CanTransitionTo(c.to) {
			t.Errorf("%s -> %s should be allowed", c.from, c.to)
		}
	}

	denied := []struct {
		from, to Status
	}{
		{StatusViewed, StatusApplied},
		{StatusApplied, StatusInterviewing},
		{StatusApplied, StatusOffered},
		{StatusOffered, StatusRejected},
		{StatusRejected, StatusWithdrawn},
		{StatusWithdrawn, StatusWithdrawn},
		{StatusOffered, StatusWithdrawn},
	}
	for _, c := range denied {
		if c.from.CanTransitionTo(c.to) {
			t.Errorf("%s -> %s should be denied", c.from, c.to)
		}
	}
}

func TestTerminal(t *testing.T) {
	for _, s := range []Status{StatusOffered, StatusRejected, StatusWithdrawn} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []Status{StatusApplied, StatusViewed, StatusInterviewing} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestCountByStatus(t *testing.T) {
	apps := []Application{
		{Status: StatusApplied},
		{Status: StatusApplied},
		{Status: StatusInterviewing},
		{Status: StatusWithdrawn},
	}
	c := CountByStatus(apps)
	if c.All != 4 || c.Applied != 2 || c.Interviewing != 1 || c.Withdrawn != 1 {
		t.Fatalf("unexpected counts: %+v", c)
	}
}
