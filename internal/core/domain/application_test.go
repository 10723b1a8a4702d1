package domain

import "testing"

func TestApplicationStatus_TransitionTable(t *testing.T) {
	all := []ApplicationStatus{ApplicationApplied, ApplicationShortlisted, ApplicationHired, ApplicationRejected}
	allowed := map[[2]ApplicationStatus]bool{
		{ApplicationApplied, ApplicationShortlisted}:  true,
		{ApplicationApplied, ApplicationRejected}:     true,
		{ApplicationShortlisted, ApplicationHired}:    true,
		{ApplicationShortlisted, ApplicationRejected}: true,
	}

	for _, from := range all {
		for _, to := range all {
			want := allowed[[2]ApplicationStatus{from, to}]
			if got := from.CanTransitionTo(to); got != want {
				t.Errorf("%s -> %s: expected %v, got %v", from, to, want, got)
			}
		}
	}
}

func TestApplicationStatus_Terminal(t *testing.T) {
	if !ApplicationHired.IsTerminal() || !ApplicationRejected.IsTerminal() {
		t.Fatalf("hired and rejected must be terminal")
	}
	if ApplicationApplied.IsTerminal() || ApplicationShortlisted.IsTerminal() {
		t.Fatalf("applied and shortlisted must not be terminal")
	}
}

func TestParseApplicationStatus(t *testing.T) {
	if st, err := ParseApplicationStatus("shortlisted"); err != nil || st != ApplicationShortlisted {
		t.Fatalf("expected shortlisted, got %q %v", st, err)
	}
	for _, bad := range []string{"", "interview", "HIRED", "pending"} {
		if _, err := ParseApplicationStatus(bad); err != ErrInvalidStatus {
			t.Errorf("%q: expected ErrInvalidStatus, got %v", bad, err)
		}
	}
}

func TestParseRole(t *testing.T) {
	for _, r := range []string{"candidate", "employer", "admin"} {
		if _, err := ParseRole(r); err != nil {
			t.Errorf("%s: unexpected error %v", r, err)
		}
	}
	if _, err := ParseRole("superuser"); err != ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestErrorGroups(t *testing.T) {
	if !IsUnauthorized(ErrUnknownSubject) || IsUnauthorized(ErrInsufficientRole) {
		t.Fatalf("unexpected IsUnauthorized grouping")
	}
	if !IsForbidden(ErrInsufficientOwnership) || IsForbidden(ErrInvalidToken) {
		t.Fatalf("unexpected IsForbidden grouping")
	}
	if kind := ResolutionFailureKind(ErrInvalidToken); kind != "invalid_token" {
		t.Fatalf("unexpected kind %q", kind)
	}
}
