package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/talentbridge/marketplace/internal/core/domain"
	"github.com/talentbridge/marketplace/internal/core/ports"
)

var (
	candidateC = domain.Principal{ID: "C", Email: "c@example.com", Role: domain.RoleCandidate}
	employerE  = domain.Principal{ID: "E", Role: domain.RoleEmployer}
	employerE2 = domain.Principal{ID: "E2", Role: domain.RoleEmployer}
	adminA     = domain.Principal{ID: "A", Role: domain.RoleAdmin}
)

type appFixture struct {
	svc       *ApplicationService
	apps      *stubAppRepo
	events    *stubEventRepo
	publisher *stubPublisher
}

func newAppFixture() *appFixture {
	jobs := newStubJobRepo(
		&domain.Job{ID: "J1", PostedBy: "E", Status: domain.JobStatusOpen},
		&domain.Job{ID: "J2", PostedBy: "E", Status: domain.JobStatusDraft},
		&domain.Job{ID: "J3", PostedBy: "E", Status: domain.JobStatusClosed},
	)
	f := &appFixture{
		apps:      newStubAppRepo(),
		events:    &stubEventRepo{},
		publisher: &stubPublisher{},
	}
	f.svc = NewApplicationService(f.apps, jobs, f.events, f.publisher, "US", zerolog.Nop())
	return f
}

func (f *appFixture) seed(id string, status domain.ApplicationStatus) {
	f.apps.apps[id] = &domain.Application{
		ID:        id,
		JobID:     "J1",
		UserID:    "C",
		Status:    status,
		AppliedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestApplicationService_Submit_Success(t *testing.T) {
	f := newAppFixture()

	app, err := f.svc.Submit(context.Background(), candidateC, ports.SubmitApplicationInput{JobID: "J1", FullName: " Cara "})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if app.Status != domain.ApplicationApplied {
		t.Fatalf("expected applied, got %s", app.Status)
	}
	if app.UserID != "C" || app.JobID != "J1" || app.FullName != "Cara" {
		t.Fatalf("unexpected application: %+v", app)
	}
	if app.Email != "c@example.com" {
		t.Fatalf("expected email defaulted from principal, got %q", app.Email)
	}
	if app.AppliedAt.IsZero() {
		t.Fatalf("applied_at not set")
	}
}

func TestApplicationService_Submit_Gates(t *testing.T) {
	tests := []struct {
		name  string
		p     domain.Principal
		jobID string
		want  error
	}{
		{"employer cannot apply", employerE, "J1", domain.ErrInsufficientRole},
		{"admin cannot apply", adminA, "J1", domain.ErrInsufficientRole},
		{"role gate before existence", employerE, "missing", domain.ErrInsufficientRole},
		{"job not found", candidateC, "missing", domain.ErrJobNotFound},
		{"draft job", candidateC, "J2", domain.ErrJobNotOpen},
		{"closed job", candidateC, "J3", domain.ErrJobNotOpen},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAppFixture()
			_, err := f.svc.Submit(context.Background(), tt.p, ports.SubmitApplicationInput{JobID: tt.jobID})
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if f.apps.count() != 0 {
				t.Fatalf("no application should have been created")
			}
		})
	}
}

func TestApplicationService_Submit_Twice(t *testing.T) {
	f := newAppFixture()
	in := ports.SubmitApplicationInput{JobID: "J1"}

	if _, err := f.svc.Submit(context.Background(), candidateC, in); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := f.svc.Submit(context.Background(), candidateC, in); !errors.Is(err, domain.ErrDuplicateApplication) {
		t.Fatalf("expected ErrDuplicateApplication, got %v", err)
	}
	if n := f.apps.count(); n != 1 {
		t.Fatalf("expected exactly one application, got %d", n)
	}
}

func TestApplicationService_Submit_ConcurrentRace(t *testing.T) {
	f := newAppFixture()
	f.apps.skipPrecheck = true

	const workers = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		dupes     int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Submit(context.Background(), candidateC, ports.SubmitApplicationInput{JobID: "J1"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, domain.ErrDuplicateApplication):
				dupes++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if successes != 1 || dupes != workers-1 {
		t.Fatalf("expected 1 success and %d duplicates, got %d and %d", workers-1, successes, dupes)
	}
	if n := f.apps.count(); n != 1 {
		t.Fatalf("expected exactly one stored application, got %d", n)
	}
}

func TestApplicationService_Submit_StorageError(t *testing.T) {
	f := newAppFixture()
	f.apps.createErr = errors.New("connection reset")

	_, err := f.svc.Submit(context.Background(), candidateC, ports.SubmitApplicationInput{JobID: "J1"})
	if err == nil || errors.Is(err, domain.ErrDuplicateApplication) {
		t.Fatalf("expected storage error to propagate, got %v", err)
	}
}

func TestApplicationService_Submit_Phone(t *testing.T) {
	f := newAppFixture()

	app, err := f.svc.Submit(context.Background(), candidateC, ports.SubmitApplicationInput{JobID: "J1", Phone: "+1 650-253-0000"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if app.Phone != "+16502530000" {
		t.Fatalf("expected E.164 phone, got %q", app.Phone)
	}

	other := domain.Principal{ID: "C2", Role: domain.RoleCandidate}
	if _, err := f.svc.Submit(context.Background(), other, ports.SubmitApplicationInput{JobID: "J1", Phone: "12"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad phone, got %v", err)
	}
}

func TestApplicationService_SetStatus_Scenario(t *testing.T) {
	f := newAppFixture()
	ctx := context.Background()

	app, err := f.svc.Submit(ctx, candidateC, ports.SubmitApplicationInput{JobID: "J1"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	appliedAt := app.AppliedAt

	if _, err := f.svc.SetStatus(ctx, employerE2, app.ID, "shortlisted"); !errors.Is(err, domain.ErrInsufficientOwnership) {
		t.Fatalf("E2 must be forbidden, got %v", err)
	}

	shortlisted, err := f.svc.SetStatus(ctx, employerE, app.ID, "shortlisted")
	if err != nil {
		t.Fatalf("E shortlist: %v", err)
	}
	if shortlisted.Status != domain.ApplicationShortlisted {
		t.Fatalf("expected shortlisted, got %s", shortlisted.Status)
	}
	if !shortlisted.AppliedAt.Equal(appliedAt) {
		t.Fatalf("applied_at changed")
	}

	if _, err := f.svc.SetStatus(ctx, employerE, app.ID, "hired"); err != nil {
		t.Fatalf("E hire: %v", err)
	}
	if _, err := f.svc.SetStatus(ctx, employerE, app.ID, "rejected"); !errors.Is(err, domain.ErrIllegalTransition) {
		t.Fatalf("expected ErrIllegalTransition out of hired, got %v", err)
	}
	if _, err := f.svc.SetStatus(ctx, adminA, app.ID, "rejected"); !errors.Is(err, domain.ErrIllegalTransition) {
		t.Fatalf("admin must not bypass the transition table, got %v", err)
	}

	if len(f.publisher.events) != 2 {
		t.Fatalf("expected 2 published events, got %d", len(f.publisher.events))
	}
	last := f.publisher.events[1]
	if last.From != domain.ApplicationShortlisted || last.To != domain.ApplicationHired || last.ActorID != "E" {
		t.Fatalf("unexpected event: %+v", last)
	}
}

func TestApplicationService_SetStatus_TransitionTable(t *testing.T) {
	all := []domain.ApplicationStatus{
		domain.ApplicationApplied, domain.ApplicationShortlisted, domain.ApplicationHired, domain.ApplicationRejected,
	}
	for _, from := range all {
		for _, to := range all {
			t.Run(fmt.Sprintf("%s_to_%s", from, to), func(t *testing.T) {
				f := newAppFixture()
				f.seed("app-1", from)

				_, err := f.svc.SetStatus(context.Background(), adminA, "app-1", string(to))
				if from.CanTransitionTo(to) {
					if err != nil {
						t.Fatalf("expected success, got %v", err)
					}
					return
				}
				if !errors.Is(err, domain.ErrIllegalTransition) {
					t.Fatalf("expected ErrIllegalTransition, got %v", err)
				}
			})
		}
	}
}

func TestApplicationService_SetStatus_IllegalTransitionMessage(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		from   domain.ApplicationStatus
		target string
		want   string
	}{
		{domain.ApplicationHired, "rejected", "illegal status transition: hired is terminal"},
		{domain.ApplicationRejected, "shortlisted", "illegal status transition: rejected is terminal"},
		{domain.ApplicationApplied, "hired", "illegal status transition: applied -> hired"},
		{domain.ApplicationShortlisted, "applied", "illegal status transition: shortlisted -> applied"},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%s_to_%s", tc.from, tc.target), func(t *testing.T) {
			f := newAppFixture()
			f.seed("app-1", tc.from)

			_, err := f.svc.SetStatus(ctx, employerE, "app-1", tc.target)
			if !errors.Is(err, domain.ErrIllegalTransition) {
				t.Fatalf("expected ErrIllegalTransition, got %v", err)
			}
			if err.Error() != tc.want {
				t.Fatalf("message = %q, want %q", err.Error(), tc.want)
			}
		})
	}
}

func TestApplicationService_SetStatus_Errors(t *testing.T) {
	f := newAppFixture()
	f.seed("app-1", domain.ApplicationApplied)
	ctx := context.Background()

	if _, err := f.svc.SetStatus(ctx, candidateC, "app-1", "shortlisted"); !errors.Is(err, domain.ErrInsufficientRole) {
		t.Fatalf("candidate must be denied by role, got %v", err)
	}
	if _, err := f.svc.SetStatus(ctx, employerE, "app-1", "interview"); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := f.svc.SetStatus(ctx, employerE, "missing", "shortlisted"); !errors.Is(err, domain.ErrApplicationNotFound) {
		t.Fatalf("expected ErrApplicationNotFound, got %v", err)
	}
	if len(f.publisher.events) != 0 {
		t.Fatalf("failed transitions must not publish events")
	}
}

func TestApplicationService_History(t *testing.T) {
	f := newAppFixture()
	f.seed("app-1", domain.ApplicationApplied)
	_ = f.events.Insert(context.Background(), &domain.ApplicationEvent{ApplicationID: "app-1", To: domain.ApplicationShortlisted})

	for _, p := range []domain.Principal{candidateC, employerE, adminA} {
		events, err := f.svc.History(context.Background(), p, "app-1")
		if err != nil {
			t.Fatalf("%s: history: %v", p.ID, err)
		}
		if len(events) != 1 {
			t.Fatalf("%s: expected 1 event, got %d", p.ID, len(events))
		}
	}

	if _, err := f.svc.History(context.Background(), employerE2, "app-1"); !errors.Is(err, domain.ErrInsufficientOwnership) {
		t.Fatalf("expected ErrInsufficientOwnership, got %v", err)
	}
}

func TestApplicationService_ListScopes(t *testing.T) {
	f := newAppFixture()
	f.seed("app-1", domain.ApplicationApplied)
	f.apps.apps["app-2"] = &domain.Application{ID: "app-2", JobID: "J1", UserID: "C2", Status: domain.ApplicationApplied}

	mine, err := f.svc.List(context.Background(), candidateC)
	if err != nil || len(mine) != 1 || mine[0].ID != "app-1" {
		t.Fatalf("candidate should see only own application, got %v %v", mine, err)
	}

	all, err := f.svc.List(context.Background(), adminA)
	if err != nil || len(all) != 2 {
		t.Fatalf("admin should see all applications, got %d %v", len(all), err)
	}

	if _, err := f.svc.ListForJob(context.Background(), employerE2, "J1"); !errors.Is(err, domain.ErrInsufficientOwnership) {
		t.Fatalf("expected ErrInsufficientOwnership for non-owner, got %v", err)
	}
	forJob, err := f.svc.ListForJob(context.Background(), employerE, "J1")
	if err != nil || len(forJob) != 2 {
		t.Fatalf("owner should see job applications, got %d %v", len(forJob), err)
	}
}
