package service

import (
	"context"
	"sort"
	"sync"

	"github.com/talentbridge/marketplace/internal/core/domain"
	"github.com/talentbridge/marketplace/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User // by id
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		clone := *u
		r.users[u.ID] = &clone
	}
	return r
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	clone := *user
	r.users[user.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id string, role domain.Role) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Role = role
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubJobRepo struct {
	mu   sync.Mutex
	jobs map[string]*domain.Job
}

func newStubJobRepo(jobs ...*domain.Job) *stubJobRepo {
	r := &stubJobRepo{jobs: make(map[string]*domain.Job)}
	for _, j := range jobs {
		clone := *j
		r.jobs[j.ID] = &clone
	}
	return r
}

func (r *stubJobRepo) FindByID(_ context.Context, id string) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	clone := *j
	return &clone, nil
}

func (r *stubJobRepo) Create(_ context.Context, job *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *job
	r.jobs[job.ID] = &clone
	return nil
}

func (r *stubJobRepo) Update(_ context.Context, job *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[job.ID]; !ok {
		return domain.ErrJobNotFound
	}
	clone := *job
	r.jobs[job.ID] = &clone
	return nil
}

func (r *stubJobRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[id]; !ok {
		return domain.ErrJobNotFound
	}
	delete(r.jobs, id)
	return nil
}

func (r *stubJobRepo) List(_ context.Context, f ports.JobFilter) ([]*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Job
	for _, j := range r.jobs {
		if f.Status != "" && j.Status != f.Status {
			continue
		}
		if f.PostedBy != "" && j.PostedBy != f.PostedBy {
			continue
		}
		clone := *j
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID < out[k].ID })
	return out, nil
}

// stubAppRepo enforces the (job_id, user_id) uniqueness like the real table.
type stubAppRepo struct {
	mu        sync.Mutex
	apps      map[string]*domain.Application
	createErr error
	// skipPrecheck makes FindByJobAndUser always miss, so only the
	// uniqueness constraint in Create can catch duplicates.
	skipPrecheck bool
}

func newStubAppRepo() *stubAppRepo {
	return &stubAppRepo{apps: make(map[string]*domain.Application)}
}

func (r *stubAppRepo) Create(_ context.Context, app *domain.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, a := range r.apps {
		if a.JobID == app.JobID && a.UserID == app.UserID {
			return domain.ErrDuplicateApplication
		}
	}
	clone := *app
	r.apps[app.ID] = &clone
	return nil
}

func (r *stubAppRepo) FindByID(_ context.Context, id string) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[id]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAppRepo) FindByJobAndUser(_ context.Context, jobID, userID string) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.skipPrecheck {
		return nil, domain.ErrApplicationNotFound
	}
	for _, a := range r.apps {
		if a.JobID == jobID && a.UserID == userID {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domain.ErrApplicationNotFound
}

func (r *stubAppRepo) UpdateStatus(_ context.Context, id string, from, to domain.ApplicationStatus) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[id]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	if a.Status != from {
		return nil, domain.ErrIllegalTransition
	}
	a.Status = to
	clone := *a
	return &clone, nil
}

func (r *stubAppRepo) List(_ context.Context, f ports.ApplicationFilter) ([]*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Application
	for _, a := range r.apps {
		if f.JobID != "" && a.JobID != f.JobID {
			continue
		}
		if f.UserID != "" && a.UserID != f.UserID {
			continue
		}
		clone := *a
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubAppRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.apps)
}

type stubEventRepo struct {
	mu       sync.Mutex
	inserted []*domain.ApplicationEvent
}

func (r *stubEventRepo) Insert(_ context.Context, e *domain.ApplicationEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *e
	r.inserted = append(r.inserted, &clone)
	return nil
}

func (r *stubEventRepo) ListByApplication(_ context.Context, id string) ([]*domain.ApplicationEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.ApplicationEvent
	for _, e := range r.inserted {
		if e.ApplicationID == id {
			out = append(out, e)
		}
	}
	return out, nil
}

type stubPublisher struct {
	mu     sync.Mutex
	events []domain.ApplicationEvent
}

func (p *stubPublisher) Publish(e domain.ApplicationEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

type stubBookingRepo struct {
	bookings map[string]*domain.Booking
	lastList ports.BookingFilter
}

func newStubBookingRepo(bookings ...*domain.Booking) *stubBookingRepo {
	r := &stubBookingRepo{bookings: make(map[string]*domain.Booking)}
	for _, b := range bookings {
		clone := *b
		r.bookings[b.ID] = &clone
	}
	return r
}

func (r *stubBookingRepo) Create(_ context.Context, b *domain.Booking) error {
	clone := *b
	r.bookings[b.ID] = &clone
	return nil
}

func (r *stubBookingRepo) FindByID(_ context.Context, id string) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *stubBookingRepo) Update(_ context.Context, b *domain.Booking) error {
	clone := *b
	r.bookings[b.ID] = &clone
	return nil
}

func (r *stubBookingRepo) Delete(_ context.Context, id string) error {
	delete(r.bookings, id)
	return nil
}

func (r *stubBookingRepo) List(_ context.Context, f ports.BookingFilter) ([]*domain.Booking, error) {
	r.lastList = f
	var out []*domain.Booking
	for _, b := range r.bookings {
		if f.ParticipantID != "" && b.CandidateID != f.ParticipantID && b.EmployerID != f.ParticipantID {
			continue
		}
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		clone := *b
		out = append(out, &clone)
	}
	return out, nil
}

type stubLikeRepo struct {
	likes map[[2]string]bool
}

func newStubLikeRepo() *stubLikeRepo {
	return &stubLikeRepo{likes: make(map[[2]string]bool)}
}

func (r *stubLikeRepo) Add(_ context.Context, jobID, userID string) error {
	key := [2]string{jobID, userID}
	if r.likes[key] {
		return domain.ErrAlreadyLiked
	}
	r.likes[key] = true
	return nil
}

func (r *stubLikeRepo) Remove(_ context.Context, jobID, userID string) error {
	key := [2]string{jobID, userID}
	if !r.likes[key] {
		return domain.ErrNotLiked
	}
	delete(r.likes, key)
	return nil
}

func (r *stubLikeRepo) Exists(_ context.Context, jobID, userID string) (bool, error) {
	return r.likes[[2]string{jobID, userID}], nil
}

func (r *stubLikeRepo) Count(_ context.Context, jobID string) (int64, error) {
	var n int64
	for k := range r.likes {
		if k[0] == jobID {
			n++
		}
	}
	return n, nil
}

type stubProfileRepo struct {
	profiles    map[string]*domain.Profile
	upserts     int
	talents     []*domain.Talent
	talentQuery ports.TalentFilter
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{profiles: make(map[string]*domain.Profile)}
}

func (r *stubProfileRepo) FindByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProfileRepo) ListCandidates(_ context.Context, f ports.TalentFilter) ([]*domain.Talent, error) {
	r.talentQuery = f
	return r.talents, nil
}

func (r *stubProfileRepo) Upsert(_ context.Context, p *domain.Profile) (*domain.Profile, error) {
	r.upserts++
	clone := *p
	r.profiles[p.UserID] = &clone
	out := clone
	return &out, nil
}

type stubTestimonialRepo struct {
	items      map[string]*domain.Testimonial
	lastFilter ports.TestimonialFilter
}

func newStubTestimonialRepo() *stubTestimonialRepo {
	return &stubTestimonialRepo{items: make(map[string]*domain.Testimonial)}
}

func (r *stubTestimonialRepo) Create(_ context.Context, t *domain.Testimonial) error {
	clone := *t
	r.items[t.ID] = &clone
	return nil
}

func (r *stubTestimonialRepo) ListApproved(_ context.Context, f ports.TestimonialFilter) ([]*domain.Testimonial, error) {
	r.lastFilter = f
	var out []*domain.Testimonial
	for _, t := range r.items {
		if t.IsApproved {
			clone := *t
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubTestimonialRepo) Approve(_ context.Context, id string) (*domain.Testimonial, error) {
	t, ok := r.items[id]
	if !ok {
		return nil, domain.ErrTestimonialNotFound
	}
	t.IsApproved = true
	clone := *t
	return &clone, nil
}
