package domain

import "errors"

// Authentication failures. All of them surface as 401.
var (
	ErrMissingCredential = errors.New("missing credential")
	ErrInvalidToken      = errors.New("invalid token")
	ErrUnknownSubject    = errors.New("unknown subject")
)

// Authorization failures. Both surface as 403.
var (
	ErrInsufficientRole      = errors.New("insufficient role")
	ErrInsufficientOwnership = errors.New("insufficient ownership")
)

var (
	ErrJobNotFound          = errors.New("job not found")
	ErrApplicationNotFound  = errors.New("application not found")
	ErrJobNotOpen           = errors.New("job is not open for applications")
	ErrDuplicateApplication = errors.New("already applied to this job")
	ErrIllegalTransition    = errors.New("illegal status transition")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrHasApplications      = errors.New("resource still has applications")
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserExists           = errors.New("user already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidRole          = errors.New("invalid role")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrBookingInPast        = errors.New("scheduled time must be in the future")
	ErrTestimonialNotFound  = errors.New("testimonial not found")
	ErrAlreadyLiked         = errors.New("job already liked")
	ErrNotLiked             = errors.New("job not liked")
	ErrInvalidInput         = errors.New("invalid input")
	ErrMissingSigningSecret = errors.New("token signing secret is not configured")
)

// IsUnauthorized reports whether err is one of the principal resolution failures.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrMissingCredential) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrUnknownSubject)
}

// IsForbidden reports whether err is a policy denial.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrInsufficientRole) || errors.Is(err, ErrInsufficientOwnership)
}

// ResolutionFailureKind returns a short label for logging which resolution step failed.
func ResolutionFailureKind(err error) string {
	switch {
	case errors.Is(err, ErrMissingCredential):
		return "missing_credential"
	case errors.Is(err, ErrInvalidToken):
		return "invalid_token"
	case errors.Is(err, ErrUnknownSubject):
		return "unknown_subject"
	default:
		return "other"
	}
}
