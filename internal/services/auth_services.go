package services

import (
	"context"
	"errors"
	"regexp"
	"time"

	"StudentPortalAPI/internal/model"
	"StudentPortalAPI/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLen = 6

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var (
	// ErrIncorrectPassword is the only signal a failed credential check
	// produces; it never says how close the attempt was.
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrSelfDelete        = errors.New("cannot delete your own account")
)

// ValidationError marks rejected input. The message is written for the API
// caller and handlers surface it verbatim with a 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) error { return &ValidationError{Message: msg} }

// UserStore is the persistence surface the services need. The pgx-backed
// repository satisfies it; tests use an in-memory fake.
type UserStore interface {
	Create(ctx context.Context, name, email, passwordHash, role string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	EmailTakenByOther(ctx context.Context, email, excludeID string) (bool, error)
	Update(ctx context.Context, id string, name, email, role *string) (*model.User, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]model.User, int64, error)
	Count(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context, role string) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}

type AuthService struct {
	Users UserStore
}

func NewAuthService(u UserStore) *AuthService {
	return &AuthService{Users: u}
}

func validateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return invalid("Please provide a valid email address")
	}
	return nil
}

// Register validates input, hashes the password and persists the user.
// Validation failures come back as *ValidationError; a hashing or store
// failure is an internal error for the handler to turn into a 500.
func (s *AuthService) Register(ctx context.Context, name, email, password, role string) (*model.User, error) {
	if name == "" || email == "" || password == "" || role == "" {
		return nil, invalid("All fields (name, email, password, role) are required")
	}
	if !model.ValidRole(role) {
		return nil, invalid("Role must be either 'admin' or 'student'")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if len(password) < MinPasswordLen {
		return nil, invalid("Password must be at least 6 characters long")
	}
	exists, err := s.Users.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, invalid("User already registered")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u, err := s.Users.Create(ctx, name, email, string(hash), role)
	if err != nil {
		// the unique constraint can still fire when two registrations race
		// past the pre-check; report it the same way
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, invalid("User already registered")
		}
		return nil, err
	}
	return u, nil
}

// Login authenticates by email + password. A missing user surfaces as
// repository.ErrNotFound, a wrong password as ErrIncorrectPassword; the
// password hash is zeroed before the user is returned.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	if email == "" || password == "" {
		return nil, invalid("Email and password are required")
	}
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrIncorrectPassword
	}
	u.PasswordHash = ""
	return u, nil
}
