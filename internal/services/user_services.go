package services

import (
	"context"
	"math"
	"time"

	"StudentPortalAPI/internal/model"
)

const recentRegistrationWindow = 30 * 24 * time.Hour

// Pagination describes one page of an admin listing.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalUsers  int64 `json:"totalUsers"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

type UserPage struct {
	Users      []model.UserView `json:"users"`
	Pagination Pagination       `json:"pagination"`
}

// AdminStats are the aggregate counters behind /admin/stats and the admin
// dashboard.
type AdminStats struct {
	TotalUsers          int64 `json:"totalUsers"`
	TotalStudents       int64 `json:"totalStudents"`
	TotalAdmins         int64 `json:"totalAdmins"`
	RecentRegistrations int64 `json:"recentRegistrations"`
}

// StudentStats are placeholders until courses exist.
type StudentStats struct {
	EnrolledCourses    int `json:"enrolledCourses"`
	CompletedCourses   int `json:"completedCourses"`
	PendingAssignments int `json:"pendingAssignments"`
	UpcomingClasses    int `json:"upcomingClasses"`
}

type Dashboard struct {
	User           model.UserView `json:"user"`
	Stats          any            `json:"stats"`
	RecentActivity []any          `json:"recentActivity"`
}

type UserService struct {
	Users UserStore
}

func NewUserService(u UserStore) *UserService {
	return &UserService{Users: u}
}

// UpdateName changes the caller's own display name and returns the updated
// user. Name is the only self-serviceable field; email and role stay
// admin-managed.
func (s *UserService) UpdateName(ctx context.Context, id, name string) (*model.User, error) {
	if name == "" {
		return nil, invalid("Name is required")
	}
	return s.Users.Update(ctx, id, &name, nil, nil)
}

// ListUsers returns one page of users, newest first. Page and limit fall
// back to 1 and 10 when absent or nonsense.
func (s *UserService) ListUsers(ctx context.Context, page, limit int) (*UserPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	users, total, err := s.Users.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	views := make([]model.UserView, 0, len(users))
	for i := range users {
		views = append(views, users[i].FullView())
	}
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return &UserPage{
		Users: views,
		Pagination: Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalUsers:  total,
			HasNextPage: page < totalPages,
			HasPrevPage: page > 1,
		},
	}, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	return s.Users.GetByID(ctx, id)
}

// UpdateUser applies an admin's partial update. Role and email are
// validated when present; the email-taken check excludes the user's own id
// so re-submitting the current address is not a conflict.
func (s *UserService) UpdateUser(ctx context.Context, id string, name, email, role *string) (*model.User, error) {
	if role != nil && !model.ValidRole(*role) {
		return nil, invalid("Role must be either 'admin' or 'student'")
	}
	if email != nil {
		if err := validateEmail(*email); err != nil {
			return nil, err
		}
		taken, err := s.Users.EmailTakenByOther(ctx, *email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, invalid("Email already taken by another user")
		}
	}
	return s.Users.Update(ctx, id, name, email, role)
}

// DeleteUser removes a user. An admin deleting their own account is
// rejected so the system cannot be locked out.
func (s *UserService) DeleteUser(ctx context.Context, requesterID, id string) error {
	if id == requesterID {
		return ErrSelfDelete
	}
	return s.Users.Delete(ctx, id)
}

// Stats aggregates the admin counters. Recent registrations cover the
// trailing 30 days.
func (s *UserService) Stats(ctx context.Context) (*AdminStats, error) {
	total, err := s.Users.Count(ctx)
	if err != nil {
		return nil, err
	}
	students, err := s.Users.CountByRole(ctx, model.RoleStudent)
	if err != nil {
		return nil, err
	}
	admins, err := s.Users.CountByRole(ctx, model.RoleAdmin)
	if err != nil {
		return nil, err
	}
	recent, err := s.Users.CountCreatedSince(ctx, time.Now().Add(-recentRegistrationWindow))
	if err != nil {
		return nil, err
	}
	return &AdminStats{
		TotalUsers:          total,
		TotalStudents:       students,
		TotalAdmins:         admins,
		RecentRegistrations: recent,
	}, nil
}

// DashboardFor builds the role-specific dashboard payload for an already-
// authenticated user.
func (s *UserService) DashboardFor(ctx context.Context, u *model.User) (*Dashboard, error) {
	d := &Dashboard{
		User:           u.View(),
		Stats:          struct{}{},
		RecentActivity: []any{},
	}
	switch u.Role {
	case model.RoleAdmin:
		stats, err := s.Stats(ctx)
		if err != nil {
			return nil, err
		}
		d.Stats = stats
	case model.RoleStudent:
		d.Stats = StudentStats{}
	}
	return d, nil
}
