package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"grievance-portal/internal/config"
	"grievance-portal/internal/domain"
	"grievance-portal/internal/repository"
)

var ErrUserHasGrievances = errors.New("student has grievances on record and cannot be deleted")

// UserService covers the admin side of account management. Self-service
// registration and login live in AuthService.
type UserService interface {
	ListAll(ctx context.Context) ([]domain.User, error)
	ListByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Update(ctx context.Context, actorID uuid.UUID, id uuid.UUID, input domain.UpdateUserInput) (*domain.User, error)
	ResetPassword(ctx context.Context, actorID uuid.UUID, id uuid.UUID, input domain.ResetPasswordInput) error
	Delete(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error
}

type userService struct {
	userRepo      repository.UserRepository
	sessionRepo   repository.SessionRepository
	grievanceRepo repository.GrievanceRepository
	audit         AuditService
	validate      *validator.Validate
	cfg           *config.Config
}

func NewUserService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, grievanceRepo repository.GrievanceRepository, audit AuditService, cfg *config.Config) UserService {
	return &userService{
		userRepo:      userRepo,
		sessionRepo:   sessionRepo,
		grievanceRepo: grievanceRepo,
		audit:         audit,
		validate:      validator.New(),
		cfg:           cfg,
	}
}

func (s *userService) ListAll(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.ListAll(ctx)
}

func (s *userService) ListByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error) {
	if !role.IsValid() {
		return nil, fmt.Errorf("unknown role %q", role)
	}
	return s.userRepo.ListByRole(ctx, string(role))
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, actorID uuid.UUID, id uuid.UUID, input domain.UpdateUserInput) (*domain.User, error) {
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	var changes []string

	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email != user.Email {
			if !s.cfg.EmailDomainAllowed(email) {
				return nil, ErrEmailNotAllowed
			}
			exists, err := s.userRepo.ExistsByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, ErrEmailExists
			}
			user.Email = email
			changes = append(changes, "email")
		}
	}

	if input.DisplayName != nil && *input.DisplayName != user.DisplayName {
		user.DisplayName = strings.TrimSpace(*input.DisplayName)
		changes = append(changes, "display_name")
	}

	if input.Role != nil && domain.UserRole(*input.Role) != user.Role {
		user.Role = domain.UserRole(*input.Role)
		changes = append(changes, "role")
	}

	if input.IsActive != nil && *input.IsActive != user.IsActive {
		user.IsActive = *input.IsActive
		changes = append(changes, "is_active")
	}

	if len(changes) == 0 {
		return user, nil
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	// Role and activation changes take effect immediately on sessions
	// because the auth middleware reloads the user per request. Revoking
	// refresh tokens on deactivation keeps a disabled account from minting
	// new access tokens.
	if input.IsActive != nil && !user.IsActive {
		if err := s.sessionRepo.RevokeAllForUser(ctx, user.ID); err != nil {
			return nil, err
		}
	}

	s.audit.Record(ctx, actorID, domain.AuditUserUpdate, "user", user.ID.String(), "changed "+strings.Join(changes, ", "))

	return user, nil
}

func (s *userService) ResetPassword(ctx context.Context, actorID uuid.UUID, id uuid.UUID, input domain.ResetPasswordInput) error {
	if err := validateStruct(s.validate, input); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}

	if err := s.sessionRepo.RevokeAllForUser(ctx, user.ID); err != nil {
		return err
	}

	s.audit.Record(ctx, actorID, domain.AuditPasswordReset, "user", user.ID.String(), "password reset")

	return nil
}

// Delete soft-deletes an account. Students keep their account while any
// grievance of theirs exists so the record stays attributable.
func (s *userService) Delete(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if user.HasRole(domain.RoleStudent) {
		count, err := s.grievanceRepo.CountByStudent(ctx, user.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrUserHasGrievances
		}
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.sessionRepo.RevokeAllForUser(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, actorID, domain.AuditUserDelete, "user", id.String(), "deleted "+user.Email)

	return nil
}
