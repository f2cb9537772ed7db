package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"user-service/internal/domain"
	"user-service/internal/password"
	"user-service/internal/repository"
	"user-service/internal/validation"
)

// ValidationError carries the full list of rule violations for a request.
// It is expected caller input error, never logged at error level.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Violations, ", ")
}

// NotFoundError reports an id lookup miss.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("user with id %d does not exist", e.ID)
}

// ConflictError reports a duplicate email at creation time.
type ConflictError struct {
	Email string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("a user with email %q already exists", e.Email)
}

type GetUserRequest struct {
	ID int64 `validate:"gt=0"`
}

type ListUsersRequest struct {
	PageNumber int32 `validate:"gt=0"`
	PageSize   int32 `validate:"gt=0,lte=100"`
	ActiveOnly bool
	Role       string
}

type CreateUserRequest struct {
	Email     string `validate:"required,email,max=50"`
	FirstName string `validate:"required,max=100"`
	LastName  string `validate:"required,max=100"`
	Password  string `validate:"required,min=8"`
	Role      string `validate:"required,max=50"`
}

type UpdateUserRequest struct {
	ID        int64  `validate:"gt=0"`
	Email     string `validate:"required,email,max=50"`
	FirstName string `validate:"required,max=100"`
	LastName  string `validate:"required,max=100"`
	Role      string `validate:"required,max=50"`
}

type DeleteUserRequest struct {
	ID int64 `validate:"gt=0"`
}

// DeleteUserResult acknowledges a logical delete.
type DeleteUserResult struct {
	Success bool
	Message string
}

// UserService describes the five user management operations. ListUsers is a
// producer: it pushes each matching user through emit, in stable order, and
// stops silently when ctx is cancelled.
type UserService interface {
	GetUser(ctx context.Context, req GetUserRequest) (*domain.User, error)
	ListUsers(ctx context.Context, req ListUsersRequest, emit func(*domain.User) error) error
	CreateUser(ctx context.Context, req CreateUserRequest) (*domain.User, error)
	UpdateUser(ctx context.Context, req UpdateUserRequest) (*domain.User, error)
	DeleteUser(ctx context.Context, req DeleteUserRequest) (*DeleteUserResult, error)
}

type userService struct {
	users  repository.UserRepository
	hasher password.Hasher
	logger *logrus.Logger
}

func NewUserService(users repository.UserRepository, hasher password.Hasher, logger *logrus.Logger) UserService {
	return &userService{
		users:  users,
		hasher: hasher,
		logger: logger,
	}
}

// validate rejects a request before any store access.
func (s *userService) validate(req any) error {
	msgs := validation.Messages(req)
	if len(msgs) == 0 {
		return nil
	}
	s.logger.Warnf("validation failed: %s", strings.Join(msgs, ", "))
	return &ValidationError{Violations: msgs}
}

func (s *userService) GetUser(ctx context.Context, req GetUserRequest) (*domain.User, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, req.ID)
	if errors.Is(err, repository.ErrNotFound) {
		s.logger.Warnf("user %d not found", req.ID)
		return nil, &NotFoundError{ID: req.ID}
	}
	if err != nil {
		s.logger.Errorf("get user %d: %v", req.ID, err)
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, req ListUsersRequest, emit func(*domain.User) error) error {
	if err := s.validate(req); err != nil {
		return err
	}

	filter := repository.ListFilter{
		ActiveOnly: req.ActiveOnly,
		Role:       strings.TrimSpace(req.Role),
		Offset:     int(req.PageNumber-1) * int(req.PageSize),
		Limit:      int(req.PageSize),
	}
	users, err := s.users.List(ctx, filter)
	if err != nil {
		s.logger.Errorf("list users: %v", err)
		return err
	}

	for i := range users {
		// cooperative cancellation: checked before every emission, and an
		// observed cancel ends the stream without error
		if ctx.Err() != nil {
			s.logger.Warn("list users cancelled by caller")
			return nil
		}
		if err := emit(&users[i]); err != nil {
			return fmt.Errorf("emit user: %w", err)
		}
	}
	return nil
}

func (s *userService) CreateUser(ctx context.Context, req CreateUserRequest) (*domain.User, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	// fast-path duplicate check; the unique constraint on insert is the
	// authoritative guard under concurrent creates
	existing, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.logger.Errorf("check email %q: %v", req.Email, err)
		return nil, err
	}
	if existing != nil {
		s.logger.Warnf("user with email %q already exists", req.Email)
		return nil, &ConflictError{Email: req.Email}
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Errorf("hash password: %v", err)
		return nil, err
	}

	user := &domain.User{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: digest,
		Role:         req.Role,
		CreatedAt:    time.Now().UTC(),
		IsActive:     true,
	}
	if _, err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, &ConflictError{Email: req.Email}
		}
		s.logger.Errorf("insert user %q: %v", req.Email, err)
		return nil, err
	}

	s.logger.Infof("user created with id %d", user.ID)
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, req UpdateUserRequest) (*domain.User, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, req.ID)
	if errors.Is(err, repository.ErrNotFound) {
		s.logger.Warnf("user %d not found", req.ID)
		return nil, &NotFoundError{ID: req.ID}
	}
	if err != nil {
		s.logger.Errorf("get user %d: %v", req.ID, err)
		return nil, err
	}

	// password and activation state are untouched by updates
	user.Email = req.Email
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Role = req.Role

	if err := s.users.Save(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, &ConflictError{Email: req.Email}
		}
		s.logger.Errorf("save user %d: %v", req.ID, err)
		return nil, err
	}

	s.logger.Infof("user %d updated", user.ID)
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, req DeleteUserRequest) (*DeleteUserResult, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, req.ID)
	if errors.Is(err, repository.ErrNotFound) {
		s.logger.Warnf("user %d not found", req.ID)
		return nil, &NotFoundError{ID: req.ID}
	}
	if err != nil {
		s.logger.Errorf("get user %d: %v", req.ID, err)
		return nil, err
	}

	user.IsActive = false
	if err := s.users.Save(ctx, user); err != nil {
		s.logger.Errorf("save user %d: %v", req.ID, err)
		return nil, err
	}

	s.logger.Infof("user %d deleted (logical)", user.ID)
	return &DeleteUserResult{
		Success: true,
		Message: fmt.Sprintf("user %q deleted successfully", user.Email),
	}, nil
}
