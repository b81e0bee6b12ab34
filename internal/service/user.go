package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/shopkart/commerce-api/internal/auth"
	"github.com/shopkart/commerce-api/internal/domain"
	"github.com/shopkart/commerce-api/internal/repository"
)

// UserService handles registration, login and the profile surface.
type UserService interface {
	Register(ctx context.Context, input domain.RegisterInput) (*domain.User, error)
	Login(ctx context.Context, input domain.LoginInput) (string, *domain.User, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, patch domain.ProfilePatch) (*domain.User, bool, error)
}

type userService struct {
	repo      repository.UserRepository
	hasher    *auth.PasswordHasher
	tokens    *auth.TokenManager
	validator *domain.Validation
	logger    hclog.Logger
}

func NewUserService(
	repo repository.UserRepository,
	hasher *auth.PasswordHasher,
	tokens *auth.TokenManager,
	validator *domain.Validation,
	logger hclog.Logger) UserService {
	return &userService{
		repo:      repo,
		hasher:    hasher,
		tokens:    tokens,
		validator: validator,
		logger:    logger,
	}
}

func (s *userService) Register(ctx context.Context, input domain.RegisterInput) (*domain.User, error) {
	s.logger.Debug("Registering user", "email", input.Email)

	if errs := s.validator.Validate(input); errs != nil {
		return nil, errs
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.logger.Error("Unable to hash password", "error", err)
		return nil, err
	}

	user := &domain.User{
		Name:      strings.TrimSpace(input.Name),
		Email:     email,
		Phone:     input.Phone,
		Password:  hash,
		Address:   strings.TrimSpace(input.Address),
		CreatedAt: time.Now(),
	}
	if err := s.repo.Insert(ctx, user); err != nil {
		s.logger.Error("Unable to insert user", "email", email, "error", err)
		return nil, err
	}
	return user, nil
}

func (s *userService) Login(ctx context.Context, input domain.LoginInput) (string, *domain.User, error) {
	s.logger.Debug("Logging in user", "email", input.Email)

	if errs := s.validator.Validate(input); errs != nil {
		return "", nil, errs
	}

	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, domain.ErrWrongPassword
	}
	if err != nil {
		return "", nil, err
	}

	if !s.hasher.Verify(input.Password, user.Password) {
		return "", nil, domain.ErrWrongPassword
	}

	token, err := s.tokens.Generate(user.ID.Hex(), user.Email)
	if err != nil {
		s.logger.Error("Unable to issue token", "error", err)
		return "", nil, err
	}
	return token, user, nil
}

func (s *userService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	uid, err := parseObjectID(userID, "userId")
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, uid)
}

// UpdateProfile applies the patch to the stored user. Fields absent from
// the patch are never touched; present fields must pass the same format
// rules as registration. The bool result reports whether a write
// happened.
func (s *userService) UpdateProfile(ctx context.Context, userID string, patch domain.ProfilePatch) (*domain.User, bool, error) {
	s.logger.Debug("Updating profile", "user_id", userID)

	uid, err := parseObjectID(userID, "userId")
	if err != nil {
		return nil, false, err
	}

	current, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return nil, false, err
	}

	if errs := s.validator.Validate(patch); errs != nil {
		return nil, false, errs
	}

	var set domain.UserUpdate

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, false, domain.Invalidf("name", "should not be blank")
		}
		set.Name = &name
	}

	if patch.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*patch.Email))
		existing, err := s.repo.FindByEmail(ctx, email)
		if err == nil && existing.ID != current.ID {
			return nil, false, domain.ErrDuplicateEmail
		}
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return nil, false, err
		}
		set.Email = &email
	}

	if patch.Phone != nil {
		set.Phone = patch.Phone
	}

	if patch.Password != nil {
		hash, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			s.logger.Error("Unable to hash password", "error", err)
			return nil, false, err
		}
		set.Password = &hash
	}

	if patch.Address != nil {
		address := strings.TrimSpace(*patch.Address)
		set.Address = &address
	}

	if set.Empty() {
		s.logger.Debug("Nothing to update", "user_id", userID)
		return current, false, nil
	}

	updated, err := s.repo.Update(ctx, uid, set)
	if err != nil {
		s.logger.Error("Unable to update profile", "user_id", userID, "error", err)
		return nil, false, err
	}
	return updated, true, nil
}
