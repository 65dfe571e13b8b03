package services

import (
	"errors"
	"fmt"

	"griddle/app/models"
	"griddle/app/repositories"

	"golang.org/x/crypto/bcrypt"
)

// UserService handles registration, credential checks and user
// administration. It is the only consumer of password digests.
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register creates a new user with the regular role. The password is
// stored only as a bcrypt digest.
func (s *UserService) Register(username, password string) (*models.User, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks a username/password pair. Unknown users and
// wrong passwords both yield ErrAuthenticationFailed; a bcrypt compare
// runs on both paths so the two are not distinguishable by timing.
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if errors.Is(err, repositories.ErrNotFound) {
		// Burn a comparison against a fixed digest.
		bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, ErrAuthenticationFailed
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrAuthenticationFailed
	}
	return user, nil
}

// ListUsers retrieves all users for the admin listing.
func (s *UserService) ListUsers() ([]*models.User, error) {
	return s.userRepo.List()
}

// SetRole changes a user's role. This is an out-of-band administrative
// operation; existing tokens keep their issued role until they expire.
func (s *UserService) SetRole(id int, role models.Role) error {
	if !role.Valid() {
		return fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}
	return s.userRepo.SetRole(id, role)
}

// dummyHash is a bcrypt digest of an arbitrary string, used to equalize
// the cost of failed lookups.
var dummyHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("griddle-no-such-user"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
}()
