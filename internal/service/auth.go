package service

import (
	"foodcourt/internal/domain"     // Domain models
	"foodcourt/internal/repository" // Persistence gateways

	"golang.org/x/crypto/bcrypt" // Constant-time password verification
	"gorm.io/gorm"               // GORM ORM library
)

// dummyHash is compared against when the username is unknown so that a
// miss costs the same as a wrong password. Hash of an unguessable
// throwaway value.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService verifies credentials against stored hashes
type AuthService struct {
	users *repository.UserRepository
}

// NewAuthService creates an auth service bound to db
func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{users: repository.NewUserRepository(db)}
}

// Authenticate resolves the account by normalized username and verifies
// the password. Unknown username and wrong password both return
// ErrInvalidCredentials with nothing to tell them apart.
func (s *AuthService) Authenticate(username, password string) (*domain.User, error) {
	user, err := s.users.FindByUsername(username)
	if err != nil {
		// Burn a comparison anyway to keep timing uniform
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActivated {
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}
