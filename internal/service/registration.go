// Package service orchestrates the registration and authentication
// flows: uniqueness checks, aggregate construction per role variant,
// and atomic persistence.
package service

import (
	"fmt"  // Error wrapping
	"time" // Timestamps

	"foodcourt/internal/domain"     // Domain models
	"foodcourt/internal/repository" // Persistence gateways

	"github.com/sirupsen/logrus"  // Structured logging
	"golang.org/x/crypto/bcrypt"  // Password hashing
	"gorm.io/gorm"                // GORM ORM library
)

// Registration carries the fields common to every registration variant
type Registration struct {
	Username  string
	Password  string
	Firstname string
	Lastname  string
	Phone     string
}

// RegistrationService builds User aggregates plus their exactly-one
// role association and persists them atomically
type RegistrationService struct {
	db    *gorm.DB
	users *repository.UserRepository
}

// NewRegistrationService creates a registration service bound to db
func NewRegistrationService(db *gorm.DB) *RegistrationService {
	return &RegistrationService{db: db, users: repository.NewUserRepository(db)}
}

// RegisterSuperAdmin creates a super-admin account. No auxiliary
// aggregate beyond the User itself.
func (s *RegistrationService) RegisterSuperAdmin(req Registration) (*domain.User, error) {
	return s.register(req, domain.RoleSuperAdmin, nil)
}

// RegisterRestaurantAdmin creates a restaurant-admin account together
// with an owner staff record not yet linked to a restaurant. The
// restaurant itself is created by a separate follow-up call.
func (s *RegistrationService) RegisterRestaurantAdmin(req Registration) (*domain.User, error) {
	return s.register(req, domain.RoleRestaurantAdmin, func(tx *gorm.DB, user *domain.User) error {
		return tx.Create(&domain.RestaurantStaff{UserID: user.ID, IsOwner: true}).Error
	})
}

// RegisterEmployee creates an employee account scoped to the given
// restaurant. The caller must already be that restaurant's admin;
// the HTTP boundary enforces the role, this service the scoping.
func (s *RegistrationService) RegisterEmployee(req Registration, restaurantID uint) (*domain.User, error) {
	return s.register(req, domain.RoleEmployee, func(tx *gorm.DB, user *domain.User) error {
		return tx.Create(&domain.RestaurantStaff{UserID: user.ID, RestaurantID: &restaurantID}).Error
	})
}

// RegisterCustomer creates a customer account with its paired Customer
// aggregate and an empty cart, all in the same transaction
func (s *RegistrationService) RegisterCustomer(req Registration) (*domain.User, error) {
	return s.register(req, domain.RoleCustomer, func(tx *gorm.DB, user *domain.User) error {
		customer := domain.Customer{
			UserID:   user.ID,
			Category: domain.CategoryRegular,
			Cart:     &domain.Cart{},
		}
		return tx.Create(&customer).Error
	})
}

// register runs the steps shared by every variant: uniqueness check,
// User construction, role aggregate construction, atomic persistence.
// Persistence failures are logged in full but surface only as the
// opaque ErrRegistrationFailed.
func (s *RegistrationService) register(req Registration, role domain.Role, buildRole func(tx *gorm.DB, user *domain.User) error) (*domain.User, error) {
	taken, err := s.users.Exists(req.Username)
	if err != nil {
		logrus.WithFields(logrus.Fields{"username": req.Username, "error": err.Error()}).Error("Uniqueness check failed")
		return nil, fmt.Errorf("checking username: %w", domain.ErrRegistrationFailed)
	}
	if taken {
		return nil, domain.ErrDuplicateAccount
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", domain.ErrRegistrationFailed)
	}

	user := &domain.User{
		Username:           req.Username,
		NormalizedUsername: domain.NormalizeUsername(req.Username),
		PasswordHash:       string(hash),
		Firstname:          req.Firstname,
		Lastname:           req.Lastname,
		Phone:              req.Phone,
		Role:               role,
		IsActivated:        true,
		CreatedAt:          time.Now(),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if buildRole != nil {
			return buildRole(tx, user)
		}
		return nil
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"username": req.Username,
			"role":     role,
			"error":    err.Error(),
		}).Error("Registration failed")
		return nil, fmt.Errorf("persisting account: %w", domain.ErrRegistrationFailed)
	}

	logrus.WithFields(logrus.Fields{"username": user.Username, "role": role}).Info("Account registered")
	return user, nil
}
