// Package repository holds the persistence gateways. Every multi-row
// write runs inside a single gorm transaction; related rows touched by
// an operation are stated explicitly rather than cascaded implicitly.
package repository

import (
	"errors" // Sentinel matching

	"foodcourt/internal/domain" // Domain models

	"gorm.io/gorm" // GORM ORM library
)

// UserRepository is the persistence gateway for accounts
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a user repository bound to db
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByUsername looks an account up by its normalized username and
// loads whichever role association it carries
func (r *UserRepository) FindByUsername(username string) (*domain.User, error) {
	var user domain.User
	err := r.db.
		Preload("Staff").
		Preload("Customer").
		Where("normalized_username = ?", domain.NormalizeUsername(username)).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID loads an account and its role association by primary key
func (r *UserRepository) FindByID(id uint) (*domain.User, error) {
	var user domain.User
	err := r.db.Preload("Staff").Preload("Customer").First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Exists reports whether the normalized username is already taken
func (r *UserRepository) Exists(username string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.User{}).
		Where("normalized_username = ?", domain.NormalizeUsername(username)).
		Count(&count).Error
	return count > 0, err
}

// Deactivate soft-deletes an account. Accounts are never hard-deleted.
func (r *UserRepository) Deactivate(id uint) error {
	return r.db.Model(&domain.User{}).Where("id = ?", id).Update("is_activated", false).Error
}
