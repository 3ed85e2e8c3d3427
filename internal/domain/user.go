package domain

import (
	"strings" // String manipulation
	"time"    // Timestamps
	"unicode" // Rune classification for username normalization

	"golang.org/x/text/unicode/norm" // Unicode normalization
)

// Role is the closed set of account roles. Exactly one role is assigned
// at registration time and never reassigned afterwards.
type Role string

const (
	RoleSuperAdmin      Role = "super_admin"
	RoleRestaurantAdmin Role = "restaurant_admin"
	RoleEmployee        Role = "employee"
	RoleCustomer        Role = "customer"
)

// IsStaff reports whether the role is affiliated with a restaurant
func (r Role) IsStaff() bool {
	return r == RoleRestaurantAdmin || r == RoleEmployee
}

// User Model. Accounts are soft-deactivated via IsActivated, never hard-deleted.
type User struct {
	ID                 uint       `json:"id" gorm:"primaryKey"`                   // Primary key
	Username           string     `json:"username" gorm:"size:191;unique;not null"` // Unique username as entered
	NormalizedUsername string     `json:"-" gorm:"size:191;unique;not null"`      // Case/diacritic-folded username used for lookup
	PasswordHash       string     `json:"-" gorm:"not null"`                      // Bcrypt hash, never serialized
	Firstname          string     `json:"firstname" gorm:"size:100"`              // First name
	Lastname           string     `json:"lastname" gorm:"size:100"`               // Last name
	Phone              string     `json:"phone" gorm:"size:30"`                   // Phone number
	Role               Role       `json:"role" gorm:"size:30;not null"`           // One of the closed role set
	IsActivated        bool       `json:"is_activated" gorm:"not null;default:true"` // Soft deactivation flag
	CreatedAt          time.Time  `json:"created_at"`                             // Creation timestamp
	ConfirmedAt        *time.Time `json:"confirmed_at"`                           // Confirmation timestamp, nil until confirmed

	// Exactly one of the two associations below is populated, dictated
	// by Role. Super admins carry neither.
	Staff    *RestaurantStaff `json:"staff,omitempty" gorm:"foreignKey:UserID"`    // Restaurant affiliation (admin/employee)
	Customer *Customer        `json:"customer,omitempty" gorm:"foreignKey:UserID"` // Customer aggregate (customer)
}

// IsConfirmed reports whether the account has been confirmed
func (u *User) IsConfirmed() bool {
	return u.ConfirmedAt != nil
}

// NormalizeUsername folds a username for uniqueness checks: diacritics
// are stripped (NFD decomposition, combining marks removed) and the
// result is lower-cased, so "José" and "jose" collide.
func NormalizeUsername(username string) string {
	decomposed := norm.NFD.String(username)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue // Drop combining marks
		}
		b.WriteRune(r)
	}
	return strings.ToLower(norm.NFC.String(b.String()))
}
