package domain

import "errors"

// Sentinel errors shared across repositories, services and handlers.
// Handlers translate these to HTTP statuses; storage-layer detail is
// wrapped behind ErrRegistrationFailed and never shown to callers.
var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrDuplicateAccount     = errors.New("user already exists")
	ErrOwnerNotFound        = errors.New("owner staff record not found")
	ErrRegistrationFailed   = errors.New("user creation failed")
	ErrNotFound             = errors.New("record not found")
	ErrEmptyCart            = errors.New("cart has no items")
	ErrMixedCart            = errors.New("cart items must come from a single restaurant")
	ErrInvalidTransition    = errors.New("invalid order status transition")
	ErrAuthorizationDenied  = errors.New("role not allowed for this operation")
	ErrRestaurantNotCreated = errors.New("admin has no restaurant yet")
)
