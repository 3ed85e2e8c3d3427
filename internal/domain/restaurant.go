package domain

import "time"

// RestaurantStaff links a staff user (admin or employee) to a
// restaurant. A restaurant admin's RestaurantID stays nil until their
// restaurant is created; employees are always scoped to an existing one.
type RestaurantStaff struct {
	UserID       uint  `json:"user_id" gorm:"primaryKey"`              // Shared primary key with User
	RestaurantID *uint `json:"restaurant_id" gorm:"index"`             // Nil for an owner without a restaurant yet
	IsOwner      bool  `json:"is_owner" gorm:"not null;default:false"` // Owner flag, one owner per restaurant
}

// Restaurant Model. A restaurant owns its catalog, hours, closing dates
// and staff roster; it is never deleted once published.
type Restaurant struct {
	ID                uint   `json:"id" gorm:"primaryKey"`                        // Primary key
	Name              string `json:"name" gorm:"size:191;not null"`               // Display name
	AddressLine       string `json:"address_line" gorm:"size:255"`                // Street address
	City              string `json:"city" gorm:"size:100"`                        // City
	ZipCode           string `json:"zip_code" gorm:"size:20"`                     // Postal code
	Country           string `json:"country" gorm:"size:100"`                     // Country
	Phone             string `json:"phone" gorm:"size:30"`                        // Contact phone
	Email             string `json:"email" gorm:"size:191"`                       // Contact email
	IsPublished       bool   `json:"is_published" gorm:"not null;default:false"`  // Visible to customers
	IsOpen            bool   `json:"is_open" gorm:"not null;default:false"`       // Currently taking orders
	OrderLimitMinutes int    `json:"order_limit_minutes" gorm:"not null;default:0"` // Order cutoff window before closing, 0 disables
	OwnerID           uint   `json:"owner_id" gorm:"uniqueIndex;not null"`        // Owning admin user, unique across restaurants

	Products     []Product         `json:"products,omitempty" gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`      // Catalog
	Categories   []ProductCategory `json:"categories,omitempty" gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`    // Catalog categories
	ClosingDates []ClosingDate     `json:"closing_dates,omitempty" gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"` // Exceptional closures
	OpeningHours []OpeningHours    `json:"opening_hours,omitempty" gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"` // Weekly schedule
	Staff        []RestaurantStaff `json:"-" gorm:"foreignKey:RestaurantID"`                                                   // Staff roster

	CreatedAt time.Time `json:"created_at"` // Creation timestamp
	UpdatedAt time.Time `json:"updated_at"` // Last update timestamp
}

// Product Model
type Product struct {
	ID           uint       `json:"id" gorm:"primaryKey"`                   // Primary key
	RestaurantID uint       `json:"restaurant_id" gorm:"index;not null"`    // Owning restaurant
	Name         string     `json:"name" gorm:"size:191;not null"`          // Product name
	Description  string     `json:"description" gorm:"size:500"`            // Product description
	Price        float64    `json:"price" gorm:"not null"`                  // Unit price, never negative
	Quantity     int        `json:"quantity" gorm:"not null;default:0"`     // Stock on hand, never negative
	IsActive     bool       `json:"is_active" gorm:"not null;default:true"` // Orderable flag
	ExpiresAt    *time.Time `json:"expires_at"`                             // Optional expiration timestamp

	Categories []ProductCategory `json:"categories,omitempty" gorm:"many2many:product_category_links"` // Categories this product belongs to

	CreatedAt time.Time `json:"created_at"` // Creation timestamp
	UpdatedAt time.Time `json:"updated_at"` // Last update timestamp
}

// ProductCategory Model
type ProductCategory struct {
	ID           uint   `json:"id" gorm:"primaryKey"`                // Primary key
	RestaurantID uint   `json:"restaurant_id" gorm:"index;not null"` // Owning restaurant
	Name         string `json:"name" gorm:"size:100;not null"`       // Category label
}

// ClosingDate Model, an exceptional day the restaurant is closed
type ClosingDate struct {
	ID           uint      `json:"id" gorm:"primaryKey"`                // Primary key
	RestaurantID uint      `json:"restaurant_id" gorm:"index;not null"` // Owning restaurant
	Date         time.Time `json:"date" gorm:"not null"`                // Closed date
}

// OpeningHours Model, one row per weekday time range
type OpeningHours struct {
	ID           uint   `json:"id" gorm:"primaryKey"`                // Primary key
	RestaurantID uint   `json:"restaurant_id" gorm:"index;not null"` // Owning restaurant
	DayOfWeek    int    `json:"day_of_week" gorm:"not null"`         // 0 = Sunday .. 6 = Saturday
	OpensAt      string `json:"opens_at" gorm:"size:5;not null"`     // "HH:MM"
	ClosesAt     string `json:"closes_at" gorm:"size:5;not null"`    // "HH:MM"
}
