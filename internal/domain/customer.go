package domain

import "time"

// CustomerCategory is the customer tier
type CustomerCategory string

const (
	CategoryRegular CustomerCategory = "regular"
	CategoryLoyal   CustomerCategory = "loyal"
	CategoryVIP     CustomerCategory = "vip"
)

// Customer Model, created atomically with its User at registration time
type Customer struct {
	UserID   uint             `json:"user_id" gorm:"primaryKey"`                         // Shared primary key with User
	Category CustomerCategory `json:"category" gorm:"size:20;not null;default:regular"` // Customer tier
	Cart     *Cart            `json:"cart,omitempty" gorm:"foreignKey:CustomerID"`      // Always exactly one cart
	Orders   []Order          `json:"orders,omitempty" gorm:"foreignKey:CustomerID"`    // Order history
}

// Cart Model, one per customer
type Cart struct {
	ID         uint       `json:"id" gorm:"primaryKey"`          // Primary key
	CustomerID uint       `json:"customer_id" gorm:"uniqueIndex"` // One cart per customer
	Items      []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"` // Line items
	CreatedAt  time.Time  `json:"created_at"`                    // Creation timestamp
}

// Total sums the line subtotals of the cart
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}

// CartItem is a line-item snapshot: restaurant, name and price are
// captured at add time and do not track later catalog edits or
// deletions.
type CartItem struct {
	ID           uint      `json:"id" gorm:"primaryKey"`              // Primary key
	CartID       uint      `json:"cart_id" gorm:"index;not null"`     // Owning cart
	ProductID    uint      `json:"product_id" gorm:"not null"`        // Catalog product this snapshots
	RestaurantID uint      `json:"restaurant_id" gorm:"not null"`     // Snapshot restaurant
	Name         string    `json:"name" gorm:"size:191;not null"`     // Snapshot name
	UnitPrice    float64   `json:"unit_price" gorm:"not null"`        // Snapshot price
	Quantity     int       `json:"quantity" gorm:"not null"`          // Quantity, at least 1
	AddedAt      time.Time `json:"added_at" gorm:"autoCreateTime"`    // When the item was added
}

// Subtotal returns price times quantity for this line
func (i CartItem) Subtotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// Order Model. Once IsPassed is set the line items are immutable; only
// status entries may still be appended.
type Order struct {
	ID           uint          `json:"id" gorm:"primaryKey"`                   // Primary key
	CustomerID   uint          `json:"customer_id" gorm:"index;not null"`      // Ordering customer
	RestaurantID uint          `json:"restaurant_id" gorm:"index;not null"`    // Restaurant the order was placed with
	TotalPrice   float64       `json:"total_price" gorm:"not null"`            // Sum of line subtotals at checkout
	IsPassed     bool          `json:"is_passed" gorm:"not null;default:false"` // Set when the order is placed
	Items        []OrderItem   `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`          // Line items copied from the cart
	Statuses     []OrderStatus `json:"status_history" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"` // Append-only status history
	CreatedAt    time.Time     `json:"created_at"`                             // Creation timestamp
}

// OrderItem mirrors the cart snapshot shape at checkout time
type OrderItem struct {
	ID        uint    `json:"id" gorm:"primaryKey"`          // Primary key
	OrderID   uint    `json:"order_id" gorm:"index;not null"` // Owning order
	ProductID uint    `json:"product_id" gorm:"not null"`    // Catalog product this snapshots
	Name      string  `json:"name" gorm:"size:191;not null"` // Snapshot name
	UnitPrice float64 `json:"unit_price" gorm:"not null"`    // Snapshot price
	Quantity  int     `json:"quantity" gorm:"not null"`      // Quantity
}

// OrderStatus is one entry of an order's append-only status history,
// ordered by CreatedAt.
type OrderStatus struct {
	ID        uint      `json:"id" gorm:"primaryKey"`             // Primary key
	OrderID   uint      `json:"order_id" gorm:"index;not null"`   // Owning order
	Status    string    `json:"status" gorm:"size:30;not null"`   // Status name from the orderflow enum
	Note      string    `json:"note" gorm:"size:255"`             // Optional free-form note
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"` // When the status was appended
}
