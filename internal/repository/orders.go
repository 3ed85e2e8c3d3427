package repository

import (
	"errors" // Sentinel matching

	"foodcourt/internal/domain"    // Domain models
	"foodcourt/internal/orderflow" // Status transition table

	"gorm.io/gorm" // GORM ORM library
)

// OrderRepository is the persistence gateway for carts and orders
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates an order repository bound to db
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Cart returns the customer's cart with its line items. The cart row is
// created at registration; FirstOrCreate covers accounts migrated from
// before that guarantee existed.
func (r *OrderRepository) Cart(customerID uint) (*domain.Cart, error) {
	var cart domain.Cart
	if err := r.db.Where(domain.Cart{CustomerID: customerID}).FirstOrCreate(&cart).Error; err != nil {
		return nil, err
	}
	if err := r.db.Preload("Items").First(&cart, cart.ID).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddItem appends a line-item snapshot of the product to the cart. All
// items of a cart must come from the same restaurant.
func (r *OrderRepository) AddItem(customerID uint, product *domain.Product, quantity int) (*domain.CartItem, error) {
	cart, err := r.Cart(customerID)
	if err != nil {
		return nil, err
	}
	// Reject a second restaurant in the same cart. The comparison runs
	// on the snapshotted restaurant so the guard survives catalog
	// deletions; all existing items share one restaurant already.
	if len(cart.Items) > 0 && cart.Items[0].RestaurantID != product.RestaurantID {
		return nil, domain.ErrMixedCart
	}
	item := domain.CartItem{
		CartID:       cart.ID,
		ProductID:    product.ID,
		RestaurantID: product.RestaurantID, // Snapshot at add time
		Name:         product.Name,         // Snapshot at add time
		UnitPrice:    product.Price,        // Snapshot at add time
		Quantity:     quantity,
	}
	if err := r.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveItem deletes one line item from the customer's cart
func (r *OrderRepository) RemoveItem(customerID, itemID uint) error {
	cart, err := r.Cart(customerID)
	if err != nil {
		return err
	}
	result := r.db.Where("cart_id = ?", cart.ID).Delete(&domain.CartItem{}, itemID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Checkout converts the cart's line items into a passed order with an
// initial "placed" status and empties the cart, all in one transaction.
// An empty cart fails with ErrEmptyCart and writes nothing.
func (r *OrderRepository) Checkout(customerID uint) (*domain.Order, error) {
	var order *domain.Order
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var cart domain.Cart
		if err := tx.Preload("Items").Where("customer_id = ?", customerID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrEmptyCart
			}
			return err
		}
		if len(cart.Items) == 0 {
			return domain.ErrEmptyCart
		}

		var total float64
		items := make([]domain.OrderItem, 0, len(cart.Items))
		for _, line := range cart.Items {
			total += line.Subtotal()
			items = append(items, domain.OrderItem{
				ProductID: line.ProductID,
				Name:      line.Name,
				UnitPrice: line.UnitPrice,
				Quantity:  line.Quantity,
			})
		}

		// The order's restaurant comes from the snapshotted line items;
		// AddItem guarantees they all share one restaurant, and the
		// snapshot keeps checkout working after catalog deletions.
		order = &domain.Order{
			CustomerID:   customerID,
			RestaurantID: cart.Items[0].RestaurantID,
			TotalPrice:   total,
			IsPassed:     true,
			Items:        items,
			Statuses: []domain.OrderStatus{
				{Status: orderflow.StatusPlaced, Note: "order placed"},
			},
		}
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		// Consume the cart: a second checkout needs new items
		return tx.Where("cart_id = ?", cart.ID).Delete(&domain.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// FindOrder loads an order with its items and full status history
func (r *OrderRepository) FindOrder(orderID uint) (*domain.Order, error) {
	var order domain.Order
	err := r.db.
		Preload("Items").
		Preload("Statuses", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at, id")
		}).
		First(&order, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListByCustomer returns a customer's orders, newest first
func (r *OrderRepository) ListByCustomer(customerID uint) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.
		Preload("Items").
		Preload("Statuses").
		Where("customer_id = ?", customerID).
		Order("created_at desc").
		Find(&orders).Error
	return orders, err
}

// ListByRestaurant returns the orders placed with a restaurant, newest first
func (r *OrderRepository) ListByRestaurant(restaurantID uint) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.
		Preload("Items").
		Preload("Statuses").
		Where("restaurant_id = ?", restaurantID).
		Order("created_at desc").
		Find(&orders).Error
	return orders, err
}

// AppendStatus validates the transition from the order's latest status
// and appends the new entry. History is append-only; nothing is
// updated in place.
func (r *OrderRepository) AppendStatus(orderID uint, status, note string) (*domain.OrderStatus, error) {
	if !orderflow.IsStatus(status) {
		return nil, domain.ErrInvalidTransition
	}
	var entry *domain.OrderStatus
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var order domain.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		var latest domain.OrderStatus
		if err := tx.Where("order_id = ?", orderID).Order("created_at desc, id desc").First(&latest).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		} else if err := orderflow.CanTransition(latest.Status, status); err != nil {
			return err
		}
		entry = &domain.OrderStatus{OrderID: orderID, Status: status, Note: note}
		return tx.Create(entry).Error
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}
