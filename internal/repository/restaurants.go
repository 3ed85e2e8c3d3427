package repository

import (
	"errors" // Sentinel matching

	"foodcourt/internal/domain" // Domain models

	"gorm.io/gorm" // GORM ORM library
)

// RestaurantRepository is the persistence gateway for restaurants and
// their catalog
type RestaurantRepository struct {
	db *gorm.DB
}

// NewRestaurantRepository creates a restaurant repository bound to db
func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{db: db}
}

// AddStaff inserts the staff record for a restaurant-affiliated user
func (r *RestaurantRepository) AddStaff(staff *domain.RestaurantStaff) error {
	return r.db.Create(staff).Error
}

// CreateRestaurant inserts a restaurant for an owner that already has a
// staff record. The restaurant insert and the owner's staff-record
// update happen in one transaction; if the owner has no staff record
// the operation fails with ErrOwnerNotFound and writes nothing.
func (r *RestaurantRepository) CreateRestaurant(restaurant *domain.Restaurant) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var owner domain.RestaurantStaff
		if err := tx.Where("user_id = ?", restaurant.OwnerID).First(&owner).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrOwnerNotFound
			}
			return err
		}
		if err := tx.Create(restaurant).Error; err != nil {
			return err
		}
		// Link the owner's staff record to the new restaurant
		return tx.Model(&domain.RestaurantStaff{}).
			Where("user_id = ?", restaurant.OwnerID).
			Updates(map[string]any{"restaurant_id": restaurant.ID, "is_owner": true}).Error
	})
}

// FindByID loads a restaurant with its catalog, hours and closing dates
func (r *RestaurantRepository) FindByID(id uint) (*domain.Restaurant, error) {
	var restaurant domain.Restaurant
	err := r.db.
		Preload("Products.Categories").
		Preload("Categories").
		Preload("OpeningHours").
		Preload("ClosingDates").
		First(&restaurant, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// FindByOwner loads the restaurant owned by the given admin user
func (r *RestaurantRepository) FindByOwner(ownerID uint) (*domain.Restaurant, error) {
	var restaurant domain.Restaurant
	err := r.db.Where("owner_id = ?", ownerID).First(&restaurant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// ListPublished returns every restaurant customers may browse
func (r *RestaurantRepository) ListPublished() ([]domain.Restaurant, error) {
	var restaurants []domain.Restaurant
	err := r.db.Where("is_published = ?", true).Order("name").Find(&restaurants).Error
	return restaurants, err
}

// Update persists edits to a restaurant's own columns
func (r *RestaurantRepository) Update(restaurant *domain.Restaurant) error {
	return r.db.Save(restaurant).Error
}

// Menu returns the active products of a restaurant with their categories
func (r *RestaurantRepository) Menu(restaurantID uint) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.
		Preload("Categories").
		Where("restaurant_id = ? AND is_active = ?", restaurantID, true).
		Order("name").
		Find(&products).Error
	return products, err
}

// FindProduct loads one product of a restaurant
func (r *RestaurantRepository) FindProduct(restaurantID, productID uint) (*domain.Product, error) {
	var product domain.Product
	err := r.db.Where("restaurant_id = ?", restaurantID).First(&product, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindProductByID loads a product regardless of restaurant
func (r *RestaurantRepository) FindProductByID(productID uint) (*domain.Product, error) {
	var product domain.Product
	err := r.db.First(&product, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// AddProduct inserts a catalog product
func (r *RestaurantRepository) AddProduct(product *domain.Product) error {
	return r.db.Create(product).Error
}

// UpdateProduct persists edits to a product and its category links
func (r *RestaurantRepository) UpdateProduct(product *domain.Product) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(product).Error; err != nil {
			return err
		}
		return tx.Model(product).Association("Categories").Replace(product.Categories)
	})
}

// DeleteProduct removes a product and its category links
func (r *RestaurantRepository) DeleteProduct(restaurantID, productID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		product := domain.Product{ID: productID}
		if err := tx.Model(&product).Association("Categories").Clear(); err != nil {
			return err
		}
		result := tx.Where("restaurant_id = ?", restaurantID).Delete(&domain.Product{}, productID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

// AddCategory inserts a product category
func (r *RestaurantRepository) AddCategory(category *domain.ProductCategory) error {
	return r.db.Create(category).Error
}

// CategoriesByIDs loads the restaurant's categories matching ids.
// Ids belonging to another restaurant are dropped, so a product can
// never be linked across restaurants.
func (r *RestaurantRepository) CategoriesByIDs(restaurantID uint, ids []uint) ([]domain.ProductCategory, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var categories []domain.ProductCategory
	err := r.db.Where("restaurant_id = ? AND id IN ?", restaurantID, ids).Find(&categories).Error
	return categories, err
}

// ReplaceOpeningHours swaps the full weekly schedule in one transaction
func (r *RestaurantRepository) ReplaceOpeningHours(restaurantID uint, hours []domain.OpeningHours) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("restaurant_id = ?", restaurantID).Delete(&domain.OpeningHours{}).Error; err != nil {
			return err
		}
		for i := range hours {
			hours[i].RestaurantID = restaurantID
		}
		if len(hours) == 0 {
			return nil
		}
		return tx.Create(&hours).Error
	})
}

// AddClosingDate inserts an exceptional closing date
func (r *RestaurantRepository) AddClosingDate(closing *domain.ClosingDate) error {
	return r.db.Create(closing).Error
}

// RemoveClosingDate deletes one closing date of a restaurant
func (r *RestaurantRepository) RemoveClosingDate(restaurantID, closingID uint) error {
	result := r.db.Where("restaurant_id = ?", restaurantID).Delete(&domain.ClosingDate{}, closingID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
