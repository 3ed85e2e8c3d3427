package api

import (
	"crypto/subtle" // Constant-time bootstrap secret comparison
	"errors"        // Sentinel matching
	"net/http"      // HTTP status codes

	"foodcourt/internal/config"     // Token settings
	"foodcourt/internal/domain"     // Domain models
	"foodcourt/internal/middleware" // Context accessors
	"foodcourt/internal/repository" // Persistence gateways
	"foodcourt/internal/service"    // Registration/authentication services
	"foodcourt/internal/utils"      // JWT utility functions

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// LoginRequest carries the credentials for login
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// RegisterRequest carries the fields shared by every registration variant
type RegisterRequest struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
	Firstname string `json:"firstname" binding:"required"`
	Lastname  string `json:"lastname" binding:"required"`
	Phone     string `json:"phone"`
}

func (r RegisterRequest) toRegistration() service.Registration {
	return service.Registration{
		Username:  r.Username,
		Password:  r.Password,
		Firstname: r.Firstname,
		Lastname:  r.Lastname,
		Phone:     r.Phone,
	}
}

// accountSummary is the response body for a freshly registered account
func accountSummary(user *domain.User) gin.H {
	return gin.H{
		"id":        user.ID,
		"username":  user.Username,
		"firstname": user.Firstname,
		"lastname":  user.Lastname,
		"role":      user.Role,
	}
}

// LoginHandler authenticates a user and returns a bearer token with its
// expiration. Unknown username and wrong password are indistinguishable.
func LoginHandler(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	auth := service.NewAuthService(db)
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := auth.Authenticate(req.Username, req.Password)
		if err != nil {
			c.Status(http.StatusUnauthorized)
			return
		}
		token, expiration, err := utils.GenerateJWT(user.Username, user.Role, cfg)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token, "expiration": expiration})
	}
}

// InitSuperAdminHandler creates the first super admin, gated by the
// configured bootstrap password in the route path
func InitSuperAdminHandler(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	reg := service.NewRegistrationService(db)
	return func(c *gin.Context) {
		pass := c.Param("pass")
		if cfg.InitAdminPass == "" ||
			subtle.ConstantTimeCompare([]byte(pass), []byte(cfg.InitAdminPass)) != 1 {
			c.Status(http.StatusUnauthorized)
			return
		}
		registerUser(c, func(req service.Registration) (*domain.User, error) {
			return reg.RegisterSuperAdmin(req)
		})
	}
}

// RegisterSuperAdminHandler creates a super admin. The route is gated
// by RoleRequired(RoleSuperAdmin).
func RegisterSuperAdminHandler(db *gorm.DB) gin.HandlerFunc {
	reg := service.NewRegistrationService(db)
	return func(c *gin.Context) {
		registerUser(c, func(req service.Registration) (*domain.User, error) {
			return reg.RegisterSuperAdmin(req)
		})
	}
}

// RegisterRestaurantAdminHandler creates a restaurant admin. Open
// registration; the restaurant itself is created by a follow-up call.
func RegisterRestaurantAdminHandler(db *gorm.DB) gin.HandlerFunc {
	reg := service.NewRegistrationService(db)
	return func(c *gin.Context) {
		registerUser(c, func(req service.Registration) (*domain.User, error) {
			return reg.RegisterRestaurantAdmin(req)
		})
	}
}

// RegisterEmployeeHandler creates an employee scoped to the calling
// restaurant admin's restaurant. The route is gated by
// RoleRequired(RoleRestaurantAdmin).
func RegisterEmployeeHandler(db *gorm.DB) gin.HandlerFunc {
	reg := service.NewRegistrationService(db)
	users := repository.NewUserRepository(db)
	return func(c *gin.Context) {
		caller, err := users.FindByUsername(middleware.Username(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, Errorf("Invalid token"))
			return
		}
		if caller.Staff == nil || caller.Staff.RestaurantID == nil {
			c.JSON(http.StatusInternalServerError, Errorf("Create your restaurant before adding employees"))
			return
		}
		restaurantID := *caller.Staff.RestaurantID
		registerUser(c, func(req service.Registration) (*domain.User, error) {
			return reg.RegisterEmployee(req, restaurantID)
		})
	}
}

// RegisterCustomerHandler creates a customer account with its cart
func RegisterCustomerHandler(db *gorm.DB) gin.HandlerFunc {
	reg := service.NewRegistrationService(db)
	return func(c *gin.Context) {
		registerUser(c, func(req service.Registration) (*domain.User, error) {
			return reg.RegisterCustomer(req)
		})
	}
}

// CurrentUserHandler returns the authenticated account. A valid token
// whose principal no longer resolves is a server error, not a 401.
func CurrentUserHandler(db *gorm.DB) gin.HandlerFunc {
	users := repository.NewUserRepository(db)
	return func(c *gin.Context) {
		user, err := users.FindByUsername(middleware.Username(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, Errorf("Invalid token"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user, "is_account_confirmed": user.IsConfirmed()})
	}
}

// registerUser binds the request and funnels every variant through the
// same error mapping: duplicates and persistence failures both surface
// as the fixed envelope, never as internal detail.
func registerUser(c *gin.Context, register func(service.Registration) (*domain.User, error)) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	user, err := register(req.toRegistration())
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateAccount) {
			c.JSON(http.StatusInternalServerError, Errorf(MsgUserExists))
			return
		}
		c.JSON(http.StatusInternalServerError, Errorf(MsgRegistrationFailed))
		return
	}
	c.JSON(http.StatusCreated, accountSummary(user))
}
