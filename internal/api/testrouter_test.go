package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"foodcourt/internal/config"
	"foodcourt/internal/db"
	"foodcourt/internal/domain"
	"foodcourt/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database migrated with the full
// schema. Pool is pinned to one connection so the memory DB is shared.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, conn.AutoMigrate(db.Models()...))
	return conn
}

// newTestRouter wires the redis-free route surface the way the server
// entrypoint does
func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	conn := newTestDB(t)
	cfg := &config.Config{
		JWTSecret:     "test-secret",
		JWTIssuer:     "foodcourt-test",
		JWTAudience:   "foodcourt-clients",
		InitAdminPass: "bootstrap-pass",
	}

	r := gin.New()
	authGroup := r.Group("/api/authentication")
	authGroup.POST("/login", LoginHandler(conn, cfg))
	authGroup.POST("/init-super-admin/:pass", InitSuperAdminHandler(conn, cfg))
	authGroup.POST("/register-restaurantAdmin", RegisterRestaurantAdminHandler(conn))
	authGroup.POST("/register-customer", RegisterCustomerHandler(conn))
	authGroup.POST("/register-super-admin",
		middleware.JWTAuthMiddleware(cfg),
		middleware.ActiveAccount(conn),
		middleware.RoleRequired(domain.RoleSuperAdmin),
		RegisterSuperAdminHandler(conn))
	authGroup.POST("/register-employee",
		middleware.JWTAuthMiddleware(cfg),
		middleware.ActiveAccount(conn),
		middleware.RoleRequired(domain.RoleRestaurantAdmin),
		RegisterEmployeeHandler(conn))
	authGroup.GET("/current-user",
		middleware.JWTAuthMiddleware(cfg),
		CurrentUserHandler(conn))

	customerGroup := r.Group("/api")
	customerGroup.Use(middleware.JWTAuthMiddleware(cfg), middleware.ActiveAccount(conn), middleware.RoleRequired(domain.RoleCustomer))
	customerGroup.GET("/cart", GetCartHandler(conn))
	customerGroup.POST("/cart/items", AddCartItemHandler(conn))
	customerGroup.DELETE("/cart/items/:itemId", RemoveCartItemHandler(conn))
	customerGroup.POST("/orders", CheckoutHandler(conn))
	customerGroup.GET("/orders", ListMyOrdersHandler(conn))
	customerGroup.GET("/orders/:id", GetOrderHandler(conn))

	return r, conn, cfg
}

// doJSON performs a JSON request against the router, with an optional
// bearer token
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decode unmarshals a recorder body into a map
func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// registerBody is a valid registration payload
func registerBody(username string) gin.H {
	return gin.H{
		"username":  username,
		"password":  "correct-horse",
		"firstname": "Ada",
		"lastname":  "Lovelace",
	}
}

// loginToken registers nothing; it logs an existing account in and
// returns the bearer token
func loginToken(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/authentication/login", "", gin.H{
		"username": username,
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}
