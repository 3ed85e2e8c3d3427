package api

import (
	"net/http"
	"testing"

	"foodcourt/internal/domain"
	"foodcourt/internal/repository"
	"foodcourt/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCustomerEndpoint(t *testing.T) {
	r, conn, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/authentication/register-customer", "", registerBody("ada"))
	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, "ada", body["username"])
	assert.Equal(t, string(domain.RoleCustomer), body["role"])

	// The paired customer aggregate and cart exist
	var customer domain.Customer
	require.NoError(t, conn.Preload("Cart").First(&customer).Error)
	require.NotNil(t, customer.Cart)
}

func TestRegisterDuplicateEnvelope(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/authentication/register-customer", "", registerBody("ada"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/authentication/register-customer", "", registerBody("ada"))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Error", body["status"])
	assert.Equal(t, MsgUserExists, body["message"])
}

func TestLoginIssuesMatchingClaims(t *testing.T) {
	r, _, cfg := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/authentication/register-customer", "", registerBody("ada"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/authentication/login", "", gin.H{
		"username": "ada", "password": "correct-horse",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	require.Contains(t, body, "token")
	require.Contains(t, body, "expiration")

	claims, err := utils.ParseJWT(body["token"].(string), cfg)
	require.NoError(t, err)
	assert.Equal(t, "ada", claims.Username)
	assert.Equal(t, domain.RoleCustomer, claims.Role)
}

func TestLoginFailuresAreUniform(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/authentication/register-customer", "", registerBody("ada"))
	require.Equal(t, http.StatusCreated, w.Code)

	wrongPassword := doJSON(t, r, http.MethodPost, "/api/authentication/login", "", gin.H{
		"username": "ada", "password": "nope-nope-nope",
	})
	unknownUser := doJSON(t, r, http.MethodPost, "/api/authentication/login", "", gin.H{
		"username": "ghost", "password": "nope-nope-nope",
	})
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	// Bare 401s with identical bodies: nothing to enumerate usernames with
	assert.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String())
}

func TestInitSuperAdminBootstrapGate(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/authentication/init-super-admin/wrong-pass", "", registerBody("root"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/authentication/init-super-admin/bootstrap-pass", "", registerBody("root"))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, string(domain.RoleSuperAdmin), decode(t, w)["role"])
}

func TestRegisterSuperAdminRequiresSuperAdminRole(t *testing.T) {
	r, _, _ := newTestRouter(t)

	// Bootstrap the first super admin and a plain customer
	w := doJSON(t, r, http.MethodPost, "/api/authentication/init-super-admin/bootstrap-pass", "", registerBody("root"))
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, r, http.MethodPost, "/api/authentication/register-customer", "", registerBody("ada"))
	require.Equal(t, http.StatusCreated, w.Code)

	// No token
	w = doJSON(t, r, http.MethodPost, "/api/authentication/register-super-admin", "", registerBody("second"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Customer token
	w = doJSON(t, r, http.MethodPost, "/api/authentication/register-super-admin", loginToken(t, r, "ada"), registerBody("second"))
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Super admin token
	w = doJSON(t, r, http.MethodPost, "/api/authentication/register-super-admin", loginToken(t, r, "root"), registerBody("second"))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRegisterEmployeeScopedToAdminRestaurant(t *testing.T) {
	r, conn, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/authentication/register-restaurantAdmin", "", registerBody("chef"))
	require.Equal(t, http.StatusCreated, w.Code)
	adminToken := loginToken(t, r, "chef")

	// No restaurant yet: employee creation is refused with the envelope
	w = doJSON(t, r, http.MethodPost, "/api/authentication/register-employee", adminToken, registerBody("waiter"))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Error", decode(t, w)["status"])

	// Create the restaurant, then the employee lands scoped to it
	users := repository.NewUserRepository(conn)
	admin, err := users.FindByUsername("chef")
	require.NoError(t, err)
	restaurant := domain.Restaurant{Name: "Bistro", OwnerID: admin.ID}
	require.NoError(t, repository.NewRestaurantRepository(conn).CreateRestaurant(&restaurant))

	w = doJSON(t, r, http.MethodPost, "/api/authentication/register-employee", adminToken, registerBody("waiter"))
	require.Equal(t, http.StatusCreated, w.Code)

	waiter, err := users.FindByUsername("waiter")
	require.NoError(t, err)
	require.NotNil(t, waiter.Staff)
	require.NotNil(t, waiter.Staff.RestaurantID)
	assert.Equal(t, restaurant.ID, *waiter.Staff.RestaurantID)

	// A customer token cannot reach the route at all
	w = doJSON(t, r, http.MethodPost, "/api/authentication/register-customer", "", registerBody("ada"))
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, r, http.MethodPost, "/api/authentication/register-employee", loginToken(t, r, "ada"), registerBody("waiter2"))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCurrentUser(t *testing.T) {
	r, _, cfg := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/authentication/register-customer", "", registerBody("ada"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/authentication/current-user", loginToken(t, r, "ada"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	user := body["user"].(map[string]any)
	assert.Equal(t, "ada", user["username"])
	assert.NotContains(t, user, "password_hash", "hash is never serialized")
	assert.Equal(t, false, body["is_account_confirmed"], "no confirmation timestamp yet")

	// A structurally valid token whose principal is gone is a server
	// error, not a 401
	orphan, _, err := utils.GenerateJWT("vanished", domain.RoleCustomer, cfg)
	require.NoError(t, err)
	w = doJSON(t, r, http.MethodGet, "/api/authentication/current-user", orphan, nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Error", decode(t, w)["status"])
}
