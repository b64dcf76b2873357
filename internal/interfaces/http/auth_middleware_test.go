package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenhollow/nursery-api/internal/domain/access"
	apphttp "github.com/greenhollow/nursery-api/internal/interfaces/http"
	pkgjwt "github.com/greenhollow/nursery-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "nursery-api-test"
	testExpMin    = 60
)

// buildTestApp wires a minimal Fiber app: AuthMiddleware to load the
// JWT claims into locals, RequireRole to authorize, and a dummy handler
// that returns 200 once both middlewares pass.
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRequireRole_AllowsListedRole(t *testing.T) {
	app := buildTestApp(access.RoleAdmin)
	resp := doRequest(t, app, "/protected", tokenForRole(t, access.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, access.RoleAdmin, body["role"])
}

func TestRequireRole_AllowsAnyListedRole(t *testing.T) {
	app := buildTestApp(access.RoleAdmin, access.RoleInventoryManager)
	resp := doRequest(t, app, "/protected", tokenForRole(t, access.RoleInventoryManager))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_BlocksOtherRole(t *testing.T) {
	app := buildTestApp(access.RoleAdmin)
	resp := doRequest(t, app, "/protected", tokenForRole(t, access.RoleCustomer))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_EmptyRoleClaimIs401(t *testing.T) {
	app := buildTestApp(access.RoleAdmin)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "", testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "/protected", "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

func TestRequireRole_NoAuthHeaderIs401(t *testing.T) {
	app := buildTestApp(access.RoleAdmin)
	resp := doRequest(t, app, "/protected", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRole_MalformedTokenIs401(t *testing.T) {
	app := buildTestApp(access.RoleAdmin)
	resp := doRequest(t, app, "/protected", "Bearer not.a.token")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequirePermission_AdminPasses(t *testing.T) {
	app := fiber.New()
	app.Get("/guarded",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequirePermission(access.PermManageWholesale),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)
	resp := doRequest(t, app, "/guarded", tokenForRole(t, access.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequirePermission_RoleWithoutPermissionIs403(t *testing.T) {
	app := fiber.New()
	app.Get("/guarded",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequirePermission(access.PermManageWholesale),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)
	resp := doRequest(t, app, "/guarded", tokenForRole(t, access.RoleInventoryManager))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAuthMiddleware_ExtractsClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": apphttp.GetUserID(c),
			"role":    apphttp.GetRole(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenForRole(t, access.RoleAdmin))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, access.RoleAdmin, body["role"])
}

// Route-guard tests exercise the storefront prefix rules through the
// middleware, including the admin sub-route sitting under a public
// prefix and the default deny.

func buildGuardedApp() *fiber.App {
	app := fiber.New()
	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }
	g := app.Group("/api", apphttp.OptionalAuth(testJWTSecret), apphttp.RouteGuard("/api"))
	g.Get("/products", ok)
	g.Get("/products/admin", ok)
	g.Get("/staff/inventory/low-stock", ok)
	g.Get("/internal/metrics", ok)
	return app
}

func TestRouteGuard_PublicPathNeedsNoToken(t *testing.T) {
	app := buildGuardedApp()
	resp := doRequest(t, app, "/api/products", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouteGuard_AdminSubrouteDeniedForGuestAndCustomer(t *testing.T) {
	app := buildGuardedApp()

	resp := doRequest(t, app, "/api/products/admin", "")
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"guest must not inherit the public /products rule for /products/admin")

	resp = doRequest(t, app, "/api/products/admin", tokenForRole(t, access.RoleCustomer))
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRouteGuard_AdminSubrouteAllowsAdmin(t *testing.T) {
	app := buildGuardedApp()
	resp := doRequest(t, app, "/api/products/admin", tokenForRole(t, access.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouteGuard_StaffPathByRole(t *testing.T) {
	app := buildGuardedApp()

	resp := doRequest(t, app, "/api/staff/inventory/low-stock", tokenForRole(t, access.RoleInventoryManager))
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, "/api/staff/inventory/low-stock", tokenForRole(t, access.RoleCustomer))
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRouteGuard_UnmatchedPathIsDeniedForEveryone(t *testing.T) {
	app := buildGuardedApp()
	resp := doRequest(t, app, "/api/internal/metrics", tokenForRole(t, access.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"a path matching no rule is denied regardless of role")
}

func TestRouteGuard_InvalidTokenIsHard401(t *testing.T) {
	app := buildGuardedApp()
	resp := doRequest(t, app, "/api/products", "Bearer broken.token.here")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"a bad token must not silently downgrade to guest")
}

func TestJWT_GenerateAndParseRoundTrip(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, access.RoleManager, testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, role, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, userID)
	assert.Equal(t, access.RoleManager, role)
}

func TestJWT_ExpiredTokenFails(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, access.RoleAdmin, testIssuer, -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err)
}

func TestJWT_WrongSecretFails(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, access.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("a-completely-different-secret", tok)
	assert.Error(t, err)
}
