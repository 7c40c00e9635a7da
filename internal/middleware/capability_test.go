package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/banbasresort/backoffice-api/internal/authz"
	"github.com/banbasresort/backoffice-api/internal/utils"
)

const gateTestSecret = "capability-test-secret"

func signTestToken(t *testing.T, secret string, userID uint, name, role string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  float64(userID),
		"name": name,
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newGateTestApp(capability authz.Capability) *fiber.App {
	app := fiber.New()
	app.Get("/probe",
		JWTProtected(gateTestSecret),
		RequireCapability(zerolog.Nop(), capability),
		func(c *fiber.Ctx) error {
			actor := ActorFromContext(c)
			return utils.SendSuccess(c, "ok", fiber.Map{"actor_name": actor.Name})
		},
	)
	return app
}

func performGateRequest(t *testing.T, app *fiber.App, token string) (*http.Response, utils.APIResponse) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var payload utils.APIResponse
	require.NoError(t, json.Unmarshal(body, &payload))
	return resp, payload
}

func TestRequireCapabilityMissingToken(t *testing.T) {
	app := newGateTestApp(authz.CapabilityViewerRead)

	resp, payload := performGateRequest(t, app, "")
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	require.False(t, payload.Success)
	require.Equal(t, "authorization header missing", payload.Message)
}

func TestRequireCapabilityInvalidToken(t *testing.T) {
	app := newGateTestApp(authz.CapabilityViewerRead)

	resp, payload := performGateRequest(t, app, signTestToken(t, "wrong-secret", 1, "Alice Admin", "admin"))
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "invalid token", payload.Message)
}

func TestRequireCapabilityAllowsSufficientRole(t *testing.T) {
	app := newGateTestApp(authz.CapabilityViewerRead)

	resp, payload := performGateRequest(t, app, signTestToken(t, gateTestSecret, 4, "Vera Viewer", "viewer"))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, payload.Success)
}

func TestRequireCapabilityViewerCannotWrite(t *testing.T) {
	app := newGateTestApp(authz.CapabilityAgentWrite)

	resp, payload := performGateRequest(t, app, signTestToken(t, gateTestSecret, 4, "Vera Viewer", "viewer"))
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	require.Equal(t, "insufficient permissions", payload.Message)
}

func TestRequireCapabilityAdminOnly(t *testing.T) {
	app := newGateTestApp(authz.CapabilityAdminOnly)

	resp, _ := performGateRequest(t, app, signTestToken(t, gateTestSecret, 2, "Arun Agent", "agent"))
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, payload := performGateRequest(t, app, signTestToken(t, gateTestSecret, 1, "Alice Admin", "admin"))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, payload.Success)
}

func TestRequireCapabilityMissingRoleClaim(t *testing.T) {
	app := newGateTestApp(authz.CapabilityViewerRead)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": float64(9),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(gateTestSecret))
	require.NoError(t, err)

	resp, payload := performGateRequest(t, app, signed)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	require.Equal(t, "no role assigned; contact an administrator", payload.Message)
}

func TestActorFromContextRoleNormalization(t *testing.T) {
	app := newGateTestApp(authz.CapabilityViewerRead)

	resp, payload := performGateRequest(t, app, signTestToken(t, gateTestSecret, 4, "Vera Viewer", "  VIEWER  "))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, payload.Success)
}
