package router

import (
	"testing"

	"gameshop-api/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func TestRouterRouteSurface(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		ClientOrigin: "http://localhost:3000",
		UploadDir:    t.TempDir(),
	}

	r := Router(cfg, Deps{}, zap.NewNop())

	registered := make(map[string]bool)
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	want := []string{
		"POST /api/auth/register",
		"POST /api/auth/login",
		"GET /api/auth/verify-email",
		"POST /api/auth/request-password-reset",
		"POST /api/auth/reset-password",
		"GET /api/games",
		"POST /api/orders",
		"POST /api/checkout/create-checkout-session",
		"POST /api/checkout/webhook",
		"GET /api/reviews/:gameId",
	}
	for _, route := range want {
		if !registered[route] {
			t.Errorf("expected route %s to be registered", route)
		}
	}

	if registered["POST /api/webhook"] {
		t.Error("expected the webhook to live under /api/checkout")
	}
	if registered["POST /api/auth/request-reset"] {
		t.Error("expected the old reset path to be gone")
	}
}
