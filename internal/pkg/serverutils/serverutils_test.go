package serverutils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func TestJwtMiddleware(t *testing.T) {
	app := fiber.New()
	app.Get("/me", NewJwtMiddleware(testSecret), func(ctx *fiber.Ctx) error {
		return ctx.SendString(ctx.Locals(PractitionerIdKey).(string))
	})

	tests := []struct {
		name     string
		header   string
		wantCode int
	}{
		{"missing header", "", fiber.StatusUnauthorized},
		{"not bearer", "Basic abc", fiber.StatusUnauthorized},
		{"bad signature", "Bearer " + func() string {
			tok, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "x"}).SignedString([]byte("other"))
			return tok
		}(), fiber.StatusUnauthorized},
		{"missing user claim", "Bearer " + signToken(t, jwt.MapClaims{"role": "admin"}), fiber.StatusUnauthorized},
		{"valid", "Bearer " + signToken(t, jwt.MapClaims{"user_id": "pr-1"}), fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, resp.StatusCode)
		})
	}
}

func TestValidateRequest(t *testing.T) {
	type req struct {
		Action string `validate:"required,oneof=create skip"`
	}

	assert.NoError(t, ValidateRequest(req{Action: "skip"}))

	err := ValidateRequest(req{Action: "merge"})
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
	assert.Contains(t, fe.Message, "oneof=create skip")
}

func TestErrorHandlerMiddleware(t *testing.T) {
	errConflict := errors.New("conflict")
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware(func(err error) (int, bool) {
		if errors.Is(err, errConflict) {
			return fiber.StatusConflict, true
		}
		return 0, false
	}))
	app.Get("/conflict", func(ctx *fiber.Ctx) error { return errConflict })
	app.Get("/fiber", func(ctx *fiber.Ctx) error { return fiber.NewError(fiber.StatusNotFound, "gone") })
	app.Get("/other", func(ctx *fiber.Ctx) error { return errors.New("boom") })

	for path, want := range map[string]int{
		"/conflict": fiber.StatusConflict,
		"/fiber":    fiber.StatusNotFound,
		"/other":    fiber.StatusInternalServerError,
	} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		assert.Equal(t, want, resp.StatusCode, path)

		var body BaseResponse[any]
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.False(t, body.Success)
		assert.Equal(t, want, body.Code)
	}
}
