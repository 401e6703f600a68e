package auth

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/golang-jwt/jwt/v4"
)

// SignInPath is where unauthenticated clients are pointed. The gateway never
// issues upstream calls on behalf of a request that fails here.
const SignInPath = "/sign-in"

// Middleware validates the bearer JWT on every protected route. Failures
// short-circuit with 401 and a redirect hint instead of reaching a handler.
func Middleware(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: []byte(secret),
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return Unauthorized(c)
		},
	})
}

// Unauthorized writes the standard 401 body with the sign-in redirect.
func Unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message":  "unauthorized",
		"redirect": SignInPath,
	})
}

// UserIDFromCtx reads the user_id claim left in locals by the JWT middleware.
// Claims arrive as float64 from JSON but tests may inject other types.
func UserIDFromCtx(c *fiber.Ctx) (int, error) {
	u := c.Locals("user")
	if u == nil {
		return 0, fiber.ErrUnauthorized
	}
	tok, ok := u.(*jwt.Token)
	if !ok {
		return 0, fiber.ErrUnauthorized
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fiber.ErrUnauthorized
	}
	raw, ok := claims["user_id"]
	if !ok {
		return 0, fiber.ErrUnauthorized
	}
	switch v := raw.(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case string:
		id, err := strconv.Atoi(v)
		if err != nil {
			return 0, fiber.ErrUnauthorized
		}
		return id, nil
	default:
		return 0, fiber.ErrUnauthorized
	}
}

// BearerFromCtx returns the raw credential from the Authorization header so
// it can be forwarded to upstream services verbatim.
func BearerFromCtx(c *fiber.Ctx) string {
	h := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}
