// middleware/auth.go
package middleware

import (
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Protected verifies the bearer token and stores the caller's identity in
// ctx locals for downstream handlers.
func Protected(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(401).JSON(fiber.Map{"message": "Missing authorization header"})
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return c.Status(401).JSON(fiber.Map{"message": "Invalid authorization header format"})
	}

	tokenString := parts[1]
	jwtSecret := os.Getenv("JWT_SECRET")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(401, "Invalid signing method")
		}
		return []byte(jwtSecret), nil
	})

	if err != nil || !token.Valid {
		return c.Status(401).JSON(fiber.Map{"message": "Invalid or expired token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(401).JSON(fiber.Map{"message": "Invalid token claims"})
	}

	exp, ok := claims["exp"].(float64)
	if !ok || time.Unix(int64(exp), 0).Before(time.Now()) {
		return c.Status(401).JSON(fiber.Map{"message": "Token expired"})
	}

	c.Locals("userId", claims["id"])
	c.Locals("role", claims["role"])
	c.Locals("name", claims["name"])

	return c.Next()
}

// RequireRoles gates a route to the given roles, case-insensitively. Must be
// mounted after Protected; it only reads what Protected stored.
func RequireRoles(roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[strings.ToLower(r)] = true
	}

	return func(c *fiber.Ctx) error {
		role, err := GetRole(c)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"message": "User not authenticated"})
		}

		if !allowed[strings.ToLower(role)] {
			return c.Status(403).JSON(fiber.Map{"message": "You do not have permission to perform this action"})
		}

		return c.Next()
	}
}

// GetUserID returns the authenticated user's id from ctx locals.
func GetUserID(c *fiber.Ctx) (uint, error) {
	userID := c.Locals("userId")
	if userID == nil {
		return 0, fiber.NewError(401, "User not authenticated")
	}

	// JWT numeric claims decode as float64
	if id, ok := userID.(float64); ok {
		return uint(id), nil
	}

	if id, ok := userID.(uint); ok {
		return id, nil
	}

	return 0, fiber.NewError(401, "Invalid user ID format")
}

// GetRole returns the authenticated user's role from ctx locals.
func GetRole(c *fiber.Ctx) (string, error) {
	role := c.Locals("role")
	if role == nil {
		return "", fiber.NewError(401, "User not authenticated")
	}

	if r, ok := role.(string); ok {
		return r, nil
	}

	return "", fiber.NewError(401, "Invalid role format")
}
