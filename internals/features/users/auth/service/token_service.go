package service

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	authRepo "nhatro_backend/internals/features/users/auth/repository"
	helper "nhatro_backend/internals/helpers"
)

// ========================== REFRESH TOKEN ==========================
// POST /api/auth/refresh-token
func RefreshToken(db *gorm.DB, c *fiber.Ctx) error {
	// CSRF is mandatory for cookie-based endpoints
	if err := enforceCSRF(c); err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	refreshCookie := strings.TrimSpace(c.Cookies("refresh_token"))
	if refreshCookie == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token missing")
	}

	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	// Parse & validate the refresh JWT
	tok, err := jwt.Parse(refreshCookie, func(t *jwt.Token) (any, error) {
		return []byte(refreshSecret), nil
	})
	if err != nil || !tok.Valid {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}
	claims, _ := tok.Claims.(jwt.MapClaims)
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}

	// The hash must still be known to the DB
	hash := computeRefreshHash(refreshCookie, refreshSecret)
	exists, err := authRepo.RefreshTokenHashExists(db, hash)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if !exists {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token unknown")
	}

	user, err := authRepo.FindUserByID(db, userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User not found")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Account deactivated")
	}

	// ROTATE: the presented token is burned whether or not issuing succeeds
	if err := authRepo.DeleteRefreshTokenByHash(db, hash); err != nil {
		log.Printf("[refresh] delete old hash failed: %v", err)
	}

	accessToken, err := issueTokens(db, c, *user)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to refresh session")
	}

	return helper.JsonOK(c, "Token refreshed", fiber.Map{
		"access_token": accessToken,
		"user":         accountView(*user),
	})
}

// ========================== CSRF ==========================
// GET /api/auth/csrf
func CSRF(c *fiber.Ctx) error {
	token := setCSRFCookie(c)
	return helper.JsonOK(c, "CSRF token issued", fiber.Map{"csrf_token": token})
}

func enforceCSRF(c *fiber.Ctx) error {
	cookie := c.Cookies("csrf_token")
	header := c.Get("X-CSRF-Token")
	if cookie == "" || header == "" || cookie != header {
		return fiber.NewError(fiber.StatusForbidden, "CSRF token mismatch")
	}
	return nil
}
