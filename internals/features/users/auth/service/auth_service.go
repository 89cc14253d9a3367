package service

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"nhatro_backend/internals/configs"
	"nhatro_backend/internals/constants"
	authModel "nhatro_backend/internals/features/users/auth/model"
	authRepo "nhatro_backend/internals/features/users/auth/repository"
	userModel "nhatro_backend/internals/features/users/user/model"
	helper "nhatro_backend/internals/helpers"
)

/* ==========================
   Const & small helpers
========================== */

const (
	accessTTLDefault  = 24 * time.Hour
	refreshTTLDefault = 7 * 24 * time.Hour
)

func nowUTC() time.Time { return time.Now().UTC() }

func getJWTSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET is not set")
	}
	return secret, nil
}

func getRefreshSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTRefreshSecret)
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_REFRESH_SECRET is not set")
	}
	return secret, nil
}

func computeRefreshHash(token, secret string) []byte {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(token))
	return m.Sum(nil)
}

func strptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

/* ==========================
   Claims & token issuing
========================== */

func buildAccessClaims(u userModel.UserModel, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":       u.ID.String(),
		"user_name": u.UserName,
		"role":      u.Role,
		"iat":       now.Unix(),
		"exp":       now.Add(accessTTLDefault).Unix(),
	}
}

func buildRefreshClaims(userID uuid.UUID, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(refreshTTLDefault).Unix(),
	}
}

func signToken(claims jwt.MapClaims, secret string) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// issueTokens signs a new access/refresh pair, persists the refresh hash and
// sets the refresh + CSRF cookies.
func issueTokens(db *gorm.DB, c *fiber.Ctx, user userModel.UserModel) (string, error) {
	jwtSecret, err := getJWTSecret()
	if err != nil {
		return "", err
	}
	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return "", err
	}

	now := nowUTC()
	accessToken, err := signToken(buildAccessClaims(user, now), jwtSecret)
	if err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, "Failed to sign access token")
	}
	refreshToken, err := signToken(buildRefreshClaims(user.ID, now), refreshSecret)
	if err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, "Failed to sign refresh token")
	}

	if err := authRepo.CreateRefreshToken(db, &authModel.RefreshToken{
		UserID:    user.ID,
		TokenHash: computeRefreshHash(refreshToken, refreshSecret),
		ExpiresAt: now.Add(refreshTTLDefault),
		UserAgent: strptr(c.Get("User-Agent")),
		IP:        strptr(c.IP()),
	}); err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, "Failed to store refresh token")
	}

	setRefreshCookie(c, refreshToken, now.Add(refreshTTLDefault))
	setCSRFCookie(c)
	return accessToken, nil
}

func setRefreshCookie(c *fiber.Ctx, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Expires:  expires,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/api/auth",
	})
}

func setCSRFCookie(c *fiber.Ctx) string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	token := hex.EncodeToString(buf)
	c.Cookie(&fiber.Cookie{
		Name:     "csrf_token",
		Value:    token,
		Expires:  time.Now().Add(refreshTTLDefault),
		HTTPOnly: false, // readable by the client, echoed in X-CSRF-Token
		Secure:   true,
		SameSite: "None",
		Path:     "/",
	})
	return token
}

/* ==========================
   LOGIN / REGISTER / LOGOUT / ACCOUNT
========================== */

type loginRequest struct {
	Identifier string `json:"identifier"` // email or user_name
	Password   string `json:"password"`
}

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var input loginRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	input.Identifier = strings.TrimSpace(input.Identifier)
	if input.Identifier == "" || input.Password == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifier and password are required")
	}

	user, err := authRepo.FindUserByEmailOrUsername(db, input.Identifier)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Wrong credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Wrong credentials")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated")
	}

	accessToken, err := issueTokens(db, c, *user)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Login failed")
	}

	return helper.JsonOK(c, "Login successful", fiber.Map{
		"access_token": accessToken,
		"user":         accountView(*user),
	})
}

type registerRequest struct {
	UserName string `json:"user_name" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

// Register creates a renter account. Landlord and admin accounts are created
// through the admin user management endpoints.
func Register(db *gorm.DB, c *fiber.Ctx) error {
	var input registerRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(&input); err != nil {
		return helper.JsonValidationError(c, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := userModel.UserModel{
		UserName: input.UserName,
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		Password: string(hash),
		FullName: input.FullName,
		Phone:    input.Phone,
		Role:     constants.RoleRenter.String(),
	}
	if err := authRepo.CreateUser(db, &user); err != nil {
		return helper.JsonError(c, fiber.StatusConflict, "Email or user name already in use")
	}

	return helper.JsonCreated(c, "Account created", accountView(user))
}

func Logout(db *gorm.DB, c *fiber.Ctx) error {
	// blacklist the current access token until its natural expiry
	auth := strings.TrimSpace(c.Get("Authorization"))
	if fields := strings.Fields(auth); len(fields) == 2 && strings.EqualFold(fields[0], "Bearer") {
		tok := fields[1]
		expiredAt := time.Now().Add(accessTTLDefault)
		if claims := parseUnverifiedClaims(tok); claims != nil {
			if exp, ok := claims["exp"].(float64); ok {
				expiredAt = time.Unix(int64(exp), 0)
			}
		}
		_ = authRepo.BlacklistToken(db, tok, expiredAt)
	}

	// revoke the refresh token bound to this session
	if refreshCookie := c.Cookies("refresh_token"); refreshCookie != "" {
		if refreshSecret, err := getRefreshSecret(); err == nil {
			_ = authRepo.DeleteRefreshTokenByHash(db, computeRefreshHash(refreshCookie, refreshSecret))
		}
	}

	clearAuthCookies(c)
	return helper.JsonOK(c, "Logged out", nil)
}

// Account answers GET /api/auth/account for the logged-in user.
func Account(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}
	user, err := authRepo.FindUserByID(db, userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}
	return helper.JsonOK(c, "OK", accountView(*user))
}

func accountView(u userModel.UserModel) fiber.Map {
	return fiber.Map{
		"id":        u.ID,
		"user_name": u.UserName,
		"email":     u.Email,
		"full_name": u.FullName,
		"phone":     u.Phone,
		"role":      u.Role,
		"is_active": u.IsActive,
	}
}

func clearAuthCookies(c *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	c.Cookie(&fiber.Cookie{Name: "refresh_token", Value: "", Expires: expired, HTTPOnly: true, Path: "/api/auth"})
	c.Cookie(&fiber.Cookie{Name: "csrf_token", Value: "", Expires: expired, Path: "/"})
}

func parseUnverifiedClaims(token string) jwt.MapClaims {
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil
	}
	return claims
}
