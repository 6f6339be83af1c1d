package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charliecatxph/eventra-backend/internal/config"
	"github.com/charliecatxph/eventra-backend/internal/models"
	"github.com/charliecatxph/eventra-backend/internal/storage"
	"github.com/danielgtaylor/huma/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

const (
	AccessTokenDuration  = 24 * time.Hour
	RefreshTokenDuration = 30 * 24 * time.Hour

	refreshCookieName = "refreshToken"
)

type AuthHandler struct {
	cfg   *config.Config
	db    *gorm.DB
	store storage.ObjectStorage
}

func NewAuthHandler(cfg *config.Config, db *gorm.DB, store storage.ObjectStorage) *AuthHandler {
	return &AuthHandler{cfg: cfg, db: db, store: store}
}

// AuthInput carries the credentials of a protected operation: a bearer access
// token plus the refresh token cookie.
type AuthInput struct {
	Authorization string `header:"Authorization" doc:"Bearer access token"`
	Cookie        string `header:"Cookie" doc:"Refresh token cookie"`
}

// GenerateAccessToken mints the short-lived token carrying the organization
// profile.
func (h *AuthHandler) GenerateAccessToken(org *models.Organization) (string, error) {
	claims := jwt.MapClaims{
		"fn":       org.Fn,
		"ln":       org.Ln,
		"email":    org.Email,
		"org_name": org.OrgName,
		"country":  org.Country,
		"website":  org.Website,
		"logo":     org.Logo,
		"id":       org.ID,
		"exp":      time.Now().Add(AccessTokenDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTAccessSecret))
}

// GenerateRefreshToken mints the long-lived token carrying only the
// organization id.
func (h *AuthHandler) GenerateRefreshToken(orgID string) (string, error) {
	claims := jwt.MapClaims{
		"id":  orgID,
		"exp": time.Now().Add(RefreshTokenDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTRefreshSecret))
}

// Authorize validates both tokens of a protected request and returns the
// organization id from the refresh token.
func (h *AuthHandler) Authorize(input AuthInput) (string, error) {
	accessToken := strings.TrimPrefix(input.Authorization, "Bearer ")
	refreshToken := readCookie(input.Cookie, refreshCookieName)

	if accessToken == "" || accessToken == input.Authorization || refreshToken == "" {
		return "", huma.Error400BadRequest("No tokens provided.")
	}

	if _, err := h.parseToken(accessToken, h.cfg.JWTAccessSecret); err != nil {
		return "", huma.Error403Forbidden("Forbidden")
	}

	claims, err := h.parseToken(refreshToken, h.cfg.JWTRefreshSecret)
	if err != nil {
		return "", huma.Error403Forbidden("Forbidden")
	}

	orgID, ok := claims["id"].(string)
	if !ok || orgID == "" {
		return "", huma.Error403Forbidden("Forbidden")
	}
	return orgID, nil
}

func (h *AuthHandler) parseToken(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// refreshCookie builds the refresh token cookie with the production-aware
// Secure/SameSite policy.
func (h *AuthHandler) refreshCookie(value string, maxAge int) http.Cookie {
	sameSite := http.SameSiteLaxMode
	if h.cfg.IsProduction() {
		sameSite = http.SameSiteNoneMode
	}
	return http.Cookie{
		Name:     refreshCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: sameSite,
	}
}

func readCookie(header, name string) string {
	req := http.Request{Header: http.Header{"Cookie": []string{header}}}
	c, err := req.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
