package auth

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/charliecatxph/eventra-backend/internal/models"
	"github.com/charliecatxph/eventra-backend/internal/storage"
	"github.com/charliecatxph/eventra-backend/internal/util"
	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type LoginRequest struct {
	Body struct {
		Email string `json:"email" required:"true" doc:"Organization email"`
		PW    string `json:"pw" required:"true" doc:"Plaintext password"`
	}
}

type LoginResponse struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
		Err     string `json:"err"`
	}
}

func (h *AuthHandler) HandleLogin(ctx context.Context, input *LoginRequest) (*LoginResponse, error) {
	var org models.Organization
	err := h.db.WithContext(ctx).Where("email = ?", input.Body.Email).First(&org).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error400BadRequest("Organization doesn't exist.")
		}
		return nil, huma.Error500InternalServerError("Database error")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(org.PW), []byte(input.Body.PW)); err != nil {
		return nil, huma.Error400BadRequest("Wrong password.")
	}

	accessToken, err := h.GenerateAccessToken(&org)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate token")
	}
	refreshToken, err := h.GenerateRefreshToken(org.ID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate token")
	}

	res := &LoginResponse{
		SetCookie: h.refreshCookie(refreshToken, int(RefreshTokenDuration.Seconds())),
	}
	res.Body.Success = true
	res.Body.Token = accessToken
	return res, nil
}

type LogoutRequest struct{}

type LogoutResponse struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      struct {
		Success bool `json:"success"`
	}
}

func (h *AuthHandler) HandleLogout(ctx context.Context, input *LogoutRequest) (*LogoutResponse, error) {
	res := &LogoutResponse{SetCookie: h.refreshCookie("", -1)}
	res.Body.Success = true
	return res, nil
}

type RegisterFormData struct {
	Logo    huma.FormFile `form:"logo" contentType:"image/png,image/jpeg" required:"true"`
	Fn      string        `form:"fn"`
	Ln      string        `form:"ln"`
	Email   string        `form:"email"`
	PW      string        `form:"pw"`
	OrgName string        `form:"org_name"`
	Country string        `form:"country"`
	Website string        `form:"website"`
}

type RegisterRequest struct {
	RawBody huma.MultipartFormFiles[RegisterFormData]
}

type RegisterResponse struct {
	Body struct {
		Success bool `json:"success"`
	}
}

func (d *RegisterFormData) validate() bool {
	if d.Fn == "" || d.Ln == "" || d.OrgName == "" || d.Country == "" || d.PW == "" {
		return false
	}
	if !util.WebsiteRx.MatchString(d.Website) {
		return false
	}
	return util.EmailRx.MatchString(d.Email)
}

func (h *AuthHandler) emailTaken(ctx context.Context, email string) (bool, error) {
	var existing int64
	err := h.db.WithContext(ctx).Model(&models.Organization{}).
		Where("email = ?", email).Count(&existing).Error
	return existing > 0, err
}

func (h *AuthHandler) HandleRegister(ctx context.Context, input *RegisterRequest) (*RegisterResponse, error) {
	data := input.RawBody.Data()
	if !data.validate() || !data.Logo.IsSet {
		return nil, huma.Error400BadRequest("Incomplete parameters.")
	}

	taken, err := h.emailTaken(ctx, data.Email)
	if err != nil {
		return nil, huma.Error500InternalServerError("Database error")
	}
	if taken {
		return nil, huma.Error400BadRequest("Organization already exists with that email.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.PW), 10)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to hash password")
	}

	logoPath, err := storage.SaveTemp(h.cfg.UploadDir, data.Logo, filepath.Ext(data.Logo.Filename))
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to store logo")
	}
	defer os.Remove(logoPath)

	upl, err := h.store.Upload(ctx, logoPath)
	if err != nil {
		log.Error().Err(err).Msg("logo upload failed")
		return nil, huma.Error500InternalServerError("Failed to upload logo")
	}

	org := models.Organization{
		ID:        uuid.NewString(),
		Fn:        data.Fn,
		Ln:        data.Ln,
		Email:     data.Email,
		PW:        string(hash),
		OrgName:   data.OrgName,
		Country:   data.Country,
		Website:   data.Website,
		Logo:      upl.SecureURL,
		LogoPubID: upl.PublicID,
	}
	if err := h.db.WithContext(ctx).Create(&org).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to create organization")
	}

	res := &RegisterResponse{}
	res.Body.Success = true
	return res, nil
}

type UserDataRequest struct {
	Cookie string `header:"Cookie"`
}

type UserDataResponse struct {
	Body struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
		Err     string `json:"err"`
	}
}

// HandleUserData refreshes the access token from a valid refresh cookie.
func (h *AuthHandler) HandleUserData(ctx context.Context, input *UserDataRequest) (*UserDataResponse, error) {
	refreshToken := readCookie(input.Cookie, refreshCookieName)
	if refreshToken == "" {
		return nil, huma.Error400BadRequest("No tokens provided.")
	}

	claims, err := h.parseToken(refreshToken, h.cfg.JWTRefreshSecret)
	if err != nil {
		return nil, huma.Error403Forbidden("Forbidden")
	}
	orgID, _ := claims["id"].(string)

	var org models.Organization
	if err := h.db.WithContext(ctx).First(&org, "id = ?", orgID).Error; err != nil {
		return nil, huma.Error400BadRequest("Organization doesn't exist.")
	}

	accessToken, err := h.GenerateAccessToken(&org)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate token")
	}

	res := &UserDataResponse{}
	res.Body.Success = true
	res.Body.Token = accessToken
	return res, nil
}
