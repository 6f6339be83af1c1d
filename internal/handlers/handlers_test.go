package handlers

import (
	"context"
	"fmt"
	"testing"

	"github.com/charliecatxph/eventra-backend/internal/auth"
	"github.com/charliecatxph/eventra-backend/internal/config"
	"github.com/charliecatxph/eventra-backend/internal/mailer"
	"github.com/charliecatxph/eventra-backend/internal/models"
	"github.com/charliecatxph/eventra-backend/internal/storage"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fakeStorage struct {
	uploads    int
	destroyed  []string
	uploadErr  error
	destroyErr error
}

func (f *fakeStorage) Upload(ctx context.Context, localPath string) (*storage.UploadResult, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	f.uploads++
	return &storage.UploadResult{
		PublicID:  fmt.Sprintf("pub-%d", f.uploads),
		SecureURL: fmt.Sprintf("https://cdn.example.com/%d.png", f.uploads),
	}, nil
}

func (f *fakeStorage) Destroy(ctx context.Context, publicID string) error {
	if f.destroyErr != nil {
		return f.destroyErr
	}
	f.destroyed = append(f.destroyed, publicID)
	return nil
}

type recordingMailer struct {
	sent []*mailer.Message
	err  error
}

func (f *recordingMailer) Send(m *mailer.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m)
	return nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	db.AutoMigrate(
		&models.Organization{},
		&models.Event{},
		&models.Attendee{},
		&models.Notification{},
		&models.BizMatch{},
		&models.Supplier{},
		&models.TimeslotSheet{},
	)
	return db
}

// newTestAuth seeds an organization and returns an auth handler plus a valid
// credential pair for it.
func newTestAuth(t *testing.T, db *gorm.DB) (*auth.AuthHandler, auth.AuthInput, models.Organization) {
	t.Helper()

	cfg := &config.Config{
		Mode:             "DEVELOPMENT",
		JWTAccessSecret:  "access-secret",
		JWTRefreshSecret: "refresh-secret",
	}
	authHandler := auth.NewAuthHandler(cfg, db, &fakeStorage{})

	org := models.Organization{
		ID:      "org-1",
		Fn:      "Charlie",
		Ln:      "Tan",
		Email:   "org@example.com",
		OrgName: "CTX Events",
		Country: "Philippines",
	}
	if err := db.Create(&org).Error; err != nil {
		t.Fatalf("failed to create organization: %v", err)
	}

	accessToken, err := authHandler.GenerateAccessToken(&org)
	if err != nil {
		t.Fatalf("failed to generate access token: %v", err)
	}
	refreshToken, err := authHandler.GenerateRefreshToken(org.ID)
	if err != nil {
		t.Fatalf("failed to generate refresh token: %v", err)
	}

	in := auth.AuthInput{
		Authorization: "Bearer " + accessToken,
		Cookie:        "refreshToken=" + refreshToken,
	}
	return authHandler, in, org
}
