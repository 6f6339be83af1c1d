package registration

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charliecatxph/eventra-backend/internal/captcha"
	"github.com/charliecatxph/eventra-backend/internal/mailer"
	"github.com/charliecatxph/eventra-backend/internal/models"
	"github.com/charliecatxph/eventra-backend/internal/notifier"
	"github.com/charliecatxph/eventra-backend/internal/qr"
	"github.com/charliecatxph/eventra-backend/internal/storage"
	"github.com/charliecatxph/eventra-backend/internal/util"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Input is one attendee sign-up for an event. All fields except Addr are
// required.
type Input struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	OrgN        string `json:"orgN"`
	OrgP        string `json:"orgP"`
	PhoneNumber string `json:"phoneNumber"`
	Salutations string `json:"salutations"`
	Addr        string `json:"addr"`
	EvID        string `json:"evId"`
	Token       string `json:"token"`
}

// Deps are the external collaborators of the registration pipeline.
type Deps struct {
	Storage  storage.ObjectStorage
	Captcha  captcha.Verifier
	Mailer   mailer.Mailer
	QR       qr.Renderer
	Notifier notifier.Notifier

	// FromAddr is the bare sender address; the event name is prepended as
	// the display name. Origin is the public frontend origin used for the
	// brochure link, may be empty. TmpDir holds QR files between render
	// and upload.
	FromAddr string
	Origin   string
	TmpDir   string

	// Now is the clock for the window check; nil means time.Now.
	Now func() time.Time
}

// Service runs the registration eligibility and issuance workflow.
type Service struct {
	db   *gorm.DB
	deps Deps
}

func NewService(db *gorm.DB, deps Deps) *Service {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.TmpDir == "" {
		deps.TmpDir = os.TempDir()
	}
	return &Service{db: db, deps: deps}
}

// Register runs the full pipeline and returns the issued credential id. Each
// gate aborts the whole operation; only a mail failure after persistence
// triggers the compensating cleanup.
func (s *Service) Register(ctx context.Context, in Input) (string, error) {
	if err := in.validate(); err != nil {
		return "", err
	}

	if err := s.deps.Captcha.Verify(in.Token); err != nil {
		return "", ErrCaptcha
	}

	var ev models.Event
	if err := s.db.WithContext(ctx).First(&ev, "id = ?", in.EvID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrEventNotFound
		}
		return "", err
	}

	email := strings.TrimSpace(in.Email)

	// Duplicate check is global across all events, not scoped to EvID.
	var dupes int64
	if err := s.db.WithContext(ctx).Model(&models.Attendee{}).
		Where("email = ?", email).Count(&dupes).Error; err != nil {
		return "", err
	}
	if dupes > 0 {
		return "", ErrDuplicate
	}

	var registered int64
	if err := s.db.WithContext(ctx).Model(&models.Attendee{}).
		Where("ev_id = ?", ev.ID).Count(&registered).Error; err != nil {
		return "", err
	}
	if registered >= int64(ev.AtendeeLim) {
		return "", ErrCapacity
	}

	// The window closes at startT regardless of endT; late sign-up is
	// blocked even mid-event.
	if s.deps.Now().Unix() >= ev.StartT {
		return "", &WindowClosedError{AllowWalkIn: ev.AllowWalkIn}
	}

	atnID := uuid.NewString()
	qrPath := filepath.Join(s.deps.TmpDir, uuid.NewString()+".png")
	if err := s.deps.QR.RenderToFile(atnID, qrPath); err != nil {
		return "", fmt.Errorf("%w: %v", ErrIssuance, err)
	}
	defer os.Remove(qrPath)

	upl, err := s.deps.Storage.Upload(ctx, qrPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrIssuance, err)
	}

	atn := models.Attendee{
		ID:           atnID,
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		OrgN:         strings.TrimSpace(in.OrgN),
		OrgP:         strings.TrimSpace(in.OrgP),
		PhoneNumber:  strings.TrimSpace(in.PhoneNumber),
		Salutations:  strings.TrimSpace(in.Salutations),
		Addr:         strings.TrimSpace(in.Addr),
		EvID:         ev.ID,
		RegisteredOn: s.deps.Now(),
		PublicIDQR:   upl.PublicID,
		QRSecureURL:  upl.SecureURL,
		Attended:     false,
	}
	if err := s.db.WithContext(ctx).Create(&atn).Error; err != nil {
		return "", err
	}

	msg := fmt.Sprintf("%s has registered on the ordinary event: %s.",
		atn.Name, strings.TrimSpace(ev.Name))
	if err := s.deps.Notifier.Notify("EVN-001", ev.OrganizationID, msg); err != nil {
		return "", err
	}

	mail := mailer.Confirmation(&ev, &atn, s.deps.FromAddr, s.deps.Origin)
	if err := s.deps.Mailer.Send(mail); err != nil {
		log.Error().Err(err).Str("attendee", atnID).Msg("confirmation mail failed, rolling back")
		return "", s.compensate(ctx, atnID, upl.PublicID)
	}

	return atnID, nil
}

// compensate removes the attendee record and the uploaded QR after a mail
// failure. Returns ErrMail on success, ErrFatal if the cleanup itself fails.
func (s *Service) compensate(ctx context.Context, atnID, publicID string) error {
	if err := s.db.WithContext(ctx).Delete(&models.Attendee{}, "id = ?", atnID).Error; err != nil {
		log.Error().Err(err).Str("attendee", atnID).Msg("compensation failed: attendee record left behind")
		return ErrFatal
	}
	if err := s.deps.Storage.Destroy(ctx, publicID); err != nil {
		log.Error().Err(err).Str("public_id", publicID).Msg("compensation failed: QR image left behind")
		return ErrFatal
	}
	return ErrMail
}

func (in Input) validate() error {
	if in.Name == "" || in.OrgN == "" || in.OrgP == "" || in.Salutations == "" ||
		in.PhoneNumber == "" || in.EvID == "" || in.Token == "" {
		return ErrValidation
	}
	if !util.EmailRx.MatchString(in.Email) {
		return ErrValidation
	}
	return nil
}
