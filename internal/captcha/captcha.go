package captcha

import (
	"fmt"
	"strings"

	"github.com/kataras/hcaptcha"
)

// Verifier checks a client-supplied CAPTCHA token against the provider.
type Verifier interface {
	Verify(token string) error
}

// HCaptcha verifies tokens against the hCaptcha siteverify API.
type HCaptcha struct {
	client *hcaptcha.Client
}

func NewHCaptcha(secret string) *HCaptcha {
	return &HCaptcha{client: hcaptcha.New(secret)}
}

func (h *HCaptcha) Verify(token string) error {
	resp := h.client.VerifyToken(token)
	if !resp.Success {
		return fmt.Errorf("hcaptcha rejected token: %s", strings.Join(resp.ErrorCodes, ", "))
	}
	return nil
}
