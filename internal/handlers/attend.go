package handlers

import (
	"context"
	"errors"

	"github.com/charliecatxph/eventra-backend/internal/registration"
	"github.com/danielgtaylor/huma/v2"
)

type AttendHandler struct {
	svc *registration.Service
}

func NewAttendHandler(svc *registration.Service) *AttendHandler {
	return &AttendHandler{svc: svc}
}

type AttendRequest struct {
	Body registration.Input
}

type AttendResponse struct {
	Body struct {
		Success bool   `json:"success"`
		Msg     string `json:"msg"`
		Data    string `json:"data" doc:"Issued credential id"`
		Err     string `json:"err"`
	}
}

// HandleAttend is the public attendee sign-up endpoint.
func (h *AttendHandler) HandleAttend(ctx context.Context, input *AttendRequest) (*AttendResponse, error) {
	id, err := h.svc.Register(ctx, input.Body)
	if err != nil {
		return nil, mapRegistrationError(err)
	}

	res := &AttendResponse{}
	res.Body.Success = true
	res.Body.Msg = "You have been registered! Please check your email for your identification."
	res.Body.Data = id
	return res, nil
}

func mapRegistrationError(err error) error {
	var windowClosed *registration.WindowClosedError
	switch {
	case errors.Is(err, registration.ErrFatal):
		return huma.Error500InternalServerError(err.Error())
	case errors.Is(err, registration.ErrEventNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, registration.ErrValidation),
		errors.Is(err, registration.ErrCaptcha),
		errors.Is(err, registration.ErrDuplicate),
		errors.Is(err, registration.ErrCapacity),
		errors.Is(err, registration.ErrIssuance),
		errors.Is(err, registration.ErrMail),
		errors.As(err, &windowClosed):
		return huma.Error400BadRequest(err.Error())
	default:
		return huma.Error500InternalServerError("Server error.")
	}
}
