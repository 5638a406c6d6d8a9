package inbound

import (
	"github.com/shandysiswandi/gonote/internal/identity/usecase"
	"github.com/shandysiswandi/gonote/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for the email passcode flows.
type HTTPEndpoint struct {
	uc uc
}

// Signup creates an unverified account and emails a verification code.
func (h *HTTPEndpoint) Signup(r *router.Request) (any, error) {
	var req SignupRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.Signup(r.Context(), usecase.SignupInput{
		Email:    req.Email,
		FullName: req.FullName,
		Age:      req.Age,
	}); err != nil {
		return nil, err
	}

	return MessageResponse{Detail: "Verification code sent to your email"}, nil
}

// Login emails a sign-in code to a verified account.
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.Login(r.Context(), usecase.LoginInput{Email: req.Email}); err != nil {
		return nil, err
	}

	return MessageResponse{Detail: "Login code sent to your email"}, nil
}

// OTPResend replaces the pending signup code with a fresh one.
func (h *HTTPEndpoint) OTPResend(r *router.Request) (any, error) {
	var req OTPResendRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.OTPResend(r.Context(), usecase.OTPResendInput{Email: req.Email}); err != nil {
		return nil, err
	}

	return MessageResponse{Detail: "Verification code sent to your email"}, nil
}

// Verify exchanges an emailed code for an access token.
func (h *HTTPEndpoint) Verify(r *router.Request) (any, error) {
	var req VerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Verify(r.Context(), usecase.VerifyInput{
		Email: req.Email,
		Code:  req.Code,
	})
	if err != nil {
		return nil, err
	}

	return VerifyResponse{AccessToken: resp.AccessToken}, nil
}
