package inbound

import (
	"context"

	"github.com/shandysiswandi/gonote/internal/identity/usecase"
	"github.com/shandysiswandi/gonote/internal/pkg/router"
)

type uc interface {
	Signup(ctx context.Context, in usecase.SignupInput) error
	Login(ctx context.Context, in usecase.LoginInput) error
	OTPResend(ctx context.Context, in usecase.OTPResendInput) error
	Verify(ctx context.Context, in usecase.VerifyInput) (*usecase.VerifyOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/auth/signup", end.Signup)
	r.POST("/api/v1/auth/login", end.Login)
	r.POST("/api/v1/auth/otp/resend", end.OTPResend)
	r.POST("/api/v1/auth/verify", end.Verify)
}
