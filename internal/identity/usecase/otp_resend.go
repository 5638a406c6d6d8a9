package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/gonote/internal/identity/entity"
	"github.com/shandysiswandi/gonote/internal/pkg/goerror"
)

type OTPResendInput struct {
	Email string `validate:"required,email"`
}

// OTPResend replaces the pending signup passcode of an unverified account
// with a fresh one.
func (s *Usecase) OTPResend(ctx context.Context, in OTPResendInput) error {
	ctx, span := s.startSpan(ctx, "OTPResend")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "email", in.Email)
		return goerror.NewBusiness("Account not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	if user.IsVerified {
		return goerror.NewBusiness("Email already verified", goerror.CodeConflict)
	}

	return s.issueChallenge(ctx, user, entity.ChallengePurposeSignup)
}
