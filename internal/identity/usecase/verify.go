package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/gonote/internal/pkg/goerror"
)

type VerifyInput struct {
	Email string `validate:"required,email"`
	Code  string `validate:"required,len=6,numeric"`
}

type VerifyOutput struct {
	AccessToken string
}

// Verify consumes the pending passcode for the email address and returns a
// signed access token. A signup code additionally marks the account
// verified. Each code can be consumed exactly once, and repeated failures
// for the same address are throttled.
func (s *Usecase) Verify(ctx context.Context, in VerifyInput) (*VerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "Verify")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	allowed, err := s.limiter.Allowed(ctx, in.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check verification attempts", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !allowed {
		slog.WarnContext(ctx, "too many failed verification attempts", "email", in.Email)
		return nil, goerror.NewBusiness("Too many attempts, try again later", goerror.CodeTooManyRequest)
	}

	codeHash, err := s.hmac.Hash(in.Code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash otp code", "error", err)
		return nil, goerror.NewServer(err)
	}

	user, err := s.repoDB.ConsumeChallenge(ctx, in.Email, string(codeHash), s.clock.Now())
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "no live challenge matches the code", "email", in.Email)

		if lErr := s.limiter.RecordFailure(ctx, in.Email); lErr != nil {
			slog.ErrorContext(ctx, "failed to record verification attempt", "email", in.Email, "error", lErr)
		}

		return nil, goerror.NewBusiness("Invalid or expired code", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo consume challenge", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.limiter.Reset(ctx, in.Email); err != nil {
		slog.ErrorContext(ctx, "failed to reset verification attempts", "email", in.Email, "error", err)
	}

	token, err := s.jwt.Generate(user.ID, user.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access jwt token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &VerifyOutput{AccessToken: token}, nil
}
