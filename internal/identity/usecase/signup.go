package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/gonote/internal/identity/entity"
	"github.com/shandysiswandi/gonote/internal/pkg/goerror"
)

type SignupInput struct {
	Email    string `validate:"required,email"`
	FullName string `validate:"required,min=2,max=50,alphaspace"`
	Age      int32  `validate:"required,min=10,max=120"`
}

// Signup creates an unverified account and emails its owner a one-time
// passcode to prove control of the address.
func (s *Usecase) Signup(ctx context.Context, in SignupInput) error {
	ctx, span := s.startSpan(ctx, "Signup")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	_, err := s.repoDB.GetUserByEmail(ctx, in.Email)
	if err == nil {
		return goerror.NewBusiness("Email already registered", goerror.CodeConflict)
	}
	if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	code, err := s.otp.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp code", "error", err)
		return goerror.NewServer(err)
	}

	codeHash, err := s.hmac.Hash(code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash otp code", "error", err)
		return goerror.NewServer(err)
	}

	user := entity.User{
		ID:       s.uid.Generate(),
		Email:    in.Email,
		FullName: in.FullName,
		Age:      in.Age,
	}

	chal := entity.Challenge{
		UserID:    user.ID,
		CodeHash:  string(codeHash),
		Purpose:   entity.ChallengePurposeSignup,
		ExpiresAt: s.clock.Now().Add(s.cfg.GetMinute("modules.identity.otp_ttl_minutes")),
	}

	if err := s.repoDB.CreateUserWithChallenge(ctx, user, chal); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			return goerror.NewBusiness("Email already registered", goerror.CodeConflict)
		}

		slog.ErrorContext(ctx, "failed to repo create user with challenge", "email", user.Email, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishOTPIssued(ctx, OTPIssuedEvent{
		UserID:   user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Code:     code,
		Purpose:  entity.ChallengePurposeSignup,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish otp issued", "user_id", user.ID, "error", err)

		if dErr := s.repoDB.DeleteChallenge(ctx, user.ID); dErr != nil {
			slog.ErrorContext(ctx, "failed to repo delete challenge after publish failure", "user_id", user.ID, "error", dErr)
		}

		return goerror.NewServer(err)
	}

	return nil
}
