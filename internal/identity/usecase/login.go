package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/gonote/internal/identity/entity"
	"github.com/shandysiswandi/gonote/internal/pkg/goerror"
)

type LoginInput struct {
	Email string `validate:"required,email"`
}

// Login issues a fresh sign-in passcode via email. Only verified accounts
// can request one; unverified accounts must finish signup verification
// first.
func (s *Usecase) Login(ctx context.Context, in LoginInput) error {
	ctx, span := s.startSpan(ctx, "Login")
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

	if !user.IsVerified {
		slog.WarnContext(ctx, "user account is unverified", "user_id", user.ID)
		return goerror.NewBusiness("Email not verified", goerror.CodeForbidden)
	}

	return s.issueChallenge(ctx, user, entity.ChallengePurposeLogin)
}
