package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shandysiswandi/gonote/internal/identity/entity"
	"github.com/shandysiswandi/gonote/internal/pkg/clock"
	"github.com/shandysiswandi/gonote/internal/pkg/config"
	"github.com/shandysiswandi/gonote/internal/pkg/goerror"
	"github.com/shandysiswandi/gonote/internal/pkg/hash"
	"github.com/shandysiswandi/gonote/internal/pkg/instrument"
	"github.com/shandysiswandi/gonote/internal/pkg/jwt"
	"github.com/shandysiswandi/gonote/internal/pkg/otp"
	"github.com/shandysiswandi/gonote/internal/pkg/ratelimit"
	"github.com/shandysiswandi/gonote/internal/pkg/uid"
	"github.com/shandysiswandi/gonote/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

// OTPIssuedEvent carries a freshly issued passcode to the notifier.
type OTPIssuedEvent struct {
	UserID   int64
	Email    string
	FullName string
	Code     string
	Purpose  entity.ChallengePurpose
}

type repoMessaging interface {
	PublishOTPIssued(ctx context.Context, msg OTPIssuedEvent) error
}

type repoDB interface {
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)

	CreateUserWithChallenge(ctx context.Context, user entity.User, chal entity.Challenge) error
	UpsertChallenge(ctx context.Context, chal entity.Challenge) error

	// ConsumeChallenge atomically deletes the user's challenge when the code
	// hash matches and has not expired, marking the user verified in the
	// same transaction. It returns goerror.ErrNotFound when no live
	// challenge matches.
	ConsumeChallenge(ctx context.Context, email, codeHash string, now time.Time) (*entity.User, error)

	DeleteChallenge(ctx context.Context, userID int64) error
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	validator     validator.Validator
	cfg           config.Config
	hmac          hash.Hash
	limiter       ratelimit.Limiter
	uid           uid.NumberID
	otp           otp.Generator
	clock         clock.Clocker
	jwt           jwt.JWT
	ins           instrument.Instrumentation
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Validator     validator.Validator
	Config        config.Config
	HMAC          hash.Hash
	Limiter       ratelimit.Limiter
	UID           uid.NumberID
	OTP           otp.Generator
	Clock         clock.Clocker
	JWT           jwt.JWT
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		validator:     dep.Validator,
		cfg:           dep.Config,
		hmac:          dep.HMAC,
		limiter:       dep.Limiter,
		uid:           dep.UID,
		otp:           dep.OTP,
		clock:         dep.Clock,
		jwt:           dep.JWT,
		ins:           dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("identity.usecase").Start(ctx, name)
}

// issueChallenge generates a fresh passcode for the user, stores its hash as
// the user's single pending challenge, and hands the plain code to the
// notifier. A publish failure rolls the challenge back best-effort and
// surfaces as a server error so the caller never waits for a code that was
// never sent.
func (s *Usecase) issueChallenge(ctx context.Context, user *entity.User, purpose entity.ChallengePurpose) error {
	code, err := s.otp.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp code", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	codeHash, err := s.hmac.Hash(code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash otp code", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoDB.UpsertChallenge(ctx, entity.Challenge{
		UserID:    user.ID,
		CodeHash:  string(codeHash),
		Purpose:   purpose,
		ExpiresAt: s.clock.Now().Add(s.cfg.GetMinute("modules.identity.otp_ttl_minutes")),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo upsert challenge", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishOTPIssued(ctx, OTPIssuedEvent{
		UserID:   user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Code:     code,
		Purpose:  purpose,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish otp issued", "user_id", user.ID, "error", err)

		if dErr := s.repoDB.DeleteChallenge(ctx, user.ID); dErr != nil {
			slog.ErrorContext(ctx, "failed to repo delete challenge after publish failure", "user_id", user.ID, "error", dErr)
		}

		return goerror.NewServer(err)
	}

	return nil
}

// Authenticate resolves the calling user from the token claims stored in the
// context and ensures the account still exists and is verified. It returns
// the user ID other modules scope their resources by.
func (s *Usecase) Authenticate(ctx context.Context) (int64, error) {
	ctx, span := s.startSpan(ctx, "Authenticate")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return 0, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	user, err := s.repoDB.GetUserByID(ctx, clm.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "token references a missing user", "user_id", clm.UserID)
		return 0, goerror.NewBusiness("Account no longer exists", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", clm.UserID, "error", err)
		return 0, goerror.NewServer(err)
	}

	if !user.IsVerified {
		slog.WarnContext(ctx, "user account is unverified", "user_id", user.ID)
		return 0, goerror.NewBusiness("Email not verified", goerror.CodeForbidden)
	}

	return user.ID, nil
}
