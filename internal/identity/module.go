package identity

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/gonote/internal/identity/inbound"
	"github.com/shandysiswandi/gonote/internal/identity/outbound/db"
	"github.com/shandysiswandi/gonote/internal/identity/outbound/mq"
	"github.com/shandysiswandi/gonote/internal/identity/usecase"
	"github.com/shandysiswandi/gonote/internal/pkg/clock"
	"github.com/shandysiswandi/gonote/internal/pkg/config"
	"github.com/shandysiswandi/gonote/internal/pkg/hash"
	"github.com/shandysiswandi/gonote/internal/pkg/instrument"
	"github.com/shandysiswandi/gonote/internal/pkg/jwt"
	"github.com/shandysiswandi/gonote/internal/pkg/messaging"
	"github.com/shandysiswandi/gonote/internal/pkg/otp"
	"github.com/shandysiswandi/gonote/internal/pkg/ratelimit"
	"github.com/shandysiswandi/gonote/internal/pkg/router"
	"github.com/shandysiswandi/gonote/internal/pkg/uid"
	"github.com/shandysiswandi/gonote/internal/pkg/validator"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Messaging  messaging.Client           `validate:"required"`
	Limiter    ratelimit.Limiter          `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	HMAC       hash.Hash                  `validate:"required"`
	OTP        otp.Generator              `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	JWT        jwt.JWT                    `validate:"required"`
}

// New wires the identity module and returns its usecase so other modules
// can authenticate callers through it.
func New(dep Dependency) (*usecase.Usecase, error) {
	if err := dep.Validator.Validate(dep); err != nil {
		return nil, err
	}

	dbAuth := db.NewDB(dep.DBConn, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        dbAuth,
		RepoMessaging: repoMsg,
		Validator:     dep.Validator,
		Config:        dep.Config,
		HMAC:          dep.HMAC,
		Limiter:       dep.Limiter,
		UID:           dep.UID,
		OTP:           dep.OTP,
		Clock:         dep.Clock,
		JWT:           dep.JWT,
		Instrument:    dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return uc, nil
}
