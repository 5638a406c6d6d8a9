package notes

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/gonote/internal/notes/inbound"
	"github.com/shandysiswandi/gonote/internal/notes/outbound/db"
	"github.com/shandysiswandi/gonote/internal/notes/usecase"
	"github.com/shandysiswandi/gonote/internal/pkg/clock"
	"github.com/shandysiswandi/gonote/internal/pkg/instrument"
	"github.com/shandysiswandi/gonote/internal/pkg/router"
	"github.com/shandysiswandi/gonote/internal/pkg/uid"
	"github.com/shandysiswandi/gonote/internal/pkg/validator"
)

// Authn resolves the calling user from the request context. The identity
// module's usecase satisfies it.
type Authn interface {
	Authenticate(ctx context.Context) (int64, error)
}

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Authn      Authn                      `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	dbNotes := db.NewDB(dep.DBConn, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:     dbNotes,
		Authn:      dep.Authn,
		Validator:  dep.Validator,
		UID:        dep.UID,
		Clock:      dep.Clock,
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
