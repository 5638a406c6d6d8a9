package usecase

import (
	"context"

	"github.com/shandysiswandi/gonote/internal/notes/entity"
	"github.com/shandysiswandi/gonote/internal/pkg/clock"
	"github.com/shandysiswandi/gonote/internal/pkg/instrument"
	"github.com/shandysiswandi/gonote/internal/pkg/uid"
	"github.com/shandysiswandi/gonote/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	GetNoteByID(ctx context.Context, id, userID int64) (*entity.Note, error)
	GetNoteList(ctx context.Context, userID int64, filter entity.NoteListFilter) ([]entity.Note, int64, error)

	CreateNote(ctx context.Context, note entity.Note) error
	UpdateNote(ctx context.Context, note entity.Note) error
	DeleteNote(ctx context.Context, id, userID int64) error
}

// authn resolves the calling user and rejects tokens whose account is gone
// or still unverified. The identity module provides the implementation.
type authn interface {
	Authenticate(ctx context.Context) (int64, error)
}

type Usecase struct {
	repoDB    repoDB
	authn     authn
	validator validator.Validator
	uid       uid.NumberID
	clock     clock.Clocker
	ins       instrument.Instrumentation
}

type Dependency struct {
	RepoDB     repoDB
	Authn      authn
	Validator  validator.Validator
	UID        uid.NumberID
	Clock      clock.Clocker
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		authn:     dep.Authn,
		validator: dep.Validator,
		uid:       dep.UID,
		clock:     dep.Clock,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("notes.usecase").Start(ctx, name)
}
