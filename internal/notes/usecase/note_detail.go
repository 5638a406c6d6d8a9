package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/gonote/internal/notes/entity"
	"github.com/shandysiswandi/gonote/internal/pkg/goerror"
)

type NoteDetailInput struct {
	ID int64 `validate:"required"`
}

type NoteDetailOutput struct {
	Note entity.Note
}

// NoteDetail returns one of the caller's notes. A note owned by someone
// else is indistinguishable from a missing one.
func (s *Usecase) NoteDetail(ctx context.Context, in NoteDetailInput) (*NoteDetailOutput, error) {
	ctx, span := s.startSpan(ctx, "NoteDetail")
	defer span.End()

	userID, err := s.authn.Authenticate(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	note, err := s.repoDB.GetNoteByID(ctx, in.ID, userID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Note not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get note by id", "note_id", in.ID, "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &NoteDetailOutput{Note: *note}, nil
}
