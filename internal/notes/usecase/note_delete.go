package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/gonote/internal/pkg/goerror"
)

type NoteDeleteInput struct {
	ID int64 `validate:"required"`
}

func (s *Usecase) NoteDelete(ctx context.Context, in NoteDeleteInput) error {
	ctx, span := s.startSpan(ctx, "NoteDelete")
	defer span.End()

	userID, err := s.authn.Authenticate(ctx)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	err = s.repoDB.DeleteNote(ctx, in.ID, userID)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("Note not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete note", "note_id", in.ID, "user_id", userID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
