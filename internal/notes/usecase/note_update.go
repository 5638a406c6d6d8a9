package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/gonote/internal/notes/entity"
	"github.com/shandysiswandi/gonote/internal/pkg/goerror"
)

type NoteUpdateInput struct {
	ID      int64  `validate:"required"`
	Title   string `validate:"required,max=200"`
	Content string `validate:"required,max=10000"`
}

type NoteUpdateOutput struct {
	Note entity.Note
}

func (s *Usecase) NoteUpdate(ctx context.Context, in NoteUpdateInput) (*NoteUpdateOutput, error) {
	ctx, span := s.startSpan(ctx, "NoteUpdate")
	defer span.End()

	userID, err := s.authn.Authenticate(ctx)
	if err != nil {
		return nil, err
	}

	in.Title = strings.TrimSpace(in.Title)

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

	note.Title = in.Title
	note.Content = in.Content
	note.UpdatedAt = s.clock.Now()

	if err := s.repoDB.UpdateNote(ctx, *note); err != nil {
		slog.ErrorContext(ctx, "failed to repo update note", "note_id", note.ID, "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &NoteUpdateOutput{Note: *note}, nil
}
