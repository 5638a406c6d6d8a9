package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/gonote/internal/notes/entity"
	"github.com/shandysiswandi/gonote/internal/pkg/goerror"
)

type NoteCreateInput struct {
	Title   string `validate:"required,max=200"`
	Content string `validate:"required,max=10000"`
}

type NoteCreateOutput struct {
	Note entity.Note
}

func (s *Usecase) NoteCreate(ctx context.Context, in NoteCreateInput) (*NoteCreateOutput, error) {
	ctx, span := s.startSpan(ctx, "NoteCreate")
	defer span.End()

	userID, err := s.authn.Authenticate(ctx)
	if err != nil {
		return nil, err
	}

	in.Title = strings.TrimSpace(in.Title)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	now := s.clock.Now()
	note := entity.Note{
		ID:        s.uid.Generate(),
		UserID:    userID,
		Title:     in.Title,
		Content:   in.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repoDB.CreateNote(ctx, note); err != nil {
		slog.ErrorContext(ctx, "failed to repo create note", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &NoteCreateOutput{Note: note}, nil
}
