package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/gonote/internal/notes/entity"
	"github.com/shandysiswandi/gonote/internal/pkg/goerror"
)

type NoteListInput struct {
	Page  int32
	Limit int32
}

type NoteListOutput struct {
	Page  int32
	Limit int32
	Total int64
	Notes []entity.Note
}

// TotalPages derives the page count from the total and the page size.
func (o *NoteListOutput) TotalPages() int64 {
	if o.Limit <= 0 {
		return 0
	}

	return (o.Total + int64(o.Limit) - 1) / int64(o.Limit)
}

// HasNext reports whether a later page exists.
func (o *NoteListOutput) HasNext() bool {
	return int64(o.Page) < o.TotalPages()
}

// HasPrev reports whether an earlier page exists.
func (o *NoteListOutput) HasPrev() bool {
	return o.Page > 1 && o.Total > 0
}

// NoteList returns one page of the caller's notes, newest first.
func (s *Usecase) NoteList(ctx context.Context, in NoteListInput) (*NoteListOutput, error) {
	ctx, span := s.startSpan(ctx, "NoteList")
	defer span.End()

	userID, err := s.authn.Authenticate(ctx)
	if err != nil {
		return nil, err
	}

	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit <= 0 || in.Limit > 100 {
		in.Limit = 10 // default limit
	}

	notes, total, err := s.repoDB.GetNoteList(ctx, userID, entity.NoteListFilter{
		Limit:  in.Limit,
		Offset: (in.Page - 1) * in.Limit,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list notes", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &NoteListOutput{
		Page:  in.Page,
		Limit: in.Limit,
		Total: total,
		Notes: notes,
	}, nil
}
