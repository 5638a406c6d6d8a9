package inbound

import (
	"context"

	"github.com/shandysiswandi/gonote/internal/notes/usecase"
	"github.com/shandysiswandi/gonote/internal/pkg/router"
)

type uc interface {
	NoteCreate(ctx context.Context, in usecase.NoteCreateInput) (*usecase.NoteCreateOutput, error)
	NoteList(ctx context.Context, in usecase.NoteListInput) (*usecase.NoteListOutput, error)
	NoteDetail(ctx context.Context, in usecase.NoteDetailInput) (*usecase.NoteDetailOutput, error)
	NoteUpdate(ctx context.Context, in usecase.NoteUpdateInput) (*usecase.NoteUpdateOutput, error)
	NoteDelete(ctx context.Context, in usecase.NoteDeleteInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// All note endpoints require an authenticated, verified caller.
	r.POST("/api/v1/notes", end.NoteCreate)
	r.GET("/api/v1/notes", end.NoteList)
	r.GET("/api/v1/notes/:id", end.NoteDetail)
	r.PUT("/api/v1/notes/:id", end.NoteUpdate)
	r.DELETE("/api/v1/notes/:id", end.NoteDelete)
}
