package inbound

import (
	"time"

	"github.com/samber/lo"
	"github.com/shandysiswandi/gonote/internal/notes/entity"
	"github.com/shandysiswandi/gonote/internal/notes/usecase"
)

type NoteCreateRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type NoteUpdateRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type NoteResponse struct {
	ID        int64     `json:"id,string"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type NoteDetailResponse struct {
	Note NoteResponse `json:"note"`
}

type NotesResponse struct {
	Notes []NoteResponse `json:"notes"`
	// meta
	page       int32
	totalPages int64
	total      int64
	hasNext    bool
	hasPrev    bool
}

func (r NotesResponse) Meta() map[string]any {
	return map[string]any{
		"current_page": r.page,
		"total_pages":  r.totalPages,
		"total":        r.total,
		"has_next":     r.hasNext,
		"has_prev":     r.hasPrev,
	}
}

func newNotesResponse(out *usecase.NoteListOutput) NotesResponse {
	return NotesResponse{
		Notes:      lo.Map(out.Notes, func(n entity.Note, _ int) NoteResponse { return toNoteResponse(n) }),
		page:       out.Page,
		totalPages: out.TotalPages(),
		total:      out.Total,
		hasNext:    out.HasNext(),
		hasPrev:    out.HasPrev(),
	}
}

func toNoteResponse(n entity.Note) NoteResponse {
	return NoteResponse{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}
