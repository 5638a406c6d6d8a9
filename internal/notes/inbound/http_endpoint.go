package inbound

import (
	"github.com/shandysiswandi/gonote/internal/notes/usecase"
	"github.com/shandysiswandi/gonote/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for the note workflows.
type HTTPEndpoint struct {
	uc uc
}

// NoteCreate stores a new note for the caller.
func (h *HTTPEndpoint) NoteCreate(r *router.Request) (any, error) {
	var req NoteCreateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.NoteCreate(r.Context(), usecase.NoteCreateInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return nil, err
	}

	return NoteDetailResponse{Note: toNoteResponse(resp.Note)}, nil
}

// NoteList returns one page of the caller's notes, newest first.
func (h *HTTPEndpoint) NoteList(r *router.Request) (any, error) {
	page, err := r.GetQueryInt32("page")
	if err != nil {
		return nil, err
	}

	limit, err := r.GetQueryInt32("limit")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.NoteList(r.Context(), usecase.NoteListInput{
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		return nil, err
	}

	return newNotesResponse(resp), nil
}

// NoteDetail returns a single note owned by the caller.
func (h *HTTPEndpoint) NoteDetail(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.NoteDetail(r.Context(), usecase.NoteDetailInput{ID: id})
	if err != nil {
		return nil, err
	}

	return NoteDetailResponse{Note: toNoteResponse(resp.Note)}, nil
}

// NoteUpdate replaces the title and content of a note owned by the caller.
func (h *HTTPEndpoint) NoteUpdate(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req NoteUpdateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.NoteUpdate(r.Context(), usecase.NoteUpdateInput{
		ID:      id,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return nil, err
	}

	return NoteDetailResponse{Note: toNoteResponse(resp.Note)}, nil
}

// NoteDelete removes a note owned by the caller.
func (h *HTTPEndpoint) NoteDelete(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	if err := h.uc.NoteDelete(r.Context(), usecase.NoteDeleteInput{ID: id}); err != nil {
		return nil, err
	}

	return nil, nil
}
