package db

import (
	"context"

	"github.com/shandysiswandi/gonote/internal/notes/entity"
)

const noteColumns = `id, user_id, title, content, created_at, updated_at`

func (s *DB) GetNoteByID(ctx context.Context, id, userID int64) (_ *entity.Note, err error) {
	ctx, span := s.startSpan(ctx, "GetNoteByID")
	defer func() { s.endSpan(span, err) }()

	var note entity.Note
	err = s.conn.QueryRow(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = $1 AND user_id = $2`, id, userID).
		Scan(&note.ID, &note.UserID, &note.Title, &note.Content, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}

	return &note, nil
}

func (s *DB) GetNoteList(ctx context.Context, userID int64, filter entity.NoteListFilter) (_ []entity.Note, _ int64, err error) {
	ctx, span := s.startSpan(ctx, "GetNoteList")
	defer func() { s.endSpan(span, err) }()

	var total int64
	if err = s.conn.QueryRow(ctx, `SELECT COUNT(*) FROM notes WHERE user_id = $1`, userID).Scan(&total); err != nil {
		err = s.mapError(err)
		return nil, 0, err
	}

	rows, err := s.conn.Query(ctx, `
		SELECT `+noteColumns+` FROM notes
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`,
		userID, filter.Limit, filter.Offset,
	)
	if err != nil {
		err = s.mapError(err)
		return nil, 0, err
	}
	defer rows.Close()

	notes := make([]entity.Note, 0, filter.Limit)
	for rows.Next() {
		var note entity.Note
		if err = rows.Scan(&note.ID, &note.UserID, &note.Title, &note.Content, &note.CreatedAt, &note.UpdatedAt); err != nil {
			err = s.mapError(err)
			return nil, 0, err
		}
		notes = append(notes, note)
	}
	if err = rows.Err(); err != nil {
		err = s.mapError(err)
		return nil, 0, err
	}

	return notes, total, nil
}
