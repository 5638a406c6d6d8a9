package db

import (
	"context"

	"github.com/shandysiswandi/gonote/internal/notes/entity"
	"github.com/shandysiswandi/gonote/internal/pkg/goerror"
)

func (s *DB) CreateNote(ctx context.Context, note entity.Note) (err error) {
	ctx, span := s.startSpan(ctx, "CreateNote")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO notes (id, user_id, title, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		note.ID, note.UserID, note.Title, note.Content, note.CreatedAt, note.UpdatedAt,
	)
	err = s.mapError(err)
	return err
}

func (s *DB) UpdateNote(ctx context.Context, note entity.Note) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateNote")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `
		UPDATE notes SET title = $3, content = $4, updated_at = $5
		WHERE id = $1 AND user_id = $2`,
		note.ID, note.UserID, note.Title, note.Content, note.UpdatedAt,
	)
	if err != nil {
		err = s.mapError(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
		return err
	}

	return nil
}

func (s *DB) DeleteNote(ctx context.Context, id, userID int64) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteNote")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `DELETE FROM notes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		err = s.mapError(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
		return err
	}

	return nil
}
