package db

import (
	"context"

	"github.com/shandysiswandi/gonote/internal/identity/entity"
)

const userColumns = `id, email, full_name, age, is_verified, created_at, updated_at`

func (s *DB) GetUserByEmail(ctx context.Context, email string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByEmail")
	defer func() { s.endSpan(span, err) }()

	var user entity.User
	err = s.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email).
		Scan(&user.ID, &user.Email, &user.FullName, &user.Age, &user.IsVerified, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}

	return &user, nil
}

func (s *DB) GetUserByID(ctx context.Context, id int64) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByID")
	defer func() { s.endSpan(span, err) }()

	var user entity.User
	err = s.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id).
		Scan(&user.ID, &user.Email, &user.FullName, &user.Age, &user.IsVerified, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}

	return &user, nil
}
