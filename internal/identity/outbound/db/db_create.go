package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/gonote/internal/identity/entity"
)

func (s *DB) CreateUserWithChallenge(ctx context.Context, user entity.User, chal entity.Challenge) (err error) {
	ctx, span := s.startSpan(ctx, "CreateUserWithChallenge")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback", "error", rErr)
		}
	}()

	if _, err = tx.Exec(ctx, `
		INSERT INTO users (id, email, full_name, age, is_verified)
		VALUES ($1, $2, $3, $4, FALSE)`,
		user.ID, user.Email, user.FullName, user.Age,
	); err != nil {
		err = s.mapError(err)
		return err
	}

	if _, err = tx.Exec(ctx, `
		INSERT INTO auth_challenges (user_id, code_hash, purpose, expires_at)
		VALUES ($1, $2, $3, $4)`,
		chal.UserID, chal.CodeHash, chal.Purpose, chal.ExpiresAt,
	); err != nil {
		err = s.mapError(err)
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		err = s.mapError(err)
		return err
	}

	return nil
}

func (s *DB) UpsertChallenge(ctx context.Context, chal entity.Challenge) (err error) {
	ctx, span := s.startSpan(ctx, "UpsertChallenge")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO auth_challenges (user_id, code_hash, purpose, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET code_hash = EXCLUDED.code_hash,
		    purpose = EXCLUDED.purpose,
		    expires_at = EXCLUDED.expires_at`,
		chal.UserID, chal.CodeHash, chal.Purpose, chal.ExpiresAt,
	)
	err = s.mapError(err)
	return err
}
