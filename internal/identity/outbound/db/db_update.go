package db

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/gonote/internal/identity/entity"
	"github.com/shandysiswandi/gonote/internal/pkg/goerror"
)

// ConsumeChallenge deletes the user's pending challenge when the code hash
// matches and has not expired, and marks the user verified in the same
// transaction. The row lock on the user makes concurrent submissions of the
// same code serialize, so exactly one of them consumes it.
func (s *DB) ConsumeChallenge(ctx context.Context, email, codeHash string, now time.Time) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "ConsumeChallenge")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback", "error", rErr)
		}
	}()

	var user entity.User
	err = tx.QueryRow(ctx, `
		SELECT u.id, u.email, u.full_name, u.age, u.is_verified, u.created_at, u.updated_at
		FROM users u
		JOIN auth_challenges c ON c.user_id = u.id
		WHERE u.email = $1 AND c.code_hash = $2 AND c.expires_at > $3
		FOR UPDATE OF u`,
		email, codeHash, now,
	).Scan(&user.ID, &user.Email, &user.FullName, &user.Age, &user.IsVerified, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM auth_challenges WHERE user_id = $1 AND code_hash = $2`, user.ID, codeHash)
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
		return nil, err
	}

	if !user.IsVerified {
		if _, err = tx.Exec(ctx, `UPDATE users SET is_verified = TRUE, updated_at = $2 WHERE id = $1`, user.ID, now); err != nil {
			err = s.mapError(err)
			return nil, err
		}
		user.IsVerified = true
		user.UpdatedAt = now
	}

	if err = tx.Commit(ctx); err != nil {
		err = s.mapError(err)
		return nil, err
	}

	return &user, nil
}
