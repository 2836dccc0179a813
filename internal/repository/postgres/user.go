package postgres

import (
	"context"
	"database/sql"

	"github.com/humoyunmirzo-code/tgbot/internal/domain"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// EnsureUserExists creates user if not exists
func (r *UserRepo) EnsureUserExists(ctx context.Context, userID int64) error {
	query := `
		INSERT INTO users (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

// GetLanguage returns the user's chosen language.
// The bool is false when the user never picked one.
func (r *UserRepo) GetLanguage(ctx context.Context, userID int64) (domain.Language, bool, error) {
	var lang sql.NullString
	query := `SELECT language FROM users WHERE user_id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&lang)

	if err == sql.ErrNoRows {
		// User doesn't exist yet
		return domain.DefaultLanguage, false, nil
	}
	if err != nil {
		return domain.DefaultLanguage, false, err
	}

	l := domain.Language(lang.String)
	if !lang.Valid || !l.Valid() {
		return domain.DefaultLanguage, false, nil
	}
	return l, true, nil
}

// SetLanguage stores the user's language
func (r *UserRepo) SetLanguage(ctx context.Context, userID int64, lang domain.Language) error {
	query := `
		INSERT INTO users (user_id, language)
		VALUES ($1, $2)
		ON CONFLICT (user_id)
		DO UPDATE SET language = EXCLUDED.language, updated_at = NOW()
	`
	_, err := r.db.ExecContext(ctx, query, userID, string(lang))
	return err
}
