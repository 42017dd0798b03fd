package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/alexanderramin/studyplan/internal/db"
	"github.com/alexanderramin/studyplan/internal/domain"
)

type SQLiteCredentialRepo struct {
	db db.DBTX
}

func NewSQLiteCredentialRepo(conn db.DBTX) *SQLiteCredentialRepo {
	return &SQLiteCredentialRepo{db: conn}
}

func (r *SQLiteCredentialRepo) Get(ctx context.Context, userID string) (*domain.Credential, error) {
	var c domain.Credential
	var expiry sql.NullString
	var scopes, createdAt, updatedAt string
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, access_token, refresh_token, token_type, expiry, scopes, created_at, updated_at
		 FROM google_credentials WHERE user_id = ?`, userID).
		Scan(&c.UserID, &c.AccessToken, &c.RefreshToken, &c.TokenType, &expiry, &scopes, &createdAt, &updatedAt)
	if err != nil {
		return nil, notFound("calendar credential", err)
	}
	if t := parseNullableTime(expiry); t != nil {
		c.Expiry = *t
	}
	if scopes != "" {
		c.Scopes = strings.Fields(scopes)
	}
	if c.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Upsert stores the credential, keeping the existing refresh token when the
// new grant omits one.
func (r *SQLiteCredentialRepo) Upsert(ctx context.Context, c *domain.Credential) error {
	var expiry any
	if !c.Expiry.IsZero() {
		expiry = formatTime(c.Expiry)
	}
	now := nowUTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO google_credentials (user_id, access_token, refresh_token, token_type, expiry, scopes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
		   access_token = excluded.access_token,
		   refresh_token = CASE WHEN excluded.refresh_token = '' THEN google_credentials.refresh_token ELSE excluded.refresh_token END,
		   token_type = excluded.token_type,
		   expiry = excluded.expiry,
		   scopes = excluded.scopes,
		   updated_at = excluded.updated_at`,
		c.UserID, c.AccessToken, c.RefreshToken, c.TokenType, expiry, strings.Join(c.Scopes, " "), now, now)
	if err != nil {
		return fmt.Errorf("upserting calendar credential: %w", err)
	}
	return nil
}

func (r *SQLiteCredentialRepo) Delete(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM google_credentials WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("deleting calendar credential: %w", err)
	}
	return nil
}
