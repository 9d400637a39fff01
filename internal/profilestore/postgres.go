package profilestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver

	"github.com/NovaPlay-Games/social_bridge/internal/social"
)

// PostgresStore keeps profiles in a single user_profiles table. The
// table is created by the operator:
//
//	CREATE TABLE user_profiles (
//	    provider    TEXT PRIMARY KEY,
//	    profile_id  TEXT NOT NULL,
//	    username    TEXT NOT NULL DEFAULT '',
//	    email       TEXT NOT NULL DEFAULT '',
//	    first_name  TEXT NOT NULL DEFAULT '',
//	    last_name   TEXT NOT NULL DEFAULT '',
//	    avatar_link TEXT NOT NULL DEFAULT '',
//	    updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type PostgresStore struct {
	db *sqlx.DB
}

// profileRow is the sqlx row mapping for user_profiles.
type profileRow struct {
	Provider   string `db:"provider"`
	ProfileID  string `db:"profile_id"`
	Username   string `db:"username"`
	Email      string `db:"email"`
	FirstName  string `db:"first_name"`
	LastName   string `db:"last_name"`
	AvatarLink string `db:"avatar_link"`
}

// NewPostgresStore creates a store over an existing connection pool.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// OpenPostgresStore connects to postgres with the given DSN.
func OpenPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// Save upserts the profile row for its provider.
func (p *PostgresStore) Save(ctx context.Context, profile social.UserProfile) error {
	const query = `
		INSERT INTO user_profiles (provider, profile_id, username, email, first_name, last_name, avatar_link, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (provider) DO UPDATE SET
			profile_id = EXCLUDED.profile_id,
			username = EXCLUDED.username,
			email = EXCLUDED.email,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			avatar_link = EXCLUDED.avatar_link,
			updated_at = now()`

	_, err := p.db.ExecContext(ctx, query,
		string(profile.Provider), profile.ProfileID, profile.Username,
		profile.Email, profile.FirstName, profile.LastName, profile.AvatarLink)
	if err != nil {
		return fmt.Errorf("save profile for %s: %w", profile.Provider, err)
	}
	return nil
}

// Load returns the cached profile row for a provider.
func (p *PostgresStore) Load(ctx context.Context, id social.ProviderID) (social.UserProfile, bool, error) {
	const query = `
		SELECT provider, profile_id, username, email, first_name, last_name, avatar_link
		FROM user_profiles WHERE provider = $1`

	var row profileRow
	err := p.db.GetContext(ctx, &row, query, string(id))
	if errors.Is(err, sql.ErrNoRows) {
		return social.UserProfile{}, false, nil
	}
	if err != nil {
		return social.UserProfile{}, false, fmt.Errorf("load profile for %s: %w", id, err)
	}

	return social.UserProfile{
		Provider:   social.ProviderID(row.Provider),
		ProfileID:  row.ProfileID,
		Username:   row.Username,
		Email:      row.Email,
		FirstName:  row.FirstName,
		LastName:   row.LastName,
		AvatarLink: row.AvatarLink,
	}, true, nil
}

// Delete removes the cached profile row for a provider.
func (p *PostgresStore) Delete(ctx context.Context, id social.ProviderID) error {
	if _, err := p.db.ExecContext(ctx, `DELETE FROM user_profiles WHERE provider = $1`, string(id)); err != nil {
		return fmt.Errorf("delete profile for %s: %w", id, err)
	}
	return nil
}

// Close releases the connection pool.
func (p *PostgresStore) Close() error {
	return p.db.Close()
}
