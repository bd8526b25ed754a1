// Package pg implementa los repositorios de usuario y roles para PostgreSQL.
package pg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/idbridge/internal/store/core"
)

// ─── UserRepository ───

type UserRepo struct{ pool *pgxpool.Pool }

func NewUserRepo(pool *pgxpool.Pool) *UserRepo { return &UserRepo{pool: pool} }

const userColumns = `
	id, email,
	COALESCE(display_name, ''), COALESCE(first_name, ''), COALESCE(last_name, ''),
	COALESCE(provider_user_ids, '{}'::jsonb),
	COALESCE(twitter_screen_name, ''), COALESCE(google_profile_page, ''),
	COALESCE(profile_url, ''),
	created_at, updated_at
`

func (r *UserRepo) GetByID(ctx context.Context, id string) (*core.UserProfile, error) {
	query := `SELECT ` + userColumns + ` FROM app_user WHERE id = $1`

	u, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	return u, err
}

func (r *UserRepo) Update(ctx context.Context, u *core.UserProfile) error {
	const query = `
		UPDATE app_user SET
			email = $2, display_name = $3, first_name = $4, last_name = $5,
			provider_user_ids = $6, twitter_screen_name = $7,
			google_profile_page = $8, profile_url = $9, updated_at = NOW()
		WHERE id = $1
	`
	pids, err := json.Marshal(u.ProviderUserIDs)
	if err != nil {
		return fmt.Errorf("marshal provider ids: %w", err)
	}
	tag, err := r.pool.Exec(ctx, query,
		u.ID, u.Email, u.DisplayName, u.FirstName, u.LastName,
		pids, u.TwitterScreenName, u.GoogleProfilePage, u.ProfileURL)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

// EnsureByProviderID resuelve el usuario dueño de la identidad
// (provider, externalID), creándolo en el primer login. Sin external
// id cae a lookup por email.
func (r *UserRepo) EnsureByProviderID(ctx context.Context, provider, externalID, email string) (*core.UserProfile, error) {
	if externalID != "" {
		const query = `SELECT user_id FROM user_identity WHERE provider = $1 AND provider_user_id = $2`
		var userID string
		err := r.pool.QueryRow(ctx, query, provider, externalID).Scan(&userID)
		if err == nil {
			return r.GetByID(ctx, userID)
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	} else if email != "" {
		const query = `SELECT ` + userColumns + ` FROM app_user WHERE email = $1`
		u, err := scanUser(r.pool.QueryRow(ctx, query, email))
		if err == nil {
			return u, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	}
	return r.create(ctx, provider, externalID, email)
}

func (r *UserRepo) create(ctx context.Context, provider, externalID, email string) (*core.UserProfile, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	u := &core.UserProfile{
		ID:        uuid.NewString(),
		Email:     email,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO app_user (id, email, provider_user_ids, created_at, updated_at)
		 VALUES ($1, $2, '{}'::jsonb, NOW(), NOW())`,
		u.ID, u.Email)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	if externalID != "" {
		_, err = tx.Exec(ctx,
			`INSERT INTO user_identity (user_id, provider, provider_user_id, created_at)
			 VALUES ($1, $2, $3, NOW())`,
			u.ID, provider, externalID)
		if err != nil {
			return nil, fmt.Errorf("insert identity: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return u, nil
}

func scanUser(row pgx.Row) (*core.UserProfile, error) {
	var u core.UserProfile
	var pids []byte
	err := row.Scan(
		&u.ID, &u.Email,
		&u.DisplayName, &u.FirstName, &u.LastName,
		&pids,
		&u.TwitterScreenName, &u.GoogleProfilePage,
		&u.ProfileURL,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(pids) > 0 {
		if err := json.Unmarshal(pids, &u.ProviderUserIDs); err != nil {
			return nil, fmt.Errorf("unmarshal provider ids: %w", err)
		}
	}
	return &u, nil
}

// ─── RoleRepository ───

type RoleRepo struct{ pool *pgxpool.Pool }

func NewRoleRepo(pool *pgxpool.Pool) *RoleRepo { return &RoleRepo{pool: pool} }

func (r *RoleRepo) RolesByUserID(ctx context.Context, id string) ([]string, error) {
	const query = `
		SELECT r.name FROM role r
		JOIN user_role ur ON ur.role_id = r.id
		WHERE ur.user_id = $1
		ORDER BY r.name
	`
	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		roles = append(roles, name)
	}
	return roles, rows.Err()
}
