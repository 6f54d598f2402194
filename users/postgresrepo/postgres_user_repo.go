package postgresrepo

import (
	"database/sql"

	"github.com/0xsonu/mlms/users"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var _ users.Directory = (*PostgresUserDirectory)(nil)

// PostgresUserDirectory is a users.Directory backed by a Postgres table.
// Expected schema:
//
//	CREATE TABLE users (
//	    id            TEXT PRIMARY KEY,
//	    email         TEXT NOT NULL UNIQUE,
//	    name          TEXT NOT NULL,
//	    role          TEXT NOT NULL,
//	    avatar_url    TEXT NOT NULL DEFAULT '',
//	    tenant_id     TEXT NOT NULL,
//	    password_hash TEXT NOT NULL DEFAULT '',
//	    created_at    TIMESTAMPTZ NOT NULL,
//	    updated_at    TIMESTAMPTZ NOT NULL
//	);
type PostgresUserDirectory struct {
	db *sql.DB
}

func NewPostgresUserDirectory(db *sql.DB) *PostgresUserDirectory {
	return &PostgresUserDirectory{db: db}
}

func (ud *PostgresUserDirectory) Upsert(user *users.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	query := `
		INSERT INTO users (id, email, name, role, avatar_url, tenant_id, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			name = EXCLUDED.name,
			role = EXCLUDED.role,
			avatar_url = EXCLUDED.avatar_url,
			tenant_id = EXCLUDED.tenant_id,
			password_hash = EXCLUDED.password_hash,
			updated_at = EXCLUDED.updated_at
	`
	_, err := ud.db.Exec(query,
		user.ID,
		user.Email,
		user.Name,
		user.Role,
		user.AvatarURL,
		user.TenantID,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return errors.Wrap(err, "[PostgresUserDirectory.Upsert] db.Exec")
	}
	return nil
}

func (ud *PostgresUserDirectory) Delete(email string) error {
	_, err := ud.db.Exec(`DELETE FROM users WHERE email = $1`, email)
	if err != nil {
		return errors.Wrap(err, "[PostgresUserDirectory.Delete] db.Exec")
	}
	return nil
}

func (ud *PostgresUserDirectory) GetByEmail(email string) (*users.User, error) {
	return ud.getOne(`WHERE email = $1`, email)
}

func (ud *PostgresUserDirectory) GetByID(id string) (*users.User, error) {
	return ud.getOne(`WHERE id = $1`, id)
}

func (ud *PostgresUserDirectory) getOne(where string, arg any) (*users.User, error) {
	query := `
		SELECT id, email, name, role, avatar_url, tenant_id, password_hash, created_at, updated_at
		FROM users ` + where

	var u users.User
	err := ud.db.QueryRow(query, arg).Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.Role,
		&u.AvatarURL,
		&u.TenantID,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("not found")
		}
		return nil, errors.Wrap(err, "[PostgresUserDirectory] row.Scan")
	}
	return &u, nil
}

func (ud *PostgresUserDirectory) List(tenantID string, offset, limit int) ([]*users.User, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT id, email, name, role, avatar_url, tenant_id, password_hash, created_at, updated_at
		FROM users
		WHERE ($1 = '' OR tenant_id = $1)
		ORDER BY id
		OFFSET $2 LIMIT $3
	`
	rows, err := ud.db.Query(query, tenantID, offset, limit)
	if err != nil {
		return nil, errors.Wrap(err, "[PostgresUserDirectory.List] db.Query")
	}
	defer rows.Close()

	userList := make([]*users.User, 0)
	for rows.Next() {
		var u users.User
		if err := rows.Scan(
			&u.ID,
			&u.Email,
			&u.Name,
			&u.Role,
			&u.AvatarURL,
			&u.TenantID,
			&u.PasswordHash,
			&u.CreatedAt,
			&u.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "[PostgresUserDirectory.List] rows.Scan")
		}
		userList = append(userList, &u)
	}
	return userList, rows.Err()
}
