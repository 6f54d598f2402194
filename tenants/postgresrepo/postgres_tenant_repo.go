package postgresrepo

import (
	"database/sql"

	"github.com/0xsonu/mlms/tenants"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var _ tenants.Catalog = (*PostgresTenantCatalog)(nil)

const tenantColumns = `id, name, domain, logo_url, primary_color, secondary_color,
	font_family, theme, allow_self_registration, require_email_verification,
	default_user_role, created_at, updated_at`

// PostgresTenantCatalog is a tenants.Catalog backed by a Postgres table.
// First returns the oldest tenant by created_at, which serves as the
// catalog's default.
type PostgresTenantCatalog struct {
	db *sql.DB
}

func NewPostgresTenantCatalog(db *sql.DB) *PostgresTenantCatalog {
	return &PostgresTenantCatalog{db: db}
}

func (tc *PostgresTenantCatalog) Upsert(tenant *tenants.Tenant) error {
	if tenant.ID == "" {
		tenant.ID = uuid.New().String()
	}
	query := `
		INSERT INTO tenants (` + tenantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			domain = EXCLUDED.domain,
			logo_url = EXCLUDED.logo_url,
			primary_color = EXCLUDED.primary_color,
			secondary_color = EXCLUDED.secondary_color,
			font_family = EXCLUDED.font_family,
			theme = EXCLUDED.theme,
			allow_self_registration = EXCLUDED.allow_self_registration,
			require_email_verification = EXCLUDED.require_email_verification,
			default_user_role = EXCLUDED.default_user_role,
			updated_at = EXCLUDED.updated_at
	`
	_, err := tc.db.Exec(query,
		tenant.ID,
		tenant.Name,
		tenant.Domain,
		tenant.LogoURL,
		tenant.PrimaryColor,
		tenant.SecondaryColor,
		tenant.FontFamily,
		tenant.Theme,
		tenant.Settings.AllowSelfRegistration,
		tenant.Settings.RequireEmailVerification,
		tenant.Settings.DefaultUserRole,
		tenant.CreatedAt,
		tenant.UpdatedAt,
	)
	if err != nil {
		return errors.Wrap(err, "[PostgresTenantCatalog.Upsert] db.Exec")
	}
	return nil
}

func (tc *PostgresTenantCatalog) Delete(tenantID string) error {
	_, err := tc.db.Exec(`DELETE FROM tenants WHERE id = $1`, tenantID)
	if err != nil {
		return errors.Wrap(err, "[PostgresTenantCatalog.Delete] db.Exec")
	}
	return nil
}

func (tc *PostgresTenantCatalog) Get(tenantID string) (*tenants.Tenant, error) {
	return tc.getOne(`SELECT `+tenantColumns+` FROM tenants WHERE id = $1`, tenantID)
}

func (tc *PostgresTenantCatalog) First() (*tenants.Tenant, error) {
	return tc.getOne(`SELECT ` + tenantColumns + ` FROM tenants ORDER BY created_at, id LIMIT 1`)
}

func (tc *PostgresTenantCatalog) getOne(query string, args ...any) (*tenants.Tenant, error) {
	var t tenants.Tenant
	err := tc.db.QueryRow(query, args...).Scan(
		&t.ID,
		&t.Name,
		&t.Domain,
		&t.LogoURL,
		&t.PrimaryColor,
		&t.SecondaryColor,
		&t.FontFamily,
		&t.Theme,
		&t.Settings.AllowSelfRegistration,
		&t.Settings.RequireEmailVerification,
		&t.Settings.DefaultUserRole,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("not found")
		}
		return nil, errors.Wrap(err, "[PostgresTenantCatalog] row.Scan")
	}
	return &t, nil
}

func (tc *PostgresTenantCatalog) List(offset, limit int) ([]*tenants.Tenant, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `SELECT ` + tenantColumns + ` FROM tenants ORDER BY created_at, id OFFSET $1 LIMIT $2`
	rows, err := tc.db.Query(query, offset, limit)
	if err != nil {
		return nil, errors.Wrap(err, "[PostgresTenantCatalog.List] db.Query")
	}
	defer rows.Close()

	tenantList := make([]*tenants.Tenant, 0)
	for rows.Next() {
		var t tenants.Tenant
		if err := rows.Scan(
			&t.ID,
			&t.Name,
			&t.Domain,
			&t.LogoURL,
			&t.PrimaryColor,
			&t.SecondaryColor,
			&t.FontFamily,
			&t.Theme,
			&t.Settings.AllowSelfRegistration,
			&t.Settings.RequireEmailVerification,
			&t.Settings.DefaultUserRole,
			&t.CreatedAt,
			&t.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "[PostgresTenantCatalog.List] rows.Scan")
		}
		tenantList = append(tenantList, &t)
	}
	return tenantList, rows.Err()
}
