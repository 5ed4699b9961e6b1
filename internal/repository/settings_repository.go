package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/plastiside/plastiside/internal/model"
)

// SettingsRepo manages the singleton admin_settings row holding
// branding fields.  The row is created lazily with column defaults on
// first read.
type SettingsRepo struct {
	db *sql.DB
}

// NewSettingsRepo returns a SettingsRepo bound to the given database.
func NewSettingsRepo(db *sql.DB) *SettingsRepo { return &SettingsRepo{db: db} }

const settingsCols = "id,company_name,primary_color,secondary_color,footer_team,analytics_data,logo_url,created_at,updated_at"

func (r *SettingsRepo) scanFirst(ctx context.Context) (model.AdminSettings, error) {
	var s model.AdminSettings
	err := r.db.QueryRowContext(ctx,
		"SELECT "+settingsCols+" FROM admin_settings ORDER BY id LIMIT 1").Scan(
		&s.ID, &s.CompanyName, &s.PrimaryColor, &s.SecondaryColor,
		&s.FooterTeam, &s.AnalyticsData, &s.LogoURL, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// Get returns the settings row, inserting one with column defaults when
// none exists yet.
func (r *SettingsRepo) Get(ctx context.Context) (model.AdminSettings, error) {
	s, err := r.scanFirst(ctx)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return model.AdminSettings{}, err
	}
	if _, err := r.db.ExecContext(ctx, "INSERT INTO admin_settings () VALUES ()"); err != nil {
		return model.AdminSettings{}, err
	}
	return r.scanFirst(ctx)
}

// Update applies a partial update: nil fields keep their current
// values.  The row is created first when missing so updates always
// have a target.
func (r *SettingsRepo) Update(ctx context.Context, companyName, primaryColor, secondaryColor, footerTeam, analyticsData *string) (model.AdminSettings, error) {
	s, err := r.Get(ctx)
	if err != nil {
		return model.AdminSettings{}, err
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE admin_settings SET
		   company_name    = COALESCE(?, company_name),
		   primary_color   = COALESCE(?, primary_color),
		   secondary_color = COALESCE(?, secondary_color),
		   footer_team     = COALESCE(?, footer_team),
		   analytics_data  = COALESCE(?, analytics_data)
		 WHERE id = ?`,
		companyName, primaryColor, secondaryColor, footerTeam, analyticsData, s.ID)
	if err != nil {
		return model.AdminSettings{}, err
	}
	return r.scanFirst(ctx)
}

// SetLogoURL stores the logo reference on the singleton row.
func (r *SettingsRepo) SetLogoURL(ctx context.Context, url string) (model.AdminSettings, error) {
	s, err := r.Get(ctx)
	if err != nil {
		return model.AdminSettings{}, err
	}
	if _, err := r.db.ExecContext(ctx,
		"UPDATE admin_settings SET logo_url = ? WHERE id = ?", url, s.ID); err != nil {
		return model.AdminSettings{}, err
	}
	return r.scanFirst(ctx)
}
