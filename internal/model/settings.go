package model

import "time"

// AdminSettings is the singleton branding record read by the public
// settings endpoint and managed by admins.  FooterTeam and
// AnalyticsData hold raw JSON blobs as provided by the admin UI.
//
// Fields:
//  ID             – primary key identifier (single row in practice).
//  CompanyName    – display name of the platform.
//  PrimaryColor   – hex color for primary UI elements.
//  SecondaryColor – hex color for secondary UI elements.
//  FooterTeam     – JSON array of footer team entries (nullable).
//  AnalyticsData  – JSON blob of admin-curated analytics (nullable).
//  LogoURL        – reference to the uploaded logo (nullable).
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type AdminSettings struct {
	ID             uint64    // admin_settings.id
	CompanyName    string    // admin_settings.company_name
	PrimaryColor   string    // admin_settings.primary_color
	SecondaryColor string    // admin_settings.secondary_color
	FooterTeam     *string   // admin_settings.footer_team (nullable JSON)
	AnalyticsData  *string   // admin_settings.analytics_data (nullable JSON)
	LogoURL        *string   // admin_settings.logo_url (nullable)
	CreatedAt      time.Time // admin_settings.created_at
	UpdatedAt      time.Time // admin_settings.updated_at
}
