package handler

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/plastiside/plastiside/internal/model"
	"github.com/plastiside/plastiside/internal/repository"
	"github.com/plastiside/plastiside/internal/storage"
)

// AdminHandler groups the admin console endpoints: branding settings,
// platform analytics and user management.  The public branding read is
// the only method mounted without authentication.
type AdminHandler struct {
	Users       *repository.UserRepo
	Submissions *repository.SubmissionRepo
	Settings    *repository.SettingsRepo
	Blobs       storage.BlobStore
}

func NewAdminHandler(u *repository.UserRepo, s *repository.SubmissionRepo, st *repository.SettingsRepo, b storage.BlobStore) *AdminHandler {
	return &AdminHandler{Users: u, Submissions: s, Settings: st, Blobs: b}
}

type settingsResp struct {
	CompanyName    string  `json:"companyName"`
	PrimaryColor   string  `json:"primaryColor"`
	SecondaryColor string  `json:"secondaryColor"`
	FooterTeam     *string `json:"footerTeam,omitempty"`
	AnalyticsData  *string `json:"analyticsData,omitempty"`
	LogoURL        *string `json:"logoUrl,omitempty"`
	UpdatedAt      string  `json:"updatedAt"`
}

func toSettingsResp(s model.AdminSettings) settingsResp {
	return settingsResp{
		CompanyName:    s.CompanyName,
		PrimaryColor:   s.PrimaryColor,
		SecondaryColor: s.SecondaryColor,
		FooterTeam:     s.FooterTeam,
		AnalyticsData:  s.AnalyticsData,
		LogoURL:        s.LogoURL,
		UpdatedAt:      s.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// PublicSettings serves branding to unauthenticated clients so the UI
// can render before login.  Safe to sit behind the response cache.
func (h *AdminHandler) PublicSettings(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s, err := h.Settings.Get(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"settings": toSettingsResp(s)})
}

// GetSettings returns the full settings row to an admin.
func (h *AdminHandler) GetSettings(c echo.Context) error {
	return h.PublicSettings(c)
}

type updateSettingsReq struct {
	CompanyName    *string `json:"companyName"`
	PrimaryColor   *string `json:"primaryColor"`
	SecondaryColor *string `json:"secondaryColor"`
	FooterTeam     *string `json:"footerTeam"`
	AnalyticsData  *string `json:"analyticsData"`
}

// UpdateSettings applies a partial branding update; absent fields keep
// their stored values.
func (h *AdminHandler) UpdateSettings(c echo.Context) error {
	var req updateSettingsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s, err := h.Settings.Update(ctx, req.CompanyName, req.PrimaryColor, req.SecondaryColor, req.FooterTeam, req.AnalyticsData)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "settings updated", "settings": toSettingsResp(s)})
}

// UploadLogo stores a new platform logo and records its reference.
func (h *AdminHandler) UploadLogo(c echo.Context) error {
	content, ext, err := readUpload(c, "logo")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no file provided"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	filename := fmt.Sprintf("logo-%s%s", uuid.New(), ext)
	url, err := h.Blobs.Save(ctx, storage.DirLogos, filename, content)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "upload failed"})
	}
	s, err := h.Settings.SetLogoURL(ctx, url)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "logo uploaded", "settings": toSettingsResp(s)})
}

// Analytics aggregates platform-wide counters.  Always computed fresh
// from the database; this route must never be cached.
func (h *AdminHandler) Analytics(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	userCount, err := h.Users.CountAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	subCount, err := h.Submissions.CountAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	totalPoints, err := h.Users.SumPoints(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	byType, err := h.Submissions.WeightByType(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	plastics := make([]echo.Map, 0, len(byType))
	for _, t := range byType {
		plastics = append(plastics, echo.Map{
			"plasticType": t.PlasticType,
			"totalWeight": t.TotalWeight,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"totalUsers":       userCount,
		"totalSubmissions": subCount,
		"totalPoints":      totalPoints,
		"weightByType":     plastics,
	})
}

type adminUserResp struct {
	userPart
	Status       string  `json:"status"`
	BusinessName *string `json:"businessName,omitempty"`
	CreatedAt    string  `json:"createdAt"`
}

// ListUsers returns every account for the admin console.  Password
// hashes stay out of the response type.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]adminUserResp, 0, len(users))
	for _, u := range users {
		out = append(out, adminUserResp{
			userPart:     toUserPart(u),
			Status:       u.Status,
			BusinessName: u.BusinessName,
			CreatedAt:    u.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"users": out})
}

type updateStatusReq struct {
	Status string `json:"status"`
}

var allowedStatuses = map[string]bool{
	model.StatusActive:    true,
	model.StatusSuspended: true,
	model.StatusInactive:  true,
}

// UpdateUserStatus switches an account between active, suspended and
// inactive.  A suspended or inactive user keeps their data but the
// access gate refuses their requests.
func (h *AdminHandler) UpdateUserStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	var req updateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !allowedStatuses[req.Status] {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be active, suspended or inactive"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.UpdateStatus(ctx, id, req.Status); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "status updated"})
}
